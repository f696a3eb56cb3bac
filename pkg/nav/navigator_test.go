package nav

import (
	"testing"

	"github.com/vango-dev/navheader/internal/errors"
)

func TestIsRelative(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/", true},
		{"/item1", true},
		{"/parent/submenu1", true},
		{"/a?b=c", true},
		{"", false},
		{"item1", false},
		{"//evil.example", false},
		{"/\\evil.example", false},
		{"https://evil.example", false},
		{"/https://evil.example", false},
		{"/JavaScript:alert(1)", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := IsRelative(tt.path); got != tt.want {
				t.Errorf("IsRelative(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	o := Apply()
	if o.Replace || !o.Scroll || o.Params != nil {
		t.Errorf("Apply() = %+v, want defaults", o)
	}

	o = Apply(WithReplace(), WithoutScroll(), nil)
	if !o.Replace || o.Scroll {
		t.Errorf("Apply(opts) = %+v", o)
	}
}

func TestBuildURL(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		opts    []Option
		want    string
		wantErr bool
	}{
		{name: "plain", path: "/item1", want: "/item1"},
		{name: "params", path: "/search", opts: []Option{WithParams(map[string]any{"q": "go", "page": 2})}, want: "/search?page=2&q=go"},
		{name: "params append", path: "/search?q=go", opts: []Option{WithParams(map[string]any{"page": 2})}, want: "/search?q=go&page=2"},
		{name: "absolute", path: "https://example.com", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _, err := BuildURL(tt.path, tt.opts...)
			if tt.wantErr {
				if !errors.HasCode(err, "E200") {
					t.Fatalf("expected E200, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("BuildURL = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNavigatorFunc(t *testing.T) {
	var got string
	var n Navigator = NavigatorFunc(func(path string, opts ...Option) { got = path })
	n.Navigate("/x")
	if got != "/x" {
		t.Errorf("got %q", got)
	}
}
