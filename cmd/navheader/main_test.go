package main

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vango-dev/navheader/internal/config"
	"github.com/vango-dev/navheader/internal/errors"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeExample(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := config.Example().SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error: %v", err)
	}
	return path
}

func TestInit(t *testing.T) {
	tests := []struct {
		name string
		args func(dir string) []string
		file string
	}{
		{"json file", func(dir string) []string { return []string{"init", filepath.Join(dir, "navheader.json")} }, "navheader.json"},
		{"yaml file", func(dir string) []string { return []string{"init", filepath.Join(dir, "site", "navheader.yml")} }, "site/navheader.yml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			out, err := execute(t, tt.args(dir)...)
			if err != nil {
				t.Fatalf("init error: %v", err)
			}
			if !strings.Contains(out, "Created") {
				t.Errorf("output = %q", out)
			}

			cfg, err := config.LoadFile(filepath.Join(dir, tt.file))
			if err != nil {
				t.Fatalf("LoadFile() error: %v", err)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("example config is invalid: %v", err)
			}
			if len(cfg.MenuItems) != 3 {
				t.Errorf("len(MenuItems) = %d, want 3", len(cfg.MenuItems))
			}
		})
	}
}

func TestInitRefusesOverwrite(t *testing.T) {
	path := writeExample(t, "navheader.json")

	_, err := execute(t, "init", path)
	if !errors.HasCode(err, "E500") {
		t.Fatalf("init over existing file: error = %v, want E500", err)
	}

	if _, err := execute(t, "init", "--force", path); err != nil {
		t.Errorf("init --force error: %v", err)
	}
}

func TestInitUnknownFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "navheader.toml")
	_, err := execute(t, "init", path)
	if !errors.HasCode(err, "E103") {
		t.Errorf("error = %v, want E103", err)
	}
	if _, statErr := os.Stat(path); statErr == nil {
		t.Error("file was written for an unsupported format")
	}
}

func TestRender(t *testing.T) {
	path := writeExample(t, "navheader.yaml")

	out, err := execute(t, "--config", path, "render")
	if err != nil {
		t.Fatalf("render error: %v", err)
	}
	for _, want := range []string{`src="/fb.png"`, ">Item1<", ">Parent<", `href="/item3"`, ">Button<"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Submenu1") {
		t.Error("submenu rendered before it was opened")
	}
}

func TestRenderOpen(t *testing.T) {
	path := writeExample(t, "navheader.json")

	out, err := execute(t, "-c", path, "render", "--open", "Parent", "--pretty")
	if err != nil {
		t.Fatalf("render error: %v", err)
	}
	if !strings.Contains(out, `href="/parent/submenu1"`) || !strings.Contains(out, "rotate-90") {
		t.Errorf("submenu not open:\n%s", out)
	}

	if _, err := execute(t, "-c", path, "render", "--open", "Item1"); !errors.HasCode(err, "E500") {
		t.Errorf("--open on a leaf: error = %v, want E500", err)
	}
}

func TestRenderInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "navheader.json")
	if err := os.WriteFile(path, []byte(`{"menuItems": [{"title": "Item1"}]}`), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := execute(t, "-c", path, "render"); !errors.HasCode(err, "E102") {
		t.Errorf("error = %v, want E102", err)
	}
}

func TestLogFlagsOverrideConfig(t *testing.T) {
	path := writeExample(t, "navheader.json")

	if _, err := execute(t, "-c", path, "--log-level", "loud", "render"); !errors.HasCode(err, "E102") {
		t.Errorf("bad --log-level: error = %v, want E102", err)
	}
	if _, err := execute(t, "-c", path, "--log-format", "json", "render"); err != nil {
		t.Errorf("--log-format json: %v", err)
	}
}

func TestVersionShort(t *testing.T) {
	out, err := execute(t, "version", "--short")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != version {
		t.Errorf("version --short = %q, want %q", out, version)
	}
}

func TestRenderOpenSkipsLeafWithSameTitle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "navheader.json")
	cfg := `{
  "logo": "/fb.png",
  "menuItems": [
    {"title": "Parent"},
    {"title": "Parent", "subMenu": {"items": ["Submenu1"]}}
  ]
}`
	if err := os.WriteFile(path, []byte(cfg), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "-c", path, "--log-level", "debug", "render", "--open", "Parent")
	if err != nil {
		t.Fatalf("render error: %v", err)
	}
	if !strings.Contains(out, `href="/parent/submenu1"`) {
		t.Errorf("submenu not open:\n%s", out)
	}
	if strings.Contains(out, "msg=navigate") {
		t.Errorf("--open clicked the leaf:\n%s", out)
	}
}

func TestRenderDebugLogging(t *testing.T) {
	path := writeExample(t, "navheader.json")

	out, err := execute(t, "-c", path, "--log-level", "debug", "--log-format", "json", "render", "--open", "Parent")
	if err != nil {
		t.Fatalf("render error: %v", err)
	}
	for _, want := range []string{`"msg":"toggle submenu"`, `"component":"navheader"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	out, err = execute(t, "-c", path, "render", "--open", "Parent")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out, "toggle submenu") {
		t.Errorf("debug line logged at the default info level:\n%s", out)
	}
}

func TestRenderHasNoPathFlag(t *testing.T) {
	path := writeExample(t, "navheader.json")

	_, err := execute(t, "-c", path, "render", "--path", "/item1")
	if err == nil || !strings.Contains(err.Error(), "unknown flag") {
		t.Errorf("error = %v, want unknown flag", err)
	}
}
