package vtest_test

import (
	"strconv"
	"testing"

	"github.com/vango-dev/navheader/pkg/vdom"
	"github.com/vango-dev/navheader/pkg/vtest"
)

func counter() vdom.Component {
	n := 0
	return vdom.Func(func() *vdom.VNode {
		return vdom.Div(
			vdom.Img(vdom.Src("/c.png"), vdom.Alt("Counter")),
			vdom.Span(vdom.Text("count " + strconv.Itoa(n))),
			vdom.Button(vdom.Text("Inc"), vdom.OnClick(func() { n++ })),
			vdom.A(vdom.Href("/docs"), vdom.Text("Docs")),
			vdom.A(vdom.Role("button"), vdom.AriaLabel("Reset"), vdom.Text("x"), vdom.OnClick(func() { n = 0 })),
		)
	})
}

func TestScreenClickRerenders(t *testing.T) {
	screen := vtest.Mount(t, counter())
	screen.GetByText("count 0")

	screen.ClickText("Inc")
	screen.ClickText("Inc")
	screen.GetByText("count 2")

	if screen.QueryByText("count 0") != nil {
		t.Error("stale text still rendered")
	}
}

func TestScreenGetByRole(t *testing.T) {
	screen := vtest.Mount(t, counter())

	img := screen.GetByRole("img", "counter")
	if img.AttrString("src") != "/c.png" {
		t.Errorf("src = %q", img.AttrString("src"))
	}

	screen.GetByRole("link", "Docs")

	buttons := screen.QueryAllByRole("button", "")
	if len(buttons) != 2 {
		t.Fatalf("found %d buttons, want 2", len(buttons))
	}

	screen.ClickText("Inc")
	screen.Click(screen.GetByRole("button", "Reset"))
	screen.GetByText("count 0")
}

func TestScreenHTML(t *testing.T) {
	screen := vtest.Mount(t, counter())
	html := screen.HTML()
	if html == "" {
		t.Fatal("empty HTML")
	}
	vtest.ExpectElement(t, screen.Root(), "button")
	vtest.ExpectAttribute(t, screen.Root(), "alt", "Counter")
	vtest.ExpectContains(t, screen.Root(), "count 0")
	vtest.ExpectNotContains(t, screen.Root(), "count 1")
}

func TestRoleAndName(t *testing.T) {
	tests := []struct {
		node *vdom.VNode
		role string
		name string
	}{
		{vdom.Img(vdom.Alt("Logo")), "img", "Logo"},
		{vdom.Button(vdom.Text("Go")), "button", "Go"},
		{vdom.A(vdom.Text("Plain")), "", "Plain"},
		{vdom.A(vdom.Href("/x"), vdom.Text("Link")), "link", "Link"},
		{vdom.A(vdom.Role("menuitem"), vdom.Text("Item")), "menuitem", "Item"},
		{vdom.Nav(vdom.AriaLabel("Main")), "navigation", "Main"},
	}
	for _, tt := range tests {
		if got := vtest.Role(tt.node); got != tt.role {
			t.Errorf("Role(<%s>) = %q, want %q", tt.node.Tag, got, tt.role)
		}
		if got := vtest.AccessibleName(tt.node); got != tt.name {
			t.Errorf("AccessibleName(<%s>) = %q, want %q", tt.node.Tag, got, tt.name)
		}
	}
}
