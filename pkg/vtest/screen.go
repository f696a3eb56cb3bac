package vtest

import (
	"strings"
	"testing"

	"github.com/vango-dev/navheader/pkg/vdom"
)

// Screen is a mounted component under test.
type Screen struct {
	t    testing.TB
	comp vdom.Component
	root *vdom.VNode
}

// Mount renders comp and returns a Screen over it.
func Mount(t testing.TB, comp vdom.Component) *Screen {
	t.Helper()
	s := &Screen{t: t, comp: comp}
	s.Rerender()
	return s
}

// Rerender renders the component again.
func (s *Screen) Rerender() {
	s.root = s.comp.Render()
}

// Root returns the current tree.
func (s *Screen) Root() *vdom.VNode {
	return s.root
}

// HTML returns the current tree rendered to HTML.
func (s *Screen) HTML() string {
	return RenderToString(s.root)
}

// QueryAllByText returns every element whose own text equals text.
func (s *Screen) QueryAllByText(text string) []*vdom.VNode {
	return vdom.FindByText(s.root, text)
}

// QueryByText returns the element whose own text equals text, or nil.
// More than one match fails the test.
func (s *Screen) QueryByText(text string) *vdom.VNode {
	s.t.Helper()
	found := s.QueryAllByText(text)
	switch len(found) {
	case 0:
		return nil
	case 1:
		return found[0]
	default:
		s.t.Fatalf("found %d elements with text %q, want at most 1", len(found), text)
		return nil
	}
}

// GetByText returns the single element whose own text equals text.
// Zero or several matches fail the test.
func (s *Screen) GetByText(text string) *vdom.VNode {
	s.t.Helper()
	node := s.QueryByText(text)
	if node == nil {
		s.t.Fatalf("no element with text %q in:\n%s", text, truncate(s.HTML(), 800))
	}
	return node
}

// QueryAllByRole returns the elements with the given ARIA role whose
// accessible name equals name, ignoring case. An empty name matches any.
func (s *Screen) QueryAllByRole(role, name string) []*vdom.VNode {
	return vdom.FindAll(s.root, func(n *vdom.VNode) bool {
		if Role(n) != role {
			return false
		}
		return name == "" || strings.EqualFold(AccessibleName(n), name)
	})
}

// GetByRole returns the single element with the given role and name.
func (s *Screen) GetByRole(role, name string) *vdom.VNode {
	s.t.Helper()
	found := s.QueryAllByRole(role, name)
	if len(found) != 1 {
		s.t.Fatalf("found %d elements with role %q and name %q, want 1", len(found), role, name)
	}
	return found[0]
}

// Click runs node's click handler and re-renders.
func (s *Screen) Click(node *vdom.VNode) {
	s.t.Helper()
	if node == nil {
		s.t.Fatal("Click: nil node")
	}
	h, ok := node.Handler("click")
	if !ok {
		s.t.Fatalf("Click: <%s> %q has no click handler", node.Tag, vdom.OwnText(node))
	}
	if !vdom.Invoke(h, nil) {
		s.t.Fatalf("Click: unsupported handler type %T", h)
	}
	s.Rerender()
}

// ClickText clicks the single element whose own text equals text.
func (s *Screen) ClickText(text string) {
	s.t.Helper()
	s.Click(s.GetByText(text))
}

// Role returns the explicit or implicit ARIA role of an element.
func Role(n *vdom.VNode) string {
	if r := n.AttrString("role"); r != "" {
		return r
	}
	switch n.Tag {
	case "img":
		return "img"
	case "button":
		return "button"
	case "nav":
		return "navigation"
	case "header":
		return "banner"
	case "a":
		if n.AttrString("href") != "" {
			return "link"
		}
	}
	return ""
}

// AccessibleName returns aria-label, then alt for images, then text content.
func AccessibleName(n *vdom.VNode) string {
	if l := n.AttrString("aria-label"); l != "" {
		return l
	}
	if n.Tag == "img" {
		return n.AttrString("alt")
	}
	return vdom.TextContent(n)
}
