package vdom

import "strings"

// Walk visits every node in the tree in document order.
// Component nodes are rendered on the fly so their output is visited too.
// Returning false from fn stops descent into that node's children.
func Walk(root *VNode, fn func(node *VNode) bool) {
	if root == nil {
		return
	}
	if root.Kind == KindComponent {
		if root.Comp != nil {
			Walk(root.Comp.Render(), fn)
		}
		return
	}
	if !fn(root) {
		return
	}
	for _, child := range root.Children {
		Walk(child, fn)
	}
}

// FindAll returns every element node for which match returns true.
func FindAll(root *VNode, match func(node *VNode) bool) []*VNode {
	var found []*VNode
	Walk(root, func(node *VNode) bool {
		if node.Kind == KindElement && match(node) {
			found = append(found, node)
		}
		return true
	})
	return found
}

// Find returns the first element node for which match returns true.
func Find(root *VNode, match func(node *VNode) bool) *VNode {
	var found *VNode
	Walk(root, func(node *VNode) bool {
		if found != nil {
			return false
		}
		if node.Kind == KindElement && match(node) {
			found = node
			return false
		}
		return true
	})
	return found
}

// FindByText returns the elements whose own text equals text.
// Own text is the concatenation of the element's direct text children with
// whitespace collapsed, so a label next to an icon still matches.
func FindByText(root *VNode, text string) []*VNode {
	want := normalizeSpace(text)
	return FindAll(root, func(node *VNode) bool {
		return OwnText(node) == want
	})
}

// FindByTag returns the elements with the given tag name.
func FindByTag(root *VNode, tag string) []*VNode {
	return FindAll(root, func(node *VNode) bool {
		return node.Tag == tag
	})
}

// OwnText returns the normalized text of an element's direct text children.
func OwnText(node *VNode) string {
	if node == nil {
		return ""
	}
	var b strings.Builder
	for _, child := range node.Children {
		if child != nil && child.Kind == KindText {
			b.WriteString(child.Text)
		}
	}
	return normalizeSpace(b.String())
}

// TextContent returns the normalized text of the whole subtree.
func TextContent(node *VNode) string {
	var b strings.Builder
	Walk(node, func(n *VNode) bool {
		if n.Kind == KindText {
			b.WriteString(n.Text)
			b.WriteByte(' ')
		}
		return true
	})
	return normalizeSpace(b.String())
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
