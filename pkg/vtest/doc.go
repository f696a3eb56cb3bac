// Package vtest provides testing helpers for components.
//
// A Screen mounts a component, renders it, and lets a test locate nodes the
// way a user would (by text, by role and accessible name) and click them.
// Every click runs the node's handler and re-renders, so assertions always
// see the current tree.
//
// # Quick Start
//
//	func TestHeader_OpensSubmenu(t *testing.T) {
//	    history := nav.NewHistory("/")
//	    screen := vtest.Mount(t, navheader.New(props, history))
//
//	    screen.Click(screen.GetByText("Parent"))
//	    screen.GetByText("Submenu1")
//	}
//
// # Render Assertions
//
//	vtest.ExpectContains(t, node, "Welcome")
//	vtest.ExpectNotContains(t, node, "Login")
package vtest
