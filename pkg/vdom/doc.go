// Package vdom provides the virtual DOM used by navheader components.
//
// A VNode tree is an in-memory description of the UI. Components build trees
// with variadic element constructors, the render package turns them into HTML,
// and the live host dispatches client events to the handlers stored in Props.
//
// # Element API
//
//	Nav(Class("menu"),
//	    A(Text("Home"), OnClick(func() { nav.Navigate("/") })),
//	)
//
// # Queries
//
// Walk, FindAll and FindByText inspect a rendered tree without going through
// HTML, which is what the vtest harness uses to locate click targets.
package vdom
