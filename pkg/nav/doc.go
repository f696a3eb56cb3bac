// Package nav defines the navigation service components talk to.
//
// A Navigator receives fire-and-forget "go to path" requests. Components
// never inspect a result; the navigator owns the visible location and its
// history stack.
//
//	type Navigator interface {
//	    Navigate(path string, opts ...Option)
//	}
//
// History is the in-memory implementation used by tests and by the live
// host, one per mounted session. Clean canonicalizes locations that arrive
// from a browser before they seed a History.
package nav
