// Package render turns VNode trees into HTML.
//
// Interactive elements (those carrying event handlers) receive a sequential
// hydration id rendered as data-hid. The renderer records each handler under
// "<hid>_<event>" so a live host can route a client event back to the Go
// function that produced it. Rendering is deterministic: the same tree always
// yields the same ids, which is what lets an SSR page and a live session
// agree on handler identities.
package render
