// Package protocol defines the frames exchanged over a live header
// connection.
//
// The client sends one JSON event frame per user interaction:
//
//	{"hid": "h3", "event": "click"}
//
// The server answers every frame, and greets every new connection, with an
// update carrying the freshly rendered header and the current path:
//
//	{"html": "<header ...>...</header>", "path": "/item1"}
//
// Failures that leave the session usable are reported in the update's error
// field. Fatal errors are followed by a close.
package protocol
