package vdom

// event creates an EventHandler with the given name and handler.
// The name is prefixed with "on" (e.g., "click" becomes "onclick").
func event(name string, handler any) EventHandler {
	return EventHandler{Event: "on" + name, Handler: handler}
}

// OnClick handles click events.
func OnClick(handler any) EventHandler { return event("click", handler) }

// Invoke calls handler with payload, adapting to the supported handler
// signatures. It returns false when handler has an unsupported type.
func Invoke(handler any, payload any) bool {
	switch h := handler.(type) {
	case func():
		h()
	case func(any):
		h(payload)
	case func(string):
		s, _ := payload.(string)
		h(s)
	default:
		return false
	}
	return true
}
