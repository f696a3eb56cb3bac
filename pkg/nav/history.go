package nav

import (
	"log/slog"
	"sync"
)

// History is an in-memory Navigator with a back stack.
// It is safe for concurrent use.
type History struct {
	mu       sync.Mutex
	entries  []string
	options  Options
	onChange []func(path string)
	logger   *slog.Logger
}

// NewHistory creates a history positioned at initial.
// An empty or non-relative initial path starts at "/".
func NewHistory(initial string) *History {
	if !IsRelative(initial) {
		initial = "/"
	}
	return &History{
		entries: []string{initial},
		options: Apply(),
		logger:  slog.Default().With("component", "nav"),
	}
}

// SetLogger replaces the history's logger.
func (h *History) SetLogger(logger *slog.Logger) {
	if logger == nil {
		return
	}
	h.mu.Lock()
	h.logger = logger
	h.mu.Unlock()
}

// Navigate implements Navigator. Invalid paths are logged and ignored,
// leaving the location unchanged.
func (h *History) Navigate(path string, opts ...Option) {
	full, options, err := BuildURL(path, opts...)

	h.mu.Lock()
	if err != nil {
		logger := h.logger
		h.mu.Unlock()
		logger.Error("navigation rejected", "path", path, "error", err)
		return
	}
	if options.Replace {
		h.entries[len(h.entries)-1] = full
	} else {
		h.entries = append(h.entries, full)
	}
	h.options = options
	listeners := append([]func(string){}, h.onChange...)
	h.logger.Debug("navigate", "path", full, "replace", options.Replace)
	h.mu.Unlock()

	for _, fn := range listeners {
		fn(full)
	}
}

// Current returns the current location.
func (h *History) Current() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.entries[len(h.entries)-1]
}

// LastOptions returns the options applied by the most recent navigation.
func (h *History) LastOptions() Options {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.options
}

// Entries returns a copy of the history stack, oldest first.
func (h *History) Entries() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.entries...)
}

// Len returns the number of entries on the stack.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// Back pops the current entry. It returns false when already at the
// first entry.
func (h *History) Back() bool {
	h.mu.Lock()
	if len(h.entries) == 1 {
		h.mu.Unlock()
		return false
	}
	h.entries = h.entries[:len(h.entries)-1]
	current := h.entries[len(h.entries)-1]
	listeners := append([]func(string){}, h.onChange...)
	h.mu.Unlock()

	for _, fn := range listeners {
		fn(current)
	}
	return true
}

// OnChange registers fn to be called with the new location after every
// successful navigation or Back.
func (h *History) OnChange(fn func(path string)) {
	if fn == nil {
		return
	}
	h.mu.Lock()
	h.onChange = append(h.onChange, fn)
	h.mu.Unlock()
}
