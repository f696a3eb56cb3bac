package navheader

import "strconv"

// Disclosure records which top-level entry, if any, has its submenu open.
// The zero value is closed.
type Disclosure struct {
	open  bool
	index int
}

// Closed returns the state with no submenu open.
func Closed() Disclosure { return Disclosure{} }

// OpenAt returns the state with entry i open.
func OpenAt(i int) Disclosure { return Disclosure{open: true, index: i} }

// IsOpen reports whether any submenu is open.
func (d Disclosure) IsOpen() bool { return d.open }

// IsOpenAt reports whether entry i is the open one.
func (d Disclosure) IsOpenAt(i int) bool { return d.open && d.index == i }

// Index returns the open entry's index.
func (d Disclosure) Index() (int, bool) { return d.index, d.open }

// Toggle returns the state after clicking the disclosure parent at j.
func (d Disclosure) Toggle(j int) Disclosure {
	if d.IsOpenAt(j) {
		return Closed()
	}
	return OpenAt(j)
}

func (d Disclosure) String() string {
	if !d.open {
		return "closed"
	}
	return "open(" + strconv.Itoa(d.index) + ")"
}
