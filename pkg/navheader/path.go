package navheader

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DerivePath returns the destination for a top-level entry without a link.
func DerivePath(title string) string {
	return "/" + lower(title)
}

// DeriveSubPath returns the destination for a submenu entry without a link.
func DeriveSubPath(parent, title string) string {
	return "/" + lower(parent) + "/" + lower(title)
}

// lower applies Unicode full lower-casing. A Caser holds state, so one is
// made per call.
func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}
