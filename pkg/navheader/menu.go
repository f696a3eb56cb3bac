package navheader

// MenuEntry is a top-level menu entry: either a Leaf or a Parent.
type MenuEntry interface {
	// Title returns the display label.
	Title() string

	menuEntry()
}

// Leaf is an entry that navigates directly when clicked.
type Leaf struct {
	Label string
	// Link is the destination. Empty derives "/" + lower(Label).
	Link string
}

// Title implements MenuEntry.
func (l Leaf) Title() string { return l.Label }

func (Leaf) menuEntry() {}

// Path returns the destination of the entry.
func (l Leaf) Path() string {
	if l.Link != "" {
		return l.Link
	}
	return DerivePath(l.Label)
}

// Parent is an entry that opens and closes a submenu. It never navigates.
type Parent struct {
	Label   string
	SubMenu SubMenu
}

// Title implements MenuEntry.
func (p Parent) Title() string { return p.Label }

func (Parent) menuEntry() {}

// ItemPath returns the destination of one of the parent's submenu items.
func (p Parent) ItemPath(item SubMenuEntry) string {
	if item.Link != "" {
		return item.Link
	}
	parent := p.SubMenu.Title
	if parent == "" {
		parent = p.Label
	}
	return DeriveSubPath(parent, item.Title)
}

// SubMenu is the dropdown content of a Parent.
type SubMenu struct {
	// Title is the path segment submenu items derive under.
	// Empty falls back to the owning Parent's label.
	Title string
	Items []SubMenuEntry
}

// SubMenuEntry is one dropdown item.
type SubMenuEntry struct {
	Title string
	// Link is the destination. Empty derives from the parent title.
	Link string
}

// Items builds link-less submenu entries from titles.
func Items(titles ...string) []SubMenuEntry {
	items := make([]SubMenuEntry, len(titles))
	for i, t := range titles {
		items[i] = SubMenuEntry{Title: t}
	}
	return items
}
