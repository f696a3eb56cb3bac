// Package navheader implements the navigation header component: a logo, a
// horizontal menu whose entries either navigate directly or disclose a
// submenu, and a call-to-action button.
//
//	h := navheader.New(navheader.Props{
//	    Logo: "/fb.png",
//	    MenuItems: []navheader.MenuEntry{
//	        navheader.Leaf{Label: "Item1"},
//	        navheader.Parent{Label: "Parent", SubMenu: navheader.SubMenu{
//	            Title: "Parent",
//	            Items: navheader.Items("Submenu1", "Submenu2"),
//	        }},
//	    },
//	    OnClick: func() { log.Println("clicked") },
//	}, history)
//
// Entries without an explicit link navigate to a path derived from their
// title: "/" + lower(title) for top-level leaves and
// "/" + lower(parent) + "/" + lower(title) for submenu entries.
//
// At most one submenu is open at a time. Clicking an open parent closes it,
// clicking any other parent moves the disclosure there. Submenu clicks
// navigate and leave the disclosure untouched.
package navheader
