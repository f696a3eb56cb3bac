// Package config loads the navheader project file.
//
// The file is navheader.json, navheader.yaml or navheader.yml at the project
// root. Submenu items may be plain titles or objects with a link:
//
//	{
//	  "logo": "/fb.png",
//	  "menuItems": [
//	    {"title": "Item1", "link": "/item1"},
//	    {"title": "Parent", "subMenu": {
//	      "title": "Parent",
//	      "items": ["Submenu1", {"title": "Submenu2", "link": "/parent/two"}]
//	    }},
//	    {"title": "Item3"}
//	  ],
//	  "server": {"host": "localhost", "port": 3000},
//	  "assets": {"region": "eu-west-1", "urlExpiry": "1h"},
//	  "log": {"level": "debug", "format": "json"}
//	}
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	h := navheader.New(navheader.Props{Logo: cfg.Logo, MenuItems: cfg.Menu()}, history)
package config
