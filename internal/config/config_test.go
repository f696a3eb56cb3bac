package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vango-dev/navheader/internal/errors"
	"github.com/vango-dev/navheader/pkg/navheader"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.Server.Port != DefaultPort {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, DefaultPort)
	}
	if cfg.Server.Host != DefaultHost {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, DefaultHost)
	}
	if cfg.Server.MetricsPath != DefaultMetricsPath || cfg.Server.LivePath != DefaultLivePath {
		t.Errorf("Server paths = %q, %q", cfg.Server.MetricsPath, cfg.Server.LivePath)
	}
	if cfg.URLExpiry() != time.Hour {
		t.Errorf("URLExpiry() = %v, want 1h", cfg.URLExpiry())
	}
	if cfg.LogLevel() != slog.LevelInfo {
		t.Errorf("LogLevel() = %v, want info", cfg.LogLevel())
	}
}

const jsonConfig = `{
  "logo": "/fb.png",
  "menuItems": [
    {"title": "Item1", "link": "/item1"},
    {"title": "Parent", "subMenu": {
      "title": "Parent",
      "items": ["Submenu1", {"title": "Submenu2", "link": "/parent/two"}]
    }},
    {"title": "Item3"}
  ],
  "server": {"host": "0.0.0.0", "port": 8080},
  "assets": {"region": "eu-west-1", "urlExpiry": "15m"},
  "log": {"level": "debug", "format": "json"}
}
`

const yamlConfig = `logo: /fb.png
menuItems:
  - title: Item1
    link: /item1
  - title: Parent
    subMenu:
      title: Parent
      items:
        - Submenu1
        - title: Submenu2
          link: /parent/two
  - title: Item3
server:
  host: 0.0.0.0
  port: 8080
assets:
  region: eu-west-1
  urlExpiry: 15m
log:
  level: debug
  format: json
`

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"json", "navheader.json", jsonConfig},
		{"yaml", "navheader.yaml", yamlConfig},
		{"yml", "navheader.yml", yamlConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := writeFile(t, dir, tt.file, tt.content)

			cfg, err := Load(dir)
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}
			if err := cfg.Validate(); err != nil {
				t.Fatalf("Validate() error: %v", err)
			}

			if cfg.Path() != path || cfg.Dir() != dir {
				t.Errorf("Path() = %q, Dir() = %q", cfg.Path(), cfg.Dir())
			}
			if cfg.Logo != "/fb.png" {
				t.Errorf("Logo = %q", cfg.Logo)
			}
			if len(cfg.MenuItems) != 3 {
				t.Fatalf("MenuItems len = %d, want 3", len(cfg.MenuItems))
			}
			items := cfg.MenuItems[1].SubMenu.Items
			if len(items) != 2 {
				t.Fatalf("submenu items = %+v", items)
			}
			if items[0] != (SubMenuItem{Title: "Submenu1"}) {
				t.Errorf("items[0] = %+v", items[0])
			}
			if items[1] != (SubMenuItem{Title: "Submenu2", Link: "/parent/two"}) {
				t.Errorf("items[1] = %+v", items[1])
			}
			if cfg.Address() != "0.0.0.0:8080" {
				t.Errorf("Address() = %q", cfg.Address())
			}
			if cfg.Server.LivePath != DefaultLivePath {
				t.Errorf("LivePath = %q, want default", cfg.Server.LivePath)
			}
			if cfg.URLExpiry() != 15*time.Minute {
				t.Errorf("URLExpiry() = %v", cfg.URLExpiry())
			}
			if cfg.LogLevel() != slog.LevelDebug {
				t.Errorf("LogLevel() = %v", cfg.LogLevel())
			}
			if cfg.Assets.Region != "eu-west-1" {
				t.Errorf("Region = %q", cfg.Assets.Region)
			}
		})
	}
}

func TestLoadPrefersJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "navheader.json", `{"logo": "/json.png"}`)
	writeFile(t, dir, "navheader.yaml", `logo: /yaml.png`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Logo != "/json.png" {
		t.Errorf("Logo = %q, want /json.png", cfg.Logo)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	badJSON := writeFile(t, dir, "bad.json", `{"logo": `)
	badYAML := writeFile(t, dir, "bad.yaml", "logo: [unclosed")
	badItem := writeFile(t, dir, "item.json", `{"menuItems": [{"title": "P", "subMenu": {"items": [42]}}]}`)
	toml := writeFile(t, dir, "navheader.toml", `logo = "/x"`)

	tests := []struct {
		name string
		load func() error
		code string
	}{
		{"missing dir config", func() error { _, err := Load(t.TempDir()); return err }, "E100"},
		{"missing file", func() error { _, err := LoadFile(filepath.Join(dir, "none.json")); return err }, "E100"},
		{"invalid json", func() error { _, err := LoadFile(badJSON); return err }, "E101"},
		{"invalid yaml", func() error { _, err := LoadFile(badYAML); return err }, "E101"},
		{"invalid item", func() error { _, err := LoadFile(badItem); return err }, "E101"},
		{"unsupported format", func() error { _, err := LoadFile(toml); return err }, "E103"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.load(); !errors.HasCode(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		detail string
	}{
		{"valid", func(*Config) {}, ""},
		{"missing logo", func(c *Config) { c.Logo = " " }, "logo is required"},
		{"missing title", func(c *Config) { c.MenuItems[0].Title = "" }, "menuItems[0]: title"},
		{"absolute link", func(c *Config) { c.MenuItems[0].Link = "https://evil.example" }, "menuItems[0].link"},
		{"protocol relative link", func(c *Config) { c.MenuItems[2].Link = "//evil.example" }, "menuItems[2].link"},
		{"missing item title", func(c *Config) { c.MenuItems[1].SubMenu.Items[0].Title = "" }, "items[0]: title"},
		{"bad item link", func(c *Config) { c.MenuItems[1].SubMenu.Items[1].Link = "javascript:alert(1)" }, "items[1].link"},
		{"port", func(c *Config) { c.Server.Port = 70000 }, "Port must be"},
		{"port zero", func(c *Config) { c.Server.Port = 0 }, "Port must be"},
		{"live path", func(c *Config) { c.Server.LivePath = "live" }, "must start with /"},
		{"same paths", func(c *Config) { c.Server.LivePath = c.Server.MetricsPath }, "must differ"},
		{"expiry", func(c *Config) { c.Assets.URLExpiry = "soon" }, "urlExpiry"},
		{"negative expiry", func(c *Config) { c.Assets.URLExpiry = "-1m" }, "urlExpiry"},
		{"log level", func(c *Config) { c.Log.Level = "trace" }, "log.level"},
		{"log format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Example()
			cfg.MenuItems[1].SubMenu.Items[1].Link = "/parent/submenu2"
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.detail == "" {
				if err != nil {
					t.Fatalf("Validate() error: %v", err)
				}
				return
			}
			if !errors.HasCode(err, "E102") {
				t.Fatalf("Validate() error = %v, want E102", err)
			}
			if !strings.Contains(err.Error(), tt.detail) {
				t.Errorf("Validate() error = %q, want it to mention %q", err, tt.detail)
			}
		})
	}
}

func TestMenu(t *testing.T) {
	cfg := &Config{MenuItems: []MenuItem{
		{Title: "Home", Link: "/"},
		{Title: "Blog"},
		{Title: "Shop", Link: "/shop", SubMenu: &SubMenu{
			Items: []SubMenuItem{{Title: "Hats"}, {Title: "Sale", Link: "/deals"}},
		}},
	}}

	menu := cfg.Menu()
	if len(menu) != 3 {
		t.Fatalf("Menu() len = %d, want 3", len(menu))
	}
	if leaf, ok := menu[0].(navheader.Leaf); !ok || leaf.Path() != "/" {
		t.Errorf("menu[0] = %#v", menu[0])
	}
	if leaf, ok := menu[1].(navheader.Leaf); !ok || leaf.Path() != "/blog" {
		t.Errorf("menu[1] = %#v", menu[1])
	}

	parent, ok := menu[2].(navheader.Parent)
	if !ok {
		t.Fatalf("menu[2] = %T, want Parent", menu[2])
	}
	if got := parent.ItemPath(parent.SubMenu.Items[0]); got != "/shop/hats" {
		t.Errorf("Hats path = %q, want /shop/hats", got)
	}
	if got := parent.ItemPath(parent.SubMenu.Items[1]); got != "/deals" {
		t.Errorf("Sale path = %q, want /deals", got)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	for _, name := range []string{"navheader.json", "navheader.yaml"} {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, name)

			cfg := Example()
			cfg.MenuItems[1].SubMenu.Items = append(cfg.MenuItems[1].SubMenu.Items,
				SubMenuItem{Title: "Docs", Link: "/docs"})
			if err := cfg.SaveTo(path); err != nil {
				t.Fatalf("SaveTo() error: %v", err)
			}

			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(string(data), "Submenu1") {
				t.Errorf("saved file missing Submenu1:\n%s", data)
			}

			loaded, err := LoadFile(path)
			if err != nil {
				t.Fatalf("LoadFile() error: %v", err)
			}
			items := loaded.MenuItems[1].SubMenu.Items
			if len(items) != 3 || items[0].Title != "Submenu1" || items[2].Link != "/docs" {
				t.Errorf("round trip items = %+v", items)
			}
			if loaded.Logo != cfg.Logo || loaded.Address() != cfg.Address() {
				t.Errorf("round trip = %+v", loaded)
			}
		})
	}
}

func TestSaveUnsupported(t *testing.T) {
	err := New().SaveTo(filepath.Join(t.TempDir(), "navheader.ini"))
	if !errors.HasCode(err, "E103") {
		t.Errorf("SaveTo() error = %v, want E103", err)
	}
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "navheader.yml", "logo: /x.png\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	got, err := FindProjectRoot(nested)
	if err != nil {
		t.Fatalf("FindProjectRoot() error: %v", err)
	}
	want, _ := filepath.Abs(root)
	if got != want {
		t.Errorf("FindProjectRoot() = %q, want %q", got, want)
	}
	if !Exists(root) || Exists(nested) {
		t.Error("Exists() mismatch")
	}
}

func TestManifestPath(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "navheader.json", `{"logo": "/x.png", "assets": {"manifest": "dist/manifest.json"}}`)
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := cfg.ManifestPath(); got != filepath.Join(dir, "dist", "manifest.json") {
		t.Errorf("ManifestPath() = %q", got)
	}
	if New().ManifestPath() != "" {
		t.Error("ManifestPath() without manifest should be empty")
	}
}
