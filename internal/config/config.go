package config

import (
	"encoding/json"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/navheader/internal/errors"
	"github.com/vango-dev/navheader/pkg/nav"
	"github.com/vango-dev/navheader/pkg/navheader"
)

const (
	// DefaultPort is the default server port.
	DefaultPort = 3000

	// DefaultHost is the default server host.
	DefaultHost = "localhost"

	// DefaultMetricsPath is where Prometheus metrics are served.
	DefaultMetricsPath = "/metrics"

	// DefaultLivePath is the WebSocket endpoint for live sessions.
	DefaultLivePath = "/live"

	// DefaultURLExpiry is the lifetime of presigned logo URLs.
	DefaultURLExpiry = "1h"
)

// FileNames are the config file names Load looks for, in order.
var FileNames = []string{"navheader.json", "navheader.yaml", "navheader.yml"}

// Config is the project file.
type Config struct {
	// Logo is a site path, an http(s) URL or s3://bucket/key.
	Logo string `json:"logo" yaml:"logo"`

	// MenuItems are the top-level menu entries in display order.
	MenuItems []MenuItem `json:"menuItems" yaml:"menuItems"`

	Server ServerConfig `json:"server" yaml:"server"`
	Assets AssetsConfig `json:"assets" yaml:"assets"`
	Log    LogConfig    `json:"log" yaml:"log"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// MenuItem is a top-level entry. An item with a subMenu is a disclosure
// parent; its link, if any, is ignored.
type MenuItem struct {
	Title   string   `json:"title" yaml:"title"`
	Link    string   `json:"link,omitempty" yaml:"link,omitempty"`
	SubMenu *SubMenu `json:"subMenu,omitempty" yaml:"subMenu,omitempty"`
}

// SubMenu is the dropdown of a MenuItem.
type SubMenu struct {
	// Title is the path segment items derive under. Empty uses the item title.
	Title string        `json:"title,omitempty" yaml:"title,omitempty"`
	Items []SubMenuItem `json:"items" yaml:"items"`
}

// SubMenuItem is a dropdown entry. It is written either as a bare title
// string or as an object with title and link.
type SubMenuItem struct {
	Title string `json:"title" yaml:"title"`
	Link  string `json:"link,omitempty" yaml:"link,omitempty"`
}

// ServerConfig configures the live server.
type ServerConfig struct {
	Host        string `json:"host,omitempty" yaml:"host,omitempty"`
	Port        int    `json:"port,omitempty" yaml:"port,omitempty"`
	MetricsPath string `json:"metricsPath,omitempty" yaml:"metricsPath,omitempty"`
	LivePath    string `json:"livePath,omitempty" yaml:"livePath,omitempty"`
}

// AssetsConfig configures logo resolution.
type AssetsConfig struct {
	// Region enables s3:// logos when set.
	Region string `json:"region,omitempty" yaml:"region,omitempty"`

	// URLExpiry is the lifetime of presigned URLs (e.g. "15m").
	URLExpiry string `json:"urlExpiry,omitempty" yaml:"urlExpiry,omitempty"`

	// Manifest is an optional fingerprint manifest, relative to the config file.
	Manifest string `json:"manifest,omitempty" yaml:"manifest,omitempty"`

	// Prefix is the URL prefix manifest names are served under.
	Prefix string `json:"prefix,omitempty" yaml:"prefix,omitempty"`
}

// LogConfig configures the process logger.
type LogConfig struct {
	// Level is debug, info, warn or error.
	Level string `json:"level,omitempty" yaml:"level,omitempty"`

	// Format is text or json.
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads configuration from the first of FileNames found in dir.
func Load(dir string) (*Config, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	return nil, errors.New("E100").
		WithDetail("No navheader.json or navheader.yaml found in " + dir).
		WithSuggestion("Run 'navheader init' to create one")
}

// LoadFile reads configuration from path. The format follows the extension.
func LoadFile(path string) (*Config, error) {
	unmarshal, err := codecFor(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E100").WithDetail(path + " does not exist")
		}
		return nil, errors.New("E101").Wrap(err)
	}

	cfg := &Config{}
	if err := unmarshal(data, cfg); err != nil {
		return nil, errors.New("E101").
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
			WithSuggestion("Check the file's syntax")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

func codecFor(path string) (func([]byte, any) error, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return json.Unmarshal, nil
	case ".yaml", ".yml":
		return yaml.Unmarshal, nil
	default:
		return nil, errors.New("E103").WithDetailf("got %q", filepath.Base(path))
	}
}

// SaveTo writes the configuration to path in the format its extension names.
func (c *Config) SaveTo(path string) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err = json.MarshalIndent(c, "", "  ")
		data = append(data, '\n')
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		return errors.New("E103").WithDetailf("got %q", filepath.Base(path))
	}
	if err != nil {
		return errors.New("E101").Wrap(err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E101").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.MetricsPath == "" {
		c.Server.MetricsPath = DefaultMetricsPath
	}
	if c.Server.LivePath == "" {
		c.Server.LivePath = DefaultLivePath
	}

	if c.Assets.URLExpiry == "" {
		c.Assets.URLExpiry = DefaultURLExpiry
	}
	if c.Assets.Prefix == "" {
		c.Assets.Prefix = "/"
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Logo) == "" {
		return errors.New("E102").
			WithDetail("logo is required").
			WithSuggestion(`Set "logo" to an image path such as "/logo.png"`)
	}

	for i, item := range c.MenuItems {
		if item.Title == "" {
			return errors.New("E102").WithDetailf("menuItems[%d]: title is required", i)
		}
		if item.SubMenu == nil {
			if err := checkLink(item.Link, "menuItems[%d].link", i); err != nil {
				return err
			}
			continue
		}
		for j, sub := range item.SubMenu.Items {
			if sub.Title == "" {
				return errors.New("E102").WithDetailf("menuItems[%d].subMenu.items[%d]: title is required", i, j)
			}
			if err := checkLink(sub.Link, "menuItems[%d].subMenu.items[%d].link", i, j); err != nil {
				return err
			}
		}
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return errors.New("E102").
			WithDetail("Port must be between 1 and 65535")
	}
	for _, p := range []string{c.Server.MetricsPath, c.Server.LivePath} {
		if !strings.HasPrefix(p, "/") {
			return errors.New("E102").WithDetailf("server path %q must start with /", p)
		}
	}
	if c.Server.MetricsPath == c.Server.LivePath {
		return errors.New("E102").WithDetail("metricsPath and livePath must differ")
	}

	if d, err := time.ParseDuration(c.Assets.URLExpiry); err != nil || d <= 0 {
		return errors.New("E102").WithDetailf("assets.urlExpiry %q is not a positive duration", c.Assets.URLExpiry)
	}

	if _, ok := levels[strings.ToLower(c.Log.Level)]; !ok {
		return errors.New("E102").WithDetailf("log.level %q must be debug, info, warn or error", c.Log.Level)
	}
	if f := strings.ToLower(c.Log.Format); f != "text" && f != "json" {
		return errors.New("E102").WithDetailf("log.format %q must be text or json", c.Log.Format)
	}
	return nil
}

func checkLink(link, field string, idx ...any) error {
	if link == "" || nav.IsRelative(link) {
		return nil
	}
	return errors.New("E102").
		WithDetailf(field+": %q is not a site-relative path", append(idx, link)...).
		WithSuggestion("Links must start with a single '/'")
}

var levels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// LogLevel returns the configured slog level, defaulting to info.
func (c *Config) LogLevel() slog.Level {
	if l, ok := levels[strings.ToLower(c.Log.Level)]; ok {
		return l
	}
	return slog.LevelInfo
}

// Address returns the listen address of the server.
func (c *Config) Address() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// URLExpiry returns the presigned URL lifetime.
func (c *Config) URLExpiry() time.Duration {
	d, err := time.ParseDuration(c.Assets.URLExpiry)
	if err != nil || d <= 0 {
		d, _ = time.ParseDuration(DefaultURLExpiry)
	}
	return d
}

// ManifestPath returns the manifest path resolved against the config file,
// or "" when none is configured.
func (c *Config) ManifestPath() string {
	if c.Assets.Manifest == "" || filepath.IsAbs(c.Assets.Manifest) {
		return c.Assets.Manifest
	}
	return filepath.Join(c.Dir(), c.Assets.Manifest)
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	for _, name := range FileNames {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing a config file, or an error if not found.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("E100").
				WithDetail("No navheader config found in " + startDir + " or any parent directory").
				WithSuggestion("Run 'navheader init' to create one")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads configuration from the current working directory
// or the nearest parent that has a config file.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindProjectRoot(wd)
	if err != nil {
		return nil, err
	}

	return Load(root)
}

// Example returns a config describing a small menu, used by 'navheader init'.
func Example() *Config {
	cfg := &Config{
		Logo: "/fb.png",
		MenuItems: []MenuItem{
			{Title: "Item1", Link: "/item1"},
			{Title: "Parent", SubMenu: &SubMenu{
				Title: "Parent",
				Items: []SubMenuItem{{Title: "Submenu1"}, {Title: "Submenu2"}},
			}},
			{Title: "Item3"},
		},
	}
	cfg.applyDefaults()
	return cfg
}

// Menu converts the configured items into header entries.
func (c *Config) Menu() []navheader.MenuEntry {
	entries := make([]navheader.MenuEntry, 0, len(c.MenuItems))
	for _, item := range c.MenuItems {
		if item.SubMenu == nil {
			entries = append(entries, navheader.Leaf{Label: item.Title, Link: item.Link})
			continue
		}
		if item.Link != "" {
			slog.Debug("ignoring link on item with a submenu", "component", "config", "title", item.Title, "link", item.Link)
		}
		sub := navheader.SubMenu{
			Title: item.SubMenu.Title,
			Items: make([]navheader.SubMenuEntry, len(item.SubMenu.Items)),
		}
		for i, s := range item.SubMenu.Items {
			sub.Items[i] = navheader.SubMenuEntry{Title: s.Title, Link: s.Link}
		}
		entries = append(entries, navheader.Parent{Label: item.Title, SubMenu: sub})
	}
	return entries
}
