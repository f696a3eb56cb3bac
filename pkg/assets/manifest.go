// Package assets resolves logo sources into URLs a browser can load.
//
// Site paths are looked up in an optional fingerprint manifest:
//
//	{
//	  "fb.png": "fb.a1b2c3d4.png"
//	}
//
// so "/fb.png" renders as "/fb.a1b2c3d4.png". http(s) URLs and data URIs
// pass through unchanged, and s3://bucket/key sources are turned into
// presigned GET URLs:
//
//	r := assets.NewResolver(
//	    assets.WithManifest(manifest),
//	    assets.WithPresigner(assets.NewS3Presigner("eu-west-1"), time.Hour),
//	)
//	src, err := r.Resolve(ctx, cfg.Logo)
package assets

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/vango-dev/navheader/internal/errors"
)

// Manifest maps source asset names to fingerprinted names.
// It is safe for concurrent use.
type Manifest struct {
	entries map[string]string
	mu      sync.RWMutex
}

// NewManifest creates an empty manifest.
func NewManifest() *Manifest {
	return &Manifest{
		entries: make(map[string]string),
	}
}

// LoadManifest reads a JSON manifest of the form {"source": "fingerprinted"}.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("E302").WithDetailf("reading %s", path).Wrap(err)
	}

	var entries map[string]string
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, errors.New("E302").WithDetailf("parsing %s", path).Wrap(err)
	}
	if entries == nil {
		entries = make(map[string]string)
	}

	return &Manifest{entries: entries}, nil
}

// Lookup returns the fingerprinted name for source.
func (m *Manifest) Lookup(source string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	resolved, ok := m.entries[source]
	return resolved, ok
}

// Set adds or updates an entry in the manifest.
func (m *Manifest) Set(source, resolved string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[source] = resolved
}

// Len returns the number of entries in the manifest.
func (m *Manifest) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.entries)
}
