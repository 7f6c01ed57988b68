// Package gallery keeps the background list: builtin references from a
// manifest followed by the user's uploads. A selection is only a preview
// until it is confirmed.
package gallery

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"

	"go.uber.org/zap"
)

type Kind string

const (
	Builtin  Kind = "builtin"
	Uploaded Kind = "uploaded"
)

type Item struct {
	Kind Kind   `json:"type"`
	Src  string `json:"src"`
}

// Persisted keys.
const (
	KeyActive   = "active_background"
	KeyUploaded = "uploaded_backgrounds"
)

var (
	ErrNoSelection     = errors.New("no background selected")
	ErrIndexOutOfRange = errors.New("background index out of range")
)

// Store is the key-value persistence the gallery needs. Get returns an
// error for a missing key.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Remove(key string) error
}

type Gallery struct {
	store    Store
	manifest Manifest
	log      *zap.Logger

	items    []Item
	selected string
	active   string
	shown    string
}

func New(store Store, manifest Manifest, log *zap.Logger) *Gallery {
	if log == nil {
		log = zap.NewNop()
	}
	return &Gallery{store: store, manifest: manifest, log: log}
}

// Load rebuilds the list from the manifest and the store and restores the
// active background. Failures degrade to an empty builtin or uploaded list.
func (g *Gallery) Load(ctx context.Context) {
	var builtin []string
	if g.manifest != nil {
		list, err := g.manifest.Fetch(ctx)
		if err != nil {
			g.log.Warn("background manifest unavailable", zap.Error(err))
		} else {
			builtin = list
		}
	}

	g.items = g.items[:0]
	for _, src := range builtin {
		g.items = append(g.items, Item{Kind: Builtin, Src: src})
	}
	g.items = append(g.items, g.uploaded()...)

	g.selected = ""
	g.active = ""
	if src, err := g.store.Get(KeyActive); err == nil && src != "" {
		g.active = src
	}
	g.shown = g.active
	g.log.Debug("backgrounds loaded", zap.Int("builtin", len(builtin)), zap.Int("total", len(g.items)))
}

// uploaded reads the persisted upload list; unreadable data is an empty list.
func (g *Gallery) uploaded() []Item {
	raw, err := g.store.Get(KeyUploaded)
	if err != nil || raw == "" {
		return nil
	}
	var items []Item
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		g.log.Warn("ignoring malformed upload list", zap.Error(err))
		return nil
	}
	return items
}

func (g *Gallery) Items() []Item {
	return append([]Item(nil), g.items...)
}

func (g *Gallery) Len() int {
	return len(g.items)
}

// Select stages item i and previews it.
func (g *Gallery) Select(i int) error {
	if i < 0 || i >= len(g.items) {
		return fmt.Errorf("select %d of %d: %w", i, len(g.items), ErrIndexOutOfRange)
	}
	g.selected = g.items[i].Src
	g.shown = g.selected
	return nil
}

// Confirm promotes the staged selection to the active background and
// persists it.
func (g *Gallery) Confirm() error {
	if g.selected == "" {
		return ErrNoSelection
	}
	if err := g.store.Set(KeyActive, g.selected); err != nil {
		return fmt.Errorf("failed to save active background: %w", err)
	}
	g.active = g.selected
	g.shown = g.active
	return nil
}

// Reset clears both the staged and the active background and drops the
// persisted value.
func (g *Gallery) Reset() error {
	g.selected = ""
	g.active = ""
	g.shown = ""
	if err := g.store.Remove(KeyActive); err != nil {
		return fmt.Errorf("failed to clear active background: %w", err)
	}
	return nil
}

// Upload appends an image to the persisted upload list and to the gallery.
func (g *Gallery) Upload(data []byte) (Item, error) {
	if len(data) == 0 {
		return Item{}, fmt.Errorf("empty upload")
	}
	item := Item{Kind: Uploaded, Src: DataURI(data)}

	list := append(g.uploaded(), item)
	raw, err := json.Marshal(list)
	if err != nil {
		return Item{}, fmt.Errorf("failed to encode upload list: %w", err)
	}
	if err := g.store.Set(KeyUploaded, string(raw)); err != nil {
		return Item{}, fmt.Errorf("failed to save upload list: %w", err)
	}
	g.items = append(g.items, item)
	return item, nil
}

func (g *Gallery) UploadFile(path string) (Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Item{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return g.Upload(data)
}

// Selected is the staged background, or "".
func (g *Gallery) Selected() string {
	return g.selected
}

// Active is the confirmed background, or "".
func (g *Gallery) Active() string {
	return g.active
}

// Shown is what is on screen: the last preview or confirmed background.
func (g *Gallery) Shown() string {
	return g.shown
}

// DataURI embeds data as a base64 data URI with a sniffed media type.
func DataURI(data []byte) string {
	return "data:" + http.DetectContentType(data) + ";base64," + base64.StdEncoding.EncodeToString(data)
}
