package gallery

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Manifest lists the builtin background references.
type Manifest interface {
	Fetch(ctx context.Context) ([]string, error)
}

// NewManifest picks a source for ref: an http(s) URL or a file path.
func NewManifest(ref string) Manifest {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return &HTTPManifest{URL: ref, Client: &http.Client{Timeout: 10 * time.Second}}
	}
	return &FileManifest{Path: ref}
}

// ParseManifest decodes a JSON array or YAML list of strings.
func ParseManifest(data []byte) ([]string, error) {
	var list []string
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return list, nil
}

// FileManifest reads a manifest from disk. Relative entries are resolved
// against the manifest's directory.
type FileManifest struct {
	Path string
}

func (m *FileManifest) Fetch(ctx context.Context) ([]string, error) {
	data, err := os.ReadFile(m.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	list, err := ParseManifest(data)
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(m.Path)
	for i, src := range list {
		if isLocal(src) && !filepath.IsAbs(src) {
			list[i] = filepath.Join(dir, src)
		}
	}
	return list, nil
}

type HTTPManifest struct {
	URL    string
	Client *http.Client
}

func (m *HTTPManifest) Fetch(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build manifest request: %w", err)
	}
	client := m.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch manifest: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("manifest fetch: unexpected status %s", resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest body: %w", err)
	}
	return ParseManifest(data)
}

func isLocal(src string) bool {
	for _, prefix := range []string{"http://", "https://", "data:"} {
		if strings.HasPrefix(src, prefix) {
			return false
		}
	}
	return true
}
