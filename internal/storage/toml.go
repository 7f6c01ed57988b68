package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/sethgrid/deskpet/internal/art"
	"github.com/sethgrid/deskpet/internal/discovery"
	"github.com/sethgrid/deskpet/internal/pet"
)

var ErrNotFound = errors.New("key not found")

// Store is a small persisted key-value map kept in one TOML file. Every
// write rewrites the file.
type Store struct {
	mu   sync.Mutex
	path string
	data map[string]string
}

// OpenStore reads the store at path. A missing file is an empty store.
func OpenStore(path string) (*Store, error) {
	s := &Store{path: path, data: make(map[string]string)}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read store file: %w", err)
	}
	if err := toml.Unmarshal(raw, &s.data); err != nil {
		return nil, fmt.Errorf("failed to parse store file: %w", err)
	}
	return s, nil
}

func (s *Store) Get(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.data[key]
	if !ok {
		return "", fmt.Errorf("%s: %w", key, ErrNotFound)
	}
	return v, nil
}

func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, had := s.data[key]
	s.data[key] = value
	if err := s.save(); err != nil {
		if had {
			s.data[key] = prev
		} else {
			delete(s.data, key)
		}
		return err
	}
	return nil
}

// Remove deletes key. Removing a missing key is not an error.
func (s *Store) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, had := s.data[key]
	if !had {
		return nil
	}
	delete(s.data, key)
	if err := s.save(); err != nil {
		s.data[key] = prev
		return err
	}
	return nil
}

// Keys returns the stored keys in order.
func (s *Store) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (s *Store) save() error {
	data, err := toml.Marshal(s.data)
	if err != nil {
		return fmt.Errorf("failed to marshal store: %w", err)
	}
	return writeFileAtomic(s.path, data)
}

// writeFileAtomic writes through a temp file in the same directory so a
// crash never leaves a half-written file behind.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", filepath.Base(path), err)
	}
	return nil
}

// LoadConfig reads pet.toml. A missing file yields the defaults.
func LoadConfig(configPath string) (pet.PetConfig, error) {
	cfg := pet.DefaultConfig()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg.Normalize()
	return cfg, nil
}

func SaveConfig(cfg pet.PetConfig, configPath string) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return writeFileAtomic(configPath, data)
}

// InitPet writes a default pet.toml under baseDir/.deskpet and returns its
// path. An existing config is left alone.
func InitPet(name string, baseDir string) (string, error) {
	petDir := filepath.Join(baseDir, discovery.DirName)
	if err := os.MkdirAll(petDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create pet directory: %w", err)
	}

	configPath := filepath.Join(petDir, discovery.ConfigFile)
	if _, err := os.Stat(configPath); err == nil {
		return configPath, fmt.Errorf("a pet already lives in %s", petDir)
	}

	cfg := pet.DefaultConfig()
	if name != "" {
		cfg.Name = name
	}
	cfg.Poses = art.DefaultPoses()

	if err := SaveConfig(cfg, configPath); err != nil {
		return "", err
	}
	return configPath, nil
}
