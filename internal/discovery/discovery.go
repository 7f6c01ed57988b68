package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// The files a pet directory holds.
const (
	DirName    = ".deskpet"
	ConfigFile = "pet.toml"
	StoreFile  = "store.toml"
	LogFile    = "deskpet.log"
)

// FindPetDir walks up from startDir looking for a .deskpet directory that
// holds a pet.toml.
func FindPetDir(startDir string) (string, bool, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}

	for {
		petDir := filepath.Join(dir, DirName)
		if _, err := os.Stat(filepath.Join(petDir, ConfigFile)); err == nil {
			return petDir, true, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		dir = parent
	}

	return "", false, nil
}

func GlobalPetDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, DirName)
}

// ResolvePetDir picks the pet directory for a run: the directory of an
// explicit config file, else the nearest .deskpet above cwd, else the
// global one under the home directory.
func ResolvePetDir(configPath, cwd string) (string, error) {
	if configPath != "" {
		abs, err := filepath.Abs(configPath)
		if err != nil {
			return "", fmt.Errorf("failed to resolve config path: %w", err)
		}
		return filepath.Dir(abs), nil
	}
	dir, found, err := FindPetDir(cwd)
	if err != nil {
		return "", err
	}
	if found {
		return dir, nil
	}
	return GlobalPetDir(), nil
}

// Paths are the files a pet directory holds.
type Paths struct {
	Dir    string
	Config string
	Store  string
	Log    string
}

func PathsFor(petDir, configPath string) Paths {
	if configPath == "" {
		configPath = filepath.Join(petDir, ConfigFile)
	}
	return Paths{
		Dir:    petDir,
		Config: configPath,
		Store:  filepath.Join(petDir, StoreFile),
		Log:    filepath.Join(petDir, LogFile),
	}
}

// Resolve makes ref absolute against the pet directory unless it is a URL,
// a data URI or already absolute.
func (p Paths) Resolve(ref string) string {
	if ref == "" || filepath.IsAbs(ref) {
		return ref
	}
	for _, prefix := range []string{"http://", "https://", "data:"} {
		if strings.HasPrefix(ref, prefix) {
			return ref
		}
	}
	return filepath.Join(p.Dir, ref)
}
