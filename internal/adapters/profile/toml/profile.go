package toml

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bnema/trajectory-cli/internal/domain"
	toml "github.com/pelletier/go-toml/v2"
)

const (
	profileFileMode = 0o600
	profileDirMode  = 0o700
	tempFilePattern = ".profile-*.toml.tmp"
)

var ErrEmptyProfile = errors.New("profile defines no traits")

// Profile is a named set of trait values read from or written to disk. It
// seeds a session's traits and carries no session state.
type Profile struct {
	Name   string
	Traits domain.TraitUpdate
}

// Load reads a profile file. Trait names are checked against the catalogue
// and values against their bounds.
func Load(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("read profile file: %w", err)
	}

	var file profileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return Profile{}, fmt.Errorf("decode profile file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return Profile{}, err
	}
	file.applyDefaults()

	if len(file.Traits) == 0 {
		return Profile{}, fmt.Errorf("%s: %w", path, ErrEmptyProfile)
	}

	update := make(domain.TraitUpdate, len(file.Traits))
	for key, value := range file.Traits {
		update[domain.TraitName(strings.TrimSpace(key))] = value
	}

	if _, err := domain.DefaultTraitVector().Apply(update); err != nil {
		return Profile{}, fmt.Errorf("validate profile %s: %w", path, err)
	}

	return Profile{Name: file.Name, Traits: update}, nil
}

// Save writes every trait of v to path, replacing any existing file.
func Save(path, name string, v domain.TraitVector) error {
	file := profileSchema{Name: strings.TrimSpace(name), Traits: map[string]int{}}
	for traitName, value := range v.AsUpdate() {
		file.Traits[string(traitName)] = value
	}
	file.applyDefaults()

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode profile file: %w", err)
	}

	return writeAtomic(path, data)
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, profileDirMode); err != nil {
		return fmt.Errorf("create profile directory: %w", err)
	}

	tempFile, err := os.CreateTemp(dir, tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp profile file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp profile file: %w", err)
	}

	if err := tempFile.Chmod(profileFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp profile file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp profile file: %w", err)
	}

	if err := os.Rename(tempName, path); err != nil {
		return fmt.Errorf("replace profile file: %w", err)
	}

	cleanup = false
	return nil
}
