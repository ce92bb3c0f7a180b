package toml

import "fmt"

const currentSchemaVersion = 1

type profileSchema struct {
	Version int            `toml:"version"`
	Name    string         `toml:"name,omitempty"`
	Traits  map[string]int `toml:"traits"`
}

func (s *profileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
	if s.Traits == nil {
		s.Traits = map[string]int{}
	}
}

func (s profileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported profile schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}
