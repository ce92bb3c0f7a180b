package cmd

import (
	"fmt"
	"strings"

	profiletoml "github.com/bnema/trajectory-cli/internal/adapters/profile/toml"
	"github.com/bnema/trajectory-cli/internal/domain"
)

// collectTraitUpdate merges a profile file with name=value assignments.
// Assignments win over the profile and later assignments win over earlier ones.
func collectTraitUpdate(profilePath string, assignments []string) (domain.TraitUpdate, string, error) {
	update := domain.TraitUpdate{}
	name := ""

	if path := strings.TrimSpace(profilePath); path != "" {
		profile, err := profiletoml.Load(path)
		if err != nil {
			return nil, "", fmt.Errorf("load profile: %w", err)
		}
		for trait, value := range profile.Traits {
			update[trait] = value
		}
		name = profile.Name
	}

	parsed, err := parseAssignments(assignments)
	if err != nil {
		return nil, "", err
	}
	for trait, value := range parsed {
		update[trait] = value
	}

	return update, name, nil
}

func parseAssignments(assignments []string) (domain.TraitUpdate, error) {
	update := domain.TraitUpdate{}
	for _, raw := range assignments {
		trait, value, err := domain.ParseTraitAssignment(raw)
		if err != nil {
			return nil, err
		}
		update[trait] = value
	}
	return update, nil
}
