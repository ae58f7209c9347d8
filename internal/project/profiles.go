package project

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/cutplan/rebarcut/internal/model"
)

// DefaultProfilesDir returns the default directory for storing custom
// engine profiles.
func DefaultProfilesDir() (string, error) {
	return filepath.Join(DefaultConfigDir(), "profiles"), nil
}

// DefaultProfilesPath returns the default file path for custom profiles.
func DefaultProfilesPath() (string, error) {
	dir, err := DefaultProfilesDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "profiles.json"), nil
}

// SaveCustomProfiles saves custom engine profiles to a JSON file.
func SaveCustomProfiles(path string, profiles []model.NamedProfile) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(profiles, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadCustomProfiles loads custom engine profiles from a JSON file.
// Returns an empty slice if the file does not exist.
func LoadCustomProfiles(path string) ([]model.NamedProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.NamedProfile{}, nil
		}
		return nil, err
	}

	var profiles []model.NamedProfile
	if err := json.Unmarshal(data, &profiles); err != nil {
		return nil, err
	}

	// Ensure loaded profiles are not marked as built-in
	for i := range profiles {
		profiles[i].IsBuiltIn = false
	}
	return profiles, nil
}

// SaveCustomProfilesToDefault saves custom profiles to the default path.
func SaveCustomProfilesToDefault(profiles []model.NamedProfile) error {
	path, err := DefaultProfilesPath()
	if err != nil {
		return err
	}
	return SaveCustomProfiles(path, profiles)
}

// LoadCustomProfilesFromDefault loads custom profiles from the default path.
func LoadCustomProfilesFromDefault() ([]model.NamedProfile, error) {
	path, err := DefaultProfilesPath()
	if err != nil {
		return nil, err
	}
	return LoadCustomProfiles(path)
}

// ExportProfile exports a single profile to a JSON file (for sharing).
func ExportProfile(path string, profile model.NamedProfile) error {
	profile.IsBuiltIn = false
	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ImportProfile imports a single profile from a JSON file.
func ImportProfile(path string) (model.NamedProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.NamedProfile{}, err
	}

	var profile model.NamedProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return model.NamedProfile{}, err
	}

	profile.IsBuiltIn = false
	if profile.Name == "" {
		return model.NamedProfile{}, errors.New("imported profile has no name")
	}
	if err := profile.Config.Validate(); err != nil {
		return model.NamedProfile{}, err
	}
	return profile, nil
}
