package detector

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"codeanomaly/types"
)

// SaveProfile writes a trained baseline profile to a TOML file so a later
// process can skip the training pass. The encoding preserves the mean
// embedding's dimensionality and every mean-metric float.
func SaveProfile(profile *types.BaselineProfile, path string) error {
	if profile == nil || len(profile.MeanEmbedding.Vector) == 0 {
		return fmt.Errorf("refusing to save profile without a mean embedding")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("error creating directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating profile file: %w", err)
	}
	defer file.Close()

	config := struct {
		Profile types.BaselineProfile `toml:"profile"`
	}{
		Profile: *profile,
	}

	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(config); err != nil {
		return fmt.Errorf("error encoding profile TOML: %w", err)
	}

	return nil
}

// LoadProfile reads a baseline profile from a TOML file
func LoadProfile(path string) (*types.BaselineProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading profile file: %w", err)
	}

	var config struct {
		Profile types.BaselineProfile `toml:"profile"`
	}

	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("error parsing profile file: %w", err)
	}

	if len(config.Profile.MeanEmbedding.Vector) == 0 {
		return nil, fmt.Errorf("profile file %s has no mean embedding", path)
	}

	return &config.Profile, nil
}
