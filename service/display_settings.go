package service

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DisplaySettings configures the showroom TV rotation: how long each slide
// stays up and which inventory slices are in the rotation.
type DisplaySettings struct {
	RotationSeconds int      `yaml:"rotationSeconds"`
	ShowNewOnly     bool     `yaml:"showNewOnly"`
	Manufacturers   []string `yaml:"manufacturers"`
	MaxSlides       int      `yaml:"maxSlides"`
}

// DefaultDisplaySettings are used when no settings file is configured.
func DefaultDisplaySettings() DisplaySettings {
	return DisplaySettings{
		RotationSeconds: 12,
		MaxSlides:       25,
	}
}

// LoadDisplaySettings reads the YAML settings file at path. A missing file is
// not an error; the defaults apply.
func LoadDisplaySettings(path string) (DisplaySettings, error) {
	settings := DefaultDisplaySettings()
	if path == "" {
		return settings, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return settings, fmt.Errorf("read display settings: %w", err)
	}

	if err := yaml.Unmarshal(data, &settings); err != nil {
		return DefaultDisplaySettings(), fmt.Errorf("parse display settings: %w", err)
	}

	if settings.RotationSeconds <= 0 {
		settings.RotationSeconds = 12
	}
	if settings.MaxSlides <= 0 {
		settings.MaxSlides = 25
	}
	return settings, nil
}
