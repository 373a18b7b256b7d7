package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Settings mirrors the operator-editable settings.yml file
type Settings struct {
	Endpoints EndpointSettings `yaml:"endpoints"`
	System    SystemSettings   `yaml:"system"`
}

// EndpointSettings lists endpoints and groups the operator switched off
type EndpointSettings struct {
	ToRemove       []string `yaml:"toRemove"`
	GroupsToRemove []string `yaml:"groupsToRemove"`
}

// SystemSettings holds process-level options
type SystemSettings struct {
	MaxFileSizeMB             int64    `yaml:"maxFileSizeMB"`
	CheckOptionalDependencies bool     `yaml:"checkOptionalDependencies"`
	CorsAllowedOrigins        []string `yaml:"corsAllowedOrigins"`
}

// LoadSettings reads a settings file. A missing file yields empty settings.
func LoadSettings(path string) (*Settings, error) {
	settings := &Settings{}
	if path == "" {
		return settings, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return settings, nil
		}
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings file %s: %w", path, err)
	}
	return settings, nil
}
