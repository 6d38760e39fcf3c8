package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Settings is the top-level conciliar.yaml configuration.
type Settings struct {
	Export ExportSettings `yaml:"export"`
	Git    GitSettings    `yaml:"git"`
}

// ExportSettings controls the default output format.
type ExportSettings struct {
	Format string `yaml:"format"` // "csv" or "xlsx"
}

// GitSettings controls local git integration for the registry data dir.
type GitSettings struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// LoadSettings reads a conciliar.yaml file from disk.
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing settings: %w", err)
	}
	return &s, nil
}

// SaveSettings writes Settings to a YAML file.
func SaveSettings(path string, s *Settings) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshaling settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}
	return nil
}

// DefaultSettings returns Settings with sensible defaults for a new
// data directory.
func DefaultSettings() *Settings {
	return &Settings{
		Export: ExportSettings{Format: "csv"},
		Git: GitSettings{
			AutoCommit:  true,
			AuthorName:  "Conciliador",
			AuthorEmail: "conciliador@drogarias.local",
		},
	}
}
