package mapping

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile loads and parses a YAML bindings file from the given path.
func LoadFile(path string) (*BindingsFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read bindings file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a BindingsFile.
func Parse(data []byte) (*BindingsFile, error) {
	var bf BindingsFile

	err := yaml.Unmarshal(data, &bf)
	if err != nil {
		return nil, fmt.Errorf("failed to parse bindings YAML: %w", err)
	}

	applyDefaults(&bf)

	return &bf, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(bf *BindingsFile) {
	if bf.Version == "" {
		bf.Version = CurrentVersion
	}
}

// Marshal serializes a BindingsFile to YAML.
func Marshal(bf *BindingsFile) ([]byte, error) {
	return yaml.Marshal(bf)
}

// WriteFile writes a BindingsFile to the given path.
func WriteFile(bf *BindingsFile, path string) error {
	data, err := Marshal(bf)
	if err != nil {
		return fmt.Errorf("failed to marshal bindings: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write bindings file %s: %w", path, err)
	}

	return nil
}
