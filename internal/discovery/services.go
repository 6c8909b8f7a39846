package discovery

import (
	"bytes"
	"fmt"
	"os"

	"github.com/huangsam/graveyard/schema"
	"gopkg.in/yaml.v3"
)

// LoadServices reads a fleet configuration from a YAML file. Every listed
// service must carry a name; spec, logs and repo may be filled later.
func LoadServices(path string) (*schema.MultiServiceConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read services config %s: %w", path, err)
	}
	var cfg schema.MultiServiceConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("cannot parse services config %s: %w", path, err)
	}
	for i := range cfg.Services {
		if cfg.Services[i].Name == "" {
			return nil, fmt.Errorf("service at index %d in %s has no name", i, path)
		}
	}
	return &cfg, nil
}

// SaveServices writes a fleet configuration as block-style YAML.
func SaveServices(cfg *schema.MultiServiceConfig, path string) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("cannot encode services config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("cannot encode services config: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("cannot write services config %s: %w", path, err)
	}
	return nil
}
