package config

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

//go:embed schema.json
var embeddedSchema string

// VerifyAgainstEmbeddedSchema validates the config against the embedded JSON schema.
// Checks that every property the schema declares for a section is present in the config.
func VerifyAgainstEmbeddedSchema(cfg *Config) error {
	var schema jsonschema.Schema
	if err := json.Unmarshal([]byte(embeddedSchema), &schema); err != nil {
		return fmt.Errorf("parse embedded schema: %w", err)
	}

	configData, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	var configMap map[string]map[string]any
	if err := json.Unmarshal(configData, &configMap); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}

	for name, def := range schema.Definitions {
		section, ok := sectionForDefinition(name)
		if !ok || def == nil || def.Properties == nil {
			continue
		}
		values := configMap[section]
		for pair := def.Properties.Oldest(); pair != nil; pair = pair.Next() {
			if _, found := values[pair.Key]; !found {
				return fmt.Errorf("%s.%s is missing", section, pair.Key)
			}
		}
	}

	if err := validateRequiredFields(cfg); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	return nil
}

// sectionForDefinition maps schema definition names to top-level config keys
func sectionForDefinition(name string) (string, bool) {
	sections := map[string]string{
		"ServerConfig":   "server",
		"DatabaseConfig": "database",
		"ConsentConfig":  "consent",
		"BannerConfig":   "banner",
	}
	s, ok := sections[name]
	return s, ok
}

// validateRequiredFields performs basic validation of required fields
func validateRequiredFields(cfg *Config) error {
	if cfg.Server.Listen == "" {
		return fmt.Errorf("server.listen is required")
	}
	if cfg.Server.Timeout == 0 {
		return fmt.Errorf("server.timeout is required")
	}
	if cfg.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required")
	}
	if cfg.Consent.StorageKey == "" {
		return fmt.Errorf("consent.storage_key is required")
	}
	if cfg.Banner.PolicyURL == "" {
		return fmt.Errorf("banner.policy_url is required")
	}
	return nil
}

// GenerateSchema generates a JSON schema for the Config struct
func GenerateSchema() *jsonschema.Schema {
	return jsonschema.Reflect(&Config{})
}
