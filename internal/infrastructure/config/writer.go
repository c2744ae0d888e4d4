package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/invopop/jsonschema"
	"github.com/pelletier/go-toml/v2"
)

const schemaID = "https://github.com/bnema/slickdir/config.schema.json"

// WriteConfigOrdered writes the configuration to disk. Sections follow the
// struct definition order so the most used settings come first.
func WriteConfigOrdered(cfg *Config, path string) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)

	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), filePerm); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// JSONSchema returns the JSON schema of the configuration file.
func JSONSchema() ([]byte, error) {
	r := &jsonschema.Reflector{
		FieldNameTag:   "toml",
		DoNotReference: true,
	}
	schema := r.Reflect(&Config{})
	schema.ID = schemaID
	schema.Title = "slickdir configuration"
	schema.Description = "Configuration schema for slickdir, a clipboard to workspace extractor"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return data, nil
}

// WriteSchemaFile writes the JSON schema next to the config file.
func WriteSchemaFile(path string) error {
	data, err := JSONSchema()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, filePerm); err != nil {
		return fmt.Errorf("failed to write schema file: %w", err)
	}
	return nil
}
