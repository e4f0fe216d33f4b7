// Package validation checks non-interactive parameter files against the JSON
// schema of the command they are passed to.
package validation

import (
	"cptask-tools/internal/models"
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// LoadSchema loads the embedded schema for a command name
func LoadSchema(command string) (*gojsonschema.Schema, error) {
	data, err := schemaFS.ReadFile("schemas/" + command + ".json")
	if err != nil {
		return nil, fmt.Errorf("no parameter schema for %q: %w", command, err)
	}

	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return schema, nil
}

// ValidateParams validates a parameters document against a schema
func ValidateParams(paramsJSON []byte, schema *gojsonschema.Schema) error {
	result, err := schema.Validate(gojsonschema.NewBytesLoader(paramsJSON))
	if err != nil {
		return models.ValidationError("failed to validate parameters: %v", err)
	}

	if !result.Valid() {
		var errors []string
		for _, desc := range result.Errors() {
			errors = append(errors, desc.String())
		}
		return models.ValidationError("invalid parameters: %s", strings.Join(errors, "; "))
	}

	return nil
}

// LoadParams reads the parameters file at path, validates it against the
// schema of command and unmarshals it into out
func LoadParams(path, command string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.IOError("read", path, err)
	}

	// Load schema
	schema, err := LoadSchema(command)
	if err != nil {
		return err
	}

	// Validate
	if err := ValidateParams(data, schema); err != nil {
		return err
	}

	// Parse
	if err := json.Unmarshal(data, out); err != nil {
		return models.ValidationError("failed to parse parameters: %v", err)
	}

	return nil
}
