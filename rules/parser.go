// Package rules loads the rules document: which databases to query and the
// rules to check against every measurement.
package rules

import (
	"errors"
	"fmt"
	"os"

	"code.cloudfoundry.org/influxdb-warner/models"

	"github.com/xeipuuv/gojsonschema"
	"go.yaml.in/yaml/v4"
)

var ErrInvalidRules = errors.New("invalid rules")

type SchemaError struct {
	Field       string
	Description string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Description)
}

func (e *SchemaError) Unwrap() error {
	return ErrInvalidRules
}

type Parser struct {
	schemaLoader gojsonschema.JSONLoader
}

func NewParser() *Parser {
	return &Parser{
		schemaLoader: gojsonschema.NewStringLoader(rulesSchema),
	}
}

func LoadFile(path string) (*models.Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file %s: %w", path, err)
	}
	return NewParser().Parse(data)
}

// Parse validates data against the rules schema and decodes it. Schema
// violations come back together as models.ConfigErrors.
func (p *Parser) Parse(data []byte) (*models.Rules, error) {
	var document interface{}
	if err := yaml.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRules, err)
	}

	result, err := gojsonschema.Validate(p.schemaLoader, gojsonschema.NewGoLoader(jsonCompatible(document)))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRules, err)
	}
	if !result.Valid() {
		return nil, schemaErrors(result.Errors())
	}

	rules := &models.Rules{}
	if err := yaml.Unmarshal(data, rules); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRules, err)
	}
	return rules, nil
}

func schemaErrors(resultErrors []gojsonschema.ResultError) models.ConfigErrors {
	errs := make(models.ConfigErrors, 0, len(resultErrors))
	for _, resultError := range resultErrors {
		errs = append(errs, &SchemaError{
			Field:       resultError.Field(),
			Description: resultError.Description(),
		})
	}
	return errs
}

// jsonCompatible turns the maps yaml produces for non-string keys into
// string keyed maps so the document can be marshalled to json.
func jsonCompatible(node interface{}) interface{} {
	switch n := node.(type) {
	case map[string]interface{}:
		converted := make(map[string]interface{}, len(n))
		for k, v := range n {
			converted[k] = jsonCompatible(v)
		}
		return converted
	case map[interface{}]interface{}:
		converted := make(map[string]interface{}, len(n))
		for k, v := range n {
			converted[fmt.Sprint(k)] = jsonCompatible(v)
		}
		return converted
	case []interface{}:
		converted := make([]interface{}, len(n))
		for i, v := range n {
			converted[i] = jsonCompatible(v)
		}
		return converted
	default:
		return node
	}
}
