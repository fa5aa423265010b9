// Package schema holds the declarative validation schemas for inbound JSON
// payloads. The same definitions are embedded into Mason controls so clients
// see exactly what the validator enforces.
package schema

import (
	"encoding/json"
	"fmt"
	"regexp"
)

// Property describes one field of an object schema.
type Property struct {
	Name        string
	Description string
	Type        string
	Pattern     string

	re *regexp.Regexp
}

// Schema is an immutable JSON-Schema-like object definition. Properties keep
// their declaration order so validation reports the first violation
// deterministically.
type Schema struct {
	Required   []string
	Properties []Property
}

// MarshalJSON serializes the schema in the standard JSON Schema object shape.
func (s *Schema) MarshalJSON() ([]byte, error) {
	props := make(map[string]map[string]string, len(s.Properties))
	for _, p := range s.Properties {
		entry := map[string]string{
			"description": p.Description,
			"type":        p.Type,
		}
		if p.Pattern != "" {
			entry["pattern"] = p.Pattern
		}
		props[p.Name] = entry
	}
	return json.Marshal(map[string]any{
		"type":       "object",
		"required":   s.Required,
		"properties": props,
	})
}

// ValidationError carries a human-readable description of the first
// violation found in a payload.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validate checks a decoded JSON object against the schema and returns the
// first violation, if any. Required fields are checked in declaration order
// before per-field type and pattern checks. Unknown fields are ignored.
func (s *Schema) Validate(payload map[string]any) error {
	for _, name := range s.Required {
		if _, ok := payload[name]; !ok {
			return &ValidationError{
				Field:   name,
				Message: fmt.Sprintf("'%s' is a required property", name),
			}
		}
	}
	for _, p := range s.Properties {
		value, ok := payload[p.Name]
		if !ok {
			continue
		}
		if err := p.validate(value); err != nil {
			return err
		}
	}
	return nil
}

func (p *Property) validate(value any) error {
	switch p.Type {
	case "string":
		str, ok := value.(string)
		if !ok {
			return &ValidationError{
				Field:   p.Name,
				Message: fmt.Sprintf("'%s' is not of type 'string'", p.Name),
			}
		}
		if p.re != nil && !p.re.MatchString(str) {
			return &ValidationError{
				Field:   p.Name,
				Message: fmt.Sprintf("'%s' does not match pattern '%s'", p.Name, p.Pattern),
			}
		}
	case "number":
		switch value.(type) {
		case float64, int, int64, json.Number:
		default:
			return &ValidationError{
				Field:   p.Name,
				Message: fmt.Sprintf("'%s' is not of type 'number'", p.Name),
			}
		}
	}
	return nil
}

// compile builds a schema, precompiling all property patterns. Panics on an
// invalid pattern, which is a programming error in the registry.
func compile(required []string, props ...Property) *Schema {
	for i := range props {
		if props[i].Pattern != "" {
			props[i].re = regexp.MustCompile(props[i].Pattern)
		}
	}
	return &Schema{Required: required, Properties: props}
}
