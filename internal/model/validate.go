package model

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed resume.schema.json
var schemaJSON []byte

var shapeSchema = mustCompileSchema(schemaJSON)

func mustCompileSchema(b []byte) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(b))
	if err != nil {
		panic(fmt.Sprintf("model: invalid embedded resume schema: %v", err))
	}
	return s
}

// Parse turns raw editor text into a Resume. Checks run in a fixed order:
// JSON syntax, required fields, then the shape of every section. The first
// failing check decides the returned *ValidationError.
func Parse(raw []byte) (*Resume, error) {
	var generic interface{}
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, &ValidationError{Kind: KindMalformedSyntax, Err: err}
	}

	if missing := MissingRequired(generic); missing != "" {
		return nil, &ValidationError{Kind: KindMissingRequiredField, Field: missing}
	}

	if err := ValidateShape(generic); err != nil {
		return nil, err
	}

	var r Resume
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, &ValidationError{Kind: KindInvalidShape, Details: []string{err.Error()}, Err: err}
	}
	return &r, nil
}

// ParseString is Parse for editor text.
func ParseString(raw string) (*Resume, error) {
	return Parse([]byte(raw))
}

// ValidateShape validates a decoded document against the embedded resume
// schema.
func ValidateShape(doc interface{}) error {
	res, err := shapeSchema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return &ValidationError{Kind: KindInvalidShape, Details: []string{err.Error()}, Err: err}
	}
	if res.Valid() {
		return nil
	}
	details := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		details = append(details, e.String())
	}
	return &ValidationError{Kind: KindInvalidShape, Details: details}
}
