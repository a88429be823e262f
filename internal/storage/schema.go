package storage

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ErrSchemaViolation is returned when a stored entry does not match the vacancy schema.
var ErrSchemaViolation = errors.New("entry does not match the vacancy schema")

//go:embed vacancy.schema.json
var vacancySchemaJSON string

// entrySchema validates single stored entries.
type entrySchema struct {
	schema *gojsonschema.Schema
}

func newEntrySchema() (*entrySchema, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(vacancySchemaJSON))
	if err != nil {
		return nil, fmt.Errorf("compile vacancy schema: %w", err)
	}

	return &entrySchema{schema: schema}, nil
}

// Validate checks one raw JSON entry.
func (s *entrySchema) Validate(raw []byte) error {
	res, err := s.schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("validate entry: %w", err)
	}

	if res.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}

	return fmt.Errorf("%w: %s", ErrSchemaViolation, strings.Join(msgs, "; "))
}
