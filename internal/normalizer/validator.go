package normalizer

import (
	"errors"
)

// Validation errors.
var (
	ErrInvalidDataType = errors.New("invalid data type: expected a listing object")
	ErrNilPayload      = errors.New("listing payload is nil")
)

// Validator checks that a raw payload can be normalized at all. Field level
// rules live in models.Vacancy.Validate.
type Validator struct{}

// NewValidator creates a new validator instance.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate returns the payload as a map, or an error when it is not an object.
func (v *Validator) Validate(data any) (map[string]any, error) {
	switch raw := data.(type) {
	case map[string]any:
		if raw == nil {
			return nil, ErrNilPayload
		}

		return raw, nil
	case nil:
		return nil, ErrNilPayload
	default:
		return nil, ErrInvalidDataType
	}
}
