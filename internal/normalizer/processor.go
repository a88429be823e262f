// Package normalizer turns raw job listing payloads into models.Vacancy values.
package normalizer

import (
	"errors"
	"fmt"

	"jobscout/internal/models"
)

// Processor validates payload shapes and normalizes them.
type Processor struct {
	validator   *Validator
	transformer *Transformer
}

// NewProcessor creates a new processor instance.
func NewProcessor() *Processor {
	return &Processor{
		validator:   NewValidator(),
		transformer: NewTransformer(),
	}
}

// Process normalizes one raw payload.
func (p *Processor) Process(rawData any) (models.Vacancy, error) {
	raw, err := p.validator.Validate(rawData)
	if err != nil {
		return models.Vacancy{}, fmt.Errorf("validation failed: %w", err)
	}

	vacancy, err := p.transformer.Transform(raw)
	if err != nil {
		return models.Vacancy{}, fmt.Errorf("transformation failed: %w", err)
	}

	return vacancy, nil
}

// ProcessAll normalizes a batch. Payloads that fail are skipped and their
// errors joined, so one bad listing never drops the rest of the page.
func (p *Processor) ProcessAll(raws []map[string]any) ([]models.Vacancy, error) {
	vacancies := make([]models.Vacancy, 0, len(raws))

	var errs []error

	for i, raw := range raws {
		v, err := p.Process(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("item %d: %w", i, err))

			continue
		}

		vacancies = append(vacancies, v)
	}

	return vacancies, errors.Join(errs...)
}

var defaultTransformer = NewTransformer()

// NormalizeOne maps a raw HeadHunter payload onto a vacancy.
func NormalizeOne(raw map[string]any) (models.Vacancy, error) {
	return defaultTransformer.Transform(raw)
}

// NormalizeSalary maps a salary object, number or string onto models.Salary.
// Canonical values pass through unchanged.
func NormalizeSalary(input any) models.Salary {
	return defaultTransformer.NormalizeSalary(input)
}
