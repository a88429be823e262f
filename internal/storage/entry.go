package storage

import (
	"encoding/json"
	"fmt"
	"slices"

	"jobscout/internal/models"
	"jobscout/internal/normalizer"
)

// vacancyFromEntry maps a stored object straight onto a vacancy. Stored
// salaries are already canonical; NormalizeSalary is idempotent on them and
// still reads older files that kept the salary as a string.
func vacancyFromEntry(raw map[string]any) (models.Vacancy, error) {
	v := models.Vacancy{
		ID:          textValue(raw[models.FieldID]),
		Name:        textValue(raw[models.FieldName]),
		URL:         textValue(raw[models.FieldURL]),
		Description: textValue(raw[models.FieldDescription]),
		Salary:      normalizer.NormalizeSalary(raw[models.FieldSalary]),
		Area:        map[string]any{},
		Snippet:     map[string]string{},
		Extra:       map[string]any{},
	}

	if area, ok := raw[models.FieldArea].(map[string]any); ok {
		v.Area = area
	}

	if snippet, ok := raw[models.FieldSnippet].(map[string]any); ok {
		for k, val := range snippet {
			if s, ok := val.(string); ok {
				v.Snippet[k] = s
			}
		}
	}

	for k, val := range raw {
		if !slices.Contains(models.KnownFields, k) {
			v.Extra[k] = val
		}
	}

	return models.NewVacancy(v)
}

func textValue(val any) string {
	switch s := val.(type) {
	case nil:
		return ""
	case string:
		return s
	case json.Number:
		return s.String()
	default:
		return fmt.Sprint(s)
	}
}
