// Package models defines the vacancy record shared by the normalizer, the store and the CLI.
package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sort"

	"jobscout/pkg/utils"
)

// NotSpecified is the placeholder used for absent text fields.
const NotSpecified = "Не указано"

// Snippet keys used for keyword search.
const (
	SnippetRequirement    = "requirement"
	SnippetResponsibility = "responsibility"
)

// Vacancy validation errors.
var (
	ErrInvalidVacancy = errors.New("invalid vacancy")
	ErrEmptyName      = fmt.Errorf("%w: name must not be empty", ErrInvalidVacancy)
	ErrEmptyURL       = fmt.Errorf("%w: url must not be empty", ErrInvalidVacancy)
)

// Persisted field names.
const (
	FieldID          = "id"
	FieldName        = "name"
	FieldArea        = "area"
	FieldURL         = "url"
	FieldSalary      = "salary"
	FieldDescription = "description"
	FieldSnippet     = "snippet"
)

// KnownFields lists the persisted keys in the order they are written.
var KnownFields = []string{
	FieldID, FieldName, FieldArea, FieldURL, FieldSalary, FieldDescription, FieldSnippet,
}

// Vacancy is one normalized job listing.
type Vacancy struct {
	Area        map[string]any
	Snippet     map[string]string
	Extra       map[string]any // raw fields outside KnownFields, kept for round trips
	ID          string
	Name        string
	URL         string
	Description string
	Salary      Salary
}

// NewVacancy validates v and brings Area and Extra into the shape they have
// after a save and load: values are JSON-decoded (numbers as json.Number) and
// Extra drops keys that collide with KnownFields. The caller's maps are not
// modified. Nil maps become empty ones.
func NewVacancy(v Vacancy) (Vacancy, error) {
	if err := v.Validate(); err != nil {
		return Vacancy{}, err
	}

	area, err := storedForm(v.Area, nil)
	if err != nil {
		return Vacancy{}, fmt.Errorf("%w: area: %w", ErrInvalidVacancy, err)
	}

	extra, err := storedForm(v.Extra, KnownFields)
	if err != nil {
		return Vacancy{}, fmt.Errorf("%w: extra: %w", ErrInvalidVacancy, err)
	}

	v.Area = area
	v.Extra = extra

	if v.Snippet == nil {
		v.Snippet = map[string]string{}
	}

	return v, nil
}

// storedForm copies m without the skip keys and round-trips it through JSON.
func storedForm(m map[string]any, skip []string) (map[string]any, error) {
	out := make(map[string]any, len(m))

	for k, val := range m {
		if !slices.Contains(skip, k) {
			out[k] = val
		}
	}

	if len(out) == 0 {
		return out, nil
	}

	var buf bytes.Buffer
	if err := writeJSONValue(&buf, out); err != nil {
		return nil, err
	}

	dec := json.NewDecoder(&buf)
	dec.UseNumber()

	var decoded map[string]any
	if err := dec.Decode(&decoded); err != nil {
		return nil, err
	}

	return decoded, nil
}

// Validate checks the name and url invariants.
func (v Vacancy) Validate() error {
	if v.Name == "" {
		return ErrEmptyName
	}

	if v.URL == "" {
		return ErrEmptyURL
	}

	return nil
}

// Requirement returns the snippet requirement text.
func (v Vacancy) Requirement() string {
	return v.Snippet[SnippetRequirement]
}

// Responsibility returns the snippet responsibility text.
func (v Vacancy) Responsibility() string {
	return v.Snippet[SnippetResponsibility]
}

// MarshalJSON writes the known fields in a fixed order followed by the extra
// fields sorted by key. An empty description is written as null.
func (v Vacancy) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	area := v.Area
	if area == nil {
		area = map[string]any{}
	}

	snippet := v.Snippet
	if snippet == nil {
		snippet = map[string]string{}
	}

	var description any
	if v.Description != "" {
		description = v.Description
	}

	fields := []struct {
		value any
		key   string
	}{
		{key: FieldID, value: v.ID},
		{key: FieldName, value: v.Name},
		{key: FieldArea, value: area},
		{key: FieldURL, value: v.URL},
		{key: FieldSalary, value: v.Salary},
		{key: FieldDescription, value: description},
		{key: FieldSnippet, value: snippet},
	}

	extraKeys := make([]string, 0, len(v.Extra))
	for k := range v.Extra {
		if slices.Contains(KnownFields, k) {
			continue
		}

		extraKeys = append(extraKeys, k)
	}

	sort.Strings(extraKeys)

	for _, k := range extraKeys {
		fields = append(fields, struct {
			value any
			key   string
		}{key: k, value: v.Extra[k]})
	}

	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}

		if err := writeJSONValue(&buf, f.key); err != nil {
			return nil, err
		}

		buf.WriteByte(':')

		if err := writeJSONValue(&buf, f.value); err != nil {
			return nil, fmt.Errorf("field %s: %w", f.key, err)
		}
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// writeJSONValue encodes value without HTML escaping and without the trailing
// newline json.Encoder adds.
func writeJSONValue(buf *bytes.Buffer, value any) error {
	var tmp bytes.Buffer

	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(value); err != nil {
		return err
	}

	buf.Write(bytes.TrimRight(tmp.Bytes(), "\n"))

	return nil
}

// Compare orders vacancies by salary only. Every other field is ignored, so
// two different listings with the same salary compare equal.
func Compare(a, b Vacancy) int {
	return CompareSalary(a.Salary, b.Salary)
}

// SortBySalary sorts vacancies in place by salary, highest first when desc is
// set. The sort is stable, so equal salaries keep their stored order.
func SortBySalary(vacancies []Vacancy, desc bool) {
	slices.SortStableFunc(vacancies, func(a, b Vacancy) int {
		if desc {
			return Compare(b, a)
		}

		return Compare(a, b)
	})
}

var strs = utils.NewStringHelper()

// String renders the vacancy as a console card. When the description is
// empty the snippet responsibility is shown instead. Snippet markup is
// stripped.
func (v Vacancy) String() string {
	description := v.Description
	if description == "" {
		description = v.Responsibility()
	}

	description = strs.NormalizeWhitespace(strs.StripTags(description))
	if description == "" {
		description = NotSpecified
	}

	return fmt.Sprintf("Вакансия: %s\nСсылка: %s\nЗарплата: %s\nОписание: %s",
		v.Name, v.URL, v.Salary, description)
}
