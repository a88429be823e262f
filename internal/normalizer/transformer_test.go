package normalizer

import (
	"bytes"
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"jobscout/internal/models"
)

func TestNewTransformer(t *testing.T) {
	tr := NewTransformer()
	if tr == nil {
		t.Fatal("NewTransformer returned nil")
	}
}

func TestTransformer_NormalizeSalary(t *testing.T) {
	tr := NewTransformer()

	tests := []struct {
		name  string
		input any
		want  models.Salary
	}{
		{"Map with both bounds", map[string]any{"from": 1000, "to": 2000}, models.RangeSalary(1000, 2000)},
		{"Map with from only", map[string]any{"from": 1000}, models.FixedSalary(1000)},
		{"Map with to only", map[string]any{"to": 2000}, models.FixedSalary(2000)},
		{"Map with null from", map[string]any{"from": nil, "to": 2000, "currency": "RUR"}, models.FixedSalary(2000)},
		{"Map with zero bounds", map[string]any{"from": 0, "to": 0}, models.NoSalary()},
		{"Empty map", map[string]any{}, models.NoSalary()},
		{"Map with json numbers", map[string]any{"from": json.Number("1000"), "to": json.Number("2000")}, models.RangeSalary(1000, 2000)},
		{"Map with floats", map[string]any{"from": 1000.0, "to": 2000.0}, models.RangeSalary(1000, 2000)},
		{"Integer", 3000, models.FixedSalary(3000)},
		{"Float", 3000.7, models.FixedSalary(3000)},
		{"Negative", -10, models.NoSalary()},
		{"Not specified", "не указано", models.NoSalary()},
		{"Not specified mixed case", "Зарплата не указана", models.NoSalary()},
		{"Empty string", "", models.NoSalary()},
		{"Digit string", "3000", models.FixedSalary(3000)},
		{"Range string", "1000-2000", models.RangeSalary(1000, 2000)},
		{"Range string with spaces", "1000 - 2000", models.RangeSalary(1000, 2000)},
		{"Stringified pair", "(1000, 2000)", models.RangeSalary(1000, 2000)},
		{"Leading number", "1500 руб.", models.FixedSalary(1500)},
		{"Invalid", "invalid", models.NoSalary()},
		{"Nil", nil, models.NoSalary()},
		{"Unsupported type", true, models.NoSalary()},
		{"Pair slice", []any{json.Number("1000"), json.Number("2000")}, models.RangeSalary(1000, 2000)},
		{"Short slice", []any{1000}, models.NoSalary()},
		{"Int array", [2]int{1000, 2000}, models.RangeSalary(1000, 2000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tr.NormalizeSalary(tt.input)
			if got != tt.want {
				t.Errorf("NormalizeSalary(%#v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeSalary_Idempotent(t *testing.T) {
	canonical := []models.Salary{
		models.NoSalary(),
		models.FixedSalary(3000),
		models.RangeSalary(1000, 2000),
	}

	for _, c := range canonical {
		if got := NormalizeSalary(c); got != c {
			t.Errorf("NormalizeSalary(%v) = %v, want it unchanged", c, got)
		}

		// The persisted forms decode to json.Number, []any and 0.
		data, err := json.Marshal(c)
		if err != nil {
			t.Fatalf("Marshal: %v", err)
		}

		var decoded any

		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()

		if err := dec.Decode(&decoded); err != nil {
			t.Fatalf("Decode: %v", err)
		}

		if got := NormalizeSalary(decoded); got != c {
			t.Errorf("NormalizeSalary(%s) = %v, want %v", data, got, c)
		}

		if got := NormalizeSalary(c.String()); got != c {
			t.Errorf("NormalizeSalary(%q) = %v, want %v", c.String(), got, c)
		}
	}
}

func TestTransformer_Transform(t *testing.T) {
	tr := NewTransformer()

	raw := map[string]any{
		"id":            "1",
		"name":          "Engineer",
		"alternate_url": "http://x",
		"salary":        map[string]any{"from": 1000, "to": 2000},
		"snippet":       map[string]any{"responsibility": "Build things", "requirement": nil},
		"employer":      map[string]any{"name": "ACME"},
	}

	v, err := tr.Transform(raw)
	if err != nil {
		t.Fatalf("Transform returned unexpected error: %v", err)
	}

	if v.ID != "1" || v.Name != "Engineer" || v.URL != "http://x" {
		t.Errorf("Transform mapped id/name/url = %q/%q/%q", v.ID, v.Name, v.URL)
	}

	if v.Salary != models.RangeSalary(1000, 2000) {
		t.Errorf("Salary = %v, want 1000-2000", v.Salary)
	}

	if v.Description != models.NotSpecified {
		t.Errorf("Description = %q, want placeholder %q", v.Description, models.NotSpecified)
	}

	if !reflect.DeepEqual(v.Snippet, map[string]string{"responsibility": "Build things"}) {
		t.Errorf("Snippet = %v", v.Snippet)
	}

	if len(v.Area) != 0 {
		t.Errorf("Area = %v, want empty", v.Area)
	}

	if _, ok := v.Extra["employer"]; !ok {
		t.Error("Extra should keep the employer field")
	}

	if _, ok := v.Extra["alternate_url"]; ok {
		t.Error("Extra should not duplicate consumed fields")
	}
}

func TestTransformer_Transform_Defaults(t *testing.T) {
	tr := NewTransformer()

	v, err := tr.Transform(map[string]any{})
	if err != nil {
		t.Fatalf("Transform returned unexpected error: %v", err)
	}

	for field, got := range map[string]string{"ID": v.ID, "Name": v.Name, "URL": v.URL, "Description": v.Description} {
		if got != models.NotSpecified {
			t.Errorf("%s = %q, want placeholder", field, got)
		}
	}

	if v.Salary.IsSpecified() {
		t.Errorf("Salary = %v, want unspecified", v.Salary)
	}
}

func TestTransformer_Transform_StoredShape(t *testing.T) {
	tr := NewTransformer()

	v, err := tr.Transform(map[string]any{
		"id":     json.Number("124"),
		"name":   "Java Developer",
		"url":    "http://example.com",
		"salary": "1000-2000",
	})
	if err != nil {
		t.Fatalf("Transform returned unexpected error: %v", err)
	}

	if v.ID != "124" {
		t.Errorf("ID = %q, want 124", v.ID)
	}

	if v.URL != "http://example.com" {
		t.Errorf("URL = %q, want fallback to url field", v.URL)
	}

	if v.Salary != models.RangeSalary(1000, 2000) {
		t.Errorf("Salary = %v, want 1000-2000", v.Salary)
	}
}

func TestTransformer_Transform_URLFallback(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
		want string
	}{
		{
			name: "Alternate url wins",
			raw:  map[string]any{"alternate_url": "https://hh.ru/vacancy/1", "url": "https://api.hh.ru/vacancies/1"},
			want: "https://hh.ru/vacancy/1",
		},
		{
			name: "Null alternate url",
			raw:  map[string]any{"alternate_url": nil, "url": "https://api.hh.ru/vacancies/1"},
			want: "https://api.hh.ru/vacancies/1",
		},
		{
			name: "Neither present",
			raw:  map[string]any{"alternate_url": nil},
			want: models.NotSpecified,
		},
	}

	tr := NewTransformer()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.raw["name"] = "Go Developer"

			v, err := tr.Transform(tt.raw)
			if err != nil {
				t.Fatalf("Transform returned unexpected error: %v", err)
			}

			if v.URL != tt.want {
				t.Errorf("URL = %q, want %q", v.URL, tt.want)
			}
		})
	}
}

func TestTransformer_Transform_Error(t *testing.T) {
	tr := NewTransformer()

	_, err := tr.Transform(map[string]any{"name": "", "alternate_url": "http://x"})
	if !errors.Is(err, models.ErrEmptyName) {
		t.Errorf("Transform error = %v, want ErrEmptyName", err)
	}
}
