package normalizer

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"jobscout/internal/models"
)

// Raw payload keys as returned by the HeadHunter API.
const (
	rawID           = "id"
	rawName         = "name"
	rawArea         = "area"
	rawAlternateURL = "alternate_url"
	rawURL          = "url"
	rawSalary       = "salary"
	rawDescription  = "description"
	rawSnippet      = "snippet"
	rawSalaryFrom   = "from"
	rawSalaryTo     = "to"
)

// consumedKeys are mapped onto Vacancy fields and never copied to Extra.
var consumedKeys = map[string]bool{
	rawID:           true,
	rawName:         true,
	rawArea:         true,
	rawAlternateURL: true,
	rawURL:          true,
	rawSalary:       true,
	rawDescription:  true,
	rawSnippet:      true,
}

// unspecifiedSalaryText holds the lower-cased strings meaning "no salary".
var unspecifiedSalaryText = map[string]bool{
	"не указано":          true,
	"зарплата не указана": true,
	"":                    true,
}

// Transformer maps raw listing payloads onto vacancies.
type Transformer struct {
	digitsPattern *regexp.Regexp
	rangePattern  *regexp.Regexp
	pairPattern   *regexp.Regexp
	numberPattern *regexp.Regexp
}

// NewTransformer creates a new transformer instance.
func NewTransformer() *Transformer {
	return &Transformer{
		digitsPattern: regexp.MustCompile(`^\d+$`),
		rangePattern:  regexp.MustCompile(`^(\d+)-(\d+)$`),
		pairPattern:   regexp.MustCompile(`^[(\[]\s*(\d+)\s*,\s*(\d+)\s*[)\]]$`),
		numberPattern: regexp.MustCompile(`^\d+(?:[.,]\d+)?`),
	}
}

// Transform builds a vacancy from a raw payload. Absent fields get
// placeholders, so an error is only returned when the payload carries an
// explicitly empty name or url.
func (t *Transformer) Transform(raw map[string]any) (models.Vacancy, error) {
	url := stringField(raw, rawAlternateURL)
	if raw[rawAlternateURL] == nil {
		url = stringField(raw, rawURL)
	}

	v := models.Vacancy{
		ID:          stringField(raw, rawID),
		Name:        stringField(raw, rawName),
		Area:        mapField(raw, rawArea),
		URL:         url,
		Salary:      t.NormalizeSalary(raw[rawSalary]),
		Description: stringField(raw, rawDescription),
		Snippet:     snippetField(raw),
		Extra:       map[string]any{},
	}

	for k, val := range raw {
		if !consumedKeys[k] {
			v.Extra[k] = val
		}
	}

	return models.NewVacancy(v)
}

// NormalizeSalary maps any salary shape onto models.Salary. It never fails:
// anything it cannot read is unspecified.
func (t *Transformer) NormalizeSalary(input any) models.Salary {
	switch val := input.(type) {
	case nil:
		return models.NoSalary()
	case models.Salary:
		return val
	case *models.Salary:
		if val == nil {
			return models.NoSalary()
		}

		return *val
	case map[string]any:
		return salaryFromBounds(val[rawSalaryFrom], val[rawSalaryTo])
	case map[string]int:
		return salaryFromBounds(val[rawSalaryFrom], val[rawSalaryTo])
	case string:
		return t.salaryFromString(val)
	case []any:
		return salaryFromPair(val)
	case []int:
		return salaryFromPair(toAnySlice(val))
	case [2]int:
		return models.RangeSalary(val[0], val[1])
	}

	if n, ok := toInt(input); ok {
		return models.FixedSalary(n)
	}

	return models.NoSalary()
}

func (t *Transformer) salaryFromString(s string) models.Salary {
	s = strings.TrimSpace(s)

	if unspecifiedSalaryText[strings.ToLower(s)] {
		return models.NoSalary()
	}

	if t.digitsPattern.MatchString(s) {
		return models.FixedSalary(atoi(s))
	}

	compact := strings.Join(strings.Fields(s), "")

	if m := t.rangePattern.FindStringSubmatch(compact); m != nil {
		return models.RangeSalary(atoi(m[1]), atoi(m[2]))
	}

	if m := t.pairPattern.FindStringSubmatch(s); m != nil {
		return models.RangeSalary(atoi(m[1]), atoi(m[2]))
	}

	return models.FixedSalary(t.parseLeadingInt(s))
}

// parseLeadingInt reads the number at the start of the first whitespace
// separated token, or returns 0.
func (t *Transformer) parseLeadingInt(s string) int {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return 0
	}

	match := t.numberPattern.FindString(fields[0])
	if match == "" {
		return 0
	}

	f, err := strconv.ParseFloat(strings.Replace(match, ",", ".", 1), 64)
	if err != nil {
		return 0
	}

	return int(f)
}

func salaryFromBounds(fromRaw, toRaw any) models.Salary {
	from, _ := toInt(fromRaw)
	to, _ := toInt(toRaw)

	switch {
	case from > 0 && to > 0:
		return models.RangeSalary(from, to)
	case from > 0:
		return models.FixedSalary(from)
	case to > 0:
		return models.FixedSalary(to)
	default:
		return models.NoSalary()
	}
}

func salaryFromPair(pair []any) models.Salary {
	if len(pair) != 2 {
		return models.NoSalary()
	}

	from, okFrom := toInt(pair[0])
	to, okTo := toInt(pair[1])

	if !okFrom || !okTo {
		return models.NoSalary()
	}

	return models.RangeSalary(from, to)
}

// toInt converts numeric values, including json.Number and digit strings, to int.
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint:
		return int(n), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case uint64:
		return int(n), true
	case float32:
		return floatToInt(float64(n))
	case float64:
		return floatToInt(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i), true
		}

		if f, err := n.Float64(); err == nil {
			return floatToInt(f)
		}
	case string:
		s := strings.TrimSpace(n)
		if i, err := strconv.Atoi(s); err == nil {
			return i, true
		}
	}

	return 0, false
}

func floatToInt(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}

	return int(f), true
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}

	return n
}

func toAnySlice(ints []int) []any {
	out := make([]any, len(ints))
	for i, n := range ints {
		out[i] = n
	}

	return out
}

// stringField returns the string form of raw[key], or the placeholder when
// the key is absent or null.
func stringField(raw map[string]any, key string) string {
	val, ok := raw[key]
	if !ok || val == nil {
		return models.NotSpecified
	}

	switch s := val.(type) {
	case string:
		return s
	case json.Number:
		return s.String()
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return fmt.Sprint(s)
	}
}

func mapField(raw map[string]any, key string) map[string]any {
	m, ok := raw[key].(map[string]any)
	if !ok || m == nil {
		return map[string]any{}
	}

	return m
}

func snippetField(raw map[string]any) map[string]string {
	out := map[string]string{}

	switch snippet := raw[rawSnippet].(type) {
	case map[string]any:
		for k, val := range snippet {
			if s, ok := val.(string); ok {
				out[k] = s
			}
		}
	case map[string]string:
		for k, val := range snippet {
			out[k] = val
		}
	}

	return out
}
