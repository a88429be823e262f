// Package search holds the caller-side queries run over loaded vacancies.
// Every function returns a new slice and leaves its input untouched.
package search

import (
	"slices"
	"strings"

	"jobscout/internal/models"
	"jobscout/pkg/utils"
)

var strs = utils.NewStringHelper()

// SortBySalary returns a copy of vs ordered by salary. Ties keep their
// original order.
func SortBySalary(vs []models.Vacancy, desc bool) []models.Vacancy {
	out := slices.Clone(vs)
	models.SortBySalary(out, desc)

	return out
}

// Top returns the n best paid vacancies, highest first.
func Top(vs []models.Vacancy, n int) []models.Vacancy {
	if n <= 0 {
		return []models.Vacancy{}
	}

	sorted := SortBySalary(vs, true)
	if n < len(sorted) {
		sorted = sorted[:n]
	}

	return sorted
}

// FilterByKeyword keeps vacancies whose description or snippet texts contain
// keyword, ignoring case. An empty keyword matches everything.
func FilterByKeyword(vs []models.Vacancy, keyword string) []models.Vacancy {
	needle := strings.ToLower(strs.NormalizeWhitespace(keyword))
	out := make([]models.Vacancy, 0, len(vs))

	for _, v := range vs {
		if needle == "" || strings.Contains(searchText(v), needle) {
			out = append(out, v)
		}
	}

	return out
}

func searchText(v models.Vacancy) string {
	text := strings.Join([]string{v.Description, v.Requirement(), v.Responsibility()}, " ")

	return strings.ToLower(strs.NormalizeWhitespace(strs.StripTags(text)))
}

// FilterBySalaryRange keeps vacancies whose salary overlaps [lo, hi]. A hi of
// zero leaves the range open upwards. Vacancies without a salary never match.
func FilterBySalaryRange(vs []models.Vacancy, lo, hi int) []models.Vacancy {
	lo = max(lo, 0)
	out := make([]models.Vacancy, 0, len(vs))

	for _, v := range vs {
		if !v.Salary.IsSpecified() {
			continue
		}

		from, to := v.Salary.Bounds()
		if to < lo || (hi > 0 && from > hi) {
			continue
		}

		out = append(out, v)
	}

	return out
}

// DedupByID drops repeated IDs, keeping the last occurrence of each.
// Vacancies without an ID are all kept.
func DedupByID(vs []models.Vacancy) []models.Vacancy {
	last := make(map[string]int, len(vs))
	for i, v := range vs {
		if v.ID != "" {
			last[v.ID] = i
		}
	}

	out := make([]models.Vacancy, 0, len(last))

	for i, v := range vs {
		if v.ID == "" || last[v.ID] == i {
			out = append(out, v)
		}
	}

	return out
}
