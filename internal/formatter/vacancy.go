// Package formatter renders vacancies for the console.
package formatter

import (
	"fmt"
	"strings"

	"jobscout/internal/models"
	"jobscout/pkg/utils"
)

var strs = utils.NewStringHelper()

// FormatList renders vacancies as numbered cards separated by blank lines.
func FormatList(vs []models.Vacancy) string {
	if len(vs) == 0 {
		return "Вакансии не найдены."
	}

	var sb strings.Builder

	for i, v := range vs {
		if i > 0 {
			sb.WriteString("\n\n")
		}

		fmt.Fprintf(&sb, "%d. %s", i+1, v)
	}

	return sb.String()
}
