package formatter

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"jobscout/internal/models"
)

var tableHeader = []string{"ID", "Вакансия", "Город", "Зарплата"}

// RenderTable renders vacancies as a pipe table. Cells wider than
// maxColumnWidth terminal cells are truncated; zero disables truncation.
func RenderTable(vs []models.Vacancy, maxColumnWidth int) string {
	rows := make([][]string, 0, len(vs)+1)
	rows = append(rows, tableHeader)

	for _, v := range vs {
		rows = append(rows, []string{
			v.ID,
			strs.TruncateString(strs.NormalizeWhitespace(v.Name), maxColumnWidth),
			strs.TruncateString(areaName(v), maxColumnWidth),
			v.Salary.String(),
		})
	}

	return strings.Join(alignTable(rows), "\n")
}

func areaName(v models.Vacancy) string {
	if name, ok := v.Area["name"].(string); ok && name != "" {
		return name
	}

	return models.NotSpecified
}

// alignTable pads every cell to its column's display width and inserts a
// separator after the header row.
func alignTable(table [][]string) []string {
	colCount := 0
	for _, row := range table {
		colCount = max(colCount, len(row))
	}

	colWidths := make([]int, colCount)

	for _, row := range table {
		for i, cell := range row {
			colWidths[i] = max(colWidths[i], runewidth.StringWidth(cell))
		}
	}

	// Separator needs at least "---".
	for i := range colWidths {
		colWidths[i] = max(colWidths[i], 3)
	}

	result := make([]string, 0, len(table)+1)

	for i, row := range table {
		result = append(result, buildRow(row, colWidths))

		if i == 0 {
			sep := make([]string, colCount)
			for j, w := range colWidths {
				sep[j] = strings.Repeat("-", w)
			}

			result = append(result, buildRow(sep, colWidths))
		}
	}

	return result
}

func buildRow(row []string, colWidths []int) string {
	var sb strings.Builder

	sb.WriteString("|")

	for j, width := range colWidths {
		content := ""
		if j < len(row) {
			content = row[j]
		}

		sb.WriteString(" ")
		sb.WriteString(content)

		// Pad with spaces based on display width
		if padding := width - runewidth.StringWidth(content); padding > 0 {
			sb.WriteString(strings.Repeat(" ", padding))
		}

		sb.WriteString(" |")
	}

	return sb.String()
}
