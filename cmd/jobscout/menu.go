package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"jobscout/internal/assistant"
	"jobscout/internal/formatter"
	"jobscout/internal/models"
)

const menuText = `
1. Ввести поисковый запрос
2. Получить топ N вакансий по зарплате
3. Получить вакансии с ключевым словом в описании
4. Получить вакансии в диапазоне зарплат
5. Показать все сохранённые вакансии
6. Удалить вакансию по ID
7. Выход`

// menu is the interactive front end over the assistant service.
type menu struct {
	svc      *assistant.Service
	in       *bufio.Scanner
	out      io.Writer
	maxWidth int
	topN     int
	table    bool
}

// newMenu builds the menu. topN is used when the top-N prompt is left empty.
func newMenu(svc *assistant.Service, in io.Reader, out io.Writer, maxWidth, topN int, table bool) *menu {
	return &menu{
		svc:      svc,
		in:       bufio.NewScanner(in),
		out:      out,
		maxWidth: maxWidth,
		topN:     topN,
		table:    table,
	}
}

// run loops until the user picks exit or input ends.
func (m *menu) run(ctx context.Context) {
	for {
		fmt.Fprintln(m.out, menuText)

		choice, ok := m.prompt("Выберите опцию: ")
		if !ok {
			return
		}

		switch choice {
		case "1":
			m.search(ctx)
		case "2":
			m.top()
		case "3":
			m.filterByKeyword()
		case "4":
			m.filterBySalary()
		case "5":
			m.show(m.svc.List())
		case "6":
			m.delete()
		case "7":
			return
		default:
			fmt.Fprintln(m.out, "Неверный выбор. Попробуйте снова.")
		}

		if ctx.Err() != nil {
			return
		}
	}
}

func (m *menu) prompt(text string) (string, bool) {
	fmt.Fprint(m.out, text)

	if !m.in.Scan() {
		return "", false
	}

	return strings.TrimSpace(m.in.Text()), true
}

// promptInt reads a non-negative integer, returning def for an empty line.
func (m *menu) promptInt(text string, def int) (int, bool) {
	raw, ok := m.prompt(text)
	if !ok {
		return 0, false
	}

	if raw == "" {
		return def, true
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		fmt.Fprintln(m.out, "Введите неотрицательное целое число.")

		return 0, false
	}

	return n, true
}

func (m *menu) search(ctx context.Context) {
	keyword, ok := m.prompt("Введите поисковый запрос: ")
	if !ok || keyword == "" {
		return
	}

	n, err := m.svc.Search(ctx, keyword)
	if err != nil {
		fmt.Fprintf(m.out, "Ошибка поиска: %v\n", err)

		return
	}

	fmt.Fprintf(m.out, "Сохранено вакансий: %d\n", n)
}

func (m *menu) top() {
	n, ok := m.promptInt(fmt.Sprintf("Введите количество вакансий для вывода в топ N [%d]: ", m.topN), m.topN)
	if !ok {
		return
	}

	m.show(m.svc.Top(n))
}

func (m *menu) filterByKeyword() {
	keyword, ok := m.prompt("Введите ключевое слово для фильтрации вакансий: ")
	if !ok {
		return
	}

	m.show(m.svc.FilterByKeyword(keyword))
}

func (m *menu) filterBySalary() {
	lo, ok := m.promptInt("Минимальная зарплата: ", 0)
	if !ok {
		return
	}

	hi, ok := m.promptInt("Максимальная зарплата (0 - без ограничения): ", 0)
	if !ok {
		return
	}

	m.show(m.svc.FilterBySalary(lo, hi))
}

func (m *menu) delete() {
	id, ok := m.prompt("Введите ID вакансии: ")
	if !ok {
		return
	}

	if err := m.svc.Delete(id); err != nil {
		fmt.Fprintf(m.out, "Ошибка удаления: %v\n", err)

		return
	}

	fmt.Fprintf(m.out, "Вакансия %s удалена.\n", id)
}

func (m *menu) show(vs []models.Vacancy) {
	printVacancies(m.out, vs, m.table, m.maxWidth)
}

func printVacancies(out io.Writer, vs []models.Vacancy, table bool, maxWidth int) {
	if table && len(vs) > 0 {
		fmt.Fprintln(out, formatter.RenderTable(vs, maxWidth))

		return
	}

	fmt.Fprintln(out, formatter.FormatList(vs))
}
