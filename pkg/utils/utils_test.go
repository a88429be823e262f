package utils

import (
	"testing"

	"github.com/mattn/go-runewidth"
)

func TestHTTPHelper_IsValidURL(t *testing.T) {
	h := NewHTTPHelper("")

	tests := []struct {
		in   string
		want bool
	}{
		{"https://api.hh.ru/vacancies", true},
		{"http://localhost:8080", true},
		{"ftp://example.com", false},
		{"api.hh.ru/vacancies", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := h.IsValidURL(tt.in); got != tt.want {
			t.Errorf("IsValidURL(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestHTTPHelper_BuildHeaders(t *testing.T) {
	h := NewHTTPHelper("HH-User-Agent")

	headers := h.BuildHeaders(map[string]string{"X-Test": "1"})

	if headers.Get("User-Agent") != "HH-User-Agent" {
		t.Errorf("User-Agent = %q", headers.Get("User-Agent"))
	}

	if headers.Get("X-Test") != "1" {
		t.Errorf("X-Test = %q", headers.Get("X-Test"))
	}
}

func TestStringHelper(t *testing.T) {
	s := NewStringHelper()

	if got := s.NormalizeWhitespace("  a \n\t b  "); got != "a b" {
		t.Errorf("NormalizeWhitespace = %q", got)
	}

	if got := s.StripTags("Опыт с <highlighttext>Python</highlighttext>"); got != "Опыт с Python" {
		t.Errorf("StripTags = %q", got)
	}

	if got := s.TruncateString("short", 10); got != "short" {
		t.Errorf("TruncateString = %q", got)
	}

	got := s.TruncateString("Разработчик бэкенда на Go", 12)
	if runewidth.StringWidth(got) > 12 {
		t.Errorf("TruncateString width = %d, want <= 12 (%q)", runewidth.StringWidth(got), got)
	}
}
