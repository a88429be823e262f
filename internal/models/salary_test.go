package models

import (
	"encoding/json"
	"testing"
)

func TestSalaryConstructors(t *testing.T) {
	tests := []struct {
		name     string
		salary   Salary
		wantKind SalaryKind
		wantFrom int
		wantTo   int
	}{
		{"Unspecified", NoSalary(), SalaryUnspecified, 0, 0},
		{"Fixed", FixedSalary(3000), SalaryFixed, 3000, 3000},
		{"Fixed zero is unspecified", FixedSalary(0), SalaryUnspecified, 0, 0},
		{"Fixed negative is unspecified", FixedSalary(-5), SalaryUnspecified, 0, 0},
		{"Range", RangeSalary(1000, 2000), SalaryRange, 1000, 2000},
		{"Range swapped", RangeSalary(2000, 1000), SalaryRange, 1000, 2000},
		{"Range of zeros", RangeSalary(0, 0), SalaryUnspecified, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.salary.Kind() != tt.wantKind {
				t.Errorf("Kind() = %v, want %v", tt.salary.Kind(), tt.wantKind)
			}

			from, to := tt.salary.Bounds()
			if from != tt.wantFrom || to != tt.wantTo {
				t.Errorf("Bounds() = (%d, %d), want (%d, %d)", from, to, tt.wantFrom, tt.wantTo)
			}
		})
	}
}

func TestCompareSalary_MixedShapes(t *testing.T) {
	scalar := FixedSalary(3000)
	pair := RangeSalary(1000, 2000)

	if CompareSalary(scalar, pair) <= 0 {
		t.Error("3000 should be greater than (1000, 2000)")
	}

	if CompareSalary(pair, scalar) >= 0 {
		t.Error("(1000, 2000) should be less than 3000")
	}

	if CompareSalary(FixedSalary(1000), RangeSalary(1000, 1000)) != 0 {
		t.Error("scalar 1000 should equal (1000, 1000)")
	}

	if CompareSalary(FixedSalary(1000), RangeSalary(1000, 2000)) >= 0 {
		t.Error("scalar 1000 should be less than (1000, 2000)")
	}

	if CompareSalary(NoSalary(), FixedSalary(1)) >= 0 {
		t.Error("unspecified should sort below any amount")
	}
}

func TestSalary_MarshalJSON(t *testing.T) {
	tests := []struct {
		salary Salary
		want   string
	}{
		{NoSalary(), "0"},
		{FixedSalary(3000), "3000"},
		{RangeSalary(1000, 2000), "[1000,2000]"},
	}

	for _, tt := range tests {
		data, err := json.Marshal(tt.salary)
		if err != nil {
			t.Fatalf("Marshal returned unexpected error: %v", err)
		}

		if string(data) != tt.want {
			t.Errorf("Marshal(%v) = %s, want %s", tt.salary, data, tt.want)
		}
	}
}

func TestSalary_String(t *testing.T) {
	if got := NoSalary().String(); got != NotSpecified {
		t.Errorf("String() = %q, want %q", got, NotSpecified)
	}

	if got := RangeSalary(1000, 2000).String(); got != "1000-2000" {
		t.Errorf("String() = %q, want 1000-2000", got)
	}
}
