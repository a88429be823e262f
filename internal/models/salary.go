package models

import (
	"cmp"
	"encoding/json"
	"fmt"
)

// SalaryKind tags the shape of a normalized salary.
type SalaryKind uint8

// Salary shapes.
const (
	SalaryUnspecified SalaryKind = iota
	SalaryFixed
	SalaryRange
)

// Salary is the normalized compensation of a vacancy: a single amount, a
// (from, to) range, or unspecified. The zero value is unspecified.
type Salary struct {
	kind SalaryKind
	from int
	to   int
}

// NoSalary returns the unspecified salary.
func NoSalary() Salary {
	return Salary{}
}

// FixedSalary returns a single-amount salary. Non-positive amounts are unspecified.
func FixedSalary(amount int) Salary {
	if amount <= 0 {
		return Salary{}
	}

	return Salary{kind: SalaryFixed, from: amount, to: amount}
}

// RangeSalary returns a (from, to) salary. Bounds are swapped when from > to
// and negative bounds are clamped to zero.
func RangeSalary(from, to int) Salary {
	from = max(from, 0)
	to = max(to, 0)

	if from > to {
		from, to = to, from
	}

	if to == 0 {
		return Salary{}
	}

	return Salary{kind: SalaryRange, from: from, to: to}
}

// Kind reports the salary shape.
func (s Salary) Kind() SalaryKind {
	return s.kind
}

// IsSpecified is false for the zero-sentinel.
func (s Salary) IsSpecified() bool {
	return s.kind != SalaryUnspecified
}

// Bounds returns the salary as an interval. A fixed amount v is (v, v) and an
// unspecified salary is (0, 0).
func (s Salary) Bounds() (from, to int) {
	return s.from, s.to
}

// String renders the salary for console output.
func (s Salary) String() string {
	switch s.kind {
	case SalaryFixed:
		return fmt.Sprintf("%d", s.from)
	case SalaryRange:
		return fmt.Sprintf("%d-%d", s.from, s.to)
	default:
		return NotSpecified
	}
}

// MarshalJSON encodes a fixed amount as a number, a range as a two-element
// array and the unspecified salary as 0.
func (s Salary) MarshalJSON() ([]byte, error) {
	switch s.kind {
	case SalaryFixed:
		return json.Marshal(s.from)
	case SalaryRange:
		return json.Marshal([2]int{s.from, s.to})
	default:
		return []byte("0"), nil
	}
}

// CompareSalary orders two salaries. Both sides are treated as intervals
// (see Bounds) and compared lexicographically.
func CompareSalary(a, b Salary) int {
	if c := cmp.Compare(a.from, b.from); c != 0 {
		return c
	}

	return cmp.Compare(a.to, b.to)
}
