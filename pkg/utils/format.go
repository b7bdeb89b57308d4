// Package utils provides shared utility functions.
package utils

import (
	"fmt"
	"strings"
	"time"
)

// FormatBRL formats a number in Brazilian currency format
// (thousands separated by dots, decimal comma).
func FormatBRL(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	str := fmt.Sprintf("%.2f", amount)
	parts := strings.Split(str, ".")
	intPart := groupThousands(parts[0])
	result := "R$ " + intPart + "," + parts[1]
	if negative {
		result = "-" + result
	}
	return result
}

// groupThousands inserts dot separators every three digits from the right.
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	result := s[n-3:]
	s = s[:n-3]
	for len(s) > 3 {
		result = s[len(s)-3:] + "." + result
		s = s[:len(s)-3]
	}
	return s + "." + result
}

// FormatPercent formats a percentage with sign.
func FormatPercent(value float64) string {
	sign := ""
	if value > 0 {
		sign = "+"
	}
	return fmt.Sprintf("%s%.2f%%", sign, value)
}

// FormatResult formats a trade result with an explicit sign.
func FormatResult(result float64) string {
	formatted := FormatBRL(result)
	if result > 0 {
		return "+" + formatted
	}
	return formatted
}

// FormatDate formats a date in the journal's display format.
func FormatDate(t time.Time) string {
	return t.Format("02/01/2006")
}

// FormatTime formats a timestamp with minute precision.
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("02/01/2006 15:04")
}
