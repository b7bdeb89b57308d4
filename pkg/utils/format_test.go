package utils

import (
	"testing"
	"time"
)

func TestFormatBRL(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "R$ 0,00"},
		{150.5, "R$ 150,50"},
		{1234.56, "R$ 1.234,56"},
		{1234567.89, "R$ 1.234.567,89"},
		{-980.25, "-R$ 980,25"},
		{-1000000, "-R$ 1.000.000,00"},
	}

	for _, tt := range tests {
		if got := FormatBRL(tt.amount); got != tt.want {
			t.Errorf("FormatBRL(%f) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{2.5, "+2.50%"},
		{0, "0.00%"},
		{-1.25, "-1.25%"},
	}

	for _, tt := range tests {
		if got := FormatPercent(tt.value); got != tt.want {
			t.Errorf("FormatPercent(%f) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestFormatResult(t *testing.T) {
	if got := FormatResult(200); got != "+R$ 200,00" {
		t.Errorf("FormatResult(200) = %q", got)
	}
	if got := FormatResult(-200); got != "-R$ 200,00" {
		t.Errorf("FormatResult(-200) = %q", got)
	}
}

func TestFormatTime(t *testing.T) {
	if got := FormatTime(time.Time{}); got != "-" {
		t.Errorf("zero time = %q, want -", got)
	}
	ts := time.Date(2024, 3, 4, 10, 30, 0, 0, time.UTC)
	if got := FormatTime(ts); got != "04/03/2024 10:30" {
		t.Errorf("FormatTime = %q", got)
	}
	if got := FormatDate(ts); got != "04/03/2024" {
		t.Errorf("FormatDate = %q", got)
	}
}
