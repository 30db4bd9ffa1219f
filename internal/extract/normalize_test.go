package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"1,234.56", "1234.56", true},
		{"1.234,56", "1234.56", true},
		{"120.50", "120.50", true},
		{"95", "95", true},
		{"12,5", "12.5", true},
		{"1,234", "1234", true},
		{"1.234.567", "1234567", true},
		{"(310.25)", "310.25", true},
		{"-45.00", "-45.00", true},
		{"2,645.72.", "2645.72", true},
		{" 007.50 ", "7.50", true},
		{".50", "0.50", true},
		{"-", "", false},
		{".", "", false},
		{"", "", false},
		{"12-34", "", false},
		{"1,2,3.4,5", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := normalizeAmount(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got.Text)
			}
		})
	}
}

func TestNormalizeText(t *testing.T) {
	got, ok := normalizeText("  Software \n  Engineer ")
	assert.True(t, ok)
	assert.Equal(t, "Software Engineer", got)

	_, ok = normalizeText(" \n\t")
	assert.False(t, ok)
}

func TestStandardizeDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"01-Jul-25", "01-Jul-25"},
		{"1-jul-25", "01-Jul-25"},
		{"01--Jul--25", "01-Jul-25"},
		{"31-August-2025", "31-Aug-25"},
		{"01/07/2025", "01-Jul-25"},
		{"1.7.25", "01-Jul-25"},
		{"2025-07-01", "01-Jul-25"},
		{"1st July 2025", "01-Jul-25"},
		{"31st Aug 2025", "31-Aug-25"},
		{"July 31, 2025", "31-Jul-25"},
		{"sometime soon", "sometime soon"},
		{"13/13/2025", "13/13/2025"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, standardizeDate(tt.in))
		})
	}
}

func TestMonthEnd(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"01-Aug-25", "31-Aug-25", true},
		{"15-Feb-24", "29-Feb-24", true},
		{"01-Feb-25", "28-Feb-25", true},
		{"03-Apr-25", "30-Apr-25", true},
		{"August", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := monthEnd(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
