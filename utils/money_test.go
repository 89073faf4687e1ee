package utils

import "testing"

func TestFormatCurrency(t *testing.T) {
	cases := []struct {
		amount   float64
		decimals int
		want     string
	}{
		{0, 2, "$0.00"},
		{5, 2, "$5.00"},
		{999.5, 2, "$999.50"},
		{1000, 2, "$1,000.00"},
		{12345.678, 2, "$12,345.68"},
		{1234567, 0, "$1,234,567"},
		{8299, 0, "$8,299"},
		{-1500.25, 2, "-$1,500.25"},
	}
	for _, tc := range cases {
		if got := FormatCurrency(tc.amount, tc.decimals); got != tc.want {
			t.Errorf("FormatCurrency(%v, %d) = %q, want %q", tc.amount, tc.decimals, got, tc.want)
		}
	}
}
