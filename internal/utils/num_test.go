package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseQty(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"3", 3, true},
		{"1,234", 1234, true},
		{"1 234.5", 1234.5, true},
		{"１２３", 123, true},
		{"４．５", 4.5, true},
		{"(3)", -3, true},
		{"-2", -2, true},
		{" 1 000", 1000, true},
		{"", 0, false},
		{"個", 0, false},
		{"-", 0, false},
	}
	for _, tc := range cases {
		got, ok := ParseQty(tc.in)
		assert.Equal(t, tc.ok, ok, "input %q", tc.in)
		if tc.ok {
			assert.Equal(t, tc.want, got, "input %q", tc.in)
		}
	}
}
