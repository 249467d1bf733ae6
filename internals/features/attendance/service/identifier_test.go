package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeStudentID(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"S00123", "S00123"},
		{"  S00123  ", "S00123"},
		{"S00123|Arjun|5", "S00123"},
		{"S00123 |Arjun", "S00123"},
		{"T00001|Lakshmi|Teacher|extra|fields", "T00001"},
	}
	for _, tc := range cases {
		got, err := NormalizeStudentID(tc.raw)
		require.NoError(t, err, "raw=%q", tc.raw)
		assert.Equal(t, tc.want, got, "raw=%q", tc.raw)
	}
}

func TestNormalizeStudentIDInvalid(t *testing.T) {
	for _, raw := range []string{"", "   ", "|", "|Arjun|5", "   |x"} {
		_, err := NormalizeStudentID(raw)
		var invalid *InvalidIdentifierError
		require.ErrorAs(t, err, &invalid, "raw=%q", raw)
		assert.Equal(t, "Invalid Student ID format", err.Error())
	}
}
