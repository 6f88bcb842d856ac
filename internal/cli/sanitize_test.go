package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeLine(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{"Plain", "set user.plan=\"pro\"", "set user.plan=\"pro\"", nil},
		{"Keeps Tabs", "show\tintro", "show\tintro", nil},
		{"Strips ANSI Escape", "set name=\x1b[31mred", "set name=[31mred", nil},
		{"Strips NUL And BEL", "next\x00\x07", "next", nil},
		{"Strips Carriage Return", "next\r", "next", nil},
		{"Invalid UTF-8", "set x=\xff", "", ErrInvalidUTF8},
		{"Too Long", strings.Repeat("a", DefaultMaxLineSize+1), "", ErrLineTooLong},
		{"Exact Limit", strings.Repeat("a", DefaultMaxLineSize), strings.Repeat("a", DefaultMaxLineSize), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := sanitizeLine(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSanitizeLine_EnvLimit(t *testing.T) {
	t.Setenv(EnvMaxLineSize, "8")

	_, err := sanitizeLine("123456789")
	assert.ErrorIs(t, err, ErrLineTooLong)

	_, err = sanitizeLine("12345678")
	assert.NoError(t, err)
}
