package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// DefaultMaxLineSize bounds a single command line.
	DefaultMaxLineSize = 4096
	// EnvMaxLineSize overrides DefaultMaxLineSize.
	EnvMaxLineSize = "TOURGUIDE_MAX_LINE_SIZE"
)

var (
	ErrLineTooLong = errors.New("line exceeds maximum allowed size")
	ErrInvalidUTF8 = errors.New("line contains invalid UTF-8 sequences")
)

// sanitizeLine rejects oversized or malformed command lines and strips
// control characters other than tab.
func sanitizeLine(line string) (string, error) {
	if limit := maxLineSize(); len(line) > limit {
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrLineTooLong, len(line), limit)
	}
	if !utf8.ValidString(line) {
		return "", ErrInvalidUTF8
	}

	if strings.IndexFunc(line, isUnsafeControl) < 0 {
		return line, nil
	}
	var b strings.Builder
	b.Grow(len(line))
	for _, r := range line {
		if !isUnsafeControl(r) {
			b.WriteRune(r)
		}
	}
	return b.String(), nil
}

func isUnsafeControl(r rune) bool {
	return unicode.IsControl(r) && r != '\t'
}

func maxLineSize() int {
	if val := os.Getenv(EnvMaxLineSize); val != "" {
		if size, err := strconv.Atoi(val); err == nil && size > 0 {
			return size
		}
	}
	return DefaultMaxLineSize
}
