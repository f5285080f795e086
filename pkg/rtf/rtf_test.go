package rtf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"plain group", `{\rtf1\ansi Hello world.}`, "Hello world."},
		{"par becomes newline", `{\rtf1 first\par second}`, "first\nsecond"},
		{"formatting stripped", `{\rtf1 {\b bold} and {\i italic}}`, "bold and italic"},
		{"hex escape", `{\rtf1 caf\'e9}`, "café"},
		{"escaped braces", `{\rtf1 a \{literal\} b}`, "a {literal} b"},
		{"font table stripped", `{\rtf1{\fonttbl{\f0 Arial;}}body text}`, "Arial;body text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, ToText(tt.input))
		})
	}
}
