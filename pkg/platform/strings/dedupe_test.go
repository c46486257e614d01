package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeAndTrim(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{name: "nil", input: nil, expected: nil},
		{name: "empty", input: []string{}, expected: []string{}},
		{name: "broker list with padding", input: []string{" k1:9092", "k2:9092 "}, expected: []string{"k1:9092", "k2:9092"}},
		{name: "repeats keep first position", input: []string{"k2:9092", "k1:9092", "k2:9092"}, expected: []string{"k2:9092", "k1:9092"}},
		{name: "blank entries from trailing comma", input: []string{"k1:9092", "", "  "}, expected: []string{"k1:9092"}},
		{name: "case is significant", input: []string{"Host:1", "host:1"}, expected: []string{"Host:1", "host:1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DedupeAndTrim(tt.input))
		})
	}
}
