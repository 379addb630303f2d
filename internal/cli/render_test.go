package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mfleet/ecotally/internal/engine"
)

func TestFormatKg(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.00"},
		{2.1, "2.10"},
		{10.456, "10.46"},
		{1234.5, "1,234.50"},
		{1000000, "1,000,000.00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatKg(tt.in))
	}
}

func TestFormatRatio(t *testing.T) {
	assert.Equal(t, "0.95x", formatRatio(0.95))
	assert.Equal(t, "1.70x", formatRatio(1.7))
}

func TestClassBadgePlainWhenPiped(t *testing.T) {
	// A bytes.Buffer is not a terminal: no ANSI escapes.
	var buf bytes.Buffer
	for _, class := range []engine.Classification{
		engine.ClassExcellent, engine.ClassGood, engine.ClassAverage, engine.ClassPoor, engine.ClassCritical,
	} {
		badge := classBadge(&buf, class)
		assert.Equal(t, class.String(), badge)
	}
}
