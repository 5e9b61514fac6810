package util

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf, "snmp", "ColorBlue")

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.NotEmpty(t, lines)
	for _, line := range lines {
		assert.True(t, strings.HasPrefix(line, ColorBlue))
		assert.True(t, strings.HasSuffix(line, ColorReset))
	}
}

func TestColorize(t *testing.T) {
	assert.Equal(t, ColorGreen+"ok"+ColorReset, Colorize("ColorGreen", "ok"))
	assert.Equal(t, ColorReset+"x"+ColorReset, Colorize("nope", "x"))
}
