package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "Austin, TX", CleanText("  Austin, \n\tTX  "))
	assert.Equal(t, "", CleanText(" \n "))
}

func TestFoldAccents(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "sao paulo", FoldAccents("São Paulo"))
	assert.Equal(t, "montreal, quebec", FoldAccents("Montréal, Québec"))
}

func TestDisplayName(t *testing.T) {
	t.Parallel()
	tests := map[string]string{
		"acme-robotics": "Acme Robotics",
		"globex_corp":   "Globex Corp",
		"hooli":         "Hooli",
		"  ":            "",
	}
	for in, want := range tests {
		assert.Equal(t, want, DisplayName(in), in)
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "abc", Truncate("abc", 3))
	assert.Equal(t, "ab...", Truncate("abc", 2))
	assert.Equal(t, "é...", Truncate("éé", 1), "counts runes, not bytes")
	assert.Equal(t, "abc", Truncate("abc", 0))
}

func TestNormalizeLocation(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "Austin, TX", NormalizeLocation("Location: Austin, TX, austin"))
	assert.Equal(t, "New York, NY", NormalizeLocation("\n New York ,  NY \n"))
	assert.Equal(t, "", NormalizeLocation("  "))
}
