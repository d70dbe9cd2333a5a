package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Jan", TitleCase("jan"))
	assert.Equal(t, "Jan Novák", TitleCase("jan novák"))
	assert.Equal(t, "Jan", TitleCase("JAN"))
	assert.Equal(t, "Jan", TitleCase("  jan  "))
	assert.Equal(t, "", TitleCase(""))
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Vytopený byt", Capitalize("vytopený BYT"))
	assert.Equal(t, "Kroupy", Capitalize("kroupy"))
	assert.Equal(t, "Žloutenka", Capitalize("žloutenka"))
	assert.Equal(t, "", Capitalize("   "))
}
