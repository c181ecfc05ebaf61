package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "truck ...", Truncate("truck broke down", 9))
	assert.Equal(t, "...", Truncate("anything", 2))
	assert.Equal(t, "ba...", Truncate("barang pindahan", 5))
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "driver did not show up", SanitizeString("  driver\tdid\x00not \n show up "))
	assert.Equal(t, "", SanitizeString("\x01\x02"))
}

func TestMaskPhoneNumber(t *testing.T) {
	assert.Equal(t, "*********4567", MaskPhoneNumber("+62 812-1234-4567"))
	assert.Equal(t, "123", MaskPhoneNumber("123"))
}
