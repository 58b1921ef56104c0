package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateInstituteCode(t *testing.T) {
	assert.Regexp(t, `^DPS\d{4}$`, GenerateInstituteCode("Delhi Public School", 4))
	assert.Regexp(t, `^S\d{2}$`, GenerateInstituteCode("  sunrise  ", 2))

	// names without any alphabetic word fall back to a generic prefix
	assert.Regexp(t, `^INS\d{4}$`, GenerateInstituteCode("1234 5678", 4))

	// non-positive widths use the default
	assert.Regexp(t, `^X\d{4}$`, GenerateInstituteCode("Xavier", 0))
}

func TestGenerateReferenceID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := GenerateReferenceID()
		assert.Regexp(t, `^TXN[0-9A-F]{24}$`, id)
		assert.False(t, seen[id], "duplicate reference id %s", id)
		seen[id] = true
	}
}
