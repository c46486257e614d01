package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveNameFromEmail(t *testing.T) {
	assert.Equal(t, "Ada Lovelace", DeriveNameFromEmail("ada.lovelace@uni.edu"))
	assert.Equal(t, "Grace", DeriveNameFromEmail("grace@uni.edu"))
	assert.Equal(t, "Voter", DeriveNameFromEmail("@uni.edu"))
}

func TestNormalize(t *testing.T) {
	got, ok := Normalize("  Ada@Uni.EDU ")
	assert.True(t, ok)
	assert.Equal(t, "ada@uni.edu", got)

	_, ok = Normalize("not an address")
	assert.False(t, ok)

	_, ok = Normalize("Ada <ada@uni.edu>")
	assert.False(t, ok, "display-name form is rejected")
}

func TestMask(t *testing.T) {
	assert.Equal(t, "a**@uni.edu", Mask("ada@uni.edu"))
	assert.Equal(t, "***", Mask("nobody"))
}
