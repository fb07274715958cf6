package utils

import (
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
)

func TestRandomDigits(t *testing.T) {
	code := RandomDigits(4)

	assert.Len(t, code, 4)
	for _, r := range code {
		assert.True(t, unicode.IsDigit(r), "code %q must be numeric", code)
	}
}

func TestRandomDigitsDefaultsLength(t *testing.T) {
	assert.Len(t, RandomDigits(0), 4)
	assert.Len(t, RandomDigits(-3), 4)
}

func TestRandomString(t *testing.T) {
	code := RandomString(15)

	assert.Len(t, code, 15)
	for _, r := range code {
		assert.True(t, unicode.IsLetter(r) || unicode.IsDigit(r), "code %q must be alphanumeric", code)
	}
}

func TestRandomStringDefaultsLength(t *testing.T) {
	assert.Len(t, RandomString(0), 10)
}

func TestParseInt(t *testing.T) {
	assert.Equal(t, 42, ParseInt("42", -1))
	assert.Equal(t, 7, ParseInt(" 7 ", -1))
	assert.Equal(t, -1, ParseInt("", -1))
	assert.Equal(t, -1, ParseInt("abc", -1))
}
