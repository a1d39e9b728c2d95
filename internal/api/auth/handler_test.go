package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPasswordStrong(t *testing.T) {
	assert.True(t, isPasswordStrong("abcd1234"))
	assert.True(t, isPasswordStrong("longerPassw0rd"))

	assert.False(t, isPasswordStrong("abc123"))   // too short
	assert.False(t, isPasswordStrong("abcdefgh")) // no digit
	assert.False(t, isPasswordStrong("12345678")) // no letter
	assert.False(t, isPasswordStrong(""))
}

func TestIsEmailValid(t *testing.T) {
	assert.True(t, isEmailValid("user@example.com"))
	assert.True(t, isEmailValid("first.last+tag@sub.example.co"))

	assert.False(t, isEmailValid("userexample.com"))
	assert.False(t, isEmailValid("user@"))
	assert.False(t, isEmailValid("@example.com"))
	assert.False(t, isEmailValid("user@example"))
}

func TestGenerateTokenShape(t *testing.T) {
	a := generateToken()
	b := generateToken()

	assert.Len(t, a, 32) // 16 bytes hex-encoded
	assert.NotEqual(t, a, b)
}
