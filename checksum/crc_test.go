package checksum

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateVerifyRoundTrip(t *testing.T) {
	data := []byte("session directory sector payload")

	sum := Generate(data)

	assert.True(t, Verify(sum, data))
}

func TestVerifyDetectsCorruption(t *testing.T) {
	data := []byte("session directory sector payload")
	sum := Generate(data)

	corrupted := append([]byte{}, data...)
	corrupted[0] ^= 0xFF

	assert.False(t, Verify(sum, corrupted))
}

func TestGenerateEmpty(t *testing.T) {
	assert.True(t, Verify(Generate(nil), nil))
}
