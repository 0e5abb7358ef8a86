package entity

import (
	"crypto/sha1"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignature(t *testing.T) {
	t.Run("should produce url-safe unpadded base64 of the sha1 digest", func(t *testing.T) {
		sum := sha1.Sum([]byte("OtomaX|CheckBalance|member01|123456|secret99"))
		expected := base64.RawURLEncoding.EncodeToString(sum[:])

		assert.Equal(t, expected, CheckBalanceSignature("member01", "123456", "secret99"))
	})

	t.Run("should be stable for identical input", func(t *testing.T) {
		a := Signature("OtomaX|CheckBalance|m|p|w")
		b := Signature("OtomaX|CheckBalance|m|p|w")
		assert.Equal(t, a, b)
	})

	t.Run("should differ when any field changes", func(t *testing.T) {
		base := CheckBalanceSignature("member01", "123456", "secret99")
		assert.NotEqual(t, base, CheckBalanceSignature("member02", "123456", "secret99"))
		assert.NotEqual(t, base, CheckBalanceSignature("member01", "654321", "secret99"))
		assert.NotEqual(t, base, CheckBalanceSignature("member01", "123456", "secret00"))
	})

	t.Run("should never contain padding or unsafe characters", func(t *testing.T) {
		sig := TransactionSignature("member01", "P10", "08123", "r-1", "123456", "secret99")
		assert.NotContains(t, sig, "=")
		assert.NotContains(t, sig, "+")
		assert.NotContains(t, sig, "/")
	})
}
