package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"

	errs "github.com/rakapradana/member-gateway/internal/domain/error"
)

func TestParseAmount(t *testing.T) {
	t.Run("should parse whole amounts", func(t *testing.T) {
		cents, err := ParseAmount("50")
		assert.NoError(t, err)
		assert.Equal(t, int64(5000), cents)
	})

	t.Run("should parse amounts with one decimal place", func(t *testing.T) {
		cents, err := ParseAmount("10.5")
		assert.NoError(t, err)
		assert.Equal(t, int64(1050), cents)
	})

	t.Run("should parse amounts with two decimal places", func(t *testing.T) {
		cents, err := ParseAmount("123.45")
		assert.NoError(t, err)
		assert.Equal(t, int64(12345), cents)
	})

	t.Run("should parse zero", func(t *testing.T) {
		cents, err := ParseAmount("0.00")
		assert.NoError(t, err)
		assert.Equal(t, int64(0), cents)
	})

	t.Run("should reject empty amounts", func(t *testing.T) {
		_, err := ParseAmount("")
		assert.Error(t, err)
		assert.Equal(t, errs.KindValidation, errs.KindOf(err))
	})

	t.Run("should reject negative amounts", func(t *testing.T) {
		_, err := ParseAmount("-10.00")
		assert.Error(t, err)
		assert.Equal(t, errs.KindValidation, errs.KindOf(err))
	})

	t.Run("should reject more than two decimal places", func(t *testing.T) {
		_, err := ParseAmount("10.123")
		assert.Error(t, err)
	})

	t.Run("should reject non-numeric input", func(t *testing.T) {
		_, err := ParseAmount("ten")
		assert.Error(t, err)
	})

	t.Run("should reject an explicit plus sign", func(t *testing.T) {
		_, err := ParseAmount("+50")
		assert.Error(t, err)
		assert.Equal(t, errs.KindValidation, errs.KindOf(err))
	})

	t.Run("should reject a bare decimal point", func(t *testing.T) {
		_, err := ParseAmount(".")
		assert.Error(t, err)
		assert.Equal(t, errs.KindValidation, errs.KindOf(err))
	})

	t.Run("should reject a fraction without an integer part", func(t *testing.T) {
		_, err := ParseAmount(".50")
		assert.Error(t, err)
	})

	t.Run("should reject a sign inside the fraction", func(t *testing.T) {
		_, err := ParseAmount("10.5-")
		assert.Error(t, err)
	})
}

func TestFormatCents(t *testing.T) {
	assert.Equal(t, "0.00", FormatCents(0))
	assert.Equal(t, "0.05", FormatCents(5))
	assert.Equal(t, "0.50", FormatCents(50))
	assert.Equal(t, "123.45", FormatCents(12345))
	assert.Equal(t, "1000.00", FormatCents(100000))
}
