package entity

import (
	"strconv"
	"strings"

	errs "github.com/rakapradana/member-gateway/internal/domain/error"
)

// Balances are stored as int64 cents and rendered as strings with exactly
// two decimal places. String parsing avoids float round-trips entirely.

// ParseAmount converts a decimal string like "50", "50.1" or "50.00" to
// cents. Only plain digits are accepted: no sign, no exponent, and at most
// two decimal places.
func ParseAmount(amount string) (int64, error) {
	amount = strings.TrimSpace(amount)
	if amount == "" {
		return 0, errs.NewValidation("amount", "amount cannot be empty")
	}
	if strings.HasPrefix(amount, "-") {
		return 0, errs.NewValidation("amount", "amount cannot be negative")
	}

	intPart, fracPart, hasFrac := strings.Cut(amount, ".")
	if !isDigits(intPart) {
		return 0, errs.NewValidation("amount", "invalid amount format")
	}

	digits := intPart + "00"
	if hasFrac {
		switch len(fracPart) {
		case 0:
		case 1:
			if !isDigits(fracPart) {
				return 0, errs.NewValidation("amount", "invalid amount format")
			}
			digits = intPart + fracPart + "0"
		case 2:
			if !isDigits(fracPart) {
				return 0, errs.NewValidation("amount", "invalid amount format")
			}
			digits = intPart + fracPart
		default:
			return 0, errs.NewValidation("amount", "maximum 2 decimal places allowed")
		}
	}

	cents, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, errs.NewValidation("amount", "invalid amount format")
	}
	return cents, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// FormatCents renders cents as a decimal string with two places,
// e.g. 1015 -> "10.15", 5 -> "0.05".
func FormatCents(cents int64) string {
	negative := cents < 0
	if negative {
		cents = -cents
	}

	s := strconv.FormatInt(cents, 10)
	for len(s) < 3 {
		s = "0" + s
	}

	out := s[:len(s)-2] + "." + s[len(s)-2:]
	if negative {
		return "-" + out
	}
	return out
}
