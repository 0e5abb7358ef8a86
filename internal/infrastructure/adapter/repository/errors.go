package repository

import (
	"strings"
)

// Postgres reports constraint and lock failures with driver-specific text,
// so classification is by substring rather than error type.

func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "duplicate key") ||
		strings.Contains(err.Error(), "UNIQUE constraint") ||
		strings.Contains(err.Error(), "Duplicate entry")
}

// duplicateKeyErrorMentions reports whether the constraint text names the
// given column, e.g. postgres' `users_email_key` or `idx_users_email`.
func duplicateKeyErrorMentions(err error, column string) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), column)
}

func isLockError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "deadlock") ||
		strings.Contains(err.Error(), "lock wait timeout") ||
		strings.Contains(err.Error(), "could not serialize access") ||
		strings.Contains(err.Error(), "serialization failure")
}
