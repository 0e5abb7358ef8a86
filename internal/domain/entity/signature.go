package entity

import (
	"crypto/sha1"
	"encoding/base64"
	"fmt"
)

// Upstream signatures are SHA-1 digests encoded as url-safe base64 with
// padding stripped. The pipe-joined input formats are fixed by the
// upstream wire protocol and must not change.

// Signature hashes the given data in the upstream's signature format
func Signature(data string) string {
	sum := sha1.Sum([]byte(data))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

// CheckBalanceSignature builds the signature a member sends with a
// balance inquiry.
func CheckBalanceSignature(memberName, pin, password string) string {
	return Signature(fmt.Sprintf("OtomaX|CheckBalance|%s|%s|%s", memberName, pin, password))
}

// TransactionSignature builds the signature for a transaction request
func TransactionSignature(memberName, product, dest, refID, pin, password string) string {
	return Signature(fmt.Sprintf("OtomaX|%s|%s|%s|%s|%s|%s", memberName, product, dest, refID, pin, password))
}
