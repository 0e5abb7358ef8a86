package core

// TokenCodec issues and verifies signed, time-bound access tokens carrying
// a user ID as subject.
type TokenCodec interface {
	// Issue returns a signed token for the given user. Fails when signing
	// material is absent from configuration.
	Issue(userID uint64) (string, error)
	// Verify parses and validates a token, returning the embedded user ID
	Verify(token string) (uint64, error)
}
