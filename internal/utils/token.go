package utils // package utils provides helper functions for token creation and hashing

import (
	"crypto/rand"  // secure random number generation
	"encoding/hex" // hex encoding of the random bytes
	"time"         // expiry computation
)

// SessionToken represents an opaque login token together with its
// expiry. The Raw field is handed to the client inside the auth
// cookie; the session row persisted alongside it is the source of
// truth for validity. Tokens carry no structure and are not signed,
// so possession of the raw value alone proves nothing without a
// matching, unexpired row.
type SessionToken struct {
	Raw string    // raw token string returned to the client
	Exp time.Time // UTC expiration time
}

// NewSessionToken returns a cryptographically secure random token and
// its expiration time. The ttlDays parameter controls how many days
// the session is valid; the cookie issued with it must use the same
// lifetime so neither outlives the other.
func NewSessionToken(ttlDays int) (SessionToken, error) {
	// 48 random bytes -> 96 hex chars; globally unique for any practical purpose.
	raw, err := randomHex(48)
	if err != nil {
		return SessionToken{}, err
	}
	return SessionToken{
		Raw: raw,
		Exp: time.Now().UTC().Add(time.Duration(ttlDays) * 24 * time.Hour),
	}, nil
}

// randomHex returns a hex-encoded string generated from n bytes of
// cryptographically secure random data.
func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
