package utils

import (
	crand "crypto/rand"
	"math/big"
	"math/rand"

	"github.com/google/uuid"
)

const (
	// Ambiguous characters (0/O, 1/I) are excluded so codes survive being
	// read out loud across a living room.
	sessionCodeChars  = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	sessionCodeLength = 6
)

// NewSessionCode creates a short join code for a game session.
func NewSessionCode() string {
	code := make([]byte, sessionCodeLength)
	for i := range code {
		n, err := crand.Int(crand.Reader, big.NewInt(int64(len(sessionCodeChars))))
		if err != nil {
			// fallback to math/rand if crypto fails
			code[i] = sessionCodeChars[rand.Intn(len(sessionCodeChars))]
			continue
		}
		code[i] = sessionCodeChars[n.Int64()]
	}
	return string(code)
}

// NewPlayerID returns a fresh player identifier.
func NewPlayerID() string {
	return uuid.NewString()
}
