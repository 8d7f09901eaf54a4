package pkg

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/google/uuid"
)

const gameIDLength = 6

// game IDs are short join codes players type or share by link
const gameIDAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateGameID returns a short human-shareable game code.
func GenerateGameID() (string, error) {
	code := make([]byte, gameIDLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(gameIDAlphabet))))
		if err != nil {
			return "", fmt.Errorf("failed to generate game id: %w", err)
		}
		code[i] = gameIDAlphabet[n.Int64()]
	}

	return string(code), nil
}

// NewPlayerID returns a unique player identifier.
func NewPlayerID() string {
	return uuid.NewString()
}
