package service

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// secretBytes is the amount of randomness in a token secret (256 bits).
const secretBytes = 32

const tokenSeparator = "|"

// generateToken returns a new public id, the plaintext "<id>|<secret>" and the
// hash of the secret that gets persisted.
func generateToken() (id, plainText, hash string, err error) {
	buf := make([]byte, secretBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", "", "", fmt.Errorf("generate token secret: %w", err)
	}
	secret := base64.RawURLEncoding.EncodeToString(buf)
	id = uuid.NewString()
	return id, id + tokenSeparator + secret, hashSecret(secret), nil
}

// parseToken splits a presented plaintext into its id and secret parts.
func parseToken(plainText string) (id, secret string, ok bool) {
	id, secret, found := strings.Cut(plainText, tokenSeparator)
	if !found || secret == "" {
		return "", "", false
	}
	if _, err := uuid.Parse(id); err != nil {
		return "", "", false
	}
	return id, secret, true
}

func hashSecret(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}

func hashesEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
