package security

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"
)

// HashToken hashes a caller supplied access token before it is stored.
// The token is reduced with SHA-256 first since bcrypt ignores input past
// 72 bytes.
func HashToken(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(digest(plain), bcrypt.DefaultCost)

	if err != nil {
		return "", err
	}

	return string(hash), nil
}

func digest(plain string) []byte {
	sum := sha256.Sum256([]byte(plain))
	return []byte(hex.EncodeToString(sum[:]))
}
