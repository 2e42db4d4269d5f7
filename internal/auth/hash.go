package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// Cost 12 keeps login latency acceptable while staying expensive enough
// for offline attacks.
const bcryptCost = 12

// HashPassword returns the bcrypt hash stored on the users row.
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword reports whether plain matches the stored hash.
func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
