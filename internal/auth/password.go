package auth

import "golang.org/x/crypto/bcrypt"

// DummyHash is a valid bcrypt digest of a throwaway value. Logins against an
// unknown email are verified against it so the miss burns the same bcrypt
// work as a real check and the two failures share a timing class.
const DummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// HashPassword applies a salted bcrypt transform to the plaintext. Two calls
// with the same input produce different digests.
func HashPassword(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword reports whether the plaintext matches the stored digest.
// A malformed digest counts as a mismatch.
func CheckPassword(plaintext, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext)) == nil
}
