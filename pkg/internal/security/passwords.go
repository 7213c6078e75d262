package security

import "golang.org/x/crypto/bcrypt"

const passwordHashCost = 10

// HashPassword derives a salted one-way digest from a plain password.
func HashPassword(password string) (string, error) {
	data, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// VerifyPassword reports whether the password matches the stored digest.
// It never returns an error to the caller; any mismatch or malformed digest
// is treated as a failed verification.
func VerifyPassword(password, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)) == nil
}
