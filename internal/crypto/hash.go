package crypto

import "golang.org/x/crypto/bcrypt"

// hashCost is the bcrypt work factor. 10 keeps a single hash around
// 50-100ms on commodity hardware, enough to make offline brute force
// expensive without stalling interactive login.
const hashCost = 10

// HashPassword derives a salted bcrypt digest from a raw password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether the raw password matches the stored
// digest. bcrypt's own comparison is constant-time over the derived key;
// raw strings are never compared directly.
func VerifyPassword(password, encodedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password)) == nil
}
