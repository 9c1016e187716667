package auth

import "golang.org/x/crypto/bcrypt"

// Hasher hashes and compares passwords with bcrypt. The pepper is appended to
// the plaintext before hashing, so a leaked database alone is not enough to
// mount an offline attack.
type Hasher struct {
	pepper string
	cost   int
}

// NewHasher constructs a Hasher. Cost outside bcrypt's valid range falls back
// to the library default.
func NewHasher(pepper string, cost int) Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return Hasher{pepper: pepper, cost: cost}
}

// Hash returns the bcrypt hash of the peppered password.
func (h Hasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password+h.pepper), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Compare reports whether the peppered password matches the stored hash.
func (h Hasher) Compare(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password+h.pepper)) == nil
}
