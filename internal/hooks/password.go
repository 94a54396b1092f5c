package hooks

import "golang.org/x/crypto/bcrypt"

// bcryptHash is the default HashPassword strategy, using bcrypt at the
// library's default cost.
func bcryptHash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// bcryptVerify is the default VerifyPassword strategy.
func bcryptVerify(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
