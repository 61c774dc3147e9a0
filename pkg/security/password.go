package security

import "golang.org/x/crypto/bcrypt"

// HashPassword genera un hash bcrypt con salt aleatorio; el mismo texto
// produce un hash distinto en cada llamada.
func HashPassword(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(h), err
}

// CheckPassword devuelve false ante cualquier hash malformado, nunca error.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
