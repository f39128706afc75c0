package adapter

// PasswordService hashes and checks student passwords. Hashes are salted,
// so hashing the same password twice gives different strings.
type PasswordService interface {
	HashPassword(password string) (string, error)

	// VerifyPassword returns nil only when password matches hashedPassword.
	VerifyPassword(hashedPassword, password string) error
}
