package usecases

// TokenIssuer mints access tokens for authenticated users.
type TokenIssuer interface {
	Issue(userID uint, email, role string) (token string, expiresIn int64, err error)
}

// PasswordHasher abstracts bcrypt so use cases stay testable.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) error
}
