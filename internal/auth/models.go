package auth

// LoginUser is a row in login_users. PasswordHash holds a bcrypt digest; the
// plaintext never reaches storage.
type LoginUser struct {
	ID           string
	Username     string
	PasswordHash string
}
