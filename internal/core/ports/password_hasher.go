package ports

// PasswordHasher is the one-way salted hashing collaborator. Plaintext never
// reaches storage; only the hash it produces does.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}
