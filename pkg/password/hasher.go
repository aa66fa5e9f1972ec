package password

// Hasher defines the interface for password hashing implementations
type Hasher interface {
	// Hash hashes a password
	Hash(password string) (string, error)

	// Verify checks if the provided password matches the stored hash.
	// The comparison is constant-time.
	Verify(password, hashedPassword string) (bool, error)
}
