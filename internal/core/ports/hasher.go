package ports

// SecretHasher is the pluggable credential-verification collaborator. The
// store never compares secrets itself.
type SecretHasher interface {
	Hash(secret string) (string, error)
	Verify(hash, secret string) bool
}
