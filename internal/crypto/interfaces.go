package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/password_hasher_mock.go -package=mock

// PasswordHasher turns account passwords into one-way digests and checks
// presented passwords against them.
//
// Hash is salted per call, so hashing the same plaintext twice yields two
// different digests which both verify. Verify never fails loudly: malformed
// digests and mismatches simply report false.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, digest string) bool
}
