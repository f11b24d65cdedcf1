package models

// -----------------------------------------------------------------------------

// Cipher is the minimal interface that must be implemented by all probe engines.
type Cipher interface {
	// KeyLen returns the length of the key the cipher was created with.
	KeyLen() int
	// BlockSize returns the size in bytes of a single cipher block.
	BlockSize() int

	// Encrypt encrypts the given plaintext. The input must be block aligned.
	Encrypt(plaintext []byte) ([]byte, error)
	// Decrypt decrypts the given ciphertext. The input must be block aligned.
	Decrypt(ciphertext []byte) ([]byte, error)
}
