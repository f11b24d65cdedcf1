package aes_ecb

import (
	"crypto/aes"
	"crypto/cipher"
	"errors"
	"fmt"

	"github.com/mxmauro/ecbprobe/models"
	"github.com/mxmauro/ecbprobe/util"
)

// -----------------------------------------------------------------------------

const (
	// BlockSize is the AES block size in bytes.
	BlockSize = aes.BlockSize
)

// -----------------------------------------------------------------------------

var (
	// ErrInvalidKeyLength is returned when the key is not 16, 24 or 32 bytes long.
	ErrInvalidKeyLength = errors.New("invalid key length")

	// ErrInvalidBlockLength is returned when the input is not a multiple of the block size.
	ErrInvalidBlockLength = errors.New("input not full blocks")
)

// -----------------------------------------------------------------------------

type aesEcbCipher struct {
	keyLen int
	enc    cipher.BlockMode
	dec    cipher.BlockMode
}

// ecbMode runs the underlying block cipher over every block independently. There is no
// chaining and no IV.
type ecbMode struct {
	b       cipher.Block
	decrypt bool
}

// -----------------------------------------------------------------------------

// NewEncrypter returns a cipher.BlockMode that encrypts in electronic codebook mode.
func NewEncrypter(b cipher.Block) cipher.BlockMode {
	return &ecbMode{b: b}
}

// NewDecrypter returns a cipher.BlockMode that decrypts in electronic codebook mode.
func NewDecrypter(b cipher.Block) cipher.BlockMode {
	return &ecbMode{b: b, decrypt: true}
}

// BlockSize returns the mode's block size.
func (m *ecbMode) BlockSize() int {
	return m.b.BlockSize()
}

// CryptBlocks transforms src into dst. As required by cipher.BlockMode, it panics if src is
// not made of full blocks or dst is shorter than src.
func (m *ecbMode) CryptBlocks(dst, src []byte) {
	bs := m.b.BlockSize()
	if len(src)%bs != 0 {
		panic("aes_ecb: input not full blocks")
	}
	if len(dst) < len(src) {
		panic("aes_ecb: output smaller than input")
	}

	for len(src) > 0 {
		if m.decrypt {
			m.b.Decrypt(dst[:bs], src[:bs])
		} else {
			m.b.Encrypt(dst[:bs], src[:bs])
		}
		src = src[bs:]
		dst = dst[bs:]
	}
}

// -----------------------------------------------------------------------------

// NewFromKey creates a new AES-ECB cipher object from the given key. AES-128, AES-192 and
// AES-256 are selected by the key length.
func NewFromKey(key []byte) (models.Cipher, error) {
	switch len(key) {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d bytes", ErrInvalidKeyLength, len(key))
	}

	// Create the AES cipher.
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, util.NewExtendedError(err, "failed to create cipher")
	}

	// Done.
	return &aesEcbCipher{
		keyLen: len(key),
		enc:    NewEncrypter(block),
		dec:    NewDecrypter(block),
	}, nil
}

// KeyLen returns the length of the key used by the AES-ECB cipher.
func (c *aesEcbCipher) KeyLen() int {
	return c.keyLen
}

// BlockSize returns the AES block size.
func (c *aesEcbCipher) BlockSize() int {
	return BlockSize
}

// Encrypt encrypts the given block aligned plaintext. No padding is applied.
func (c *aesEcbCipher) Encrypt(plaintext []byte) ([]byte, error) {
	return crypt(c.enc, plaintext)
}

// Decrypt decrypts the given block aligned ciphertext. No padding is removed.
func (c *aesEcbCipher) Decrypt(ciphertext []byte) ([]byte, error) {
	return crypt(c.dec, ciphertext)
}

// -----------------------------------------------------------------------------

// EncryptECB encrypts plaintext with key in a single call.
func EncryptECB(key, plaintext []byte) ([]byte, error) {
	c, err := NewFromKey(key)
	if err != nil {
		return nil, err
	}
	return c.Encrypt(plaintext)
}

// DecryptECB decrypts ciphertext with key in a single call.
func DecryptECB(key, ciphertext []byte) ([]byte, error) {
	c, err := NewFromKey(key)
	if err != nil {
		return nil, err
	}
	return c.Decrypt(ciphertext)
}

func crypt(mode cipher.BlockMode, src []byte) ([]byte, error) {
	if len(src)%BlockSize != 0 {
		return nil, fmt.Errorf("%w: %d bytes is not a multiple of %d", ErrInvalidBlockLength, len(src), BlockSize)
	}

	dst := make([]byte, len(src))
	mode.CryptBlocks(dst, src)
	return dst, nil
}
