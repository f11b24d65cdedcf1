package ecbprobe

import (
	"errors"

	"github.com/mxmauro/ecbprobe/crypto/ciphers"
	"github.com/mxmauro/ecbprobe/crypto/ciphers/aes_ecb"
)

// -----------------------------------------------------------------------------

var (
	// ErrDecode is matched by every *DecodeError returned by DecodeHex.
	ErrDecode = errors.New("invalid hex literal")

	// ErrInvalidKeyLength is returned when the key is not 16, 24 or 32 bytes long.
	ErrInvalidKeyLength = aes_ecb.ErrInvalidKeyLength

	// ErrInvalidBlockLength is returned when the input is not a multiple of the block size.
	ErrInvalidBlockLength = aes_ecb.ErrInvalidBlockLength

	// ErrEngineNotSupported is returned by New when the requested engine is unknown.
	ErrEngineNotSupported = ciphers.ErrEngineNotSupported

	ErrInvalidStoredData = errors.New("invalid stored data")
	ErrNotFound          = errors.New("not found")
)
