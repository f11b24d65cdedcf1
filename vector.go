package ecbprobe

import (
	"errors"
	"time"

	bstd "github.com/deneonet/benc/std"
	"github.com/mxmauro/ecbprobe/crypto/ciphers"
	"github.com/mxmauro/ecbprobe/util"
)

// -----------------------------------------------------------------------------

const (
	vectorVersion = 1

	phpReferenceKeyHex        = "00000000000000000000000000000000"
	phpReferencePlaintextHex  = "55555555555555555555555555555555"
	phpReferenceCiphertextHex = "9adae054f63dfaff5ea18e45edf6ea6f"
)

// -----------------------------------------------------------------------------

// Vector is a captured cross-implementation test case: the inputs given to another
// implementation and the ciphertext it produced.
type Vector struct {
	Name       string
	Engine     string
	Key        []byte
	Plaintext  []byte
	Reference  []byte
	CapturedAt time.Time
}

// -----------------------------------------------------------------------------

// NewVectorFromHex builds a vector from hex literals.
func NewVectorFromHex(name, keyHex, plaintextHex, referenceHex string) (*Vector, error) {
	if len(name) == 0 {
		return nil, errors.New("vector name cannot be empty")
	}

	key, err := DecodeHex(keyHex)
	if err != nil {
		return nil, util.NewExtendedError(err, "invalid key")
	}
	plaintext, err := DecodeHex(plaintextHex)
	if err != nil {
		return nil, util.NewExtendedError(err, "invalid plaintext")
	}
	reference, err := DecodeHex(referenceHex)
	if err != nil {
		return nil, util.NewExtendedError(err, "invalid reference ciphertext")
	}

	// Done
	return &Vector{
		Name:      name,
		Engine:    ciphers.EngineAesEcb,
		Key:       key,
		Plaintext: plaintext,
		Reference: reference,
	}, nil
}

// PHPReferenceVector returns the AES-128-ECB case captured from the PHP implementation: an
// all-zero key and sixteen 0x55 bytes.
func PHPReferenceVector() *Vector {
	v, err := NewVectorFromHex("php-aes-128-ecb", phpReferenceKeyHex, phpReferencePlaintextHex, phpReferenceCiphertextHex)
	if err != nil {
		panic(err) // literals are constant
	}
	return v
}

// DeserializeVector decodes a buffer produced by Vector.Serialize.
func DeserializeVector(buf []byte) (*Vector, error) {
	var capturedAt int64

	bufSize := len(buf)
	if bufSize <= bstd.SizeUint16() {
		return nil, ErrInvalidStoredData
	}

	v := Vector{}

	// Deserialize data.
	ofs, version, err := bstd.UnmarshalUint16(0, buf)
	if err != nil {
		return nil, ErrInvalidStoredData
	}
	switch version {
	case 1:
		ofs, v.Name, err = bstd.UnmarshalString(ofs, buf)
		if err != nil {
			return nil, ErrInvalidStoredData
		}
		ofs, v.Engine, err = bstd.UnmarshalString(ofs, buf)
		if err != nil {
			return nil, ErrInvalidStoredData
		}
		ofs, v.Key, err = bstd.UnmarshalBytesCopied(ofs, buf)
		if err != nil {
			return nil, ErrInvalidStoredData
		}
		ofs, v.Plaintext, err = bstd.UnmarshalBytesCopied(ofs, buf)
		if err != nil {
			return nil, ErrInvalidStoredData
		}
		ofs, v.Reference, err = bstd.UnmarshalBytesCopied(ofs, buf)
		if err != nil {
			return nil, ErrInvalidStoredData
		}
		ofs, capturedAt, err = bstd.UnmarshalInt64(ofs, buf)
		if err != nil {
			return nil, ErrInvalidStoredData
		}
		if capturedAt != 0 {
			v.CapturedAt = time.Unix(capturedAt, 0).UTC()
		}

	default:
		return nil, errors.New("unsupported vector version")
	}

	// Check if we reached the end of the buffer.
	if ofs != len(buf) {
		return nil, ErrInvalidStoredData
	}

	if len(v.Name) == 0 {
		return nil, ErrInvalidStoredData
	}
	if len(v.Engine) > 0 && !ciphers.IsEngineSupported(v.Engine) {
		return nil, ErrEngineNotSupported
	}

	// Done
	return &v, nil
}

// Serialize encodes the vector in a versioned binary form.
func (v *Vector) Serialize() []byte {
	var capturedAt int64

	if !v.CapturedAt.IsZero() {
		capturedAt = v.CapturedAt.Unix()
	}

	bufSize := bstd.SizeUint16() +
		bstd.SizeString(v.Name) +
		bstd.SizeString(v.Engine) +
		bstd.SizeBytes(v.Key) +
		bstd.SizeBytes(v.Plaintext) +
		bstd.SizeBytes(v.Reference) +
		bstd.SizeUint64()
	buf := make([]byte, bufSize)

	ofs := bstd.MarshalUint16(0, buf, vectorVersion)
	ofs = bstd.MarshalString(ofs, buf, v.Name)
	ofs = bstd.MarshalString(ofs, buf, v.Engine)
	ofs = bstd.MarshalBytes(ofs, buf, v.Key)
	ofs = bstd.MarshalBytes(ofs, buf, v.Plaintext)
	ofs = bstd.MarshalBytes(ofs, buf, v.Reference)
	_ = bstd.MarshalInt64(ofs, buf, capturedAt)

	// Done
	return buf
}

// Zeroize wipes the key and payloads of the vector.
func (v *Vector) Zeroize() {
	util.SafeZeroMem(v.Key)
	util.SafeZeroMem(v.Plaintext)
	util.SafeZeroMem(v.Reference)
}
