package ecbprobe_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/mxmauro/ecbprobe"
	"github.com/mxmauro/ecbprobe/crypto/ciphers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPHPReferenceVector(t *testing.T) {
	v := ecbprobe.PHPReferenceVector()

	assert.Equal(t, "php-aes-128-ecb", v.Name)
	assert.Equal(t, ciphers.EngineAesEcb, v.Engine)
	assert.Equal(t, make([]byte, 16), v.Key)
	assert.Equal(t, bytes.Repeat([]byte{0x55}, 16), v.Plaintext)
	assert.Equal(t, "9adae054f63dfaff5ea18e45edf6ea6f", ecbprobe.EncodeHex(v.Reference))

	t.Log("Verifying every call returns an independent copy")
	v.Key[0] = 1
	assert.Equal(t, byte(0), ecbprobe.PHPReferenceVector().Key[0])
}

func TestNewVectorFromHexErrors(t *testing.T) {
	_, err := ecbprobe.NewVectorFromHex("", "00", "00", "00")
	assert.Error(t, err)

	_, err = ecbprobe.NewVectorFromHex("bad-key", "0", "00", "00")
	assert.ErrorIs(t, err, ecbprobe.ErrDecode)
	assert.Contains(t, err.Error(), "invalid key")

	_, err = ecbprobe.NewVectorFromHex("bad-plaintext", "00", "5555555555555555555555555555555555", "0g")
	assert.ErrorIs(t, err, ecbprobe.ErrDecode)
	assert.NotContains(t, err.Error(), "invalid plaintext")

	_, err = ecbprobe.NewVectorFromHex("bad-reference", "00", "00", "xyz")
	assert.ErrorIs(t, err, ecbprobe.ErrDecode)
	assert.Contains(t, err.Error(), "invalid reference ciphertext")
}

func TestVectorSerialization(t *testing.T) {
	v := ecbprobe.PHPReferenceVector()
	v.CapturedAt = time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)

	decoded, err := ecbprobe.DeserializeVector(v.Serialize())
	require.NoError(t, err)
	assert.Equal(t, v.Name, decoded.Name)
	assert.Equal(t, v.Engine, decoded.Engine)
	assert.Equal(t, v.Key, decoded.Key)
	assert.Equal(t, v.Plaintext, decoded.Plaintext)
	assert.Equal(t, v.Reference, decoded.Reference)
	assert.True(t, v.CapturedAt.Equal(decoded.CapturedAt))

	t.Log("A zero capture time stays zero")
	v.CapturedAt = time.Time{}
	decoded, err = ecbprobe.DeserializeVector(v.Serialize())
	require.NoError(t, err)
	assert.True(t, decoded.CapturedAt.IsZero())
}

func TestDeserializeVectorRejectsBadData(t *testing.T) {
	encoded := ecbprobe.PHPReferenceVector().Serialize()

	t.Run("empty buffer", func(t *testing.T) {
		_, err := ecbprobe.DeserializeVector(nil)
		assert.ErrorIs(t, err, ecbprobe.ErrInvalidStoredData)
	})

	t.Run("truncated buffer", func(t *testing.T) {
		_, err := ecbprobe.DeserializeVector(encoded[:len(encoded)-3])
		assert.ErrorIs(t, err, ecbprobe.ErrInvalidStoredData)
	})

	t.Run("trailing bytes", func(t *testing.T) {
		_, err := ecbprobe.DeserializeVector(append(append([]byte{}, encoded...), 0))
		assert.ErrorIs(t, err, ecbprobe.ErrInvalidStoredData)
	})

	t.Run("unknown version", func(t *testing.T) {
		buf := append([]byte{}, encoded...)
		buf[0] = 0x7f
		_, err := ecbprobe.DeserializeVector(buf)
		assert.Error(t, err)
	})

	t.Run("unknown engine", func(t *testing.T) {
		v := ecbprobe.PHPReferenceVector()
		v.Engine = "twofish-ecb"
		_, err := ecbprobe.DeserializeVector(v.Serialize())
		assert.ErrorIs(t, err, ecbprobe.ErrEngineNotSupported)
	})

	t.Run("empty name", func(t *testing.T) {
		v := ecbprobe.PHPReferenceVector()
		v.Name = ""
		_, err := ecbprobe.DeserializeVector(v.Serialize())
		assert.ErrorIs(t, err, ecbprobe.ErrInvalidStoredData)
	})
}

func TestVectorZeroize(t *testing.T) {
	v := ecbprobe.PHPReferenceVector()
	v.Zeroize()
	assert.Equal(t, make([]byte, 16), v.Plaintext)
	assert.Equal(t, make([]byte, 16), v.Reference)
}
