package ecbprobe

import (
	"encoding/hex"
	"fmt"
)

// -----------------------------------------------------------------------------

// DecodeError reports a hex literal that could not be decoded.
type DecodeError struct {
	Literal string
	Err     error
}

// -----------------------------------------------------------------------------

func (e *DecodeError) Error() string {
	return fmt.Sprintf("unable to decode %q: %v", e.Literal, e.Err)
}

// Unwrap returns the decoder error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrDecode) succeed for any DecodeError.
func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}

// -----------------------------------------------------------------------------

// DecodeHex decodes a hex literal. Upper and lower case digits are accepted. Odd length or
// non-hex characters yield a *DecodeError.
func DecodeHex(s string) ([]byte, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, &DecodeError{
			Literal: s,
			Err:     err,
		}
	}
	return b, nil
}

// EncodeHex renders b as lowercase hex.
func EncodeHex(b []byte) string {
	return hex.EncodeToString(b)
}
