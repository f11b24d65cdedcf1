package util

// -----------------------------------------------------------------------------

// SafeZeroMem zeros the given memory.
func SafeZeroMem(v []byte) {
	vLen := len(v)
	if vLen > 0 {
		v[0] = 0
		for ofs := 1; ofs < vLen; ofs *= 2 {
			copy(v[ofs:], v[:ofs])
		}
	}
}

// CloneBytes returns a copy of v that the caller owns. A nil input returns nil.
func CloneBytes(v []byte) []byte {
	if v == nil {
		return nil
	}
	dup := make([]byte, len(v))
	copy(dup, v)
	return dup
}
