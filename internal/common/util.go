package common

// WipeByteArray zeroes the buffer in place. Call it on password buffers as
// soon as they are no longer needed. Nil-safe.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
