package common

import "testing"

func TestWipeByteArrayZerosBuffer(t *testing.T) {
	buf := []byte{1, 2, 3, 4, 5}
	WipeByteArray(buf)
	for i, v := range buf {
		if v != 0 {
			t.Fatalf("expected buf[%d]==0, got %d", i, v)
		}
	}
}

func TestWipeByteArrayNilSafe(t *testing.T) {
	WipeByteArray(nil)
}
