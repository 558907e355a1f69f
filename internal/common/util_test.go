package common

import (
	"testing"
)

func TestWipeByteArray_ZerosBuffer(t *testing.T) {
	buf := []byte("123456")
	WipeByteArray(buf)
	for i, v := range buf {
		if v != 0 {
			t.Fatalf("expected buf[%d]==0, got %d", i, v)
		}
	}
}

func TestWipeByteArray_NilSafe(t *testing.T) {
	WipeByteArray(nil)
}

func TestWipeByteArray_EmptySafe(t *testing.T) {
	buf := []byte{}
	WipeByteArray(buf)
	if len(buf) != 0 {
		t.Fatalf("expected empty slice to stay empty, got %d", len(buf))
	}
}
