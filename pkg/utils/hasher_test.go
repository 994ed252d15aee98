package utils

import (
	"bytes"
	"encoding/hex"
	"testing"

	"lukechampine.com/blake3"
)

func TestGetHashFromString(t *testing.T) {
	t.Parallel()

	input := "string payload for hashing"
	sum := blake3.Sum256([]byte(input))

	got := GetHashFromString(input)
	if !bytes.Equal(got, sum[:]) {
		t.Fatalf("GetHashFromString() = %x, want %x", got, sum)
	}
}

func TestFingerprint(t *testing.T) {
	t.Parallel()

	sum := blake3.Sum256([]byte("bearer-token"))
	want := hex.EncodeToString(sum[:8])

	if got := Fingerprint("bearer-token"); got != want {
		t.Fatalf("Fingerprint() = %q, want %q", got, want)
	}
	if got := Fingerprint(""); got != "" {
		t.Fatalf("Fingerprint of empty secret = %q, want empty", got)
	}
	if Fingerprint("a") == Fingerprint("b") {
		t.Fatalf("distinct secrets share a fingerprint")
	}
}
