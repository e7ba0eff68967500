package vault

import (
	"strings"
	"testing"
)

const testKey = "6368616e676520746869732070617373776f726420746f206120736563726574"

func TestRoundTrip(t *testing.T) {
	v, err := New(testKey)
	if err != nil {
		t.Fatalf("new vault: %v", err)
	}

	ct, err := v.Encrypt("sk-test-abc123")
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	if strings.Contains(ct, "sk-test") {
		t.Fatal("ciphertext leaks plaintext")
	}

	pt, err := v.Decrypt(ct)
	if err != nil {
		t.Fatalf("decrypt: %v", err)
	}
	if pt != "sk-test-abc123" {
		t.Fatalf("round trip mismatch: %q", pt)
	}
}

func TestEncryptIsNonDeterministic(t *testing.T) {
	v, _ := New(testKey)
	a, _ := v.Encrypt("same")
	b, _ := v.Encrypt("same")
	if a == b {
		t.Fatal("expected distinct ciphertexts for the same plaintext")
	}
}

func TestDecryptWrongKey(t *testing.T) {
	v1, _ := New(testKey)
	v2, _ := New(strings.Repeat("ab", 32))

	ct, _ := v1.Encrypt("secret")
	if _, err := v2.Decrypt(ct); err == nil {
		t.Fatal("expected decrypt failure with wrong key")
	}
}

func TestBadKeyLength(t *testing.T) {
	if _, err := New("deadbeef"); err == nil {
		t.Fatal("expected error for short key")
	}
	if _, err := New("not-hex-at-all"); err == nil {
		t.Fatal("expected error for non-hex key")
	}
}

func TestDecryptGarbage(t *testing.T) {
	v, _ := New(testKey)
	if _, err := v.Decrypt("%%%not-base64%%%"); err == nil {
		t.Fatal("expected error for malformed ciphertext")
	}
	if _, err := v.Decrypt("c2hvcnQ="); err == nil {
		t.Fatal("expected error for truncated ciphertext")
	}
}
