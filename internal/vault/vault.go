package vault

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/nacl/secretbox"
)

var (
	ErrBadKey        = errors.New("vault: encryption key must be 64 hex characters")
	ErrBadCiphertext = errors.New("vault: ciphertext is malformed or key mismatch")
)

// Vault encrypts and decrypts credential values with a process-wide secret.
// Decrypted values only ever live in a run's working memory.
type Vault struct {
	key [32]byte
}

func New(hexKey string) (*Vault, error) {
	raw, err := hex.DecodeString(hexKey)
	if err != nil || len(raw) != 32 {
		return nil, ErrBadKey
	}
	v := &Vault{}
	copy(v.key[:], raw)
	return v, nil
}

func (v *Vault) Encrypt(plaintext string) (string, error) {
	var nonce [24]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return "", fmt.Errorf("vault: nonce: %w", err)
	}
	sealed := secretbox.Seal(nonce[:], []byte(plaintext), &nonce, &v.key)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

func (v *Vault) Decrypt(ciphertext string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil || len(raw) < 24 {
		return "", ErrBadCiphertext
	}
	var nonce [24]byte
	copy(nonce[:], raw[:24])
	opened, ok := secretbox.Open(nil, raw[24:], &nonce, &v.key)
	if !ok {
		return "", ErrBadCiphertext
	}
	return string(opened), nil
}
