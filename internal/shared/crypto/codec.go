package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
)

// ErrDecrypt marks a value that could not be decrypted (corrupt ciphertext,
// wrong key, or a legacy plaintext row). Callers decide at the boundary
// whether to surface it or fall back to the raw stored value.
var ErrDecrypt = errors.New("crypto: unable to decrypt value")

// Codec encrypts and decrypts a single text value. The repositories receive
// it as a dependency so tests can substitute a fake and assert on plaintext.
type Codec interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}

// AESCodec implements Codec with AES-256-GCM. Ciphertext is
// base64(nonce || sealed) so it can live in a TEXT column.
type AESCodec struct {
	key []byte // 32-byte AES-256 key
}

// Ensure AESCodec implements Codec
var _ Codec = (*AESCodec)(nil)

// NewAESCodec derives a 32-byte key from the configured secret. The secret is
// a passphrase, not raw key material, so it is run through SHA-256 first.
func NewAESCodec(secret string) *AESCodec {
	key := sha256.Sum256([]byte(secret))
	return &AESCodec{key: key[:]}
}

// Encrypt seals plaintext with AES-256-GCM under a fresh random nonce.
// Empty input passes through unchanged: absent data stays absent instead of
// becoming an encrypted empty string.
func (c *AESCodec) Encrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}

	gcm, err := c.gcm()
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("crypto: generate nonce: %w", err)
	}

	sealed := gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt reverses Encrypt. Empty input passes through unchanged. Any
// failure is reported as ErrDecrypt; the GCM tag makes corruption and
// wrong-key cases indistinguishable, which is fine — both mean "do not
// trust this value".
func (c *AESCodec) Decrypt(ciphertext string) (string, error) {
	if ciphertext == "" {
		return "", nil
	}

	gcm, err := c.gcm()
	if err != nil {
		return "", err
	}

	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecrypt, err)
	}
	if len(raw) < gcm.NonceSize() {
		return "", fmt.Errorf("%w: ciphertext shorter than nonce", ErrDecrypt)
	}

	nonce, sealed := raw[:gcm.NonceSize()], raw[gcm.NonceSize():]
	plaintext, err := gcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecrypt, err)
	}

	return string(plaintext), nil
}

func (c *AESCodec) gcm() (cipher.AEAD, error) {
	block, err := aes.NewCipher(c.key)
	if err != nil {
		return nil, fmt.Errorf("crypto: new cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("crypto: new gcm: %w", err)
	}
	return gcm, nil
}
