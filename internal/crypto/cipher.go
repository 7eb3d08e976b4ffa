package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"recibo/internal/domain"
)

// NonceSize is the AES-GCM nonce size in bytes.
const NonceSize = 12

// KeySize is the required key length for AES-256.
const KeySize = 32

// Cipher seals JSON payloads into opaque base64 tokens with AES-256-GCM.
// Token layout: base64( nonce (12 bytes) || ciphertext || auth tag ).
// The key is process-wide, injected from configuration at startup.
type Cipher struct {
	key []byte
}

// New creates a Cipher from a 32-byte key.
func New(key []byte) (*Cipher, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("encryption key must be %d bytes, got %d", KeySize, len(key))
	}
	k := make([]byte, KeySize)
	copy(k, key)
	return &Cipher{key: k}, nil
}

// NewFromBase64 creates a Cipher from a base64-encoded 32-byte key.
func NewFromBase64(encoded string) (*Cipher, error) {
	if encoded == "" {
		return nil, domain.ErrEncryptionKeyRequired
	}
	key, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decoding encryption key: %w", err)
	}
	return New(key)
}

// Encrypt seals plaintext and returns the base64 token.
func (c *Cipher) Encrypt(plaintext []byte) (string, error) {
	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", fmt.Errorf("creating cipher: %w", err)
	}
	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("creating GCM: %w", err)
	}

	nonce := make([]byte, NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("generating nonce: %w", err)
	}

	sealed := aesGCM.Seal(nonce, nonce, plaintext, nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt opens a token produced by Encrypt. A wrong key, truncated token
// or tampered ciphertext fails authentication and yields domain.ErrDecryption.
func (c *Cipher) Decrypt(token string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid base64", domain.ErrDecryption)
	}
	if len(raw) < NonceSize {
		return nil, fmt.Errorf("%w: token too short", domain.ErrDecryption)
	}

	block, err := aes.NewCipher(c.key)
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}
	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("creating GCM: %w", err)
	}

	plaintext, err := aesGCM.Open(nil, raw[:NonceSize], raw[NonceSize:], nil)
	if err != nil {
		return nil, fmt.Errorf("%w: authentication failed", domain.ErrDecryption)
	}
	return plaintext, nil
}

// EncryptJSON marshals v and seals it. Callers always serialize structured
// sub-documents before encrypting; the cipher itself is payload-agnostic.
func (c *Cipher) EncryptJSON(v interface{}) (string, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshaling envelope payload: %w", err)
	}
	return c.Encrypt(payload)
}

// DecryptJSON opens a token and unmarshals the payload into out.
func (c *Cipher) DecryptJSON(token string, out interface{}) error {
	plaintext, err := c.Decrypt(token)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(plaintext, out); err != nil {
		return fmt.Errorf("%w: payload is not valid JSON", domain.ErrDecryption)
	}
	return nil
}
