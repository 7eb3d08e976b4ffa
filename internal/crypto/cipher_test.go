package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recibo/internal/domain"
)

func newTestKey(t *testing.T) []byte {
	t.Helper()
	key := make([]byte, KeySize)
	_, err := rand.Read(key)
	require.NoError(t, err)
	return key
}

func TestNew_KeyLength(t *testing.T) {
	tests := []struct {
		name    string
		keyLen  int
		wantErr bool
	}{
		{name: "valid 32-byte key", keyLen: 32, wantErr: false},
		{name: "too short", keyLen: 16, wantErr: true},
		{name: "too long", keyLen: 64, wantErr: true},
		{name: "empty", keyLen: 0, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(make([]byte, tt.keyLen))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewFromBase64(t *testing.T) {
	key := newTestKey(t)

	c, err := NewFromBase64(base64.StdEncoding.EncodeToString(key))
	require.NoError(t, err)
	assert.NotNil(t, c)

	_, err = NewFromBase64("")
	assert.ErrorIs(t, err, domain.ErrEncryptionKeyRequired)

	_, err = NewFromBase64("not!base64!!")
	assert.Error(t, err)
}

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	c, err := New(newTestKey(t))
	require.NoError(t, err)

	plaintexts := [][]byte{
		[]byte("hello"),
		[]byte(`{"clientInfo":{"name":"Sam","email":"sam@example.com"}}`),
		[]byte(""),
		make([]byte, 4096),
	}

	for _, plaintext := range plaintexts {
		token, err := c.Encrypt(plaintext)
		require.NoError(t, err)

		decrypted, err := c.Decrypt(token)
		require.NoError(t, err)
		assert.Equal(t, plaintext, decrypted)
	}
}

func TestEncrypt_NonDeterministic(t *testing.T) {
	c, err := New(newTestKey(t))
	require.NoError(t, err)

	t1, err := c.Encrypt([]byte("same payload"))
	require.NoError(t, err)
	t2, err := c.Encrypt([]byte("same payload"))
	require.NoError(t, err)

	// Fresh nonce per call; identical plaintexts must not share a token.
	assert.NotEqual(t, t1, t2)
}

func TestDecrypt_WrongKey(t *testing.T) {
	c1, err := New(newTestKey(t))
	require.NoError(t, err)
	c2, err := New(newTestKey(t))
	require.NoError(t, err)

	token, err := c1.Encrypt([]byte(`{"amount":500}`))
	require.NoError(t, err)

	_, err = c2.Decrypt(token)
	assert.ErrorIs(t, err, domain.ErrDecryption)
}

func TestDecrypt_Malformed(t *testing.T) {
	c, err := New(newTestKey(t))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "not base64", token: "%%%not-base64%%%"},
		{name: "too short", token: base64.StdEncoding.EncodeToString([]byte("short"))},
		{name: "tampered", token: func() string {
			tok, _ := c.Encrypt([]byte("payload"))
			raw, _ := base64.StdEncoding.DecodeString(tok)
			raw[len(raw)-1] ^= 0xFF
			return base64.StdEncoding.EncodeToString(raw)
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Decrypt(tt.token)
			assert.ErrorIs(t, err, domain.ErrDecryption)
		})
	}
}

func TestEncryptJSON_DecryptJSON_RoundTrip(t *testing.T) {
	c, err := New(newTestKey(t))
	require.NoError(t, err)

	original := domain.ReceiptSensitive{
		ClientInfo: domain.ClientInfo{
			Name:    "Sam Rivera",
			Email:   "sam@example.com",
			Phone:   "+1 555 0100",
			Address: "42 Elm Street",
		},
		FreelancerInfo: domain.FreelancerInfo{
			Name:    "Alex Doe",
			Email:   "alex@studio.dev",
			Phone:   "+1 555 0200",
			Address: "7 Oak Avenue",
			Website: "https://studio.dev",
		},
		ProjectDetails: domain.ProjectDetails{
			Title:        "Portfolio site",
			Description:  "Design and build",
			Technologies: []string{"Go", "React"},
			Deliverables: []string{"Source", "Deployment"},
		},
		PaymentInfo: domain.PaymentInfo{
			Amount:   500,
			Currency: "USD",
			Method:   "bank_transfer",
			Status:   domain.PaymentStatusPending,
		},
	}

	token, err := c.EncryptJSON(original)
	require.NoError(t, err)

	var decoded domain.ReceiptSensitive
	require.NoError(t, c.DecryptJSON(token, &decoded))
	assert.Equal(t, original, decoded)
}

func TestDecryptJSON_WrongKeyNeverYieldsPayload(t *testing.T) {
	c1, err := New(newTestKey(t))
	require.NoError(t, err)
	c2, err := New(newTestKey(t))
	require.NoError(t, err)

	token, err := c1.EncryptJSON(map[string]string{"secret": "value"})
	require.NoError(t, err)

	var out map[string]string
	err = c2.DecryptJSON(token, &out)
	assert.ErrorIs(t, err, domain.ErrDecryption)
	assert.Empty(t, out)
}
