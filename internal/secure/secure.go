// Package secure seals free-text audit fields at rest with Fernet tokens.
package secure

import (
	"errors"
	"fmt"

	"github.com/fernet/fernet-go"
)

// ErrUnsealable indicates a stored token that the configured keys cannot open.
var ErrUnsealable = errors.New("sealed value cannot be opened with the configured key")

// Sealer encrypts and authenticates short strings. The first key seals; every
// key is tried when opening, so a rotated-out key can still read old rows.
type Sealer struct {
	keys []*fernet.Key
}

// NewSealer builds a Sealer from base64 Fernet keys, newest first.
func NewSealer(encodedKeys ...string) (*Sealer, error) {
	if len(encodedKeys) == 0 {
		return nil, errors.New("at least one key is required")
	}
	keys := make([]*fernet.Key, 0, len(encodedKeys))
	for _, enc := range encodedKeys {
		k, err := fernet.DecodeKey(enc)
		if err != nil {
			return nil, fmt.Errorf("failed to decode key: %w", err)
		}
		keys = append(keys, k)
	}
	return &Sealer{keys: keys}, nil
}

// GenerateKey returns a fresh base64-encoded Fernet key.
func GenerateKey() (string, error) {
	var k fernet.Key
	if err := k.Generate(); err != nil {
		return "", fmt.Errorf("failed to generate key: %w", err)
	}
	return k.Encode(), nil
}

// Seal returns the Fernet token for plain.
func (s *Sealer) Seal(plain string) (string, error) {
	tok, err := fernet.EncryptAndSign([]byte(plain), s.keys[0])
	if err != nil {
		return "", fmt.Errorf("failed to seal value: %w", err)
	}
	return string(tok), nil
}

// Open verifies token and returns the plain text. Tokens never expire.
func (s *Sealer) Open(token string) (string, error) {
	msg := fernet.VerifyAndDecrypt([]byte(token), 0, s.keys)
	if msg == nil {
		return "", ErrUnsealable
	}
	return string(msg), nil
}
