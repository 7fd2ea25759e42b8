// Package crypto encrypts stored paystub artifacts at rest with AES-GCM.
// With no key configured the service passes data through unchanged.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
)

type Service struct {
	key []byte
}

// New accepts a hex- or base64-encoded 32-byte key, or an empty string for a
// passthrough service.
func New(key string) (*Service, error) {
	if key == "" {
		return &Service{}, nil
	}
	decoded, err := decodeKey(key)
	if err != nil {
		return nil, err
	}
	if len(decoded) != 32 {
		return nil, fmt.Errorf("DATA_ENCRYPTION_KEY must be 32 bytes after decoding")
	}
	return &Service{key: decoded}, nil
}

func (s *Service) Configured() bool {
	return len(s.key) == 32
}

// Seal encrypts an artifact, prefixing the nonce.
func (s *Service) Seal(plain []byte) ([]byte, error) {
	if !s.Configured() {
		return plain, nil
	}
	gcm, err := s.gcm()
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return append(nonce, gcm.Seal(nil, nonce, plain, nil)...), nil
}

// Open decrypts a sealed artifact.
func (s *Service) Open(sealed []byte) ([]byte, error) {
	if !s.Configured() {
		return sealed, nil
	}
	gcm, err := s.gcm()
	if err != nil {
		return nil, err
	}
	if len(sealed) < gcm.NonceSize() {
		return nil, errors.New("sealed artifact too short")
	}
	nonce := sealed[:gcm.NonceSize()]
	return gcm.Open(nil, nonce, sealed[gcm.NonceSize():], nil)
}

func (s *Service) gcm() (cipher.AEAD, error) {
	block, err := aes.NewCipher(s.key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

func decodeKey(key string) ([]byte, error) {
	if decoded, err := hex.DecodeString(key); err == nil {
		return decoded, nil
	}
	if decoded, err := base64.StdEncoding.DecodeString(key); err == nil {
		return decoded, nil
	}
	return nil, errors.New("DATA_ENCRYPTION_KEY must be hex or base64 encoded")
}
