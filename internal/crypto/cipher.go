// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
	"sync"

	"github.com/MKhiriev/daybook/internal/errs"
	"github.com/MKhiriev/daybook/models"
	"golang.org/x/crypto/pbkdf2"
)

const (
	// DefaultIterations is the PBKDF2 iteration count.
	DefaultIterations = 100_000
	// SaltSize is the length of a freshly generated salt in bytes.
	SaltSize = 32
	// KeySize is the derived key length (AES-256).
	KeySize = 32
	// IVSize is the GCM nonce length.
	IVSize = 12
)

// Option configures an encryption service.
type Option func(*encryptionService)

// WithIterations overrides the PBKDF2 iteration count.
func WithIterations(n int) Option {
	return func(s *encryptionService) {
		if n > 0 {
			s.iterations = n
		}
	}
}

// WithLegacySaltFallback makes Initialize accept a salt that is not valid
// base64 by using its raw bytes. Off by default.
func WithLegacySaltFallback() Option {
	return func(s *encryptionService) {
		s.legacySalt = true
	}
}

// WithRandom replaces the randomness source used for salts and IVs.
func WithRandom(r io.Reader) Option {
	return func(s *encryptionService) {
		s.random = r
	}
}

// encryptionContext is the in-memory derived key plus its salt.
type encryptionContext struct {
	aead cipher.AEAD
	key  []byte
	salt string
}

type encryptionService struct {
	iterations int
	legacySalt bool
	random     io.Reader

	mu  sync.RWMutex
	ctx *encryptionContext
}

// NewEncryptionService returns an uninitialised [EncryptionService].
func NewEncryptionService(opts ...Option) EncryptionService {
	s := &encryptionService{
		iterations: DefaultIterations,
		random:     rand.Reader,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize implements [EncryptionService]. The key is derived outside the
// lock; the context swap itself is atomic.
func (s *encryptionService) Initialize(passphrase, existingSalt string) (string, error) {
	if passphrase == "" {
		return "", errs.NewValidationError("passphrase", "is required")
	}

	salt, err := s.resolveSalt(existingSalt)
	if err != nil {
		return "", err
	}

	key := pbkdf2.Key([]byte(passphrase), salt, s.iterations, KeySize, sha256.New)

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("create cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("create gcm: %w", err)
	}

	encodedSalt := base64.StdEncoding.EncodeToString(salt)
	next := &encryptionContext{aead: aead, key: key, salt: encodedSalt}

	s.mu.Lock()
	prev := s.ctx
	s.ctx = next
	s.mu.Unlock()

	if prev != nil {
		wipe(prev.key)
	}

	return encodedSalt, nil
}

func (s *encryptionService) resolveSalt(existing string) ([]byte, error) {
	if existing == "" {
		salt := make([]byte, SaltSize)
		if _, err := io.ReadFull(s.random, salt); err != nil {
			return nil, fmt.Errorf("generate salt: %w", err)
		}
		return salt, nil
	}

	salt, err := base64.StdEncoding.Strict().DecodeString(existing)
	if err == nil && len(salt) > 0 {
		return salt, nil
	}
	if s.legacySalt {
		return []byte(existing), nil
	}
	return nil, ErrSaltMigrationRequired
}

// Encrypt implements [EncryptionService].
func (s *encryptionService) Encrypt(plaintext string) (models.Ciphertext, error) {
	s.mu.RLock()
	ctx := s.ctx
	s.mu.RUnlock()

	if ctx == nil {
		return models.Ciphertext{}, ErrNotInitialized
	}

	iv := make([]byte, IVSize)
	if _, err := io.ReadFull(s.random, iv); err != nil {
		return models.Ciphertext{}, fmt.Errorf("generate iv: %w", err)
	}

	sealed := ctx.aead.Seal(nil, iv, []byte(plaintext), nil)

	return models.Ciphertext{
		Data: base64.StdEncoding.EncodeToString(sealed),
		IV:   base64.StdEncoding.EncodeToString(iv),
	}, nil
}

// Decrypt implements [EncryptionService].
func (s *encryptionService) Decrypt(c models.Ciphertext) (string, error) {
	s.mu.RLock()
	ctx := s.ctx
	s.mu.RUnlock()

	if ctx == nil {
		return "", errs.NewDecryptionError("no key loaded", ErrNotInitialized)
	}

	sealed, err := base64.StdEncoding.Strict().DecodeString(c.Data)
	if err != nil {
		return "", errs.NewDecryptionError("ciphertext is not valid base64", err)
	}
	iv, err := base64.StdEncoding.Strict().DecodeString(c.IV)
	if err != nil {
		return "", errs.NewDecryptionError("iv is not valid base64", err)
	}
	if len(iv) != ctx.aead.NonceSize() {
		return "", errs.NewDecryptionError(fmt.Sprintf("iv must be %d bytes, got %d", ctx.aead.NonceSize(), len(iv)), nil)
	}

	plaintext, err := ctx.aead.Open(nil, iv, sealed, nil)
	if err != nil {
		return "", errs.NewDecryptionError("authentication failed", err)
	}

	return string(plaintext), nil
}

// Clear implements [EncryptionService].
func (s *encryptionService) Clear() {
	s.mu.Lock()
	prev := s.ctx
	s.ctx = nil
	s.mu.Unlock()

	if prev != nil {
		wipe(prev.key)
	}
}

// IsInitialized implements [EncryptionService].
func (s *encryptionService) IsInitialized() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ctx != nil
}

// Salt implements [EncryptionService].
func (s *encryptionService) Salt() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.ctx == nil {
		return ""
	}
	return s.ctx.salt
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
