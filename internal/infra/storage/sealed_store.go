package storage

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"strings"

	"dashcam/internal/domain/repository"

	"github.com/pkg/errors"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

const (
	sealedPrefix = "v1:"
	hkdfInfo     = "dashcam preference store v1"
)

// ErrSealedValueCorrupt is returned when a stored value fails authentication
var ErrSealedValueCorrupt = errors.New("sealed preference value is corrupt or was written with another key")

// sealedStore encrypts values before handing them to the inner store.
// The preference key is bound as additional data so values cannot be swapped between keys.
type sealedStore struct {
	inner  repository.KeyValueStore
	secret []byte
}

// NewSealedStore wraps inner with XChaCha20-Poly1305. secret is stretched with HKDF-SHA256.
func NewSealedStore(inner repository.KeyValueStore, secret []byte) (repository.KeyValueStore, error) {
	if len(secret) == 0 {
		return nil, errors.New("sealed store secret must not be empty")
	}

	key := make([]byte, chacha20poly1305.KeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, secret, nil, []byte(hkdfInfo)), key); err != nil {
		return nil, errors.Wrap(err, "derive store key")
	}

	return &sealedStore{
		inner:  inner,
		secret: key,
	}, nil
}

// Get decrypts the stored value for key
func (s *sealedStore) Get(ctx context.Context, key string) (string, error) {
	stored, err := s.inner.Get(ctx, key)
	if err != nil {
		return "", err
	}

	if !strings.HasPrefix(stored, sealedPrefix) {
		return "", errors.WithStack(ErrSealedValueCorrupt)
	}

	raw, err := base64.RawStdEncoding.DecodeString(strings.TrimPrefix(stored, sealedPrefix))
	if err != nil {
		return "", errors.Wrap(ErrSealedValueCorrupt, err.Error())
	}

	aead, err := chacha20poly1305.NewX(s.secret)
	if err != nil {
		return "", errors.WithStack(err)
	}
	if len(raw) < aead.NonceSize() {
		return "", errors.WithStack(ErrSealedValueCorrupt)
	}

	nonce, ciphertext := raw[:aead.NonceSize()], raw[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, ciphertext, []byte(key))
	if err != nil {
		return "", errors.WithStack(ErrSealedValueCorrupt)
	}

	return string(plaintext), nil
}

// Set encrypts value and stores it under key
func (s *sealedStore) Set(ctx context.Context, key, value string) error {
	aead, err := chacha20poly1305.NewX(s.secret)
	if err != nil {
		return errors.WithStack(err)
	}

	nonce := make([]byte, aead.NonceSize(), aead.NonceSize()+len(value)+aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return errors.Wrap(err, "generate nonce")
	}

	sealed := aead.Seal(nonce, nonce, []byte(value), []byte(key))

	return s.inner.Set(ctx, key, sealedPrefix+base64.RawStdEncoding.EncodeToString(sealed))
}

// Delete removes key from the inner store
func (s *sealedStore) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, key)
}

// Close closes the inner store
func (s *sealedStore) Close() error {
	return s.inner.Close()
}

// LoadOrCreateKeyFile returns the hex secret stored at path, creating a random one on first use
func LoadOrCreateKeyFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		secret, decodeErr := hex.DecodeString(strings.TrimSpace(string(data)))
		if decodeErr != nil {
			return nil, errors.Wrapf(decodeErr, "decode key file %s", path)
		}

		return secret, nil
	}
	if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "read key file %s", path)
	}

	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, errors.Wrap(err, "generate key")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, errors.Wrapf(err, "create key dir for %s", path)
	}
	if err := os.WriteFile(path, []byte(hex.EncodeToString(secret)), 0o600); err != nil {
		return nil, errors.Wrapf(err, "write key file %s", path)
	}

	return secret, nil
}
