package signer

import (
	"context"
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"strings"

	"payment-resolver/internal/core/domain"
	"payment-resolver/internal/core/ports"
	"payment-resolver/pkg/bip70"
)

var (
	// ErrMissingPrivateKey means the record has no signing key configured.
	ErrMissingPrivateKey = errors.New("signer: record has no private key")
	// ErrUnsupportedKey means the PEM block is not an RSA private key.
	ErrUnsupportedKey = errors.New("signer: unsupported private key type")
)

// LocalSigner signs with the RSA key stored on the record, encrypted at rest.
type LocalSigner struct {
	enc ports.EncryptionService
}

// NewLocalSigner creates a signer that decrypts keys with enc.
func NewLocalSigner(enc ports.EncryptionService) *LocalSigner {
	return &LocalSigner{enc: enc}
}

func (s *LocalSigner) PKIType() string { return bip70.PKITypeX509SHA256 }

// Bind encrypts a plaintext PEM key in place. Keys already encrypted are
// left alone.
func (s *LocalSigner) Bind(_ context.Context, obj *domain.IdObject) error {
	if obj.PrivateKey == "" || !isPEM(obj.PrivateKey) {
		return nil
	}
	if _, err := parseRSAKey(obj.PrivateKey); err != nil {
		return err
	}
	enc, err := s.enc.Encrypt(obj.PrivateKey)
	if err != nil {
		return fmt.Errorf("signer: encrypt private key: %w", err)
	}
	obj.PrivateKey = enc
	return nil
}

// Sign returns the PKCS#1 v1.5 signature over sha256(data).
func (s *LocalSigner) Sign(_ context.Context, obj *domain.IdObject, data []byte) ([]byte, error) {
	if obj == nil || obj.PrivateKey == "" {
		return nil, ErrMissingPrivateKey
	}

	pemKey := obj.PrivateKey
	if !isPEM(pemKey) {
		dec, err := s.enc.Decrypt(pemKey)
		if err != nil {
			return nil, fmt.Errorf("signer: decrypt private key: %w", err)
		}
		pemKey = dec
	}

	key, err := parseRSAKey(pemKey)
	if err != nil {
		return nil, err
	}

	digest := sha256.Sum256(data)
	return rsa.SignPKCS1v15(rand.Reader, key, crypto.SHA256, digest[:])
}

func isPEM(s string) bool {
	return strings.HasPrefix(strings.TrimSpace(s), "-----BEGIN")
}

func parseRSAKey(pemKey string) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode([]byte(pemKey))
	if block == nil {
		return nil, fmt.Errorf("signer: private key is not PEM encoded")
	}

	if key, err := x509.ParsePKCS1PrivateKey(block.Bytes); err == nil {
		return key, nil
	}
	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("signer: parse private key: %w", err)
	}
	key, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		return nil, ErrUnsupportedKey
	}
	return key, nil
}
