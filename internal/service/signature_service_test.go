package service

import (
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestKey(t *testing.T) *btcec.PrivateKey {
	t.Helper()
	priv, err := btcec.NewPrivateKey()
	require.NoError(t, err)
	return priv
}

// signHex returns a DER signature over sha1(msg).
func signHex(priv *btcec.PrivateKey, msg []byte) string {
	digest := sha1.Sum(msg)
	return hex.EncodeToString(ecdsa.Sign(priv, digest[:]).Serialize())
}

// signCompactHex returns the 64-byte r||s form over sha1(msg).
func signCompactHex(priv *btcec.PrivateKey, msg []byte) string {
	digest := sha1.Sum(msg)
	sig := ecdsa.Sign(priv, digest[:])
	r, s := sig.R(), sig.S()
	rb, sb := r.Bytes(), s.Bytes()
	return hex.EncodeToString(append(rb[:], sb[:]...))
}

func TestSecp256k1SignatureService_DER(t *testing.T) {
	svc := NewSecp256k1SignatureService()
	priv := newTestKey(t)
	msg := []byte("https://resolver.example.com/address/abc/sf{}")

	ok, err := svc.Verify(hex.EncodeToString(priv.PubKey().SerializeCompressed()), signHex(priv, msg), msg)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSecp256k1SignatureService_KeyForms(t *testing.T) {
	svc := NewSecp256k1SignatureService()
	priv := newTestKey(t)
	msg := []byte("payload")
	sig := signCompactHex(priv, msg)

	uncompressed := priv.PubKey().SerializeUncompressed()
	keys := map[string]string{
		"compressed":   hex.EncodeToString(priv.PubKey().SerializeCompressed()),
		"uncompressed": hex.EncodeToString(uncompressed),
		"raw":          hex.EncodeToString(uncompressed[1:]),
	}
	for name, key := range keys {
		t.Run(name, func(t *testing.T) {
			ok, err := svc.Verify(key, sig, msg)
			require.NoError(t, err)
			assert.True(t, ok)
		})
	}
}

// Clients send the raw 64-byte X||Y key and raw r||s over sha1(url+body).
func TestSecp256k1SignatureService_RawSHA1Request(t *testing.T) {
	svc := NewSecp256k1SignatureService()
	priv := newTestKey(t)
	msg := []byte("http://example.test/sf/abc{}")

	rawKey := hex.EncodeToString(priv.PubKey().SerializeUncompressed()[1:])

	ok, err := svc.Verify(rawKey, signCompactHex(priv, msg), msg)
	require.NoError(t, err)
	assert.True(t, ok)

	other := sha256.Sum256(msg)
	ok, err = svc.Verify(rawKey, hex.EncodeToString(ecdsa.Sign(priv, other[:]).Serialize()), msg)
	require.NoError(t, err)
	assert.False(t, ok, "sha256 digest must not verify")
}

func TestSecp256k1SignatureService_Rejects(t *testing.T) {
	svc := NewSecp256k1SignatureService()
	priv := newTestKey(t)
	other := newTestKey(t)
	msg := []byte("payload")
	pub := hex.EncodeToString(priv.PubKey().SerializeCompressed())

	tests := []struct {
		name string
		sig  string
		msg  []byte
	}{
		{"wrong key", signHex(other, msg), msg},
		{"tampered message", signHex(priv, msg), []byte("payload2")},
		{"not hex", "zz", msg},
		{"garbage", "0102", msg},
		{"zero scalar", hex.EncodeToString(make([]byte, 64)), msg},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := svc.Verify(pub, tt.sig, tt.msg)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestSecp256k1SignatureService_BadKey(t *testing.T) {
	svc := NewSecp256k1SignatureService()

	_, err := svc.Verify("nothex", "00", nil)
	assert.Error(t, err)

	_, err = svc.Verify("02"+hex.EncodeToString(make([]byte, 10)), "00", nil)
	assert.Error(t, err)
}
