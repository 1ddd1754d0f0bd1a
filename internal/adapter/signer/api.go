package signer

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"payment-resolver/internal/core/domain"
	"payment-resolver/pkg/bip70"

	"github.com/rs/zerolog"
)

// ErrMissingKeyID means the record names no key for the remote signer.
var ErrMissingKeyID = errors.New("signer: record has no private_key_id")

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type apiSignRequest struct {
	PrivateKeyID string `json:"private_key_id"`
	Data         string `json:"data"`
	Digest       string `json:"digest"`
}

type apiSignResponse struct {
	Signature string `json:"signature"`
}

// APISigner delegates signing to a remote service (typically HSM backed).
// Data and signatures travel hex encoded.
type APISigner struct {
	endpoint   string
	secret     string
	timeout    time.Duration
	httpClient HTTPClient
	log        zerolog.Logger
}

// NewAPISigner creates a remote signer. When secret is set every request
// carries an HMAC-SHA256 of its body in the X-Signature header.
func NewAPISigner(endpoint, secret string, timeout time.Duration, httpClient HTTPClient, log zerolog.Logger) *APISigner {
	return &APISigner{
		endpoint:   endpoint,
		secret:     secret,
		timeout:    timeout,
		httpClient: httpClient,
		log:        log,
	}
}

func (s *APISigner) PKIType() string { return bip70.PKITypeX509SHA256 }

// Bind checks the record references a remote key. The record never holds
// key material for this signer.
func (s *APISigner) Bind(_ context.Context, obj *domain.IdObject) error {
	if obj.PrivateKeyID == "" {
		return ErrMissingKeyID
	}
	obj.PrivateKey = ""
	return nil
}

func (s *APISigner) Sign(ctx context.Context, obj *domain.IdObject, data []byte) ([]byte, error) {
	if obj == nil || obj.PrivateKeyID == "" {
		return nil, ErrMissingKeyID
	}

	body, err := json.Marshal(apiSignRequest{
		PrivateKeyID: obj.PrivateKeyID,
		Data:         hex.EncodeToString(data),
		Digest:       "SHA256",
	})
	if err != nil {
		return nil, err
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.secret != "" {
		req.Header.Set(domain.HeaderSignature, bodyMAC(s.secret, body))
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.log.Error().Err(err).Str("endpoint", s.endpoint).Msg("api signer: request failed")
		return nil, fmt.Errorf("signer: api request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("signer: api returned status %d", resp.StatusCode)
	}

	var out apiSignResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&out); err != nil {
		return nil, fmt.Errorf("signer: decode api response: %w", err)
	}
	if out.Signature == "" {
		s.log.Error().Str("endpoint", s.endpoint).Msg("api signer: endpoint returned no signature")
		return nil, errors.New("signer: api returned no signature")
	}

	sig, err := hex.DecodeString(out.Signature)
	if err != nil {
		return nil, fmt.Errorf("signer: signature is not hex: %w", err)
	}
	return sig, nil
}

func bodyMAC(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}
