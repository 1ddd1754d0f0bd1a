// Package signer provides the PaymentRequest signing backends.
package signer

import (
	"fmt"
	"net/http"
	"strings"

	"payment-resolver/config"
	"payment-resolver/internal/core/ports"

	"github.com/rs/zerolog"
)

const (
	TypeLocal = "local"
	TypeAPI   = "api"
)

// New builds the signer selected by cfg.Type.
func New(cfg config.SignerConfig, enc ports.EncryptionService, log zerolog.Logger) (ports.Signer, error) {
	switch strings.ToLower(cfg.Type) {
	case "", TypeLocal:
		return NewLocalSigner(enc), nil
	case TypeAPI:
		if cfg.APIEndpoint == "" {
			return nil, fmt.Errorf("signer: api endpoint not configured")
		}
		return NewAPISigner(cfg.APIEndpoint, cfg.APISecret, cfg.APITimeout, &http.Client{Timeout: cfg.APITimeout}, log), nil
	default:
		return nil, fmt.Errorf("signer: unknown type %q", cfg.Type)
	}
}
