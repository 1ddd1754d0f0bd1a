// Package prlog records generated payment requests outside the primary store.
package prlog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"payment-resolver/internal/core/domain"

	"github.com/rs/zerolog"
)

const (
	TypeLocal    = "local"
	TypeRedis    = "redis"
	TypeAPI      = "api"
	TypePostgres = "postgres"
)

// Local writes each payment request to the application log.
type Local struct {
	log zerolog.Logger
}

// NewLocal creates a logger-backed recorder.
func NewLocal(log zerolog.Logger) *Local {
	return &Local{log: log}
}

func (l *Local) LogPaymentRequest(_ context.Context, e *domain.PaymentRequestLog) error {
	l.log.Info().
		Str("address", e.Address).
		Str("signer", e.Signer).
		Int64("amount", e.Amount).
		Int64("expires", e.Expires).
		Str("memo", e.Memo).
		Str("payment_url", e.PaymentURL).
		Str("merchant_data", e.MerchantData).
		Msg("payment request generated")
	return nil
}

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// API posts each payment request as JSON to an external endpoint.
type API struct {
	endpoint   string
	httpClient HTTPClient
	log        zerolog.Logger
}

// NewAPI creates a recorder that posts to endpoint.
func NewAPI(endpoint string, httpClient HTTPClient, log zerolog.Logger) *API {
	return &API{endpoint: endpoint, httpClient: httpClient, log: log}
}

type apiLogRequest struct {
	Address      string `json:"address"`
	Signer       string `json:"signer"`
	Amount       int64  `json:"amount"`
	Expires      string `json:"expires"`
	Memo         string `json:"memo"`
	PaymentURL   string `json:"payment_url"`
	MerchantData string `json:"merchant_data"`
}

type apiErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Failure string `json:"failure"`
}

func (a *API) LogPaymentRequest(ctx context.Context, e *domain.PaymentRequestLog) error {
	body, err := json.Marshal(apiLogRequest{
		Address:      e.Address,
		Signer:       e.Signer,
		Amount:       e.Amount,
		Expires:      strconv.FormatInt(e.Expires, 10),
		Memo:         e.Memo,
		PaymentURL:   e.PaymentURL,
		MerchantData: e.MerchantData,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("pr log api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode <= 202 {
		a.log.Debug().Str("endpoint", a.endpoint).Msg("payment request logged to api")
		return nil
	}

	reason := ""
	if resp.Header.Get("Content-Type") == "application/json" {
		var eb apiErrorBody
		if json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&eb) == nil {
			switch {
			case eb.Error != "":
				reason = eb.Error
			case eb.Message != "":
				reason = eb.Message
			default:
				reason = eb.Failure
			}
		}
	}
	a.log.Error().
		Str("endpoint", a.endpoint).
		Int("status", resp.StatusCode).
		Str("error", reason).
		Msg("payment request api logging failed")
	return fmt.Errorf("pr log api: status %d", resp.StatusCode)
}
