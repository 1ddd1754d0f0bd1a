package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// HasCode reports whether err wraps an AppError with the given code.
func HasCode(err error, code string) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// ---- Request Validation (REQ) ----

// Validation returns a REQ_001 error carrying a caller-facing message.
func Validation(message string) *AppError {
	return New("REQ_001", message, http.StatusBadRequest)
}

func ErrPaymentDataMissing() *AppError {
	return New("REQ_002", "Serialized Payment Data Missing", http.StatusBadRequest)
}

func ErrInvalidContentType() *AppError {
	return New("REQ_003", "Invalid Content-Type for Payment", http.StatusBadRequest)
}

func ErrInvalidAccept() *AppError {
	return New("REQ_004", "PaymentACK Must Be Accepted", http.StatusBadRequest)
}

func ErrInvalidPayment() *AppError {
	return New("REQ_005", "Invalid Payment Submitted", http.StatusBadRequest)
}

func ErrPaymentUnsatisfied() *AppError {
	return New("REQ_006", "Payment Does Not Satisfy Requirements of PaymentRequest.", http.StatusBadRequest)
}

func ErrBIP70Disabled() *AppError {
	return New("REQ_007", "Required bip70_enabled value is missing or disabled", http.StatusBadRequest)
}

// ---- Security & Authentication (SEC) ----

func ErrMissingIdentity() *AppError {
	return New("SEC_001", "Missing x-identity header", http.StatusBadRequest)
}

func ErrMissingSignature() *AppError {
	return New("SEC_002", "Missing x-signature header", http.StatusBadRequest)
}

func ErrBadPublicKey() *AppError {
	return New("SEC_003", "Bad Public Key Format", http.StatusBadRequest)
}

func ErrInvalidSignature() *AppError {
	return New("SEC_004", "Signature Verification Error", http.StatusUnauthorized)
}

// ErrUnknownID deliberately shares its status with a key mismatch so callers
// cannot probe which ids exist.
func ErrUnknownID() *AppError {
	return New("SEC_005", "ID Not Recognized", http.StatusNotFound)
}

// ---- Resources (RES) ----

func ErrNotFound(message string) *AppError {
	return New("RES_001", message, http.StatusNotFound)
}

func ErrNoPaymentRequests() *AppError {
	return New("RES_002", "No PaymentRequests available for this ID", http.StatusNotFound)
}

func ErrPRROnly() *AppError {
	return New("RES_003", "Endpoint Requires a valid POST to create a PaymentRequest Request", http.StatusMethodNotAllowed)
}

// ---- Authentication (AUTH) ----

func ErrInvalidCredentials() *AppError {
	return New("AUTH_001", "Invalid credentials", http.StatusUnauthorized)
}

func ErrInvalidToken() *AppError {
	return New("AUTH_003", "Invalid or expired token", http.StatusUnauthorized)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "ratelimit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

func ErrDatabaseError(err error) *AppError {
	return Wrap("SYS_001", "Internal database error", http.StatusInternalServerError, err)
}

func ErrCacheStale() *AppError {
	return New("SYS_002", "Address cache not up to date. Please try again later.", http.StatusInternalServerError)
}

func ErrEncryptionFailure(err error) *AppError {
	return Wrap("SYS_003", "Encryption service failure", http.StatusInternalServerError, err)
}

func ErrSubmitFailed(err error) *AppError {
	return Wrap("SYS_004", "Unable to submit all transactions", http.StatusInternalServerError, err)
}

// Internal wraps err with a caller-facing message and a 500 status.
func Internal(message string, err error) *AppError {
	return Wrap("SYS_005", message, http.StatusInternalServerError, err)
}

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}
