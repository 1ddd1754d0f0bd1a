package response

import (
	"errors"
	"net/http"
	"time"

	"payment-resolver/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Reserved envelope keys. Data fields with these names are overwritten.
const (
	keySuccess   = "success"
	keyMessage   = "message"
	keyErrorCode = "error_code"
	keyRequestID = "request_id"
	keyTimestamp = "timestamp"
)

// Body holds the data fields merged into the top level of the envelope.
type Body map[string]interface{}

// OK sends a 200 success envelope.
func OK(c *gin.Context, data Body) {
	Write(c, http.StatusOK, true, "", data)
}

// Created sends a 201 success envelope.
func Created(c *gin.Context, data Body) {
	Write(c, http.StatusCreated, true, "", data)
}

// Accepted sends a 202 success envelope.
func Accepted(c *gin.Context, data Body) {
	Write(c, http.StatusAccepted, true, "", data)
}

// NoContent sends an empty 204.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Write renders {success, message, ...data, request_id, timestamp}.
// success is forced to match the status class.
func Write(c *gin.Context, status int, success bool, message string, data Body) {
	env := make(gin.H, len(data)+4)
	for k, v := range data {
		env[k] = v
	}
	env[keySuccess] = success && status < http.StatusBadRequest
	env[keyMessage] = message
	env[keyRequestID] = getRequestID(c)
	env[keyTimestamp] = time.Now().UTC().Format(time.RFC3339)
	c.JSON(status, env)
}

// Error sends an error envelope. It checks if err is an *apperror.AppError
// and maps it accordingly, otherwise returns 500.
func Error(c *gin.Context, err error) {
	ErrorWithData(c, err, nil)
}

// ErrorWithData sends an error envelope carrying extra data fields, used
// for partially failed batches.
func ErrorWithData(c *gin.Context, err error, data Body) {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		appErr = apperror.New("SYS_000", "Internal server error", http.StatusInternalServerError)
	}

	body := make(Body, len(data)+1)
	for k, v := range data {
		body[k] = v
	}
	body[keyErrorCode] = appErr.Code
	Write(c, appErr.HTTPStatus, false, appErr.Message, body)
}

// Binary sends raw protocol bytes with the given content type.
func Binary(c *gin.Context, contentType string, payload []byte) {
	c.Header("Content-Transfer-Encoding", "binary")
	c.Header("Access-Control-Allow-Origin", "*")
	c.Data(http.StatusOK, contentType, payload)
}

// getRequestID retrieves request ID from context, or generates one.
func getRequestID(c *gin.Context) string {
	if id, exists := c.Get(keyRequestID); exists {
		if s, ok := id.(string); ok {
			return s
		}
	}
	return uuid.New().String()
}
