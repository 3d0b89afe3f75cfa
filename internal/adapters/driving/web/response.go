package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIError is the body of a failed request.
type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// ErrorEnvelope wraps APIError.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func respondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

// respondServiceError classifies err and writes the envelope.
func respondServiceError(c *gin.Context, err error) {
	status, code := classify(err)
	respondError(c, status, code, err)
}

func respondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
