package utils

import (
	"net/http"

	"freelancehub/services/errs"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error  string `json:"error"`
	Code   string `json:"code,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// ErrorHandler recovers panics and returns a structured 500.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				GetLogger().Error("Unhandled panic", zap.Any("error", err), zap.String("path", c.Request.URL.Path))
				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
					Error: "An unexpected error occurred. Please try again later.",
					Code:  "internal",
				})
			}
		}()
		c.Next()
	}
}

// StatusFor maps a taxonomy code to its HTTP status.
func StatusFor(code errs.Code) int {
	switch code {
	case errs.CodeValidation:
		return http.StatusBadRequest
	case errs.CodeNotFound:
		return http.StatusNotFound
	case errs.CodeConflict:
		return http.StatusConflict
	case errs.CodeForbidden:
		return http.StatusForbidden
	case errs.CodeUnauthorized:
		return http.StatusUnauthorized
	case errs.CodeUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// RespondError renders a service error. Foreign errors become a 500 without
// leaking their text.
func RespondError(c *gin.Context, err error) {
	code := errs.CodeOf(err)
	status := StatusFor(code)
	logger := GetLogger()

	if code == "" {
		logger.Error("Unclassified error", zap.String("path", c.Request.URL.Path), zap.Error(err))
		c.JSON(status, ErrorResponse{Error: "Internal Server Error", Code: "internal"})
		return
	}
	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", zap.String("path", c.Request.URL.Path), zap.String("code", string(code)), zap.Error(err))
	} else {
		logger.Debug("Request rejected", zap.String("path", c.Request.URL.Path), zap.String("code", string(code)), zap.Error(err))
	}
	c.JSON(status, ErrorResponse{
		Error:  errs.MessageOf(err),
		Code:   string(code),
		Reason: errs.ReasonOf(err),
	})
}

// JSONError sends an ad-hoc error for binding failures and the like.
func JSONError(c *gin.Context, status int, message string) {
	GetLogger().Warn(message, zap.String("path", c.Request.URL.Path))
	c.JSON(status, ErrorResponse{Error: message})
}
