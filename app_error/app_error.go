package app_error

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type statusError struct {
	error
	status int
}

func (e statusError) Unwrap() error {
	return e.error
}

func (e statusError) HTTPStatus() int {
	return e.status
}

// New creates an error that is answered with the given http status.
func New(status int, message string) error {
	return statusError{error: errors.New(message), status: status}
}

// Status resolves the http status of err, falling back to the given status.
func Status(err error, fallback int) int {
	var withStatus interface{ HTTPStatus() int }
	if errors.As(err, &withStatus) {
		return withStatus.HTTPStatus()
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 404
	}
	return fallback
}

func WithHTTPStatus(c *gin.Context, err error, status int) {
	c.JSON(status, gin.H{"error": err.Error()})
}

func Respond(c *gin.Context, err error) {
	WithHTTPStatus(c, err, Status(err, 500))
}
