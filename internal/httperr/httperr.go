package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	booking "github.com/velvetlens/studio-booking/internal/domain/booking"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// FromBooking maps booking engine errors onto HTTP statuses: validation and
// policy failures are 400, lost slot races 409, missing or foreign sessions
// 404 and everything else an opaque 500.
func FromBooking(c *gin.Context, err error) {
	var be *booking.Error
	if !errors.As(err, &be) {
		Internal(c, "internal_error", "Something went wrong.")
		return
	}

	switch be.Kind {
	case booking.KindValidation, booking.KindPolicy:
		BadRequest(c, be.Code, be.Message)
	case booking.KindConflict:
		Conflict(c, be.Code, be.Message)
	case booking.KindNotFound:
		NotFound(c, be.Code, be.Message)
	default:
		Internal(c, "internal_error", "Something went wrong.")
	}
}
