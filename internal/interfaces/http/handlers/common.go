// Package handlers holds the gin HTTP handlers for the question, progress,
// export, and health endpoints.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	pkgerrors "github.com/askchem/askchem/pkg/errors"
)

// ErrorBody is the wire shape of every error response.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps ErrorBody under an "error" key.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// writeAppError maps an application error onto an HTTP status. Internal
// detail never leaks: anything unclassified becomes a masked 500.
func writeAppError(c *gin.Context, err error) {
	code := pkgerrors.GetCode(err)

	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case pkgerrors.IsValidation(err) || pkgerrors.IsCode(err, pkgerrors.ErrCodeBadRequest) ||
		pkgerrors.IsCode(err, pkgerrors.ErrCodeInvalidExamMode) ||
		pkgerrors.IsCode(err, pkgerrors.ErrCodeQuestionTooLong):
		status = http.StatusBadRequest
		message = errMessage(err)
	case pkgerrors.IsNotFound(err):
		status = http.StatusNotFound
		message = errMessage(err)
	case pkgerrors.IsCode(err, pkgerrors.ErrCodeConflict):
		status = http.StatusConflict
		message = errMessage(err)
	case pkgerrors.IsCode(err, pkgerrors.ErrCodeTooManyRequests):
		status = http.StatusTooManyRequests
		message = errMessage(err)
	case pkgerrors.IsCode(err, pkgerrors.ErrCodeServiceUnavailable):
		status = http.StatusServiceUnavailable
		message = errMessage(err)
	default:
		code = pkgerrors.ErrCodeInternal
	}

	c.AbortWithStatusJSON(status, ErrorResponse{Error: ErrorBody{
		Code:    code.String(),
		Message: message,
	}})
}

func errMessage(err error) string {
	var appErr *pkgerrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
