package http

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Nicksok2413/Kronon/internal/domain/apperrors"
)

// ErrorResponse is the uniform error body of the API.
type ErrorResponse struct {
	Message string                 `json:"message"`
	Code    string                 `json:"code"`
	Errors  []apperrors.FieldError `json:"errors,omitempty"`
}

var statusByCode = map[string]int{
	apperrors.CodeValidation:   http.StatusBadRequest,
	apperrors.CodeIntegrity:    http.StatusBadRequest,
	apperrors.CodeNotFound:     http.StatusNotFound,
	apperrors.CodeDuplicateUNP: http.StatusConflict,
	apperrors.CodeUnauthorized: http.StatusUnauthorized,
	apperrors.CodeForbidden:    http.StatusForbidden,
	apperrors.CodeInternal:     http.StatusInternalServerError,
}

// respondError maps an error to its HTTP status and uniform body. Unknown
// errors become opaque 500s; their detail stays in the log.
func respondError(c echo.Context, logger *zap.Logger, err error) error {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		logger.Error("Unhandled error",
			zap.String("path", c.Request().URL.Path),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "internal server error",
			Code:    apperrors.CodeInternal,
		})
	}

	status, ok := statusByCode[appErr.Code()]
	if !ok {
		status = http.StatusInternalServerError
	}
	if status == http.StatusInternalServerError {
		logger.Error("Internal error",
			zap.String("path", c.Request().URL.Path),
			zap.Error(err))
	}
	return c.JSON(status, ErrorResponse{
		Message: appErr.Message(),
		Code:    appErr.Code(),
		Errors:  appErr.Fields(),
	})
}

// bindAndValidate decodes the request body and runs struct validation.
// Validator failures are reported per field.
func bindAndValidate(c echo.Context, v interface{}) error {
	if err := c.Bind(v); err != nil {
		return apperrors.Validation("invalid request body")
	}
	if err := c.Validate(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]apperrors.FieldError, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, apperrors.FieldError{
					Field:  fe.Field(),
					Reason: fe.Tag(),
				})
			}
			return apperrors.ValidationFields("validation failed", fields)
		}
		return apperrors.Validation(err.Error())
	}
	return nil
}
