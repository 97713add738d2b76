package utils

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "checksheet-system/pkg/errors"
)

type HttpResponse struct {
	Status  bool        `json:"status"`
	Body    interface{} `json:"body,omitempty"`
	Message string      `json:"message"`
}

type ListResponse struct {
	Status     bool        `json:"status"`
	Body       interface{} `json:"body"`
	Message    string      `json:"message"`
	TotalCount uint64      `json:"total_count"`
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
	TotalPages int         `json:"total_pages"`
}

func SuccessResponse(ctx echo.Context, body interface{}, message string, code int) error {
	return ctx.JSON(code, &HttpResponse{
		Status:  true,
		Body:    body,
		Message: message,
	})
}

func ListSuccessResponse(ctx echo.Context, list interface{}, message string, total uint64, page, limit int) error {
	totalPages := 0
	if limit > 0 {
		totalPages = int((total + uint64(limit) - 1) / uint64(limit))
	}
	return ctx.JSON(http.StatusOK, &ListResponse{
		Status:     true,
		Body:       list,
		Message:    message,
		TotalCount: total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	})
}

// ErrorResponse translates application errors into the JSON error
// envelope. Internal errors are logged with full detail but the client
// only ever sees a generic message.
func ErrorResponse(ctx echo.Context, err error, logger *zap.Logger) error {
	code := statusCode(err)
	message := err.Error()

	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) {
		message = httpErr.Message
		fields := []zap.Field{zap.Error(httpErr.Err), zap.Int("code", httpErr.Code)}
		for k, v := range httpErr.Context {
			fields = append(fields, zap.Any(k, v))
		}
		logger.Warn(httpErr.Message, fields...)
	}

	if code == http.StatusInternalServerError {
		logger.Error("unhandled error", zap.Error(err),
			zap.String("method", ctx.Request().Method),
			zap.String("uri", ctx.Request().RequestURI))
		message = apperrors.ErrInternalServer.Error()
	}

	return ctx.JSON(code, &HttpResponse{
		Status:  false,
		Message: message,
	})
}

func statusCode(err error) int {
	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) {
		return httpErr.Code
	}

	var invalidInput *apperrors.InvalidInputError
	if errors.As(err, &invalidInput) {
		return http.StatusBadRequest
	}
	if apperrors.IsTransitionError(err) {
		return http.StatusConflict
	}

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, apperrors.ErrVersionMismatch),
		errors.Is(err, apperrors.ErrRecordInUse):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperrors.ErrUnauthorized),
		errors.Is(err, apperrors.ErrInvalidCredentials),
		errors.Is(err, apperrors.ErrEmptyAuthHeader),
		errors.Is(err, apperrors.ErrInvalidAuthHeader),
		errors.Is(err, apperrors.ErrInvalidToken),
		errors.Is(err, apperrors.ErrTokenExpired),
		errors.Is(err, apperrors.ErrTokenIsNotAccess),
		errors.Is(err, apperrors.ErrTokenIsNotRefresh):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
