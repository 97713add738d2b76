package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "checksheet-system/pkg/errors"
)

// parseIDParam reads a numeric path parameter. Malformed input is a
// client error, so the strconv failure is wrapped into a 400 instead
// of surfacing as an unhandled 500.
func parseIDParam(ctx echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil {
		return 0, apperrors.NewHttpError(http.StatusBadRequest,
			fmt.Sprintf("%s must be a positive integer", name), err, nil)
	}
	return id, nil
}
