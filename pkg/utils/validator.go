package utils

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "checksheet-system/pkg/errors"
)

// Validator adapts go-playground/validator to echo's Validator
// interface and folds validation failures into the 400 taxonomy.
type Validator struct {
	validate *validator.Validate
}

func NewValidator(validate *validator.Validate) *Validator {
	return &Validator{validate: validate}
}

func (v *Validator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			messages := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				messages = append(messages, fmt.Sprintf("field %q failed rule %q", fe.Field(), fe.Tag()))
			}
			return apperrors.NewHttpError(http.StatusBadRequest,
				"validation failed: "+strings.Join(messages, "; "), err, nil)
		}
		return apperrors.NewHttpError(http.StatusBadRequest, "validation failed", err, nil)
	}
	return nil
}
