package customvalidator

import (
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// RegisterCustomValidations registers the domain-specific validation
// rules on the shared validator instance.
func RegisterCustomValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("checksheet_type", isChecksheetType); err != nil {
		return err
	}
	if err := v.RegisterValidation("visual_judgment", isVisualJudgment); err != nil {
		return err
	}
	if err := v.RegisterValidation("decimal_string", isDecimalString); err != nil {
		return err
	}
	return nil
}

func isChecksheetType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "dir", "fi":
		return true
	}
	return false
}

func isVisualJudgment(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "good", "after_repair", "ng":
		return true
	}
	return false
}

func isDecimalString(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true // omitempty handles requiredness
	}
	_, err := decimal.NewFromString(s)
	return err == nil
}
