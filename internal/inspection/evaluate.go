package inspection

import (
	"github.com/shopspring/decimal"

	apperrors "checksheet-system/pkg/errors"
)

// Result classifies a single dimensional measurement.
type Result string

const (
	ResultAccepted Result = "accepted"
	ResultReject   Result = "reject"
)

// Spec is the tolerance band for one template item: a nominal value and
// a signed offset range around it. Nil bounds mean the item carries no
// numeric spec (visual items) and tolerance evaluation does not apply.
type Spec struct {
	Nominal      *decimal.Decimal
	ToleranceMin *decimal.Decimal
	ToleranceMax *decimal.Decimal
}

// Applicable reports whether the spec defines a numeric tolerance band.
func (s Spec) Applicable() bool {
	return s.ToleranceMin != nil && s.ToleranceMax != nil
}

// Validate checks the spec is internally consistent: bounds require a
// nominal, a lower bound must not exceed the upper one, and bounds come
// in pairs.
func (s Spec) Validate() error {
	if (s.ToleranceMin == nil) != (s.ToleranceMax == nil) {
		return apperrors.NewInvalidInputError("tolerance bounds must be given together")
	}
	if !s.Applicable() {
		return nil
	}
	if s.Nominal == nil {
		return apperrors.NewInvalidInputError("nominal is required when tolerance bounds are present")
	}
	if s.ToleranceMin.GreaterThan(*s.ToleranceMax) {
		return apperrors.NewInvalidInputError("tolerance_min %s exceeds tolerance_max %s",
			s.ToleranceMin.String(), s.ToleranceMax.String())
	}
	return nil
}

// Evaluate classifies an actual measured value against the spec:
// accepted iff toleranceMin <= actual - nominal <= toleranceMax.
// The caller must only invoke it for applicable, valid specs.
func Evaluate(spec Spec, actual decimal.Decimal) (Result, error) {
	if err := spec.Validate(); err != nil {
		return "", err
	}
	if !spec.Applicable() {
		return "", apperrors.NewInvalidInputError("tolerance evaluation is not applicable without bounds")
	}

	deviation := actual.Sub(*spec.Nominal)
	if deviation.GreaterThanOrEqual(*spec.ToleranceMin) && deviation.LessThanOrEqual(*spec.ToleranceMax) {
		return ResultAccepted, nil
	}
	return ResultReject, nil
}

// Judgment is the inspector-supplied verdict for a visual (FI) item.
type Judgment string

const (
	JudgmentGood        Judgment = "good"
	JudgmentAfterRepair Judgment = "after_repair"
	JudgmentNG          Judgment = "ng"
)

func (j Judgment) Valid() bool {
	switch j {
	case JudgmentGood, JudgmentAfterRepair, JudgmentNG:
		return true
	}
	return false
}
