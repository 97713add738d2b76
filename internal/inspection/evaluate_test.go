package inspection

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func spec(nominal, min, max string) Spec {
	return Spec{Nominal: dec(nominal), ToleranceMin: dec(min), ToleranceMax: dec(max)}
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name   string
		spec   Spec
		actual string
		want   Result
	}{
		{"deviation above upper bound", spec("25.0", "-0.02", "0.02"), "25.10", ResultReject},
		{"deviation within bounds", spec("100.0", "-0.05", "0.05"), "100.02", ResultAccepted},
		{"exactly on upper bound", spec("25.0", "-0.02", "0.02"), "25.02", ResultAccepted},
		{"exactly on lower bound", spec("25.0", "-0.02", "0.02"), "24.98", ResultAccepted},
		{"just below lower bound", spec("25.0", "-0.02", "0.02"), "24.979", ResultReject},
		{"just above upper bound", spec("25.0", "-0.02", "0.02"), "25.021", ResultReject},
		{"exact nominal", spec("10.5", "-0.1", "0.1"), "10.5", ResultAccepted},
		{"asymmetric band, negative deviation ok", spec("50", "-0.3", "0.1"), "49.75", ResultAccepted},
		{"asymmetric band, positive deviation rejected", spec("50", "-0.3", "0.1"), "50.2", ResultReject},
		{"zero-width band accepts only nominal", spec("8", "0", "0"), "8", ResultAccepted},
		{"zero-width band rejects everything else", spec("8", "0", "0"), "8.0001", ResultReject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Evaluate(tt.spec, decimal.RequireFromString(tt.actual))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvaluateDecimalExactness(t *testing.T) {
	// 0.1+0.02 style values must not drift the way float64 does.
	got, err := Evaluate(spec("0.3", "-0.01", "0.01"), decimal.RequireFromString("0.31"))
	require.NoError(t, err)
	assert.Equal(t, ResultAccepted, got)
}

func TestSpecValidate(t *testing.T) {
	t.Run("bounds must be paired", func(t *testing.T) {
		s := Spec{Nominal: dec("10"), ToleranceMin: dec("-0.1")}
		assert.Error(t, s.Validate())
	})

	t.Run("nominal required with bounds", func(t *testing.T) {
		s := Spec{ToleranceMin: dec("-0.1"), ToleranceMax: dec("0.1")}
		assert.Error(t, s.Validate())
	})

	t.Run("min must not exceed max", func(t *testing.T) {
		assert.Error(t, spec("10", "0.1", "-0.1").Validate())
	})

	t.Run("no bounds is valid and not applicable", func(t *testing.T) {
		s := Spec{}
		require.NoError(t, s.Validate())
		assert.False(t, s.Applicable())

		_, err := Evaluate(s, decimal.RequireFromString("1"))
		assert.Error(t, err)
	})
}

func TestJudgmentValid(t *testing.T) {
	assert.True(t, JudgmentGood.Valid())
	assert.True(t, JudgmentAfterRepair.Valid())
	assert.True(t, JudgmentNG.Valid())
	assert.False(t, Judgment("accepted").Valid())
	assert.False(t, Judgment("").Valid())
}
