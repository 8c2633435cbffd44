package postcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/second-order-ai/singapore-postcode-geocoding/domain/table"
)

func newTestValidator(t *testing.T, codes ...string) *Validator {
	t.Helper()
	if len(codes) == 0 {
		codes = []string{"018906", "238801", "918146"}
	}
	v, err := NewValidator(DefaultValidationConfig(), NewReferenceSet(codes))
	require.NoError(t, err)
	return v
}

func TestValidateFailureReasonOrdering(t *testing.T) {
	v := newTestValidator(t, "018906")

	tests := []struct {
		name   string
		value  table.Value
		reason Reason
	}{
		{"non-numeric text", table.NewText("abc"), ReasonNotNumeric},
		{"text with inner space", table.NewText("123 456"), ReasonNotNumeric},
		{"missing value", table.Missing(), ReasonNotNumeric},
		{"empty string", table.NewText(""), ReasonNotNumeric},
		{"fractional text", table.NewText("123456.81"), ReasonNotInteger},
		{"fractional number", table.Number(123456.81), ReasonNotInteger},
		{"below range", table.Number(18905), ReasonOutOfRange},
		{"above range", table.Number(999999), ReasonOutOfRange},
		{"well-formed but unknown", table.NewText("238801"), ReasonNotInReference},
		{"known code", table.NewText("18906"), ReasonNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := v.Validate(tt.value)
			assert.Equal(t, tt.reason, result.Reason)
			assert.Equal(t, tt.reason == ReasonNone, result.IsCorrect)
		})
	}
}

func TestValidateZeroPadding(t *testing.T) {
	v := newTestValidator(t)

	result := v.Validate(table.Number(18906))
	require.True(t, result.IsCorrect)
	assert.Equal(t, "018906", result.Formatted)

	result = v.Validate(table.NewText("918146"))
	require.True(t, result.IsCorrect)
	assert.Equal(t, "918146", result.Formatted)

	// a leading-zero input survives the numeric round trip
	result = v.Validate(table.NewText("018906"))
	require.True(t, result.IsCorrect)
	assert.Equal(t, "018906", result.Formatted)
}

func TestValidateFormattingIdempotent(t *testing.T) {
	v := newTestValidator(t)

	first := v.Validate(table.NewText("18906"))
	require.True(t, first.IsCorrect)

	second := v.Validate(table.NewText(first.Formatted))
	require.True(t, second.IsCorrect)
	assert.Equal(t, first.Formatted, second.Formatted)
}

func TestValidateInvalidLength(t *testing.T) {
	cfg := DefaultValidationConfig()
	cfg.IntRange = IntRange{Min: 1, Max: 99999999}
	v, err := NewValidator(cfg, NewReferenceSet([]string{"018906"}))
	require.NoError(t, err)

	// in numeric range but eight digits against a max length of six
	result := v.Validate(table.NewText("12345678"))
	assert.Equal(t, ReasonInvalidLength, result.Reason)
	assert.False(t, result.IsCorrect)
}

func TestNewValidatorRejectsBadInput(t *testing.T) {
	refs := NewReferenceSet([]string{"018906"})

	inverted := DefaultValidationConfig()
	inverted.IntRange = IntRange{Min: 10, Max: 5}
	_, err := NewValidator(inverted, refs)
	assert.Error(t, err)

	unnamed := DefaultValidationConfig()
	unnamed.FieldNames.CorrectFlag = ""
	_, err = NewValidator(unnamed, refs)
	assert.Error(t, err)

	_, err = NewValidator(DefaultValidationConfig(), nil)
	assert.Error(t, err)
}
