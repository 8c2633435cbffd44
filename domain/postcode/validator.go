package postcode

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/second-order-ai/singapore-postcode-geocoding/domain/table"
	"github.com/second-order-ai/singapore-postcode-geocoding/internal/errors"
)

// Reason classifies why a value failed validation. Reasons are data recorded
// per row, never faults; a bad value does not abort table processing.
type Reason string

const (
	ReasonNone           Reason = "NONE"
	ReasonNotNumeric     Reason = "NOT_NUMERIC"
	ReasonNotInteger     Reason = "NOT_INTEGER"
	ReasonOutOfRange     Reason = "OUT_OF_RANGE"
	ReasonInvalidLength  Reason = "INVALID_LENGTH"
	ReasonNotInReference Reason = "NOT_IN_REFERENCE_SET"
)

// Result is the classification of one raw value
type Result struct {
	IsCorrect bool   `json:"is_correct"`
	Reason    Reason `json:"reason"`
	Formatted string `json:"formatted,omitempty"`
}

// ReferenceSet holds the canonical formatted postcodes known to exist
type ReferenceSet map[string]struct{}

// NewReferenceSet builds a deduplicated reference set from formatted codes
func NewReferenceSet(codes []string) ReferenceSet {
	set := make(ReferenceSet, len(codes))
	for _, code := range codes {
		set[code] = struct{}{}
	}
	return set
}

// Contains reports whether the formatted code exists in the set
func (s ReferenceSet) Contains(code string) bool {
	_, ok := s[code]
	return ok
}

// Validator classifies raw values against the configured range/length rules
// and the reference set of real postcodes.
type Validator struct {
	cfg  ValidationConfig
	refs ReferenceSet
}

// NewValidator validates the config and reference set up front so per-value
// calls cannot fail. An empty reference set is a caller error: existence
// checking is part of the contract, not optional.
func NewValidator(cfg ValidationConfig, refs ReferenceSet) (*Validator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(refs) == 0 {
		return nil, errors.ReferenceEmpty("reference postcode set is empty")
	}
	return &Validator{cfg: cfg, refs: refs}, nil
}

// Config returns the validator's configuration
func (v *Validator) Config() ValidationConfig {
	return v.cfg
}

// Validate classifies one raw value. Checks run in a fixed order and stop at
// the first failure so the reported reason is the earliest applicable one:
// a non-numeric value is never reported as out of range.
func (v *Validator) Validate(value table.Value) Result {
	num, ok := toNumber(value)
	if !ok {
		return Result{Reason: ReasonNotNumeric}
	}
	if num != math.Trunc(num) {
		return Result{Reason: ReasonNotInteger}
	}
	if num < float64(v.cfg.IntRange.Min) || num > float64(v.cfg.IntRange.Max) {
		return Result{Reason: ReasonOutOfRange}
	}
	// Pad before the length check so legitimate leading-zero codes such as
	// "018956" are not misread as too short.
	formatted := v.Format(int64(num))
	if len(formatted) < v.cfg.LenRange.Min || len(formatted) > v.cfg.LenRange.Max {
		return Result{Reason: ReasonInvalidLength}
	}
	if !v.refs.Contains(formatted) {
		return Result{Reason: ReasonNotInReference}
	}
	return Result{IsCorrect: true, Reason: ReasonNone, Formatted: formatted}
}

// Format renders an integer postcode as the canonical zero-padded string of
// the maximum configured length.
func (v *Validator) Format(code int64) string {
	return fmt.Sprintf("%0*d", v.cfg.LenRange.Max, code)
}

// toNumber interprets a cell as a number. Text is trimmed and parsed; missing
// cells and unparsable text are not numbers. Every coercion the validator
// performs lives here so it stays testable in isolation.
func toNumber(value table.Value) (float64, bool) {
	switch {
	case value.IsNumber():
		return value.Num, true
	case value.IsText():
		num, err := strconv.ParseFloat(strings.TrimSpace(value.Text), 64)
		if err != nil || math.IsInf(num, 0) || math.IsNaN(num) {
			return 0, false
		}
		return num, true
	default:
		return 0, false
	}
}
