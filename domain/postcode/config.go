package postcode

import (
	"github.com/second-order-ai/singapore-postcode-geocoding/internal/errors"
)

// IntRange bounds the numeric value of a well-formed postcode, inclusive
type IntRange struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

// LenRange bounds the length of the formatted postcode string, inclusive
type LenRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// FieldNames maps the five validation roles to output column identifiers.
// Callers pick names that do not collide with their own columns; on
// collision the validation field replaces the original column.
type FieldNames struct {
	Candidate       string `json:"candidate"`
	Extracted       string `json:"extracted"`
	CorrectFlag     string `json:"correct_flag"`
	IncorrectReason string `json:"incorrect_reason"`
	Formatted       string `json:"formatted"`
}

// ValidationConfig controls postcode validation and output shaping
type ValidationConfig struct {
	IntRange             IntRange   `json:"int_range"`
	LenRange             LenRange   `json:"len_range"`
	DropIncorrect        bool       `json:"drop_incorrect"`
	KeepValidationFields bool       `json:"keep_validation_fields"`
	KeepFormattedField   bool       `json:"keep_formatted_field"`
	FieldNames           FieldNames `json:"field_names"`
}

// DefaultValidationConfig returns the Singapore validation defaults:
// postcodes are integers in [18906, 918146] formatted as 6-digit
// zero-padded strings (5 or 6 significant digits).
func DefaultValidationConfig() ValidationConfig {
	return ValidationConfig{
		IntRange:             IntRange{Min: 18906, Max: 918146},
		LenRange:             LenRange{Min: 5, Max: 6},
		DropIncorrect:        false,
		KeepValidationFields: true,
		KeepFormattedField:   true,
		FieldNames: FieldNames{
			Candidate:       "CANDIDATE_POSTCODE",
			Extracted:       "EXTRACTED_POSTCODE",
			CorrectFlag:     "CORRECT_INPUT_POSTCODE",
			IncorrectReason: "INCORRECT_INPUT_POSTCODE_REASON",
			Formatted:       "FORMATTED_POSTCODE",
		},
	}
}

// Validate checks the config for caller errors: inverted or negative bounds
// and missing field names fail fast instead of surfacing as bogus per-row
// classifications.
func (c ValidationConfig) Validate() error {
	if c.IntRange.Min < 0 {
		return errors.ConfigInvalid("int range min must not be negative")
	}
	if c.IntRange.Min > c.IntRange.Max {
		return errors.ConfigInvalid("int range bounds are inverted")
	}
	if c.LenRange.Min <= 0 {
		return errors.ConfigInvalid("len range min must be positive")
	}
	if c.LenRange.Min > c.LenRange.Max {
		return errors.ConfigInvalid("len range bounds are inverted")
	}
	names := []string{
		c.FieldNames.Candidate,
		c.FieldNames.Extracted,
		c.FieldNames.CorrectFlag,
		c.FieldNames.IncorrectReason,
		c.FieldNames.Formatted,
	}
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if name == "" {
			return errors.ConfigInvalid("validation field names must all be set")
		}
		if seen[name] {
			return errors.ConfigInvalid("validation field names must be distinct: " + name)
		}
		seen[name] = true
	}
	return nil
}
