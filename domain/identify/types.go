package identify

import (
	"github.com/second-order-ai/singapore-postcode-geocoding/domain/postcode"
	"github.com/second-order-ai/singapore-postcode-geocoding/domain/table"
	"github.com/second-order-ai/singapore-postcode-geocoding/internal/errors"
)

// Method is a postcode conversion strategy for one column
type Method string

const (
	// MethodDirect treats the raw column value as the postcode itself
	MethodDirect Method = "DIRECT"
	// MethodIndirect extracts a postcode-shaped substring before validating
	MethodIndirect Method = "INDIRECT"
)

// Config controls automatic column identification
type Config struct {
	// CandidateColumns limits which columns are tried. nil means all columns
	// of the table; an empty non-nil slice means try nothing.
	CandidateColumns []string `json:"candidate_columns"`
	// Pattern is the extraction regex for the INDIRECT method; empty selects
	// postcode.DefaultPattern.
	Pattern string `json:"pattern"`
	// SampleSize bounds how many rows each column evaluation reads
	SampleSize int `json:"sample_size"`
	// SuccessThreshold is the minimum sampled success rate, inclusive
	SuccessThreshold float64 `json:"success_threshold"`
	// Seed drives sampling; the same table, seed and sample size always
	// produce the same sample.
	Seed int64 `json:"seed"`
}

// DefaultConfig returns identification defaults suitable for Singapore data
func DefaultConfig() Config {
	return Config{
		Pattern:          postcode.DefaultPattern,
		SampleSize:       100,
		SuccessThreshold: 0.1,
		Seed:             42,
	}
}

// Validate checks the identification config for caller errors
func (c Config) Validate() error {
	if c.SampleSize <= 0 {
		return errors.ConfigInvalid("sample size must be positive")
	}
	if c.SuccessThreshold < 0 || c.SuccessThreshold > 1 {
		return errors.ConfigInvalid("success threshold must be in [0, 1]")
	}
	return nil
}

// Candidate is the evaluation result for one column and method
type Candidate struct {
	Column      string  `json:"column"`
	Method      Method  `json:"method"`
	Pattern     string  `json:"pattern,omitempty"` // INDIRECT only
	SuccessRate float64 `json:"success_rate"`
	SampleSize  int     `json:"sample_size"` // rows actually evaluated
	// Wilson 95% interval on the sampled rate. Diagnostics only; selection
	// and thresholding use the point estimate.
	RateLow  float64 `json:"rate_low"`
	RateHigh float64 `json:"rate_high"`
}

// Outcome is the result of a full auto-conversion run
type Outcome struct {
	// Table is the annotated table on success, the caller's original table
	// untouched on failure.
	Table *table.Table `json:"-"`
	// Success reports whether any candidate cleared the threshold
	Success bool `json:"success"`
	// Chosen is the winning candidate, nil on failure
	Chosen *Candidate `json:"chosen,omitempty"`
	// Candidates is the full ranking, best first, kept on failure so callers
	// can see how close the near-misses came.
	Candidates []Candidate `json:"candidates"`
}
