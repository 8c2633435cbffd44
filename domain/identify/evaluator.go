package identify

import (
	"math"
	"math/rand"
	"sort"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/second-order-ai/singapore-postcode-geocoding/domain/postcode"
	"github.com/second-order-ai/singapore-postcode-geocoding/domain/table"
	"github.com/second-order-ai/singapore-postcode-geocoding/internal/errors"
)

// Identifier runs candidate evaluation, selection and full-table conversion
// with one validated configuration. Construction fails fast on caller
// errors; after that every call is pure over its table argument.
type Identifier struct {
	validator *postcode.Validator
	extractor *postcode.Extractor
	cfg       Config
}

// NewIdentifier validates both configs, compiles the extraction pattern and
// checks the reference set once.
func NewIdentifier(vcfg postcode.ValidationConfig, refs postcode.ReferenceSet, cfg Config) (*Identifier, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	validator, err := postcode.NewValidator(vcfg, refs)
	if err != nil {
		return nil, err
	}
	extractor, err := postcode.NewExtractor(cfg.Pattern)
	if err != nil {
		return nil, err
	}
	return &Identifier{validator: validator, extractor: extractor, cfg: cfg}, nil
}

// Evaluate samples the column and returns its success rate under the given
// method. Only the sampled rows are read, so evaluation cost is bounded by
// the configured sample size regardless of table size. The table is never
// modified.
func (id *Identifier) Evaluate(tbl *table.Table, column string, method Method) (Candidate, error) {
	if !tbl.HasColumn(column) {
		return Candidate{}, errors.ColumnNotFound(column)
	}
	indices := sampleIndices(tbl.NumRows(), id.cfg.SampleSize, id.cfg.Seed)

	outcomes := make([]float64, 0, len(indices))
	for _, i := range indices {
		result := id.classify(tbl.Value(i, column), method)
		if result.IsCorrect {
			outcomes = append(outcomes, 1)
		} else {
			outcomes = append(outcomes, 0)
		}
	}

	rate := 0.0
	if len(outcomes) > 0 {
		rate, _ = stats.Mean(outcomes)
	}

	candidate := Candidate{
		Column:      column,
		Method:      method,
		SuccessRate: rate,
		SampleSize:  len(indices),
	}
	if method == MethodIndirect {
		candidate.Pattern = id.cfg.Pattern
	}
	candidate.RateLow, candidate.RateHigh = wilsonInterval(rate, len(indices))
	return candidate, nil
}

// classify runs one value through the configured method
func (id *Identifier) classify(value table.Value, method Method) postcode.Result {
	if method == MethodIndirect {
		extracted, ok := id.extractor.Extract(value)
		if !ok {
			// no match counts as an invalid candidate
			return id.validator.Validate(table.Missing())
		}
		return id.validator.Validate(table.NewText(extracted))
	}
	return id.validator.Validate(value)
}

// sampleIndices draws up to sampleSize distinct row indices with a seeded
// generator. Tables smaller than the sample are used whole. Indices come
// back sorted so evaluation walks the table in row order.
func sampleIndices(numRows, sampleSize int, seed int64) []int {
	if numRows <= sampleSize {
		indices := make([]int, numRows)
		for i := range indices {
			indices[i] = i
		}
		return indices
	}
	rng := rand.New(rand.NewSource(seed))
	indices := rng.Perm(numRows)[:sampleSize]
	sort.Ints(indices)
	return indices
}

// wilsonInterval computes the 95% Wilson score interval for a sampled
// proportion. Sampled success rates are noisy at small sample sizes; the
// bounds let callers judge near-misses in the ranking.
func wilsonInterval(rate float64, n int) (low, high float64) {
	if n == 0 {
		return 0, 0
	}
	z := distuv.Normal{Mu: 0, Sigma: 1}.Quantile(0.975)
	nf := float64(n)
	denom := 1 + z*z/nf
	center := (rate + z*z/(2*nf)) / denom
	margin := z * math.Sqrt(rate*(1-rate)/nf+z*z/(4*nf*nf)) / denom
	low = math.Max(0, center-margin)
	high = math.Min(1, center+margin)
	return low, high
}
