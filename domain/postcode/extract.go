package postcode

import (
	"fmt"
	"regexp"

	"github.com/second-order-ai/singapore-postcode-geocoding/domain/table"
	"github.com/second-order-ai/singapore-postcode-geocoding/internal/errors"
)

// DefaultPattern matches a run of 5 or 6 digits not adjacent to other
// digits, so a 5-digit substring is never pulled out of an 8-digit number.
// RE2 has no lookarounds; the boundary context is consumed explicitly and
// the postcode itself is the first capture group.
const DefaultPattern = `(?:^|[^0-9])([0-9]{5,6})(?:[^0-9]|$)`

// Extractor pulls a postcode-shaped substring out of free text
type Extractor struct {
	re *regexp.Regexp
}

// NewExtractor compiles the pattern once. Patterns with a capture group
// yield group 1; patterns without yield the whole match.
func NewExtractor(pattern string) (*Extractor, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, &errors.AppError{
			Code:    errors.CodeConfigInvalid,
			Message: fmt.Sprintf("invalid extraction pattern %q", pattern),
			Cause:   err,
		}
	}
	return &Extractor{re: re}, nil
}

// Extract returns the first pattern match in the value's text rendering.
// Non-string cells are rendered first (a numeric 18906 still matches) and
// missing cells never match; extraction never fails, it only misses.
func (e *Extractor) Extract(value table.Value) (string, bool) {
	if value.IsMissing() {
		return "", false
	}
	match := e.re.FindStringSubmatch(value.String())
	if match == nil {
		return "", false
	}
	if len(match) > 1 {
		return match[1], true
	}
	return match[0], true
}
