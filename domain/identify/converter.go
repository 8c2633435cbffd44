package identify

import (
	"github.com/second-order-ai/singapore-postcode-geocoding/domain/postcode"
	"github.com/second-order-ai/singapore-postcode-geocoding/domain/table"
	"github.com/second-order-ai/singapore-postcode-geocoding/internal"
	"github.com/second-order-ai/singapore-postcode-geocoding/internal/errors"
)

// Convert ranks all candidates on a sample, and if the best one clears the
// success threshold (inclusive), applies it to the entire table. On failure
// the caller's table comes back untouched together with the ranking, so the
// near-misses stay inspectable. No partial conversion is attempted.
func (id *Identifier) Convert(tbl *table.Table) (Outcome, error) {
	ranked, err := id.Rank(tbl)
	if err != nil {
		return Outcome{}, err
	}
	if len(ranked) == 0 || ranked[0].SuccessRate < id.cfg.SuccessThreshold {
		if len(ranked) > 0 {
			internal.DefaultLogger.Info(
				"no candidate cleared threshold %.3f: best was column %q method %s at %.3f",
				id.cfg.SuccessThreshold, ranked[0].Column, ranked[0].Method, ranked[0].SuccessRate)
		}
		return Outcome{Table: tbl, Success: false, Candidates: ranked}, nil
	}

	chosen := ranked[0]
	annotated, err := id.Apply(tbl, chosen)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Table: annotated, Success: true, Chosen: &chosen, Candidates: ranked}, nil
}

// Apply runs one candidate's column and method over every row of the table
// and returns the annotated result. The correctness flag is always computed;
// the keep toggles only decide which diagnostic columns survive into the
// output, after drop_incorrect has filtered rows.
func (id *Identifier) Apply(tbl *table.Table, chosen Candidate) (*table.Table, error) {
	if !tbl.HasColumn(chosen.Column) {
		return nil, errors.ColumnNotFound(chosen.Column)
	}
	if chosen.Method != MethodDirect && chosen.Method != MethodIndirect {
		return nil, errors.InvalidInput("unknown conversion method: " + string(chosen.Method))
	}

	cfg := id.validator.Config()
	names := cfg.FieldNames
	n := tbl.NumRows()

	candidates := make([]table.Value, n)
	extracted := make([]table.Value, n)
	flags := make([]table.Value, n)
	reasons := make([]table.Value, n)
	formatted := make([]table.Value, n)
	reasonCounts := make(map[postcode.Reason]int)

	for i := 0; i < n; i++ {
		raw := tbl.Value(i, chosen.Column)
		candidates[i] = raw

		var result postcode.Result
		if chosen.Method == MethodIndirect {
			text, ok := id.extractor.Extract(raw)
			if ok {
				extracted[i] = table.NewText(text)
			} else {
				extracted[i] = table.Missing()
			}
			result = id.validator.Validate(extracted[i])
		} else {
			result = id.validator.Validate(raw)
		}

		flags[i] = table.Bool(result.IsCorrect)
		if result.IsCorrect {
			reasons[i] = table.Missing()
			formatted[i] = table.NewText(result.Formatted)
		} else {
			reasons[i] = table.NewText(string(result.Reason))
			formatted[i] = table.Missing()
			reasonCounts[result.Reason]++
		}
	}

	out := tbl
	var err error
	for _, col := range []struct {
		name   string
		values []table.Value
		skip   bool
	}{
		{names.Candidate, candidates, false},
		{names.Extracted, extracted, chosen.Method != MethodIndirect},
		{names.CorrectFlag, flags, false},
		{names.IncorrectReason, reasons, false},
		{names.Formatted, formatted, false},
	} {
		if col.skip {
			continue
		}
		out, err = out.WithColumn(col.name, col.values)
		if err != nil {
			return nil, err
		}
	}

	logValidationSummary(n, reasonCounts)

	if cfg.DropIncorrect {
		out = out.Filter(func(row table.Row) bool {
			return row[names.CorrectFlag].Boolean
		})
	}
	if !cfg.KeepValidationFields {
		out = out.DropColumns(names.CorrectFlag, names.IncorrectReason)
	}
	if !cfg.KeepFormattedField {
		out = out.DropColumns(names.Formatted)
	}
	return out, nil
}

// logValidationSummary reports valid/invalid counts and the per-reason
// breakdown after a full-table conversion.
func logValidationSummary(total int, reasonCounts map[postcode.Reason]int) {
	if total == 0 {
		return
	}
	invalid := 0
	for _, count := range reasonCounts {
		invalid += count
	}
	valid := total - invalid
	internal.DefaultLogger.Info("conversion complete - valid: %d (%.1f%%), invalid: %d (%.1f%%)",
		valid, 100*float64(valid)/float64(total),
		invalid, 100*float64(invalid)/float64(total))
	for _, reason := range []postcode.Reason{
		postcode.ReasonNotNumeric,
		postcode.ReasonNotInteger,
		postcode.ReasonOutOfRange,
		postcode.ReasonInvalidLength,
		postcode.ReasonNotInReference,
	} {
		if count := reasonCounts[reason]; count > 0 {
			internal.DefaultLogger.Info("\t- %s: %d (%.1f%%)", reason, count, 100*float64(count)/float64(total))
		}
	}
}
