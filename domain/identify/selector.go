package identify

import (
	"sort"

	"github.com/second-order-ai/singapore-postcode-geocoding/domain/table"
)

// Rank evaluates every candidate column under both methods and returns the
// results ordered by success rate, best first. Ties keep evaluation order:
// columns in their configured order, DIRECT before INDIRECT, so the first
// evaluated wins. An empty candidate set yields an empty ranking.
func (id *Identifier) Rank(tbl *table.Table) ([]Candidate, error) {
	columns := id.cfg.CandidateColumns
	if columns == nil {
		columns = tbl.Columns()
	}

	candidates := make([]Candidate, 0, 2*len(columns))
	for _, column := range columns {
		for _, method := range []Method{MethodDirect, MethodIndirect} {
			candidate, err := id.Evaluate(tbl, column, method)
			if err != nil {
				return nil, err
			}
			candidates = append(candidates, candidate)
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].SuccessRate > candidates[j].SuccessRate
	})
	return candidates, nil
}
