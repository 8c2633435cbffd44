package tabular

import (
	"context"
	"fmt"

	"github.com/second-order-ai/singapore-postcode-geocoding/domain/postcode"
)

// ReferenceFileSource loads the master postcode list from a single-column
// CSV or XLSX file.
type ReferenceFileSource struct {
	filePath string
}

// NewReferenceFileSource creates a file-backed reference source
func NewReferenceFileSource(filePath string) *ReferenceFileSource {
	return &ReferenceFileSource{filePath: filePath}
}

// LoadReferenceSet reads the file and returns the deduplicated set of
// formatted postcodes. The master file must have exactly one column.
func (s *ReferenceFileSource) LoadReferenceSet(_ context.Context) (postcode.ReferenceSet, error) {
	reader := NewDataReader(s.filePath)
	tbl, err := reader.ReadTable(s.filePath)
	if err != nil {
		return nil, err
	}
	if len(tbl.Columns()) != 1 {
		return nil, fmt.Errorf("master postcode file should have only one column, the postcode; got %d", len(tbl.Columns()))
	}

	column := tbl.Columns()[0]
	codes := make([]string, 0, tbl.NumRows())
	for i := 0; i < tbl.NumRows(); i++ {
		if v := tbl.Value(i, column); !v.IsMissing() {
			codes = append(codes, v.String())
		}
	}
	return postcode.NewReferenceSet(codes), nil
}
