package ports

import (
	"github.com/second-order-ai/singapore-postcode-geocoding/domain/table"
)

// TableReader loads a tabular dataset from an external format into the
// in-memory table the identification core operates on.
type TableReader interface {
	ReadTable(path string) (*table.Table, error)
}
