package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/second-order-ai/singapore-postcode-geocoding/domain/postcode"
	"github.com/second-order-ai/singapore-postcode-geocoding/ports"
)

// referenceRepository loads the master postcode list from Postgres
type referenceRepository struct {
	db    *sqlx.DB
	table string
}

// NewReferenceRepository creates a reference source backed by a Postgres
// table holding one formatted postcode per row.
func NewReferenceRepository(db *sqlx.DB, tableName string) ports.ReferenceSource {
	if tableName == "" {
		tableName = "master_postcodes"
	}
	return &referenceRepository{db: db, table: tableName}
}

// LoadReferenceSet fetches all distinct postcodes from the master table
func (r *referenceRepository) LoadReferenceSet(ctx context.Context) (postcode.ReferenceSet, error) {
	query := fmt.Sprintf(`SELECT DISTINCT postcode FROM %s WHERE postcode IS NOT NULL`, r.table)

	var codes []string
	if err := r.db.SelectContext(ctx, &codes, query); err != nil {
		return nil, fmt.Errorf("failed to load master postcodes: %w", err)
	}
	return postcode.NewReferenceSet(codes), nil
}
