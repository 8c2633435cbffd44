package ports

import (
	"context"

	"github.com/second-order-ai/singapore-postcode-geocoding/domain/postcode"
)

// ReferenceSource loads the authoritative set of formatted postcodes. The
// upstream master-data pipeline owns sourcing, merging and deduplication;
// implementations only fetch the finished list.
type ReferenceSource interface {
	LoadReferenceSet(ctx context.Context) (postcode.ReferenceSet, error)
}
