package ports

import (
	"context"

	"github.com/bowlapp/storefront/internal/core/domain"
)

// CatalogGateway fetches the bowl catalog from the remote source.
//
// GetBowls never fails: on any upstream error the implementation returns the
// bundled static catalog instead, with deterministic placeholder imagery so
// repeated calls yield identical results for the same bowl id.
type CatalogGateway interface {
	GetBowls(ctx context.Context) []domain.Bowl
}
