package services

import (
	"context"

	"github.com/google/uuid"
)

// StatsService recomputes wedding aggregates from source tables. The
// incremental counters are a cache; this recount is the source of truth.
type StatsService interface {
	ReconcileWedding(ctx context.Context, weddingID uuid.UUID) error
	ReconcileAll(ctx context.Context) error
}
