package contract

import (
	"context"

	"parts-assist-be/internal/entity"
	"parts-assist-be/internal/repository/specification"
	"parts-assist-be/pkg/retrieval"

	"github.com/google/uuid"
)

// ScoredOrder wraps an Order with its cosine similarity to the query.
type ScoredOrder struct {
	Order      *entity.Order
	Similarity float64
}

type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	Update(ctx context.Context, order *entity.Order) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Order, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Order, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// FindByNormalizedId is the exact-match order metadata lookup. Returns
	// (nil, nil) when no order carries that normalized id.
	FindByNormalizedId(ctx context.Context, orderIdNorm string) (*entity.Order, error)
	// SearchSimilar runs a vector search over the transactions namespace.
	SearchSimilar(ctx context.Context, embedding []float32, filter retrieval.Filter, limit int) ([]*ScoredOrder, error)
}
