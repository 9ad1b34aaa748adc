package contract

import (
	"context"

	"parts-assist-be/internal/entity"
	"parts-assist-be/internal/repository/specification"
	"parts-assist-be/pkg/retrieval"

	"github.com/google/uuid"
)

// ScoredProduct wraps a Product with its cosine similarity to the query.
type ScoredProduct struct {
	Product    *entity.Product
	Similarity float64
}

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Product, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Product, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// SearchSimilar runs a vector search over the products namespace with an
	// optional metadata filter. A nil filter means broad search.
	SearchSimilar(ctx context.Context, embedding []float32, filter retrieval.Filter, limit int) ([]*ScoredProduct, error)
}
