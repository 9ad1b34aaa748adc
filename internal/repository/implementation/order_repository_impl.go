package implementation

import (
	"context"
	"errors"

	"parts-assist-be/internal/entity"
	"parts-assist-be/internal/repository/contract"
	"parts-assist-be/internal/repository/specification"
	"parts-assist-be/pkg/retrieval"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

// Whitelisted metadata fields for the transactions namespace.
var (
	orderScalarFields = map[string]bool{
		retrieval.FieldOrderIdNorm: true,
	}
	orderSetFields = map[string]bool{
		retrieval.FieldItemPartNumbersNorm: true,
	}
)

type OrderRepositoryImpl struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) contract.OrderRepository {
	return &OrderRepositoryImpl{db: db}
}

func (r *OrderRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *OrderRepositoryImpl) Create(ctx context.Context, order *entity.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *OrderRepositoryImpl) Update(ctx context.Context, order *entity.Order) error {
	return r.db.WithContext(ctx).Save(order).Error
}

func (r *OrderRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Order{}, id).Error
}

func (r *OrderRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Order, error) {
	var order entity.Order
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Order, error) {
	var orders []*entity.Order
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *OrderRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&entity.Order{}).Count(&count).Error
	return count, err
}

// FindByNormalizedId is the deterministic order-store lookup: exact match on
// the normalized order id, nil on miss.
func (r *OrderRepositoryImpl) FindByNormalizedId(ctx context.Context, orderIdNorm string) (*entity.Order, error) {
	return r.FindOne(ctx, specification.ByOrderIdNorm{OrderIdNorm: orderIdNorm})
}

func (r *OrderRepositoryImpl) SearchSimilar(
	ctx context.Context,
	embedding []float32,
	filter retrieval.Filter,
	limit int,
) ([]*contract.ScoredOrder, error) {
	if limit <= 0 {
		limit = 10
	}

	type result struct {
		entity.Order
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	query := r.db.WithContext(ctx).
		Table("orders").
		Select("orders.*, 1 - (embedding <=> ?) as similarity", queryVector)

	query, err := applyMetadataFilter(query, filter, orderScalarFields, orderSetFields)
	if err != nil {
		return nil, err
	}

	err = query.
		Order("similarity DESC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredOrder, len(results))
	for i := range results {
		o := results[i].Order
		scored[i] = &contract.ScoredOrder{Order: &o, Similarity: results[i].Similarity}
	}
	return scored, nil
}
