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

// Whitelisted metadata fields for the products namespace.
var (
	productScalarFields = map[string]bool{
		retrieval.FieldPartNumberNorm: true,
	}
	productSetFields = map[string]bool{
		retrieval.FieldCompatibleModelsNorm: true,
	}
)

type ProductRepositoryImpl struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) contract.ProductRepository {
	return &ProductRepositoryImpl{db: db}
}

func (r *ProductRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ProductRepositoryImpl) Create(ctx context.Context, product *entity.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *ProductRepositoryImpl) Update(ctx context.Context, product *entity.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *ProductRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Product{}, id).Error
}

func (r *ProductRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Product, error) {
	var product entity.Product
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *ProductRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Product, error) {
	var products []*entity.Product
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *ProductRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&entity.Product{}).Count(&count).Error
	return count, err
}

// SearchSimilar is the products-namespace vector search: cosine distance
// ordering with the metadata filter translated to WHERE clauses.
func (r *ProductRepositoryImpl) SearchSimilar(
	ctx context.Context,
	embedding []float32,
	filter retrieval.Filter,
	limit int,
) ([]*contract.ScoredProduct, error) {
	if limit <= 0 {
		limit = 10
	}

	type result struct {
		entity.Product
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	query := r.db.WithContext(ctx).
		Table("products").
		Select("products.*, 1 - (embedding <=> ?) as similarity", queryVector)

	query, err := applyMetadataFilter(query, filter, productScalarFields, productSetFields)
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

	scored := make([]*contract.ScoredProduct, len(results))
	for i := range results {
		p := results[i].Product
		scored[i] = &contract.ScoredProduct{Product: &p, Similarity: results[i].Similarity}
	}
	return scored, nil
}
