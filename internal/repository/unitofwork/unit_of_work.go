package unitofwork

import (
	"context"

	"parts-assist-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ProductRepository() contract.ProductRepository
	OrderRepository() contract.OrderRepository
}
