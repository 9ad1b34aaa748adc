package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"parts-assist-be/internal/dto"
	"parts-assist-be/internal/entity"
	"parts-assist-be/internal/repository/specification"
	"parts-assist-be/internal/repository/unitofwork"
	"parts-assist-be/pkg/normalize"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ICatalogService handles catalog writes: upsert the record, compose its
// retrieval document, then schedule embedding generation off the request
// path.
type ICatalogService interface {
	UpsertProduct(ctx context.Context, req *dto.UpsertProductRequest) (*dto.UpsertProductResponse, error)
	UpsertOrder(ctx context.Context, req *dto.UpsertOrderRequest) (*dto.UpsertOrderResponse, error)
	ListProducts(ctx context.Context, req *dto.ListProductsRequest) (*dto.ListProductsResponse, error)
	ListOrders(ctx context.Context, req *dto.ListOrdersRequest) (*dto.ListOrdersResponse, error)
}

type catalogService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
}

func NewCatalogService(uowFactory unitofwork.RepositoryFactory, publisherService IPublisherService) ICatalogService {
	return &catalogService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
	}
}

func (c *catalogService) UpsertProduct(ctx context.Context, req *dto.UpsertProductRequest) (*dto.UpsertProductResponse, error) {
	modelsNorm := make([]string, len(req.CompatibleModels))
	for i, m := range req.CompatibleModels {
		modelsNorm[i] = normalize.Identifier(m)
	}
	modelsJson, err := json.Marshal(req.CompatibleModels)
	if err != nil {
		return nil, err
	}
	modelsNormJson, err := json.Marshal(modelsNorm)
	if err != nil {
		return nil, err
	}

	product := entity.Product{
		Id:                         uuid.New(),
		PartNumber:                 req.PartNumber,
		PartNumberNorm:             normalize.Identifier(req.PartNumber),
		Name:                       req.Name,
		Manufacturer:               req.Manufacturer,
		ManufacturerPartNumber:     req.ManufacturerPartNumber,
		ManufacturerPartNumberNorm: normalize.Identifier(req.ManufacturerPartNumber),
		Category:                   req.Category,
		Price:                      req.Price,
		InstallationGuide:          req.InstallationGuide,
		Troubleshooting:            req.Troubleshooting,
		CompatibleModels:           datatypes.JSON(modelsJson),
		CompatibleModelsNorm:       datatypes.JSON(modelsNormJson),
		Document:                   composeProductDocument(req),
		CreatedAt:                  time.Now(),
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	existing, err := uow.ProductRepository().FindOne(ctx, specification.ByPartNumberNorm{PartNumberNorm: product.PartNumberNorm})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		product.Id = existing.Id
		product.CreatedAt = existing.CreatedAt
		now := time.Now()
		product.UpdatedAt = &now
		product.Embedding = existing.Embedding // stale until the consumer refreshes it
		err = uow.ProductRepository().Update(ctx, &product)
	} else {
		err = uow.ProductRepository().Create(ctx, &product)
	}
	if err != nil {
		return nil, err
	}

	if err := c.scheduleEmbedding(ctx, dto.DocTypeProduct, product.Id.String()); err != nil {
		return nil, err
	}

	return &dto.UpsertProductResponse{PartNumber: product.PartNumber}, nil
}

func (c *catalogService) UpsertOrder(ctx context.Context, req *dto.UpsertOrderRequest) (*dto.UpsertOrderResponse, error) {
	items := make([]entity.OrderItem, len(req.Items))
	itemNorms := make([]string, len(req.Items))
	for i, it := range req.Items {
		items[i] = entity.OrderItem{PartNumber: it.PartNumber, Qty: it.Qty, Price: it.Price}
		itemNorms[i] = normalize.Identifier(it.PartNumber)
	}
	itemsJson, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}
	itemNormsJson, err := json.Marshal(itemNorms)
	if err != nil {
		return nil, err
	}

	order := entity.Order{
		Id:                  uuid.New(),
		OrderId:             req.OrderId,
		OrderIdNorm:         normalize.Identifier(req.OrderId),
		CustomerId:          req.CustomerId,
		CreatedDate:         req.CreatedDate,
		Status:              req.Status,
		Carrier:             req.Carrier,
		AddressCity:         req.AddressCity,
		Items:               datatypes.JSON(itemsJson),
		ItemPartNumbersNorm: datatypes.JSON(itemNormsJson),
		Document:            composeOrderDocument(req, items),
		CreatedAt:           time.Now(),
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	existing, err := uow.OrderRepository().FindByNormalizedId(ctx, order.OrderIdNorm)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		order.Id = existing.Id
		order.CreatedAt = existing.CreatedAt
		now := time.Now()
		order.UpdatedAt = &now
		order.Embedding = existing.Embedding
		err = uow.OrderRepository().Update(ctx, &order)
	} else {
		err = uow.OrderRepository().Create(ctx, &order)
	}
	if err != nil {
		return nil, err
	}

	if err := c.scheduleEmbedding(ctx, dto.DocTypeOrder, order.Id.String()); err != nil {
		return nil, err
	}

	return &dto.UpsertOrderResponse{OrderId: order.OrderId}, nil
}

func (c *catalogService) ListProducts(ctx context.Context, req *dto.ListProductsRequest) (*dto.ListProductsResponse, error) {
	page, limit := normalizePagination(req.Page, req.Limit)

	var filters []specification.Specification
	if req.Category != "" {
		filters = append(filters, specification.ByCategory{Category: req.Category})
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	total, err := uow.ProductRepository().Count(ctx, filters...)
	if err != nil {
		return nil, err
	}

	specs := append(filters,
		specification.OrderBy{Field: "part_number"},
		specification.Pagination{Limit: limit, Offset: (page - 1) * limit},
	)
	rows, err := uow.ProductRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ProductListItem, 0, len(rows))
	for _, p := range rows {
		items = append(items, dto.ProductListItem{
			PartNumber:   p.PartNumber,
			Name:         p.Name,
			Manufacturer: p.Manufacturer,
			Category:     p.Category,
			Price:        p.Price,
		})
	}
	return &dto.ListProductsResponse{Items: items, Total: total}, nil
}

func (c *catalogService) ListOrders(ctx context.Context, req *dto.ListOrdersRequest) (*dto.ListOrdersResponse, error) {
	page, limit := normalizePagination(req.Page, req.Limit)

	var filters []specification.Specification
	if req.Status != "" {
		filters = append(filters, specification.ByStatus{Status: req.Status})
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	total, err := uow.OrderRepository().Count(ctx, filters...)
	if err != nil {
		return nil, err
	}

	specs := append(filters,
		specification.OrderBy{Field: "order_id"},
		specification.Pagination{Limit: limit, Offset: (page - 1) * limit},
	)
	rows, err := uow.OrderRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	items := make([]dto.OrderListItem, 0, len(rows))
	for _, o := range rows {
		items = append(items, dto.OrderListItem{
			OrderId:     o.OrderId,
			CustomerId:  o.CustomerId,
			CreatedDate: o.CreatedDate,
			Status:      o.Status,
			Carrier:     o.Carrier,
			AddressCity: o.AddressCity,
		})
	}
	return &dto.ListOrdersResponse{Items: items, Total: total}, nil
}

func normalizePagination(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}

func (c *catalogService) scheduleEmbedding(ctx context.Context, docType, id string) error {
	payload, err := json.Marshal(dto.PublishEmbedDocumentMessage{DocType: docType, Id: id})
	if err != nil {
		return err
	}
	return c.publisherService.Publish(ctx, payload)
}

func composeProductDocument(req *dto.UpsertProductRequest) string {
	return fmt.Sprintf(`Part Number: %s
Name: %s
Category: %s
Manufacturer: %s
Manufacturer Part Number: %s
Price: %.2f
Installation Guide: %s
Troubleshooting: %s
Compatible Models: %s`,
		req.PartNumber,
		req.Name,
		req.Category,
		req.Manufacturer,
		req.ManufacturerPartNumber,
		req.Price,
		req.InstallationGuide,
		req.Troubleshooting,
		strings.Join(req.CompatibleModels, ", "),
	)
}

func composeOrderDocument(req *dto.UpsertOrderRequest, items []entity.OrderItem) string {
	rendered := make([]string, len(items))
	for i, it := range items {
		rendered[i] = fmt.Sprintf("%dx %s @ $%.2f", it.Qty, it.PartNumber, it.Price)
	}
	return fmt.Sprintf(`Order ID: %s
Customer ID: %s
Created Date: %s
Status: %s
Carrier: %s
Items: %s
Address City: %s`,
		req.OrderId,
		req.CustomerId,
		req.CreatedDate,
		req.Status,
		req.Carrier,
		strings.Join(rendered, "; "),
		req.AddressCity,
	)
}
