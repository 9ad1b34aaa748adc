package service

import (
	"context"
	"encoding/json"
	"testing"

	"parts-assist-be/internal/dto"
	"parts-assist-be/internal/entity"
	"parts-assist-be/internal/repository/specification"

	"github.com/stretchr/testify/assert"
)

type fakePublisherService struct {
	payloads [][]byte
}

func (f *fakePublisherService) Publish(_ context.Context, payload []byte) error {
	f.payloads = append(f.payloads, payload)
	return nil
}

func TestUpsertProductCreatesAndSchedulesEmbedding(t *testing.T) {
	products := &fakeProductRepo{}
	pub := &fakePublisherService{}
	svc := NewCatalogService(&fakeUowFactory{uow: &fakeUow{products: products, orders: &fakeOrderRepo{}}}, pub)

	res, err := svc.UpsertProduct(context.Background(), &dto.UpsertProductRequest{
		PartNumber:       "PS-8694830",
		Name:             "Door Shelf Bin",
		Manufacturer:     "Whirlpool",
		Category:         "Refrigerator",
		Price:            36.08,
		CompatibleModels: []string{"WDT780SAEM1", "WRS325FDAM04"},
	})
	assert.NoError(t, err)
	assert.Equal(t, "PS-8694830", res.PartNumber)

	if assert.NotNil(t, products.created) {
		assert.Equal(t, "ps8694830", products.created.PartNumberNorm)
		assert.Contains(t, products.created.Document, "Part Number: PS-8694830")
		assert.Contains(t, products.created.Document, "Compatible Models: WDT780SAEM1, WRS325FDAM04")
		assert.JSONEq(t, `["wdt780saem1","wrs325fdam04"]`, string(products.created.CompatibleModelsNorm))
	}

	if assert.Len(t, pub.payloads, 1) {
		var msg dto.PublishEmbedDocumentMessage
		assert.NoError(t, json.Unmarshal(pub.payloads[0], &msg))
		assert.Equal(t, dto.DocTypeProduct, msg.DocType)
		assert.Equal(t, products.created.Id.String(), msg.Id)
	}
}

func TestUpsertProductUpdatesExistingRow(t *testing.T) {
	products := &fakeProductRepo{}
	pub := &fakePublisherService{}
	svc := NewCatalogService(&fakeUowFactory{uow: &fakeUow{products: products, orders: &fakeOrderRepo{}}}, pub)

	first, err := svc.UpsertProduct(context.Background(), &dto.UpsertProductRequest{
		PartNumber: "PS8694830",
		Name:       "Door Shelf Bin",
		Price:      36.08,
	})
	assert.NoError(t, err)
	assert.NotNil(t, first)

	products.existing = products.created
	_, err = svc.UpsertProduct(context.Background(), &dto.UpsertProductRequest{
		PartNumber: "PS8694830",
		Name:       "Door Shelf Bin (rev B)",
		Price:      38.50,
	})
	assert.NoError(t, err)
	if assert.NotNil(t, products.updated) {
		assert.Equal(t, products.existing.Id, products.updated.Id)
		assert.Equal(t, "Door Shelf Bin (rev B)", products.updated.Name)
		assert.NotNil(t, products.updated.UpdatedAt)
	}
}

func TestUpsertOrderNormalizesItems(t *testing.T) {
	orderRepo := &fakeOrderRepo{}
	pub := &fakePublisherService{}
	svc := NewCatalogService(&fakeUowFactory{uow: &fakeUow{products: &fakeProductRepo{}, orders: orderRepo}}, pub)

	res, err := svc.UpsertOrder(context.Background(), &dto.UpsertOrderRequest{
		OrderId:     "PSO1121",
		CustomerId:  "CUST9",
		CreatedDate: "2024-11-02",
		Status:      "shipped",
		Carrier:     "UPS",
		AddressCity: "Austin",
		Items: []dto.OrderItemDTO{
			{PartNumber: "PS-11752778", Qty: 1, Price: 45},
		},
	})
	assert.NoError(t, err)
	assert.Equal(t, "PSO1121", res.OrderId)

	if assert.NotNil(t, orderRepo.created) {
		assert.Equal(t, "pso1121", orderRepo.created.OrderIdNorm)
		assert.JSONEq(t, `["ps11752778"]`, string(orderRepo.created.ItemPartNumbersNorm))
		assert.Contains(t, orderRepo.created.Document, "Items: 1x PS-11752778 @ $45.00")
	}
	assert.Len(t, pub.payloads, 1)
}

func TestListProductsAppliesCategoryAndPagination(t *testing.T) {
	products := &fakeProductRepo{all: []*entity.Product{
		{PartNumber: "PS2375646", Name: "Upper Rack Adjuster Kit", Category: "Dishwasher", Price: 48.95},
		{PartNumber: "PS8694830", Name: "Lower Door Seal", Category: "Dishwasher", Price: 19.75},
	}}
	svc := NewCatalogService(&fakeUowFactory{uow: &fakeUow{products: products, orders: &fakeOrderRepo{}}}, &fakePublisherService{})

	res, err := svc.ListProducts(context.Background(), &dto.ListProductsRequest{Category: "Dishwasher", Page: 2, Limit: 10})
	assert.NoError(t, err)
	assert.Equal(t, int64(2), res.Total)
	if assert.Len(t, res.Items, 2) {
		assert.Equal(t, "PS2375646", res.Items[0].PartNumber)
		assert.Equal(t, "Upper Rack Adjuster Kit", res.Items[0].Name)
	}

	var byCategory *specification.ByCategory
	var pagination *specification.Pagination
	var orderBy *specification.OrderBy
	for _, s := range products.lastFindSpecs {
		switch v := s.(type) {
		case specification.ByCategory:
			byCategory = &v
		case specification.Pagination:
			pagination = &v
		case specification.OrderBy:
			orderBy = &v
		}
	}
	if assert.NotNil(t, byCategory) {
		assert.Equal(t, "Dishwasher", byCategory.Category)
	}
	if assert.NotNil(t, pagination) {
		assert.Equal(t, 10, pagination.Limit)
		assert.Equal(t, 10, pagination.Offset)
	}
	if assert.NotNil(t, orderBy) {
		assert.Equal(t, "part_number", orderBy.Field)
	}
}

func TestListProductsDefaultsPagination(t *testing.T) {
	products := &fakeProductRepo{}
	svc := NewCatalogService(&fakeUowFactory{uow: &fakeUow{products: products, orders: &fakeOrderRepo{}}}, &fakePublisherService{})

	_, err := svc.ListProducts(context.Background(), &dto.ListProductsRequest{})
	assert.NoError(t, err)

	var pagination *specification.Pagination
	var byCategory *specification.ByCategory
	for _, s := range products.lastFindSpecs {
		switch v := s.(type) {
		case specification.Pagination:
			pagination = &v
		case specification.ByCategory:
			byCategory = &v
		}
	}
	if assert.NotNil(t, pagination) {
		assert.Equal(t, 20, pagination.Limit)
		assert.Equal(t, 0, pagination.Offset)
	}
	assert.Nil(t, byCategory) // no category query means no category clause
}

func TestListOrdersFiltersByStatus(t *testing.T) {
	orderRepo := &fakeOrderRepo{all: []*entity.Order{
		{OrderId: "PSO1121", Status: entity.OrderStatusShipped, Carrier: "FedEx", AddressCity: "Chicago"},
	}}
	svc := NewCatalogService(&fakeUowFactory{uow: &fakeUow{products: &fakeProductRepo{}, orders: orderRepo}}, &fakePublisherService{})

	res, err := svc.ListOrders(context.Background(), &dto.ListOrdersRequest{Status: entity.OrderStatusShipped})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), res.Total)
	if assert.Len(t, res.Items, 1) {
		assert.Equal(t, "PSO1121", res.Items[0].OrderId)
		assert.Equal(t, entity.OrderStatusShipped, res.Items[0].Status)
	}

	var byStatus *specification.ByStatus
	for _, s := range orderRepo.lastFindSpecs {
		if v, ok := s.(specification.ByStatus); ok {
			byStatus = &v
		}
	}
	if assert.NotNil(t, byStatus) {
		assert.Equal(t, entity.OrderStatusShipped, byStatus.Status)
	}
}
