package dto

type OrderItemDTO struct {
	PartNumber string  `json:"part_number" validate:"required"`
	Qty        int     `json:"qty" validate:"required,min=1"`
	Price      float64 `json:"price"`
}

type UpsertProductRequest struct {
	PartNumber             string   `json:"part_number" validate:"required"`
	Name                   string   `json:"name" validate:"required"`
	Manufacturer           string   `json:"manufacturer"`
	ManufacturerPartNumber string   `json:"manufacturer_part_number"`
	Category               string   `json:"category"`
	Price                  float64  `json:"price"`
	InstallationGuide      string   `json:"installation_guide"`
	Troubleshooting        string   `json:"troubleshooting"`
	CompatibleModels       []string `json:"compatible_models"`
}

type UpsertProductResponse struct {
	PartNumber string `json:"part_number"`
}

type UpsertOrderRequest struct {
	OrderId     string         `json:"order_id" validate:"required"`
	CustomerId  string         `json:"customer_id"`
	CreatedDate string         `json:"created_date"`
	Status      string         `json:"status" validate:"required"`
	Carrier     string         `json:"carrier"`
	AddressCity string         `json:"address_city"`
	Items       []OrderItemDTO `json:"items" validate:"dive"`
}

type UpsertOrderResponse struct {
	OrderId string `json:"order_id"`
}

type ListProductsRequest struct {
	Category string `query:"category"`
	Page     int    `query:"page"`
	Limit    int    `query:"limit"`
}

type ProductListItem struct {
	PartNumber   string  `json:"part_number"`
	Name         string  `json:"name"`
	Manufacturer string  `json:"manufacturer"`
	Category     string  `json:"category"`
	Price        float64 `json:"price"`
}

type ListProductsResponse struct {
	Items []ProductListItem `json:"items"`
	Total int64             `json:"total"`
}

type ListOrdersRequest struct {
	Status string `query:"status"`
	Page   int    `query:"page"`
	Limit  int    `query:"limit"`
}

type OrderListItem struct {
	OrderId     string `json:"order_id"`
	CustomerId  string `json:"customer_id"`
	CreatedDate string `json:"created_date"`
	Status      string `json:"status"`
	Carrier     string `json:"carrier"`
	AddressCity string `json:"address_city"`
}

type ListOrdersResponse struct {
	Items []OrderListItem `json:"items"`
	Total int64           `json:"total"`
}

// PublishEmbedDocumentMessage is the payload put on the embed pipeline
// after a catalog write. DocType is "product" or "order".
type PublishEmbedDocumentMessage struct {
	DocType string `json:"doc_type"`
	Id      string `json:"id"`
}

const (
	DocTypeProduct = "product"
	DocTypeOrder   = "order"
)
