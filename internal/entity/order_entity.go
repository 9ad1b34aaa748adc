package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

// Order statuses as stored; user-facing phrasing lives in the chat service.
const (
	OrderStatusPlaced          = "order_placed"
	OrderStatusProcessing      = "processing"
	OrderStatusShipped         = "shipped"
	OrderStatusOutForDelivery  = "out for delivery"
	OrderStatusDelivered       = "delivered"
	OrderStatusReturnInitiated = "return_initiated"
	OrderStatusCancelled       = "cancelled"
)

// OrderItem is one line item inside Order.Items.
type OrderItem struct {
	PartNumber string  `json:"part_number"`
	Qty        int     `json:"qty"`
	Price      float64 `json:"price"`
}

// Order is one transaction record, doubling as the "transactions" retrieval
// namespace (Document + Embedding) and the exact-match order store
// (OrderIdNorm).
type Order struct {
	Id                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderId             string
	OrderIdNorm         string `gorm:"uniqueIndex"`
	CustomerId          string
	CreatedDate         string
	Status              string
	Carrier             string
	AddressCity         string
	Items               datatypes.JSON
	ItemPartNumbersNorm datatypes.JSON `gorm:"type:jsonb;index:,type:gin"`
	Document            string
	Embedding           pgvector.Vector `gorm:"type:vector(768)"`
	CreatedAt           time.Time
	UpdatedAt           *time.Time
}

// ItemList decodes the order's line items. A malformed column yields an
// empty list rather than an error.
func (o *Order) ItemList() []OrderItem {
	var items []OrderItem
	if len(o.Items) > 0 {
		_ = json.Unmarshal(o.Items, &items)
	}
	return items
}
