package specification

import "gorm.io/gorm"

// ByPartNumberNorm filters products by normalized part number
type ByPartNumberNorm struct {
	PartNumberNorm string
}

func (s ByPartNumberNorm) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("part_number_norm = ?", s.PartNumberNorm)
}

// ByOrderIdNorm filters orders by normalized order id
type ByOrderIdNorm struct {
	OrderIdNorm string
}

func (s ByOrderIdNorm) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("order_id_norm = ?", s.OrderIdNorm)
}

// ByCategory filters products by catalog category
type ByCategory struct {
	Category string
}

func (s ByCategory) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("category = ?", s.Category)
}

// ByStatus filters orders by their fulfillment status
type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}
