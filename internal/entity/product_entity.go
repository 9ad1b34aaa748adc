package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

// Product is one catalog part, indexed in the "products" namespace.
// Normalized columns carry the canonical identifier form used by retrieval
// filters; CompatibleModelsNorm is a JSON array of normalized model numbers.
type Product struct {
	Id                         uuid.UUID `gorm:"type:uuid;primaryKey"`
	PartNumber                 string
	PartNumberNorm             string `gorm:"index"`
	Name                       string
	Manufacturer               string
	ManufacturerPartNumber     string
	ManufacturerPartNumberNorm string
	Category                   string
	Price                      float64
	InstallationGuide          string
	Troubleshooting            string
	CompatibleModels           datatypes.JSON
	CompatibleModelsNorm       datatypes.JSON `gorm:"type:jsonb;index:,type:gin"`
	Document                   string
	Embedding                  pgvector.Vector `gorm:"type:vector(768)"`
	CreatedAt                  time.Time
	UpdatedAt                  *time.Time
}

// CompatibleModelList decodes the raw model numbers. A malformed column
// yields an empty list rather than an error.
func (p *Product) CompatibleModelList() []string {
	var models []string
	if len(p.CompatibleModels) > 0 {
		_ = json.Unmarshal(p.CompatibleModels, &models)
	}
	return models
}
