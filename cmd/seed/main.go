package main

import (
	"context"
	"log"

	"parts-assist-be/internal/config"
	"parts-assist-be/internal/constant"
	"parts-assist-be/internal/dto"
	"parts-assist-be/internal/repository/specification"
	"parts-assist-be/internal/repository/unitofwork"
	"parts-assist-be/internal/service"
	"parts-assist-be/pkg/database"
	"parts-assist-be/pkg/embedding"

	"github.com/pgvector/pgvector-go"
)

// Seeds a small demo catalog: a handful of refrigerator/dishwasher parts and
// mock orders, with embeddings generated inline so retrieval works right
// after seeding.
func main() {
	cfg := config.Load()

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	var provider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		provider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaEmbeddingModel)
	} else {
		provider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
	}

	uowFactory := unitofwork.NewRepositoryFactory(db)
	recorder := &directRecorder{}
	catalog := service.NewCatalogService(uowFactory, recorder)
	ctx := context.Background()

	products := []dto.UpsertProductRequest{
		{
			PartNumber:             "PS11752778",
			Name:                   "Refrigerator Door Shelf Bin",
			Manufacturer:           "Whirlpool",
			ManufacturerPartNumber: "WPW10321304",
			Category:               "Refrigerator",
			Price:                  36.08,
			InstallationGuide:      "Snap the bin into the door liner tabs until it seats flush. No tools required.",
			Troubleshooting:        "Cracked bins usually come from overloading; replace rather than glue.",
			CompatibleModels:       []string{"WRS325FDAM04", "WRS325SDHZ01", "WRF555SDFZ10"},
		},
		{
			PartNumber:             "PS2375646",
			Name:                   "Dishwasher Upper Rack Adjuster Kit",
			Manufacturer:           "Whirlpool",
			ManufacturerPartNumber: "W10712395",
			Category:               "Dishwasher",
			Price:                  48.95,
			InstallationGuide:      "Remove the end caps, slide the old adjuster off the rail, and fit the new kit.",
			Troubleshooting:        "A sagging or tilting upper rack almost always means worn adjuster wheels.",
			CompatibleModels:       []string{"WDT780SAEM1", "KDTE104ESS2", "WDTA50SAHZ0"},
		},
		{
			PartNumber:             "PS8694830",
			Name:                   "Dishwasher Lower Door Seal",
			Manufacturer:           "Frigidaire",
			ManufacturerPartNumber: "154827601",
			Category:               "Dishwasher",
			Price:                  19.75,
			InstallationGuide:      "Pull the old seal from the channel and press the new one in, starting at the center.",
			Troubleshooting:        "Water pooling under the door after a cycle points at this seal.",
			CompatibleModels:       []string{"FGID2476SF", "FFCD2413US"},
		},
		{
			PartNumber:             "PS734935",
			Name:                   "Refrigerator Water Inlet Valve",
			Manufacturer:           "GE",
			ManufacturerPartNumber: "WR57X10032",
			Category:               "Refrigerator",
			Price:                  62.40,
			InstallationGuide:      "Shut off the water supply, disconnect the lines, swap the valve, and check for leaks.",
			Troubleshooting:        "No ice production with a working ice maker usually means a failed inlet valve.",
			CompatibleModels:       []string{"GSS25GSHSS", "GSH25JSDBSS"},
		},
	}

	orders := []dto.UpsertOrderRequest{
		{
			OrderId: "PSO1050", CustomerId: "CUST1001", CreatedDate: "2024-11-02",
			Status: "order_placed", Carrier: "UPS", AddressCity: "Austin",
			Items: []dto.OrderItemDTO{{PartNumber: "PS11752778", Qty: 1, Price: 36.08}},
		},
		{
			OrderId: "PSO1121", CustomerId: "CUST1002", CreatedDate: "2024-10-28",
			Status: "shipped", Carrier: "FedEx", AddressCity: "Chicago",
			Items: []dto.OrderItemDTO{
				{PartNumber: "PS2375646", Qty: 1, Price: 48.95},
				{PartNumber: "PS8694830", Qty: 2, Price: 19.75},
			},
		},
		{
			OrderId: "PSO1234", CustomerId: "CUST1003", CreatedDate: "2024-10-15",
			Status: "delivered", Carrier: "USPS", AddressCity: "Denver",
			Items: []dto.OrderItemDTO{{PartNumber: "PS734935", Qty: 1, Price: 62.40}},
		},
	}

	for i := range products {
		if _, err := catalog.UpsertProduct(ctx, &products[i]); err != nil {
			log.Fatalf("Error: failed to seed product %s: %v", products[i].PartNumber, err)
		}
	}
	for i := range orders {
		if _, err := catalog.UpsertOrder(ctx, &orders[i]); err != nil {
			log.Fatalf("Error: failed to seed order %s: %v", orders[i].OrderId, err)
		}
	}
	log.Printf("Seeded %d products and %d orders.", len(products), len(orders))

	// Embed synchronously instead of going through the async pipeline.
	embedAll(ctx, uowFactory, provider)

	log.Println("✅ Success: demo catalog seeded and embedded.")
}

// directRecorder satisfies the publisher contract without a running bus;
// embedding happens inline below.
type directRecorder struct{}

func (d *directRecorder) Publish(context.Context, []byte) error { return nil }

func embedAll(ctx context.Context, uowFactory unitofwork.RepositoryFactory, provider embedding.EmbeddingProvider) {
	uow := uowFactory.NewUnitOfWork(ctx)

	products, err := uow.ProductRepository().FindAll(ctx, specification.OrderBy{Field: "part_number"})
	if err != nil {
		log.Fatalf("Error: failed to list products: %v", err)
	}
	for _, p := range products {
		res, err := provider.Generate(p.Document, constant.EmbeddingTaskDocument)
		if err != nil {
			log.Fatalf("Error: failed to embed product %s: %v", p.PartNumber, err)
		}
		p.Embedding = pgvector.NewVector(res.Embedding.Values)
		if err := uow.ProductRepository().Update(ctx, p); err != nil {
			log.Fatalf("Error: failed to store product embedding %s: %v", p.PartNumber, err)
		}
	}

	orders, err := uow.OrderRepository().FindAll(ctx, specification.OrderBy{Field: "order_id"})
	if err != nil {
		log.Fatalf("Error: failed to list orders: %v", err)
	}
	for _, o := range orders {
		res, err := provider.Generate(o.Document, constant.EmbeddingTaskDocument)
		if err != nil {
			log.Fatalf("Error: failed to embed order %s: %v", o.OrderId, err)
		}
		o.Embedding = pgvector.NewVector(res.Embedding.Values)
		if err := uow.OrderRepository().Update(ctx, o); err != nil {
			log.Fatalf("Error: failed to store order embedding %s: %v", o.OrderId, err)
		}
	}
}
