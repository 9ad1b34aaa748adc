package integration

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"testing"
	"time"

	"parts-assist-be/internal/entity"
	"parts-assist-be/internal/repository/specification"
	"parts-assist-be/internal/repository/unitofwork"
	"parts-assist-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.ProductRepository())
	assert.NotNil(t, uow.OrderRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	// Verify Data Access (implies columns exist)
	t.Run("Check Product Repository", func(t *testing.T) {
		count, err := uow.ProductRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Product count: %d", count)
	})

	t.Run("Check Order Repository", func(t *testing.T) {
		count, err := uow.OrderRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Order count: %d", count)
	})

	t.Run("Check Transactional Order Insert And Norm Lookup", func(t *testing.T) {
		ctx := context.Background()
		err := uow.Begin(ctx)
		assert.NoError(t, err)
		defer uow.Rollback()

		suffix := uuid.New().String()[:8]
		orderId := "PSO-IT-" + suffix
		orderIdNorm := "psoit" + suffix

		items, _ := entityItemsJSON([]entity.OrderItem{
			{PartNumber: "PS11752778", Qty: 1, Price: 36.08},
		})
		now := time.Now()
		order := &entity.Order{
			Id:          uuid.New(),
			OrderId:     orderId,
			OrderIdNorm: orderIdNorm,
			CustomerId:  "CUST-IT",
			CreatedDate: "2024-11-02",
			Status:      entity.OrderStatusPlaced,
			Carrier:     "UPS",
			AddressCity: "Austin",
			Items:       items,
			Document:    "integration test order",
			CreatedAt:   now,
		}

		err = uow.OrderRepository().Create(ctx, order)
		assert.NoError(t, err)

		found, err := uow.OrderRepository().FindByNormalizedId(ctx, orderIdNorm)
		assert.NoError(t, err)
		if assert.NotNil(t, found) {
			assert.Equal(t, orderId, found.OrderId)
			assert.Equal(t, entity.OrderStatusPlaced, found.Status)
		}

		matches, err := uow.OrderRepository().FindAll(ctx, specification.ByOrderIdNorm{OrderIdNorm: orderIdNorm})
		assert.NoError(t, err)
		assert.Len(t, matches, 1)

		err = uow.Rollback()
		assert.NoError(t, err)
		t.Log("Successfully created and looked up Order inside a Transaction")
	})
}

func entityItemsJSON(items []entity.OrderItem) (datatypes.JSON, error) {
	raw, err := json.Marshal(items)
	return datatypes.JSON(raw), err
}
