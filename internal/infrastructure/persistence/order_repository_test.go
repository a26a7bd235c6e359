package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
)

// newMockOrderRepository creates a GormOrderRepository with a mocked SQL connection
func newMockOrderRepository(t *testing.T) (*GormOrderRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormOrderRepository(gormDB), mock, mockDB
}

func orderRows(orderID uuid.UUID) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "order_number", "customer_name", "customer_phone", "shipping_address",
		"payment_method", "total", "item_count", "status",
		"courier_name", "delhivery_waybill", "delhivery_status",
		"created_at", "updated_at",
	}).AddRow(
		orderID, "ORD-1001", "Rahul Singh", "9876543210",
		"Rahul Singh\n9876543210\n#12 MG Road\nAmbala, Haryana 134003",
		"cash_on_delivery", decimal.NewFromInt(499), 2, "pending",
		"", "", "", now, now,
	)
}

func TestNewGormOrderRepository(t *testing.T) {
	repo, _, mockDB := newMockOrderRepository(t)
	defer mockDB.Close()

	assert.NotNil(t, repo)
	assert.NotNil(t, repo.db)
}

func TestGormOrderRepository_FindByID(t *testing.T) {
	t.Run("finds existing order", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		orderID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "orders" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(orderID, 1).
			WillReturnRows(orderRows(orderID))

		o, err := repo.FindByID(context.Background(), orderID)

		assert.NoError(t, err)
		require.NotNil(t, o)
		assert.Equal(t, orderID, o.ID)
		assert.Equal(t, "ORD-1001", o.OrderNumber)
		assert.Equal(t, order.StatusPending, o.Status)
		assert.True(t, o.IsCOD())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found for missing order", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		orderID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "orders" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(orderID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		o, err := repo.FindByID(context.Background(), orderID)

		assert.Nil(t, o)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormOrderRepository_FindByOrderNumber(t *testing.T) {
	t.Run("finds order by number", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		orderID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "orders" WHERE order_number = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("ORD-1001", 1).
			WillReturnRows(orderRows(orderID))

		o, err := repo.FindByOrderNumber(context.Background(), "ORD-1001")

		assert.NoError(t, err)
		require.NotNil(t, o)
		assert.Equal(t, "ORD-1001", o.OrderNumber)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects empty order number", func(t *testing.T) {
		repo, _, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		o, err := repo.FindByOrderNumber(context.Background(), "")
		assert.Nil(t, o)
		assert.Error(t, err)
	})
}

func TestGormOrderRepository_Save(t *testing.T) {
	t.Run("persists order and tracking records", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		o, err := order.NewOrder("ORD-1001", "Rahul Singh", "9876543210",
			"addr", "cash_on_delivery", decimal.NewFromInt(499), 2)
		require.NoError(t, err)
		require.NoError(t, o.AttachShipment("WB123", "Delhivery"))

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "orders" SET .*`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO "order_tracking_records" .* ON CONFLICT DO NOTHING`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err = repo.Save(context.Background(), o)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormOrderRepository_ListTrackingRecords(t *testing.T) {
	t.Run("returns history newest first", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		orderID := uuid.New()
		now := time.Now()

		rows := sqlmock.NewRows([]string{"id", "order_id", "status", "description", "courier", "created_at"}).
			AddRow(uuid.New(), orderID, "delivered", "Status updated: Delivered", "Delhivery", now).
			AddRow(uuid.New(), orderID, "shipped", "Shipment created with Delhivery", "Delhivery", now.Add(-time.Hour))

		mock.ExpectQuery(`SELECT \* FROM "order_tracking_records" WHERE order_id = \$1 ORDER BY created_at DESC`).
			WithArgs(orderID).
			WillReturnRows(rows)

		records, err := repo.ListTrackingRecords(context.Background(), orderID)

		assert.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "delivered", records[0].Status)
		assert.Equal(t, "shipped", records[1].Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty history", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		orderID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "order_tracking_records" WHERE order_id = \$1 ORDER BY created_at DESC`).
			WithArgs(orderID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "order_id", "status", "description", "courier", "created_at"}))

		records, err := repo.ListTrackingRecords(context.Background(), orderID)

		assert.NoError(t, err)
		assert.Empty(t, records)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
