package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}
	return sqlx.NewDb(db, "pgx"), mock
}

func TestSalesByCategory(t *testing.T) {
	db, mock := newMockDB(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"category", "items", "revenue"}).
		AddRow("programming", 12, 1080.50).
		AddRow("music", 3, 210.00)
	mock.ExpectQuery("SELECT c.category AS category").WillReturnRows(rows)

	repo := NewReportRepository(db)
	sales, err := repo.SalesByCategory()

	assert.NoError(t, err)
	assert.Len(t, sales, 2)
	assert.Equal(t, "programming", sales[0].Category)
	assert.Equal(t, int64(12), sales[0].Items)
	assert.InDelta(t, 1080.50, sales[0].Revenue, 1e-9)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrdersByStatus(t *testing.T) {
	db, mock := newMockDB(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"status", "orders", "amount"}).
		AddRow("paid", 8, 576.00).
		AddRow("pending", 2, 144.00)
	mock.ExpectQuery("SELECT status").WillReturnRows(rows)

	repo := NewReportRepository(db)
	summary, err := repo.OrdersByStatus()

	assert.NoError(t, err)
	assert.Len(t, summary, 2)
	assert.Equal(t, "paid", summary[0].Status)
	assert.Equal(t, int64(8), summary[0].Orders)
	assert.NoError(t, mock.ExpectationsWereMet())
}
