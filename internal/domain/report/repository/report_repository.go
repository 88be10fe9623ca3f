package repository

import (
	"github.com/jmoiron/sqlx"
)

// CategorySales 按类目的销售汇总
type CategorySales struct {
	Category string  `db:"category" json:"category"`
	Items    int64   `db:"items" json:"items"`
	Revenue  float64 `db:"revenue" json:"revenue"`
}

// OrderSummary 按状态的订单汇总
type OrderSummary struct {
	Status string  `db:"status" json:"status"`
	Orders int64   `db:"orders" json:"orders"`
	Amount float64 `db:"amount" json:"amount"`
}

// ReportRepository 报表仓储接口
// 聚合查询直接写 SQL，不经过 gorm
type ReportRepository interface {
	SalesByCategory() ([]CategorySales, error)
	OrdersByStatus() ([]OrderSummary, error)
}

type reportRepository struct {
	db *sqlx.DB
}

func NewReportRepository(db *sqlx.DB) ReportRepository {
	return &reportRepository{db: db}
}

// SalesByCategory 按课程类目统计已购买条目数与成交额
// 成交额用加购时冻结的价格，不含券折扣（券作用于整车）
func (r *reportRepository) SalesByCategory() ([]CategorySales, error) {
	const query = `
		SELECT c.category AS category,
		       COUNT(*) AS items,
		       COALESCE(SUM(ci.price_at_add), 0) AS revenue
		FROM cart_items ci
		JOIN courses c ON c.id = ci.course_id
		WHERE ci.purchased = true
		  AND ci.deleted_at IS NULL
		  AND c.deleted_at IS NULL
		GROUP BY c.category
		ORDER BY revenue DESC`

	var sales []CategorySales
	if err := r.db.Select(&sales, query); err != nil {
		return nil, err
	}
	return sales, nil
}

// OrdersByStatus 按状态统计订单数与金额
func (r *reportRepository) OrdersByStatus() ([]OrderSummary, error) {
	const query = `
		SELECT status,
		       COUNT(*) AS orders,
		       COALESCE(SUM(amount), 0) AS amount
		FROM orders
		WHERE deleted_at IS NULL
		GROUP BY status
		ORDER BY status`

	var summary []OrderSummary
	if err := r.db.Select(&summary, query); err != nil {
		return nil, err
	}
	return summary, nil
}
