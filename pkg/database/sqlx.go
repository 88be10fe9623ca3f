package database

import (
	"log"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
)

// InitSQLX 为报表类原生 SQL 查询建立独立连接
// 走 pgx 的 database/sql 驱动，连接池独立于 gorm 主连接，报表慢查询不拖累业务
func InitSQLX() *sqlx.DB {
	db, err := sqlx.Connect("pgx", DSN())
	if err != nil {
		log.Fatalf("Failed to connect report database: %v", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)

	return db
}
