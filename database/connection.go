package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/mattn/go-sqlite3"
	_ "github.com/microsoft/go-mssqldb"

	"github.com/ddlkit/ddlkit/utils"
)

var (
	pool     *pgxpool.Pool
	poolOnce sync.Once
	poolErr  error
)

// GetPool returns a singleton pgx connection pool for postgresql targets.
func GetPool() (*pgxpool.Pool, error) {
	poolOnce.Do(func() {
		utils.LoadEnv()
		connStr := os.Getenv("DATABASE_URL")
		if connStr == "" {
			poolErr = fmt.Errorf("DATABASE_URL not set in environment")
			return
		}

		ctx := context.Background()
		pool, poolErr = pgxpool.New(ctx, connStr)
		if poolErr != nil {
			poolErr = fmt.Errorf("unable to create connection pool: %w", poolErr)
			return
		}

		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			pool = nil
			poolErr = fmt.Errorf("unable to ping database: %w", err)
			return
		}
	})

	return pool, poolErr
}

// ClosePool closes the postgresql pool (call on shutdown).
func ClosePool() {
	if pool != nil {
		pool.Close()
	}
}

// OpenMySQL opens and pings a MySQL connection.
func OpenMySQL(ctx context.Context, dsn string) (*sql.DB, error) {
	return open(ctx, "mysql", dsn)
}

// OpenSQLite opens and pings a SQLite database file.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	return open(ctx, "sqlite3", path)
}

// OpenMSSQL opens and pings a SQL Server connection.
func OpenMSSQL(ctx context.Context, dsn string) (*sql.DB, error) {
	return open(ctx, "sqlserver", dsn)
}

func open(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening %s database: %w", driver, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging %s database: %w", driver, err)
	}
	return db, nil
}
