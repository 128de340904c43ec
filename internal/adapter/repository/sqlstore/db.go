package sqlstore

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver
	_ "modernc.org/sqlite" // SQLite driver
)

// Supported database drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

func init() {
	// modernc registers itself as "sqlite"; make sure sqlx rebinds it to ? placeholders
	sqlx.BindDriver(DriverSQLite, sqlx.QUESTION)
}

// DB wraps the database connection
type DB struct {
	*sqlx.DB
}

// NewDB opens and pings a database connection.
// For postgres, dsn is in the format "host=localhost port=5432 user=postgres password=postgres dbname=walletflow sslmode=disable".
// For sqlite, dsn is a file path or URI such as "file:walletflow.db?_txlock=immediate&_pragma=busy_timeout(5000)".
func NewDB(ctx context.Context, driver, dsn string) (*DB, error) {
	switch driver {
	case DriverPostgres, DriverSQLite:
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{DB: db}, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.DB.Close()
}

// IsPostgres reports whether the connection talks to PostgreSQL
func (db *DB) IsPostgres() bool {
	return db.DriverName() == DriverPostgres
}
