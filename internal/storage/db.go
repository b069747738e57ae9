package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
	"go.uber.org/zap"
	_ "modernc.org/sqlite" // SQLite driver for local runs and tests

	"cv-reconcile/internal/logging"
)

// Dialect selects the SQL flavour of the backing database.
type Dialect int

const (
	Postgres Dialect = iota
	SQLite
)

// DialectFor maps a driver name to its dialect.
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case "postgres":
		return Postgres, nil
	case "sqlite":
		return SQLite, nil
	default:
		return 0, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// rebind rewrites ? placeholders into $n for Postgres.
func (d Dialect) rebind(query string) string {
	if d != Postgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 16)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// lockClause locks selected rows until the transaction ends. SQLite
// serializes writers at the database level and has no row locks.
func (d Dialect) lockClause() string {
	if d == Postgres {
		return " FOR UPDATE"
	}
	return ""
}

// Options tunes the connection pool.
type Options struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type DB struct {
	connection *sql.DB
	dialect    Dialect
	logger     *zap.Logger
}

func NewDB(driver, dataSourceName string, opts Options, logger *zap.Logger) (*DB, error) {
	dialect, err := DialectFor(driver)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := sql.Open(driver, dataSourceName)
	if err != nil {
		return nil, err
	}

	// Connection pool tuning
	switch dialect {
	case SQLite:
		// one writer; pragmas are per connection so keep it forever
		db.SetMaxOpenConns(1)
		db.SetConnMaxLifetime(0)
	default:
		db.SetMaxOpenConns(valueOr(opts.MaxOpenConns, 25))
		db.SetMaxIdleConns(valueOr(opts.MaxIdleConns, 10))
		if opts.ConnMaxLifetime > 0 {
			db.SetConnMaxLifetime(opts.ConnMaxLifetime)
		} else {
			db.SetConnMaxLifetime(5 * time.Minute)
		}
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	if dialect == SQLite {
		for _, pragma := range []string{"PRAGMA foreign_keys=ON", "PRAGMA busy_timeout=5000"} {
			if _, err := db.Exec(pragma); err != nil {
				db.Close()
				return nil, fmt.Errorf("sqlite: %s: %w", pragma, err)
			}
		}
	}

	return &DB{connection: db, dialect: dialect, logger: logger.Named("storage")}, nil
}

func valueOr(v, fallback int) int {
	if v > 0 {
		return v
	}
	return fallback
}

func (db *DB) Close() {
	if err := db.connection.Close(); err != nil {
		db.logger.Warn("Error closing the database connection", zap.String("error", logging.SanitizeError(err)))
	}
}

// Dialect reports the SQL flavour of the connection.
func (db *DB) Dialect() Dialect {
	return db.dialect
}

// GetConnection returns the underlying database connection for advanced queries
func (db *DB) GetConnection() *sql.DB {
	return db.connection
}

// WithinTx runs fn inside one database transaction. The transaction is
// committed when fn returns nil and rolled back otherwise, so a failed
// fn leaves no rows changed.
func (db *DB) WithinTx(ctx context.Context, fn func(tx *Tx) error) error {
	sqlTx, err := db.connection.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer sqlTx.Rollback()

	if err := fn(&Tx{tx: sqlTx, dialect: db.dialect}); err != nil {
		return err
	}

	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (db *DB) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.connection.QueryContext(ctx, db.dialect.rebind(query), args...)
}

func (db *DB) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return db.connection.QueryRowContext(ctx, db.dialect.rebind(query), args...)
}
