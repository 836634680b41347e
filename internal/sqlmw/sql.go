// Package sqlmw wraps *sql.DB with query timing so slow metadata
// lookups surface in the logs.
package sqlmw

import (
	"context"
	"database/sql"
	"time"
)

type Opt func(*DB)

type logger interface {
	Infow(msg string, keysAndValues ...interface{})
}

type DB struct {
	*sql.DB

	since              func(time.Time) time.Duration
	logger             logger
	keysAndValues      []any
	slowQueryThreshold time.Duration
}

func WithLogger(logger logger) Opt {
	return func(db *DB) {
		db.logger = logger
	}
}

func WithKeysAndValues(keysAndValues ...any) Opt {
	return func(db *DB) {
		db.keysAndValues = keysAndValues
	}
}

func WithSlowQueryThreshold(slowQueryThreshold time.Duration) Opt {
	return func(db *DB) {
		db.slowQueryThreshold = slowQueryThreshold
	}
}

func New(db *sql.DB, opts ...Opt) *DB {
	wrapped := &DB{
		DB:                 db,
		since:              time.Since,
		slowQueryThreshold: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(wrapped)
	}
	return wrapped
}

func (db *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	startedAt := time.Now()
	result, err := db.DB.ExecContext(ctx, query, args...)
	db.logQuery(query, db.since(startedAt))
	return result, err
}

func (db *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	startedAt := time.Now()
	rows, err := db.DB.QueryContext(ctx, query, args...)
	db.logQuery(query, db.since(startedAt))
	return rows, err
}

func (db *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	startedAt := time.Now()
	row := db.DB.QueryRowContext(ctx, query, args...)
	db.logQuery(query, db.since(startedAt))
	return row
}

func (db *DB) logQuery(query string, elapsed time.Duration) {
	if db.logger == nil || elapsed < db.slowQueryThreshold {
		return
	}

	keysAndValues := []any{
		"query", query,
		"queryExecutionTime", elapsed,
	}
	keysAndValues = append(keysAndValues, db.keysAndValues...)

	db.logger.Infow("executing query", keysAndValues...)
}
