package db

import (
	"context"
	"crypto/tls"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/ekinura/schoolboard/internal/config"
	"github.com/ekinura/schoolboard/internal/pkg/logger"
)

// MySQLDB database connection structure
type MySQLDB struct {
	Pool *sql.DB
}

var registerTLSOnce sync.Once

// registerRelaxedTLS registers the TLS profile referenced by the DSN's
// tls=relaxed parameter. The store requests TLS but peer verification is
// relaxed; this is the documented configuration, not an oversight.
func registerRelaxedTLS() {
	registerTLSOnce.Do(func() {
		err := mysql.RegisterTLSConfig("relaxed", &tls.Config{
			InsecureSkipVerify: true,
		})
		if err != nil {
			logger.Error().Err(err).Msg("Failed to register relaxed TLS config")
		}
	})
}

// NewMySQLDB creates a new MySQL connection pool
func NewMySQLDB(cfg *config.Config) (*MySQLDB, error) {
	registerRelaxedTLS()

	pool, err := sql.Open("mysql", cfg.GetMySQLDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Connection pool configuration
	pool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	pool.SetMaxIdleConns(cfg.Database.MaxIdleConns)

	maxLifetime, err := time.ParseDuration(cfg.Database.ConnMaxLifetime)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to parse connection max lifetime: %w", err)
	}
	pool.SetConnMaxLifetime(maxLifetime)

	// Test connection with a bounded context
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := pool.PingContext(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to establish database connection: %w", err)
	}

	return &MySQLDB{Pool: pool}, nil
}

// Close closing method
func (db *MySQLDB) Close() {
	if db.Pool != nil {
		db.Pool.Close()
	}
}
