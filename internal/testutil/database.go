// Package testutil provides shared test fixtures: an in-memory store wired
// the same way production is, gateway included.
package testutil

import (
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"selectiq/internal/core/database"
	"selectiq/internal/domain"
)

// NewDB opens an isolated in-memory sqlite store with the full schema.
// A single connection keeps every transaction on the same memory database.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewGorm(database.Opts{
		Driver:       "sqlite",
		DSN:          ":memory:",
		MaxOpenConns: 1,
		LogLevel:     "silent",
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.JobOffer{},
		&domain.JobApplication{},
		&domain.JobCandidate{},
		&domain.Interview{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

// NewGateway wraps NewDB with a millisecond backoff so busy-retry tests
// finish quickly.
func NewGateway(t *testing.T) *database.Gateway {
	t.Helper()
	return NewGatewayFor(t, NewDB(t))
}

// NewGatewayFor builds a gateway over an existing handle, for tests that
// also need direct schema access.
func NewGatewayFor(t *testing.T, db *gorm.DB) *database.Gateway {
	t.Helper()
	return database.NewGateway(db, time.Millisecond, zap.NewNop())
}
