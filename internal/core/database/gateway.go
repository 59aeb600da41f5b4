package database

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"selectiq/internal/apperr"
)

const busyAttempts = 3

// Gateway is the only component that opens storage transactions. Every
// repository call runs through Execute so the busy-retry policy applies
// uniformly to all state-changing paths, not only application creation.
type Gateway struct {
	db      *gorm.DB
	backoff time.Duration
	log     *zap.Logger
}

func NewGateway(db *gorm.DB, backoff time.Duration, log *zap.Logger) *Gateway {
	if backoff <= 0 {
		backoff = time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Gateway{db: db, backoff: backoff, log: log}
}

// DB exposes the underlying handle for migration and seeding only;
// repositories must not use it.
func (g *Gateway) DB() *gorm.DB { return g.db }

// Execute runs op inside a transaction. On transient contention it rolls
// back and retries up to 3 attempts with exponential backoff (base doubling
// each retry); the retries exhausted case returns apperr.ErrStorageBusy.
// Any other failure rolls back immediately and propagates. Partial writes
// are never visible: gorm rolls the transaction back whenever op errors.
func (g *Gateway) Execute(ctx context.Context, op func(tx *gorm.DB) error) error {
	delay := g.backoff
	var err error
	for attempt := 1; attempt <= busyAttempts; attempt++ {
		err = g.db.WithContext(ctx).Transaction(op)
		if err == nil {
			return nil
		}
		if !isBusy(err) {
			return err
		}
		if attempt < busyAttempts {
			g.log.Warn("storage busy, retrying",
				zap.Int("attempt", attempt),
				zap.Duration("backoff", delay))
			time.Sleep(delay)
			delay *= 2
		}
	}
	g.log.Error("storage busy, retries exhausted", zap.Error(err))
	return apperr.ErrStorageBusy
}

// View runs a read-only op through the same transaction path, keeping the
// retry policy centralized for reads as well.
func (g *Gateway) View(ctx context.Context, op func(tx *gorm.DB) error) error {
	return g.Execute(ctx, op)
}

// isBusy matches transient contention signals across drivers by message,
// avoiding a dependency on driver-specific error types.
func isBusy(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "database table is locked") ||
		strings.Contains(msg, "sqlite_busy") ||
		strings.Contains(msg, "lock wait timeout") ||
		strings.Contains(msg, "could not obtain lock")
}
