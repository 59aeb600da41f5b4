package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"selectiq/internal/apperr"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := NewGorm(Opts{Driver: "sqlite", DSN: ":memory:", MaxOpenConns: 1, LogLevel: "silent"})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return db
}

func TestExecuteRetriesBusyThenSucceeds(t *testing.T) {
	gw := NewGateway(testDB(t), time.Millisecond, zap.NewNop())

	attempts := 0
	err := gw.Execute(context.Background(), func(tx *gorm.DB) error {
		attempts++
		if attempts < 3 {
			return errors.New("database is locked")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("expected success on third attempt, got %v", err)
	}
	if attempts != 3 {
		t.Fatalf("attempts = %d, want 3", attempts)
	}
}

func TestExecuteExhaustedReturnsBusy(t *testing.T) {
	gw := NewGateway(testDB(t), time.Millisecond, zap.NewNop())

	attempts := 0
	err := gw.Execute(context.Background(), func(tx *gorm.DB) error {
		attempts++
		return errors.New("database is locked")
	})
	if !errors.Is(err, apperr.ErrStorageBusy) {
		t.Fatalf("err = %v, want ErrStorageBusy", err)
	}
	if attempts != 3 {
		t.Fatalf("attempts = %d, want exactly 3", attempts)
	}
}

func TestExecuteNonBusyFailsImmediately(t *testing.T) {
	gw := NewGateway(testDB(t), time.Millisecond, zap.NewNop())

	attempts := 0
	boom := errors.New("constraint violated")
	err := gw.Execute(context.Background(), func(tx *gorm.DB) error {
		attempts++
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want original error", err)
	}
	if attempts != 1 {
		t.Fatalf("attempts = %d, want 1 (no retry on non-busy errors)", attempts)
	}
}

func TestExecuteRollsBackFailedAttempts(t *testing.T) {
	db := testDB(t)
	if err := db.Exec("CREATE TABLE things (id INTEGER PRIMARY KEY, name TEXT)").Error; err != nil {
		t.Fatalf("create table: %v", err)
	}
	gw := NewGateway(db, time.Millisecond, zap.NewNop())

	attempts := 0
	err := gw.Execute(context.Background(), func(tx *gorm.DB) error {
		attempts++
		if err := tx.Exec("INSERT INTO things (name) VALUES ('partial')").Error; err != nil {
			return err
		}
		if attempts < 2 {
			return errors.New("database is locked")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	var n int64
	if err := db.Raw("SELECT COUNT(*) FROM things").Scan(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Fatalf("rows = %d, want 1 (failed attempt must roll back)", n)
	}
}

func TestIsBusyMatching(t *testing.T) {
	cases := []struct {
		msg  string
		busy bool
	}{
		{"database is locked", true},
		{"database table is locked", true},
		{"SQLITE_BUSY: database handle busy", true},
		{"Lock wait timeout exceeded", true},
		{"UNIQUE constraint failed", false},
		{"syntax error", false},
	}
	for _, tc := range cases {
		if got := isBusy(errors.New(tc.msg)); got != tc.busy {
			t.Errorf("isBusy(%q) = %v, want %v", tc.msg, got, tc.busy)
		}
	}
}
