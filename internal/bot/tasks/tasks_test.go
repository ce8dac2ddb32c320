package tasks

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/edgard/echobot/internal/config"
)

type fakeMaintainer struct {
	calls       int
	err         error
	hadDeadline bool
}

func (f *fakeMaintainer) RunSQLMaintenance(ctx context.Context) error {
	f.calls++
	_, f.hadDeadline = ctx.Deadline()
	return f.err
}

func testDeps(m Maintainer) TaskDeps {
	return TaskDeps{Logger: slog.New(slog.NewTextHandler(io.Discard, nil)), Store: m}
}

func TestRegisterAllTasks(t *testing.T) {
	t.Parallel()

	registered := RegisterAllTasks(testDeps(&fakeMaintainer{}))
	if _, ok := registered[config.SQLMaintenanceTask]; !ok {
		t.Fatalf("tasks = %v, want %q registered", registered, config.SQLMaintenanceTask)
	}
}

func TestSQLMaintenanceTask(t *testing.T) {
	t.Parallel()

	m := &fakeMaintainer{}
	if err := newSQLMaintenanceTask(testDeps(m))(context.Background()); err != nil {
		t.Fatalf("task error = %v", err)
	}
	if m.calls != 1 {
		t.Errorf("maintenance calls = %d, want 1", m.calls)
	}
	if !m.hadDeadline {
		t.Error("maintenance ran without a deadline")
	}

	storeErr := errors.New("database is locked")
	failing := &fakeMaintainer{err: storeErr}
	if err := newSQLMaintenanceTask(testDeps(failing))(context.Background()); !errors.Is(err, storeErr) {
		t.Errorf("task error = %v, want wrapping %v", err, storeErr)
	}
}
