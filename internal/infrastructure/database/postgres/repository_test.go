package postgres

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/pashagolub/pgxmock/v3"
)

var logger = slog.New(slog.NewTextHandler(os.Stdout, nil))

const pgxmockExpectationsNotMetMsg = "there were unfulfilled expectations"

var _ DBPool = (pgxmock.PgxPoolIface)(nil)

func setupMockPool(t *testing.T) (context.Context, pgxmock.PgxPoolIface) {
	t.Helper()
	mockPool, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to open a stub database connection: %v", err)
	}
	return context.Background(), mockPool
}
