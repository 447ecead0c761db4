// Reconciler tests verify the drift repair sweep: missed remediation
// resolutions get applied and document counters resynced, idempotently.
package reconcile_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbartell/employarmor-sub001/internal/database"
	"github.com/dbartell/employarmor-sub001/internal/reconcile"
	"github.com/dbartell/employarmor-sub001/internal/security"
)

func newMockDB(t *testing.T) (pgxmock.PgxPoolIface, func()) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)

	oldDB := database.DB
	database.DB = mock
	return mock, func() {
		database.DB = oldDB
		mock.Close()
	}
}

// TestReconciler_Sweep_RepairsDrift verifies a sweep resolves each drifted
// item and resyncs counters, reporting the total rows fixed.
func TestReconciler_Sweep_RepairsDrift(t *testing.T) {
	mock, cleanup := newMockDB(t)
	defer cleanup()

	drifted := pgxmock.NewRows([]string{"org_id", "item_key", "id"}).
		AddRow("org-123", "disclosure", "doc-9").
		AddRow("org-456", "consent", "doc-11")
	mock.ExpectQuery("SELECT DISTINCT ON").WillReturnRows(drifted)

	mock.ExpectExec("UPDATE remediation_items").
		WithArgs("doc-9", "org-123", "disclosure").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec("UPDATE remediation_items").
		WithArgs("doc-11", "org-456", "consent").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	mock.ExpectExec("UPDATE organizations o").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	r := reconcile.New(security.NewLogger(), time.Minute)
	repaired, err := r.Sweep(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(3), repaired)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestReconciler_Sweep_Clean verifies a drift-free sweep is a no-op beyond
// the counter check.
func TestReconciler_Sweep_Clean(t *testing.T) {
	mock, cleanup := newMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT DISTINCT ON").
		WillReturnRows(pgxmock.NewRows([]string{"org_id", "item_key", "id"}))
	mock.ExpectExec("UPDATE organizations o").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	r := reconcile.New(security.NewLogger(), time.Minute)
	repaired, err := r.Sweep(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(0), repaired)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestReconciler_Sweep_QueryFailure verifies a failed drift query aborts the
// sweep with a wrapped error.
func TestReconciler_Sweep_QueryFailure(t *testing.T) {
	mock, cleanup := newMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT DISTINCT ON").
		WillReturnError(errors.New("connection refused"))

	r := reconcile.New(security.NewLogger(), time.Minute)
	_, err := r.Sweep(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "finding drifted remediation items")
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestReconciler_Run_StopsOnCancel verifies Run exits when its context is
// canceled.
func TestReconciler_Run_StopsOnCancel(t *testing.T) {
	mock, cleanup := newMockDB(t)
	defer cleanup()

	// The immediate startup sweep.
	mock.ExpectQuery("SELECT DISTINCT ON").
		WillReturnRows(pgxmock.NewRows([]string{"org_id", "item_key", "id"}))
	mock.ExpectExec("UPDATE organizations o").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	ctx, cancel := context.WithCancel(context.Background())
	r := reconcile.New(security.NewLogger(), time.Hour)

	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after context cancellation")
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}
