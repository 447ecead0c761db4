// Service layer tests. Tests run in-package so they can construct services
// with injected clocks; database access goes through a pgxmock pool swapped
// into the database package.
package services

import (
	"testing"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	"github.com/dbartell/employarmor-sub001/internal/database"
)

// newMockDB creates a pgxmock pool and injects it as the package database.
// The returned cleanup restores the previous handle.
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
