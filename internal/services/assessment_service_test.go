package services

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbartell/employarmor-sub001/internal/repository"
	"github.com/dbartell/employarmor-sub001/internal/wizard"
)

func newTestAssessmentService(now time.Time) *AssessmentService {
	return &AssessmentService{
		repo: repository.NewAssessmentRepository(),
		now:  func() time.Time { return now },
	}
}

// TestAssessmentService_SaveDraft_New verifies a first save generates an id
// and creates the record at version 1.
func TestAssessmentService_SaveDraft_New(t *testing.T) {
	mock, cleanup := newMockDB(t)
	defer cleanup()

	rows := pgxmock.NewRows([]string{"created_at"}).
		AddRow(time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC))
	mock.ExpectQuery("INSERT INTO impact_assessments").WillReturnRows(rows)

	s := newTestAssessmentService(time.Now())
	id, err := s.SaveDraft(context.Background(), "org-123", "", wizard.FormData{
		"system_name": "Resume Screener",
		"ai_tools":    []string{"hirevue"},
	})

	require.NoError(t, err)
	assert.NotEmpty(t, id, "first save returns the generated id")
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestAssessmentService_SaveDraft_Existing verifies a resumed draft is
// rewritten in place under its existing id.
func TestAssessmentService_SaveDraft_Existing(t *testing.T) {
	mock, cleanup := newMockDB(t)
	defer cleanup()

	mock.ExpectExec("UPDATE impact_assessments").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	s := newTestAssessmentService(time.Now())
	id, err := s.SaveDraft(context.Background(), "org-123", "assess-1", wizard.FormData{
		"system_name": "Resume Screener v2",
	})

	require.NoError(t, err)
	assert.Equal(t, "assess-1", id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestAssessmentService_Complete verifies completion stamps expires_at
// exactly one calendar year after completed_at, both from the same instant.
func TestAssessmentService_Complete(t *testing.T) {
	now := time.Date(2026, 3, 5, 15, 30, 0, 0, time.UTC)
	completedAt := now.UTC()
	expiresAt := completedAt.AddDate(1, 0, 0)

	mock, cleanup := newMockDB(t)
	defer cleanup()

	mock.ExpectExec("UPDATE impact_assessments").
		WithArgs(completedAt, expiresAt, "assess-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	s := newTestAssessmentService(now)
	err := s.Complete(context.Background(), "assess-1")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestAssessmentService_Complete_LeapDay verifies AddDate handles the
// February 29 completion: the expiry normalizes to March 1 the next year.
func TestAssessmentService_Complete_LeapDay(t *testing.T) {
	now := time.Date(2028, 2, 29, 10, 0, 0, 0, time.UTC)
	expiresAt := time.Date(2029, 3, 1, 10, 0, 0, 0, time.UTC)

	mock, cleanup := newMockDB(t)
	defer cleanup()

	mock.ExpectExec("UPDATE impact_assessments").
		WithArgs(now, expiresAt, "assess-2").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	s := newTestAssessmentService(now)
	err := s.Complete(context.Background(), "assess-2")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestAssessmentService_PersisterFor verifies the wizard persister binds the
// organization so saves land under the right owner.
func TestAssessmentService_PersisterFor(t *testing.T) {
	mock, cleanup := newMockDB(t)
	defer cleanup()

	rows := pgxmock.NewRows([]string{"created_at"}).
		AddRow(time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC))
	mock.ExpectQuery("INSERT INTO impact_assessments").WillReturnRows(rows)

	s := newTestAssessmentService(time.Now())
	p := s.PersisterFor("org-123")

	id, err := p.SaveDraft(context.Background(), "", wizard.FormData{"system_name": "X"})
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestAssessmentFromForm verifies the loose wizard form maps onto the typed
// record, tolerating both []string and JSON-decoded []any slices.
func TestAssessmentFromForm(t *testing.T) {
	a := assessmentFromForm(wizard.FormData{
		"system_name":     "Resume Screener",
		"risk_level":      "high",
		"ai_tools":        []string{"hirevue", "pymetrics"},
		"data_inputs":     []any{"resumes", "assessments", 42},
		"affected_groups": "not-a-slice",
		"employee_count":  10, // unknown keys are ignored
	})

	assert.Equal(t, "Resume Screener", a.SystemName)
	assert.Equal(t, "high", a.RiskLevel)
	assert.Equal(t, []string{"hirevue", "pymetrics"}, a.AITools)
	assert.Equal(t, []string{"resumes", "assessments"}, a.DataInputs, "non-string elements are dropped")
	assert.Nil(t, a.AffectedGroups, "mistyped fields map to zero values")
	assert.Empty(t, a.VendorName)
}
