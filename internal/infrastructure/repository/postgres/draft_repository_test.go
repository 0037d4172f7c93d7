package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/taxforge/tax-filing-assistant/internal/core/domain"
)

func newDraftRepoWithMock(t *testing.T) (*DraftRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	return &DraftRepository{db: db}, mock, func() { _ = db.Close() }
}

func TestDraftGetByUserReturnsNotFound(t *testing.T) {
	repo, mock, done := newDraftRepoWithMock(t)
	defer done()

	mock.ExpectQuery("WHERE user_id = \\$1 AND status = 'draft'").
		WithArgs("user-1").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByUser(context.Background(), "user-1")
	if !domain.IsKind(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestDraftGetByUserDecodesFields(t *testing.T) {
	repo, mock, done := newDraftRepoWithMock(t)
	defer done()

	now := time.Now().UTC()
	mock.ExpectQuery("WHERE user_id = \\$1 AND status = 'draft'").
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "form_data", "status", "version", "created_at", "updated_at",
		}).AddRow("draft-1", "user-1", []byte(`{"wages":50000}`), "draft", int64(3), now, now))

	draft, err := repo.GetByUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("GetByUser() error = %v", err)
	}
	if draft.Version != 3 {
		t.Fatalf("version = %d, want 3", draft.Version)
	}
	if got := draft.Fields[domain.FieldWages]; got != float64(50000) {
		t.Fatalf("wages = %v, want 50000", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestDraftUpdateStaleVersionConflicts(t *testing.T) {
	repo, mock, done := newDraftRepoWithMock(t)
	defer done()

	mock.ExpectExec("UPDATE tax_returns").
		WithArgs("draft-1", int64(2), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &domain.Draft{
		ID:      "draft-1",
		UserID:  "user-1",
		Fields:  domain.CanonicalFields{domain.FieldWages: float64(1)},
		Version: 2,
	})
	if !domain.IsKind(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestDraftCreateDuplicateConflicts(t *testing.T) {
	repo, mock, done := newDraftRepoWithMock(t)
	defer done()

	mock.ExpectExec("INSERT INTO tax_returns").
		WillReturnError(errors.New(`ERROR: duplicate key value violates unique constraint "idx_tax_returns_live_draft" (SQLSTATE 23505)`))

	err := repo.Create(context.Background(), &domain.Draft{
		ID:      "draft-2",
		UserID:  "user-1",
		Fields:  domain.CanonicalFields{},
		Status:  domain.ReturnDraft,
		Version: 1,
	})
	if !domain.IsKind(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
