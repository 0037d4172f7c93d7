package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/taxforge/tax-filing-assistant/internal/core/domain"
)

// DraftRepository stores the live draft row per user in tax_returns. A
// partial unique index on (user_id) WHERE status = 'draft' enforces the
// one-draft invariant at the database level.
type DraftRepository struct {
	db *sql.DB
}

func NewDraftRepository(db *sql.DB) *DraftRepository {
	return &DraftRepository{db: db}
}

func (r *DraftRepository) GetByUser(ctx context.Context, userID string) (*domain.Draft, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, user_id, form_data, status, version, created_at, updated_at
FROM tax_returns
WHERE user_id = $1 AND status = 'draft'
`, userID)

	var draft domain.Draft
	var fieldsRaw []byte
	var status string

	err := row.Scan(&draft.ID, &draft.UserID, &fieldsRaw, &status, &draft.Version, &draft.CreatedAt, &draft.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrNotFound, "get draft", err)
		}
		return nil, fmt.Errorf("scan draft: %w", err)
	}

	if err := json.Unmarshal(fieldsRaw, &draft.Fields); err != nil {
		return nil, fmt.Errorf("unmarshal draft fields: %w", err)
	}
	draft.Status = domain.ReturnStatus(status)
	return &draft, nil
}

func (r *DraftRepository) Create(ctx context.Context, draft *domain.Draft) error {
	fieldsRaw, err := json.Marshal(draft.Fields)
	if err != nil {
		return fmt.Errorf("marshal draft fields: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
INSERT INTO tax_returns (id, user_id, form_data, status, version, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7)
`, draft.ID, draft.UserID, fieldsRaw, string(draft.Status), draft.Version, draft.CreatedAt, draft.UpdatedAt)
	if err != nil {
		// A concurrent writer created the draft first. The accumulator
		// re-reads and retries on this.
		if isUniqueViolation(err) {
			return domain.WrapError(domain.ErrConflict, "create draft", err)
		}
		return fmt.Errorf("insert draft: %w", err)
	}
	return nil
}

// Update compares-and-swaps on version. Zero rows affected means the stored
// row moved past draft.Version and the caller must re-read.
func (r *DraftRepository) Update(ctx context.Context, draft *domain.Draft) error {
	fieldsRaw, err := json.Marshal(draft.Fields)
	if err != nil {
		return fmt.Errorf("marshal draft fields: %w", err)
	}

	res, err := r.db.ExecContext(ctx, `
UPDATE tax_returns
SET form_data = $3, version = version + 1, updated_at = $4
WHERE id = $1 AND version = $2 AND status = 'draft'
`, draft.ID, draft.Version, fieldsRaw, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update draft: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update draft rows affected: %w", err)
	}
	if affected == 0 {
		return domain.WrapError(domain.ErrConflict, "update draft",
			fmt.Errorf("stale version %d for draft %s", draft.Version, draft.ID))
	}
	return nil
}

func isUniqueViolation(err error) bool {
	// pgx surfaces server errors with the SQLSTATE in the message. 23505 is
	// unique_violation.
	return strings.Contains(err.Error(), "23505") ||
		strings.Contains(err.Error(), "duplicate key")
}
