package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/taxforge/tax-filing-assistant/internal/core/domain"
)

// SubmissionRepository stores frozen returns in tax_returns with
// status 'submitted'. Submitted rows are append-only.
type SubmissionRepository struct {
	db *sql.DB
}

func NewSubmissionRepository(db *sql.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

const submissionColumns = `id, user_id, form_data, status, filing_type, tax_owed, refund_amount, submitted_at`

func (r *SubmissionRepository) Create(ctx context.Context, submission *domain.Submission) error {
	fieldsRaw, err := json.Marshal(submission.Fields)
	if err != nil {
		return fmt.Errorf("marshal submission fields: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
INSERT INTO tax_returns (id, user_id, form_data, status, filing_type, tax_owed, refund_amount, submitted_at, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$8,$8)
`,
		submission.ID, submission.UserID, fieldsRaw, string(submission.Status),
		submission.FilingType, submission.TaxOwed, submission.RefundAmount, submission.SubmittedAt,
	)
	if err != nil {
		return fmt.Errorf("insert submission: %w", err)
	}
	return nil
}

func (r *SubmissionRepository) ListByUser(ctx context.Context, userID string) ([]domain.Submission, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT `+submissionColumns+`
FROM tax_returns
WHERE user_id = $1 AND status = 'submitted'
ORDER BY submitted_at DESC
`, userID)
	if err != nil {
		return nil, fmt.Errorf("query submissions: %w", err)
	}
	defer rows.Close()

	var subs []domain.Submission
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, *sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate submissions: %w", err)
	}
	return subs, nil
}

func (r *SubmissionRepository) GetByUserAndID(ctx context.Context, userID, id string) (*domain.Submission, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT `+submissionColumns+`
FROM tax_returns
WHERE user_id = $1 AND id = $2 AND status = 'submitted'
`, userID, id)
	return scanSubmission(row)
}

func scanSubmission(row rowScanner) (*domain.Submission, error) {
	var sub domain.Submission
	var fieldsRaw []byte
	var status string

	err := row.Scan(
		&sub.ID, &sub.UserID, &fieldsRaw, &status,
		&sub.FilingType, &sub.TaxOwed, &sub.RefundAmount, &sub.SubmittedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrNotFound, "get submission", err)
		}
		return nil, fmt.Errorf("scan submission: %w", err)
	}

	if err := json.Unmarshal(fieldsRaw, &sub.Fields); err != nil {
		return nil, fmt.Errorf("unmarshal submission fields: %w", err)
	}
	sub.Status = domain.ReturnStatus(status)
	return &sub, nil
}
