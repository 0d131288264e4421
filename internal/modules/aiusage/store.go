package aiusage

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store handles ai_summary_usage persistence.
type Store struct {
	db *pgxpool.Pool
}

// NewStore returns a Store backed by the given connection pool.
func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// UseSummary atomically checks the monthly quota and deducts one summary.
// It resets the counter to DefaultSummaries when last_reset_month is behind
// the current month. Returns ErrQuotaExhausted when 0 rows are updated
// (quota exhausted or subject absent).
func (s *Store) UseSummary(ctx context.Context, subject string) error {
	now := time.Now().Format("2006-01")

	tag, err := s.db.Exec(ctx, `
		UPDATE ai_summary_usage SET
			summaries_remaining = CASE WHEN last_reset_month != $1 THEN $2 - 1 ELSE summaries_remaining - 1 END,
			last_reset_month = $1
		WHERE subject = $3 AND (last_reset_month < $1 OR summaries_remaining > 0)
	`, now, DefaultSummaries, subject)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrQuotaExhausted
	}
	return nil
}

// EnsureSubject inserts a new ai_summary_usage row for subject with the
// default allowance. If the row already exists the insert is silently
// skipped (ON CONFLICT DO NOTHING).
func (s *Store) EnsureSubject(ctx context.Context, subject string) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO ai_summary_usage (subject, summaries_remaining, last_reset_month)
		VALUES ($1, $2, $3)
		ON CONFLICT (subject) DO NOTHING
	`, subject, DefaultSummaries, time.Now().Format("2006-01"))
	return err
}
