package aiusage

import "context"

// Service gates the AI summary feature on a monthly per-subject allowance.
type Service struct {
	store *Store
}

// NewService creates a Service backed by the given Store.
func NewService(store *Store) *Service {
	return &Service{store: store}
}

// Use deducts one summary from the subject's monthly allowance.
// If the subject row does not exist yet it is initialised and the summary is
// immediately consumed. Returns ErrQuotaExhausted when the quota for the
// current month is exhausted.
func (s *Service) Use(ctx context.Context, subject string) error {
	err := s.store.UseSummary(ctx, subject)
	if err != ErrQuotaExhausted {
		return err
	}

	// Row may be missing: try to create it, then retry the deduction once.
	if initErr := s.store.EnsureSubject(ctx, subject); initErr != nil {
		return initErr
	}
	return s.store.UseSummary(ctx, subject)
}
