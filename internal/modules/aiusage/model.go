package aiusage

import "errors"

// ErrQuotaExhausted is returned when a driver has no AI summaries remaining for the current month.
var ErrQuotaExhausted = errors.New("ai summary quota exhausted")

// DefaultSummaries is the number of AI recommendation summaries granted per month.
const DefaultSummaries = 200
