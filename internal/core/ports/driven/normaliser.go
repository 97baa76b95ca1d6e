package driven

import "github.com/custodia-labs/joblistings/internal/core/domain"

// RecordNormaliser transforms raw job postings into canonical records.
// Implementations must not mutate the raw record.
type RecordNormaliser interface {
	// Normalise returns the canonical form of raw.
	Normalise(raw domain.RawRecord) domain.CanonicalRecord
}
