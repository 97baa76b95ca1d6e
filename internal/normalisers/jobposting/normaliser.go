// Package jobposting normalises scraped job postings into the canonical
// record shape shared by all sources.
package jobposting

import (
	"maps"

	"github.com/custodia-labs/joblistings/internal/core/domain"
	"github.com/custodia-labs/joblistings/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.RecordNormaliser = (*Normaliser)(nil)

// LocationResolver rewrites a free-text location.
type LocationResolver interface {
	Resolve(location string) string
}

// Normaliser applies the canonical rule chain to raw postings.
type Normaliser struct {
	rules []rule
}

// New creates a normaliser. A nil resolver leaves locations untouched.
func New(resolver LocationResolver) *Normaliser {
	return &Normaliser{rules: buildRules(resolver)}
}

// Normalise returns a canonical copy of raw. The input map is not modified.
// Nested values are shared with raw.
func (n *Normaliser) Normalise(raw domain.RawRecord) domain.CanonicalRecord {
	rec := domain.CanonicalRecord(maps.Clone(raw))
	if rec == nil {
		rec = domain.CanonicalRecord{}
	}
	for _, r := range n.rules {
		if r.applies(rec) {
			r.apply(rec)
		}
	}
	return rec
}

// ruleNames lists the rules in the order they run.
func (n *Normaliser) ruleNames() []string {
	names := make([]string, len(n.rules))
	for i, r := range n.rules {
		names[i] = r.name
	}
	return names
}
