package jobposting

import (
	"github.com/custodia-labs/joblistings/internal/core/domain"
)

// rule is one normalisation step. apply only runs when applies reports true.
type rule struct {
	name    string
	applies func(rec domain.CanonicalRecord) bool
	apply   func(rec domain.CanonicalRecord)
}

// renames maps source key names to canonical ones, in application order.
// A later rename overwrites the target of an earlier one, so job_type wins
// over employmentType when both are present.
var renames = []struct {
	from string
	to   string
}{
	{"salaryRange", domain.FieldCompensation},
	{"jobProviders", "job_providers"},
	{"employmentType", domain.FieldEmploymentType},
	{"datePosted", domain.FieldDatePosted},
	{"job_type", domain.FieldEmploymentType},
	{"image", "company_logo"},
	{"company_addresses", domain.FieldLocation},
}

const (
	defaultInterval = "yearly"
	minAmount       = "min_amount"
	maxAmount       = "max_amount"
)

func has(key string) func(domain.CanonicalRecord) bool {
	return func(rec domain.CanonicalRecord) bool {
		_, ok := rec[key]
		return ok
	}
}

func lacks(key string) func(domain.CanonicalRecord) bool {
	return func(rec domain.CanonicalRecord) bool {
		_, ok := rec[key]
		return !ok
	}
}

func renameRule(from, to string) rule {
	return rule{
		name:    "rename " + from,
		applies: has(from),
		apply: func(rec domain.CanonicalRecord) {
			rec[to] = rec[from]
			delete(rec, from)
		},
	}
}

func defaultRule(key string, value any) rule {
	return rule{
		name:    "default " + key,
		applies: lacks(key),
		apply: func(rec domain.CanonicalRecord) {
			rec[key] = value
		},
	}
}

// compensationRangeRule builds "{min} - {max}" from the amount pair.
// A null side collapses the range to the other value. It runs after the salaryRange rename and so takes precedence over it.
func compensationRangeRule() rule {
	return rule{
		name: "compensation range",
		applies: func(rec domain.CanonicalRecord) bool {
			return has(minAmount)(rec) && has(maxAmount)(rec)
		},
		apply: func(rec domain.CanonicalRecord) {
			lo := domain.FormatValue(rec[minAmount])
			hi := domain.FormatValue(rec[maxAmount])
			rec[domain.FieldCompensation] = compensationRange(lo, hi)
			delete(rec, minAmount)
			delete(rec, maxAmount)
		},
	}
}

func compensationRange(lo, hi string) string {
	switch {
	case lo == "":
		return hi
	case hi == "":
		return lo
	default:
		return lo + " - " + hi
	}
}

func locationRule(resolver LocationResolver) rule {
	return rule{
		name: "resolve location",
		applies: func(rec domain.CanonicalRecord) bool {
			loc, ok := rec[domain.FieldLocation].(string)
			return ok && loc != ""
		},
		apply: func(rec domain.CanonicalRecord) {
			rec[domain.FieldLocation] = resolver.Resolve(rec[domain.FieldLocation].(string))
		},
	}
}

func buildRules(resolver LocationResolver) []rule {
	rules := make([]rule, 0, len(renames)+4)
	for _, r := range renames {
		rules = append(rules, renameRule(r.from, r.to))
	}
	rules = append(rules,
		defaultRule(domain.FieldInterval, defaultInterval),
		compensationRangeRule(),
		defaultRule(domain.FieldJobURL, ""),
	)
	if resolver != nil {
		rules = append(rules, locationRule(resolver))
	}
	return rules
}
