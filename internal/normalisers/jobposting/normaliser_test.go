package jobposting

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/joblistings/internal/core/domain"
	"github.com/custodia-labs/joblistings/internal/normalisers/location"
)

func newNormaliser() *Normaliser {
	return New(location.NewResolver(location.Options{}))
}

func TestNew(t *testing.T) {
	n := newNormaliser()
	require.NotNil(t, n)
	assert.Equal(t, []string{
		"rename salaryRange",
		"rename jobProviders",
		"rename employmentType",
		"rename datePosted",
		"rename job_type",
		"rename image",
		"rename company_addresses",
		"default interval",
		"compensation range",
		"default job_url",
		"resolve location",
	}, n.ruleNames())
}

func TestNormalise_RenamesJobsShape(t *testing.T) {
	raw := domain.RawRecord{
		"id":             "abc",
		"title":          "Software Engineer",
		"company":        "Epic",
		"salaryRange":    "$100K - $120K",
		"jobProviders":   []any{map[string]any{"jobProvider": "LinkedIn"}},
		"employmentType": "Full-time",
		"datePosted":     "3 days ago",
		"image":          "https://logo.example/epic.png",
		"location":       "Verona, WI",
	}

	rec := newNormaliser().Normalise(raw)

	assert.Equal(t, "$100K - $120K", rec["compensation"])
	assert.Equal(t, "Full-time", rec["employment_type"])
	assert.Equal(t, "3 days ago", rec["date_posted"])
	assert.Equal(t, "https://logo.example/epic.png", rec["company_logo"])
	assert.NotNil(t, rec["job_providers"])
	assert.Equal(t, "Verona, WI, United States", rec["location"])

	for _, old := range []string{"salaryRange", "jobProviders", "employmentType", "datePosted", "image"} {
		assert.NotContains(t, rec, old)
	}
}

func TestNormalise_ResultsShape(t *testing.T) {
	raw := domain.RawRecord{
		"id":                "in-123",
		"title":             "Software Developer",
		"company":           "Bio-Rad Laboratories, Inc.",
		"job_type":          "fulltime",
		"interval":          "hourly",
		"min_amount":        json.Number("45"),
		"max_amount":        json.Number("60.5"),
		"job_url":           "https://example.com/job/in-123",
		"company_addresses": "Hercules, California 94547",
		"is_remote":         false,
	}

	rec := newNormaliser().Normalise(raw)

	assert.Equal(t, "fulltime", rec["employment_type"])
	assert.Equal(t, "hourly", rec["interval"])
	assert.Equal(t, "45 - 60.5", rec["compensation"])
	assert.Equal(t, "https://example.com/job/in-123", rec["job_url"])
	assert.Equal(t, "Hercules, CA, United States", rec["location"])
	assert.Equal(t, false, rec["is_remote"])
	assert.NotContains(t, rec, "min_amount")
	assert.NotContains(t, rec, "max_amount")
	assert.NotContains(t, rec, "job_type")
	assert.NotContains(t, rec, "company_addresses")
}

func TestNormalise_Defaults(t *testing.T) {
	rec := newNormaliser().Normalise(domain.RawRecord{"id": "1"})

	assert.Equal(t, "yearly", rec["interval"])
	assert.Equal(t, "", rec["job_url"])
	assert.NotContains(t, rec, "location")
}

func TestNormalise_MinMaxWinsOverSalaryRange(t *testing.T) {
	rec := newNormaliser().Normalise(domain.RawRecord{
		"salaryRange": "$1 - $2",
		"min_amount":  json.Number("100000"),
		"max_amount":  json.Number("150000"),
	})

	assert.Equal(t, "100000 - 150000", rec["compensation"])
	assert.NotContains(t, rec, "salaryRange")
}

func TestNormalise_MinWithoutMaxIsKept(t *testing.T) {
	rec := newNormaliser().Normalise(domain.RawRecord{"min_amount": json.Number("5")})

	assert.Equal(t, json.Number("5"), rec["min_amount"])
	assert.NotContains(t, rec, "compensation")
}

func TestNormalise_NullAmounts(t *testing.T) {
	rec := newNormaliser().Normalise(domain.RawRecord{"min_amount": nil, "max_amount": nil})
	assert.Equal(t, "", rec["compensation"])
}

func TestNormalise_OneNullAmount(t *testing.T) {
	tests := []struct {
		name string
		raw  domain.RawRecord
		want string
	}{
		{
			name: "min null",
			raw:  domain.RawRecord{"min_amount": nil, "max_amount": json.Number("100000")},
			want: "100000",
		},
		{
			name: "max null",
			raw:  domain.RawRecord{"min_amount": json.Number("80000"), "max_amount": nil},
			want: "80000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := newNormaliser().Normalise(tt.raw)

			assert.Equal(t, tt.want, rec["compensation"])
			assert.NotContains(t, rec, "min_amount")
			assert.NotContains(t, rec, "max_amount")
		})
	}
}

func TestNormalise_JobTypeOverridesEmploymentType(t *testing.T) {
	rec := newNormaliser().Normalise(domain.RawRecord{
		"employmentType": "Full-time",
		"job_type":       "contract",
	})
	assert.Equal(t, "contract", rec["employment_type"])
}

func TestNormalise_KeepsExistingInterval(t *testing.T) {
	rec := newNormaliser().Normalise(domain.RawRecord{"interval": "monthly"})
	assert.Equal(t, "monthly", rec["interval"])
}

func TestNormalise_NonStringLocationUntouched(t *testing.T) {
	addresses := []any{"Boston"}
	rec := newNormaliser().Normalise(domain.RawRecord{"company_addresses": addresses})
	assert.Equal(t, addresses, rec["location"])
}

func TestNormalise_DoesNotMutateInput(t *testing.T) {
	raw := domain.RawRecord{"salaryRange": "$5", "location": "Boston"}

	_ = newNormaliser().Normalise(raw)

	assert.Equal(t, domain.RawRecord{"salaryRange": "$5", "location": "Boston"}, raw)
}

func TestNormalise_NilResolver(t *testing.T) {
	rec := New(nil).Normalise(domain.RawRecord{"location": "Boston"})
	assert.Equal(t, "Boston", rec["location"])
}

func TestNormalise_NilRecord(t *testing.T) {
	rec := newNormaliser().Normalise(nil)
	assert.Equal(t, domain.CanonicalRecord{"interval": "yearly", "job_url": ""}, rec)
}
