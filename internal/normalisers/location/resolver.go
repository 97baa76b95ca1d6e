// Package location rewrites free-text job locations into
// "City, ST, Country" form using fixed tables and patterns.
//
// The resolver is a heuristic chain, not a geocoder. Every step runs once,
// in order, on the output of the previous step. Running it twice on the
// same input is not guaranteed to be a no-op.
package location

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

const unitedStates = "United States"

var (
	trailingNoise = regexp.MustCompile(`[\s\d,.\-]+$`)

	// Word classes are Unicode-aware so accented city names still match.
	cityStateCountry = regexp.MustCompile(
		`([\p{L}\p{N}_]+(?:[\s\p{L}\p{N}_]+)?),\s([A-Z]{2}),\s([\s\p{L}\p{N}_]+)$`)
)

// Options tune resolver behaviour.
type Options struct {
	// LegacyUSATrim strips any run of ' ', 'U', 'S' and 'A' characters from
	// both ends when a location ends in " USA", matching the historical
	// output ("Tulsa, OK USA" became "Tulsa, OK"; "Austin USA" became "ustin").
	// When false only the literal " USA" suffix is removed.
	LegacyUSATrim bool
}

type step func(string) string

// Resolver applies the location rewrite chain.
type Resolver struct {
	steps []step
}

// NewResolver creates a resolver with the given options.
func NewResolver(opts Options) *Resolver {
	removeUSA := removeUSASuffix
	if opts.LegacyUSATrim {
		removeUSA = trimUSACharacters
	}

	return &Resolver{
		steps: []step{
			stripTrailingNoise,
			removeUSA,
			abbreviateStates,
			appendUnitedStates,
			replaceCountrySynonyms,
			extractCityStateCountry,
			completeKnownCity,
		},
	}
}

// Resolve rewrites location. Empty input is returned unchanged.
func (r *Resolver) Resolve(location string) string {
	if location == "" {
		return location
	}
	loc := norm.NFC.String(location)
	for _, s := range r.steps {
		loc = s(loc)
	}
	return loc
}

// stripTrailingNoise drops zip codes and trailing punctuation.
func stripTrailingNoise(loc string) string {
	return strings.TrimSpace(trailingNoise.ReplaceAllString(loc, ""))
}

// removeUSASuffix removes a literal trailing " USA" and any zip code it
// was hiding, so "Springfield, IL 62701 USA" becomes "Springfield, IL".
func removeUSASuffix(loc string) string {
	if !strings.HasSuffix(loc, " USA") {
		return loc
	}
	return stripTrailingNoise(strings.TrimSuffix(loc, " USA"))
}

func trimUSACharacters(loc string) string {
	if !strings.HasSuffix(loc, " USA") {
		return loc
	}
	return strings.Trim(loc, " USA")
}

// abbreviateStates resolves New York and Washington DC first. Otherwise
// every state name found in loc is replaced by its postal code.
func abbreviateStates(loc string) string {
	switch {
	case strings.Contains(loc, "New York, New York"), strings.Contains(loc, "New York, NY"):
		return "New York, NY, " + unitedStates
	case strings.Contains(loc, "Washington, DC"):
		return "Washington, DC, " + unitedStates
	}

	for _, s := range states {
		if strings.Contains(loc, s.name) {
			loc = strings.ReplaceAll(loc, s.name, s.code)
		}
	}
	return loc
}

// appendUnitedStates adds the country when loc ends in a state code.
func appendUnitedStates(loc string) string {
	trimmed := strings.TrimSpace(loc)
	last := trimmed
	if i := strings.LastIndexAny(trimmed, " ,"); i >= 0 {
		last = trimmed[i+1:]
	}
	if _, ok := stateCodes[last]; ok {
		return loc + ", " + unitedStates
	}
	return loc
}

func replaceCountrySynonyms(loc string) string {
	for _, synonym := range countrySynonyms {
		loc = strings.ReplaceAll(loc, synonym, unitedStates)
	}
	return loc
}

// extractCityStateCountry keeps only the trailing "City, ST, Country" part
// of loc. Locations without that shape pass through.
func extractCityStateCountry(loc string) string {
	m := cityStateCountry.FindStringSubmatch(loc)
	if m == nil {
		return loc
	}
	return m[1] + ", " + m[2] + ", " + m[3]
}

// completeKnownCity adds region and country to bare city names.
func completeKnownCity(loc string) string {
	trimmed := strings.TrimSpace(loc)

	if rewrite, ok := exactRewrites[trimmed]; ok {
		return rewrite
	}
	for _, c := range cityRegions {
		if trimmed == c.city {
			return trimmed + c.suffix
		}
	}
	if strings.Contains(loc, "Tokyo") && strings.Contains(loc, "Japan") {
		return "Tokyo, Japan"
	}
	return loc
}
