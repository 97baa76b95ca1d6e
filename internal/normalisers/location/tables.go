package location

// stateAbbreviation pairs a US state name with its postal code.
type stateAbbreviation struct {
	name string
	code string
}

// states is ordered alphabetically. Substitution walks it in order, so
// "Virginia" is replaced before "West Virginia" is considered.
var states = []stateAbbreviation{
	{"Alabama", "AL"}, {"Alaska", "AK"}, {"Arizona", "AZ"}, {"Arkansas", "AR"},
	{"California", "CA"}, {"Colorado", "CO"}, {"Connecticut", "CT"}, {"Delaware", "DE"},
	{"Florida", "FL"}, {"Georgia", "GA"}, {"Hawaii", "HI"}, {"Idaho", "ID"},
	{"Illinois", "IL"}, {"Indiana", "IN"}, {"Iowa", "IA"}, {"Kansas", "KS"},
	{"Kentucky", "KY"}, {"Louisiana", "LA"}, {"Maine", "ME"}, {"Maryland", "MD"},
	{"Massachusetts", "MA"}, {"Michigan", "MI"}, {"Minnesota", "MN"}, {"Mississippi", "MS"},
	{"Missouri", "MO"}, {"Montana", "MT"}, {"Nebraska", "NE"}, {"Nevada", "NV"},
	{"New Hampshire", "NH"}, {"New Jersey", "NJ"}, {"New Mexico", "NM"}, {"New York", "NY"},
	{"North Carolina", "NC"}, {"North Dakota", "ND"}, {"Ohio", "OH"}, {"Oklahoma", "OK"},
	{"Oregon", "OR"}, {"Pennsylvania", "PA"}, {"Rhode Island", "RI"}, {"South Carolina", "SC"},
	{"South Dakota", "SD"}, {"Tennessee", "TN"}, {"Texas", "TX"}, {"Utah", "UT"},
	{"Vermont", "VT"}, {"Virginia", "VA"}, {"Washington", "WA"}, {"West Virginia", "WV"},
	{"Wisconsin", "WI"}, {"Wyoming", "WY"},
}

var stateCodes = func() map[string]struct{} {
	codes := make(map[string]struct{}, len(states))
	for _, s := range states {
		codes[s.code] = struct{}{}
	}
	return codes
}()

// countrySynonyms are rewritten to "United States", in order.
var countrySynonyms = []string{
	"États-Unis",
	"Stati Uniti",
	"Vereinigte Staaten",
	"United States of America",
}

// cityRegion completes a bare city name.
type cityRegion struct {
	city   string
	suffix string
}

var cityRegions = []cityRegion{
	{"Boston", ", MA, United States"},
	{"Cambridge", ", MA, United States"},
	{"Somerville", ", MA, United States"},
	{"San Francisco", ", CA, United States"},
	{"San Jose", ", CA, United States"},
	{"Sacramento", ", CA, United States"},
	{"Pittsburgh", ", PA, United States"},
	{"Atlanta", ", GA, United States"},
	{"Chicago", ", IL, United States"},
	{"Austin", ", TX, United States"},
	{"New Orleans", ", LA, United States"},
	{"Las Vegas", ", NV, United States"},
	{"Tokyo", ", Japan"},
	{"Paris", ", France"},
	{"Bengaluru", ", India"},
	{"Madrid", ", Spain"},
	{"Barcelona", ", Spain"},
}

// exactRewrites replace a whole location string.
var exactRewrites = map[string]string{
	"WA DC":          "Washington, DC, United States",
	"Dublin, Dublin": "Dublin, Ireland",
}
