package pricing

import (
	"strings"

	"github.com/printsetu/printsetu-api/internal/domain/enum"
)

// DefaultInternationalRate is the flat tax percentage applied to orders
// shipped outside India.
const DefaultInternationalRate = 1.0

// Classification holds the tax regime for an order together with the rate
// components that apply under it. Exactly the components relevant to the
// regime are non-zero: CGST/SGST for intrastate, IGST for interstate and
// FlatRate for international.
type Classification struct {
	Regime   enum.TaxRegime `json:"regime"`
	CGSTRate float64        `json:"cgst_rate"`
	SGSTRate float64        `json:"sgst_rate"`
	IGSTRate float64        `json:"igst_rate"`
	FlatRate float64        `json:"flat_rate"`
}

// TotalRate returns the combined percentage applied to the taxable value
func (c Classification) TotalRate() float64 {
	if c.Regime == enum.TaxRegimeInternational {
		return c.FlatRate
	}
	return c.CGSTRate + c.SGSTRate + c.IGSTRate
}

// Classifier determines the tax regime for a buyer location relative to the
// seller's registered state. It is a pure value: classification never fails
// and never performs I/O.
type Classifier struct {
	sellerState       string
	internationalRate float64
}

// NewClassifier creates a classifier for the given seller home state.
// The seller state is resolved through the gazetteer so that an abbreviation
// like "C.G." compares equal to "Chhattisgarh".
func NewClassifier(sellerState string) Classifier {
	seller, ok := canonicalState(sellerState)
	if !ok {
		seller = normalizeRegion(sellerState)
	}
	return Classifier{
		sellerState:       seller,
		internationalRate: DefaultInternationalRate,
	}
}

// WithInternationalRate overrides the flat international tax percentage
func (c Classifier) WithInternationalRate(rate float64) Classifier {
	c.internationalRate = rate
	return c
}

// ClassifyRegime resolves buyer free-text location to a tax regime.
// A buyer counts as Indian when the country matches an India token or the
// state resolves against the gazetteer; anything not verifiably Indian falls
// through to International. An unrecognized state with an Indian country is
// Interstate, never Intrastate.
func (c Classifier) ClassifyRegime(buyerState, buyerCountry string) enum.TaxRegime {
	state, stateRecognized := canonicalState(buyerState)
	inIndia := isIndiaToken(buyerCountry) || stateRecognized

	if !inIndia {
		return enum.TaxRegimeInternational
	}
	if stateRecognized && state == c.sellerState {
		return enum.TaxRegimeIntrastate
	}
	return enum.TaxRegimeInterstate
}

// Classify resolves the regime and fills in the rate components.
// domesticRate is the total domestic GST percentage from the tax tier table:
// split evenly between CGST and SGST for intrastate orders, carried entirely
// by IGST for interstate ones.
func (c Classifier) Classify(buyerState, buyerCountry string, domesticRate float64) Classification {
	regime := c.ClassifyRegime(buyerState, buyerCountry)
	switch regime {
	case enum.TaxRegimeIntrastate:
		return Classification{
			Regime:   regime,
			CGSTRate: domesticRate / 2,
			SGSTRate: domesticRate / 2,
		}
	case enum.TaxRegimeInterstate:
		return Classification{
			Regime:   regime,
			IGSTRate: domesticRate,
		}
	default:
		return Classification{
			Regime:   regime,
			FlatRate: c.internationalRate,
		}
	}
}

// indiaTokens are accepted country spellings for India
var indiaTokens = map[string]bool{
	"india":           true,
	"in":              true,
	"ind":             true,
	"bharat":          true,
	"hindustan":       true,
	"republicofindia": true,
}

// stateGazetteer maps normalized spellings of Indian states and union
// territories to a canonical key. Keys are produced by normalizeRegion, so
// "C.G.", "c g" and "CG" all land on the same entry.
var stateGazetteer = map[string]string{
	// States
	"andhrapradesh":    "andhrapradesh",
	"ap":               "andhrapradesh",
	"arunachalpradesh": "arunachalpradesh",
	"assam":            "assam",
	"bihar":            "bihar",
	"chhattisgarh":     "chhattisgarh",
	"chattisgarh":      "chhattisgarh",
	"cg":               "chhattisgarh",
	"goa":              "goa",
	"gujarat":          "gujarat",
	"haryana":          "haryana",
	"himachalpradesh":  "himachalpradesh",
	"hp":               "himachalpradesh",
	"jharkhand":        "jharkhand",
	"karnataka":        "karnataka",
	"kerala":           "kerala",
	"madhyapradesh":    "madhyapradesh",
	"mp":               "madhyapradesh",
	"maharashtra":      "maharashtra",
	"mh":               "maharashtra",
	"manipur":          "manipur",
	"meghalaya":        "meghalaya",
	"mizoram":          "mizoram",
	"nagaland":         "nagaland",
	"odisha":           "odisha",
	"orissa":           "odisha",
	"punjab":           "punjab",
	"rajasthan":        "rajasthan",
	"sikkim":           "sikkim",
	"tamilnadu":        "tamilnadu",
	"tn":               "tamilnadu",
	"telangana":        "telangana",
	"ts":               "telangana",
	"tripura":          "tripura",
	"uttarpradesh":     "uttarpradesh",
	"up":               "uttarpradesh",
	"uttarakhand":      "uttarakhand",
	"uttaranchal":      "uttarakhand",
	"westbengal":       "westbengal",
	"wb":               "westbengal",

	// Union territories
	"andamanandnicobarislands":               "andamanandnicobarislands",
	"andamannicobarislands":                  "andamanandnicobarislands",
	"chandigarh":                             "chandigarh",
	"dadraandnagarhavelianddamananddiu":      "dadraandnagarhavelianddamananddiu",
	"dadranagarhaveli":                       "dadraandnagarhavelianddamananddiu",
	"damananddiu":                            "dadraandnagarhavelianddamananddiu",
	"delhi":                                  "delhi",
	"newdelhi":                               "delhi",
	"nctofdelhi":                             "delhi",
	"jammuandkashmir":                        "jammuandkashmir",
	"jammukashmir":                           "jammuandkashmir",
	"jk":                                     "jammuandkashmir",
	"ladakh":                                 "ladakh",
	"lakshadweep":                            "lakshadweep",
	"puducherry":                             "puducherry",
	"pondicherry":                            "puducherry",
}

// normalizeRegion lowercases and strips everything but letters, making the
// gazetteer insensitive to case, whitespace and punctuation
func normalizeRegion(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func canonicalState(s string) (string, bool) {
	key := normalizeRegion(s)
	if key == "" {
		return "", false
	}
	canonical, ok := stateGazetteer[key]
	return canonical, ok
}

func isIndiaToken(country string) bool {
	return indiaTokens[normalizeRegion(country)]
}
