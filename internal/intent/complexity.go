package intent

import "strings"

// Tier is a coarse estimate of how much multi-stage processing a request
// should get. Complex requests run an analysis pass before the final pass;
// simple and moderate requests run a single pass.
type Tier string

const (
	TierSimple   Tier = "simple"
	TierModerate Tier = "moderate"
	TierComplex  Tier = "complex"
)

var (
	simpleKeywords  = []string{"summarize", "summary", "translate", "classify"}
	complexKeywords = []string{"analyze", "compare", "insights", "comprehensive", "detailed"}
)

const (
	simpleDocLimit    = 2000
	complexDocMinimum = 5000
)

// EstimateComplexity maps a query and document length to a processing tier.
func EstimateComplexity(query string, docLength int) Tier {
	q := strings.ToLower(query)
	switch {
	case containsAny(simpleKeywords...)(q) && docLength < simpleDocLimit:
		return TierSimple
	case containsAny(complexKeywords...)(q) || docLength > complexDocMinimum:
		return TierComplex
	default:
		return TierModerate
	}
}
