package classify

import "strings"

// disambiguationPair describes two lexically adjacent categories whose
// keyword sets overlap enough that plain scoring flaps between them. Terms
// are literal substrings checked against the normalized combined input.
type disambiguationPair struct {
	left       string
	right      string
	leftTerms  []string
	rightTerms []string
}

var disambiguationPairs = []disambiguationPair{
	{
		left:       "Scholarships & Cost",
		right:      "Employment & Jobs",
		leftTerms:  []string{"beca", "scholarship", "tuition", "matricula", "coste", "costo", "precio", "financiacion", "roi"},
		rightTerms: []string{"empleo", "empleabilidad", "salario", "salary", "salaries", "job", "trabajo", "career", "salidas"},
	},
	{
		left:       "Brand & Reputation",
		right:      "Competition & Benchmarking",
		leftTerms:  []string{"marca", "brand", "reputacion", "reputation", "percepcion", "perception"},
		rightTerms: []string{"competencia", "competidores", "competitor", "benchmark", "comparacion", "versus"},
	},
}

const (
	// disambigMinHits is the minimum hit count the winning side must reach.
	disambigMinHits = 2
	// disambigMinLead is how far ahead the winning side must be.
	disambigMinLead = 2
)

func countTermHits(text string, terms []string) int {
	hits := 0

	for _, term := range terms {
		if strings.Contains(text, term) {
			hits++
		}
	}

	return hits
}

// disambiguate short-circuits classification when one side of a known
// overlapping pair clearly dominates the input. Returns the winning and
// losing category, or ok=false when no pair dominates.
func disambiguate(normalizedText string) (winner, loser string, ok bool) {
	for _, pair := range disambiguationPairs {
		leftHits := countTermHits(normalizedText, pair.leftTerms)
		rightHits := countTermHits(normalizedText, pair.rightTerms)

		if leftHits >= disambigMinHits && leftHits-rightHits >= disambigMinLead {
			return pair.left, pair.right, true
		}

		if rightHits >= disambigMinHits && rightHits-leftHits >= disambigMinLead {
			return pair.right, pair.left, true
		}
	}

	return "", "", false
}
