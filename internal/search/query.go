package search

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	numberPattern = regexp.MustCompile(`\d+(?:\.\d+)?(?:\s*(?:million|billion|trillion|percent|%|thousand))?`)
	datePattern   = regexp.MustCompile(`\b(?:19|20)\d{2}\b|\b(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{1,2},?\s+\d{4}\b`)
)

// FormulateQuery reformulates a claim into a search query.
//
// Claims carrying numbers or dates search best verbatim: the figures are
// exactly what the evidence must confirm or contradict. Claims without them
// search better as their key proper-noun terms. Falls back to a bounded
// prefix of the claim.
func FormulateQuery(claim string) string {
	if numberPattern.MatchString(claim) || datePattern.MatchString(claim) {
		return claim
	}

	var keyTerms []string
	for _, word := range strings.Fields(claim) {
		trimmed := strings.TrimFunc(word, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsNumber(r)
		})
		if len(trimmed) > 4 && startsUpper(trimmed) {
			keyTerms = append(keyTerms, trimmed)
			if len(keyTerms) == 3 {
				break
			}
		}
	}
	if len(keyTerms) > 0 {
		return strings.Join(keyTerms, " ")
	}

	if len(claim) > 100 {
		return strings.TrimSpace(claim[:100])
	}
	return claim
}

func startsUpper(s string) bool {
	for _, r := range s {
		return unicode.IsUpper(r)
	}
	return false
}
