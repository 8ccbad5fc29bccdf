// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package discovery

import (
	"strings"
	"unicode"
)

// stopWords are function words and generic research vocabulary excluded from
// relevance terms and query construction.
var stopWords = map[string]bool{
	"find": true, "some": true, "papers": true, "on": true, "about": true,
	"the": true, "a": true, "an": true, "and": true, "or": true,
	"for": true, "in": true, "of": true, "to": true, "with": true,
	"using": true, "that": true, "this": true, "from": true, "by": true,
	"is": true, "are": true, "was": true, "were": true, "be": true,
	"been": true, "have": true, "has": true, "do": true, "does": true,
	"how": true, "what": true, "which": true, "where": true, "when": true,
	"who": true, "research": true, "study": true, "studies": true,
	"paper": true, "recent": true, "new": true, "novel": true,
	"based": true, "related": true,
}

// ExtractRelevanceTerms derives the ordered term list used to score
// candidates: curated keyword phrases first, then adjacent-word bigrams from
// the objective, then single meaningful words. Terms are lowercase and
// deduplicated by first occurrence, so more specific terms keep precedence.
func ExtractRelevanceTerms(objective string, keywords []string) []string {
	var terms []string

	for _, kw := range keywords {
		cleaned := strings.ToLower(strings.TrimSpace(kw))
		if len(cleaned) > 2 {
			terms = append(terms, cleaned)
		}
	}

	meaningful := meaningfulWords(objective)

	for i := 0; i+1 < len(meaningful); i++ {
		terms = append(terms, meaningful[i]+" "+meaningful[i+1])
	}
	terms = append(terms, meaningful...)

	seen := make(map[string]bool, len(terms))
	var unique []string
	for _, t := range terms {
		if seen[t] {
			continue
		}
		seen[t] = true
		unique = append(unique, t)
	}
	return unique
}

// meaningfulWords tokenizes text into lowercase alphabetic words, dropping
// stop words and tokens of one or two characters.
func meaningfulWords(text string) []string {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	})

	var out []string
	for _, w := range words {
		if len(w) > 2 && !stopWords[w] {
			out = append(out, w)
		}
	}
	return out
}
