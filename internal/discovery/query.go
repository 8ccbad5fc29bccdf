// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package discovery

import "strings"

// maxStructuredQueries bounds the number of queries issued per run.
const maxStructuredQueries = 4

// BuildQueries constructs 1-4 structured queries from the plan keywords.
// The first query combines an AND-group of the first three cleaned terms
// (specificity) with an OR-group of the next three (breadth) as
// "(AND-group) OR (OR-group)". Remaining slots hold exact-phrase queries for
// leading multi-word keywords. When no keyword survives cleaning, terms are
// derived from the objective text instead.
func BuildQueries(keywords []string, objective string) []string {
	terms := cleanQueryTerms(keywords)
	if len(terms) == 0 {
		terms = meaningfulWords(objective)
	}
	if len(terms) == 0 {
		return nil
	}

	var queries []string

	andGroup := joinQuoted(terms[:minInt(3, len(terms))], " AND ")
	if len(terms) > 3 {
		orGroup := joinQuoted(terms[3:minInt(6, len(terms))], " OR ")
		queries = append(queries, "("+andGroup+") OR ("+orGroup+")")
	} else {
		queries = append(queries, andGroup)
	}

	// Exact-phrase queries for the most specific keywords.
	for _, t := range terms {
		if len(queries) == maxStructuredQueries {
			break
		}
		if strings.Contains(t, " ") {
			q := quoteTerm(t)
			if !containsString(queries, q) {
				queries = append(queries, q)
			}
		}
	}

	return queries
}

// cleanQueryTerms lowercases keywords, strips stop words from each phrase,
// and keeps phrases longer than 3 characters.
func cleanQueryTerms(keywords []string) []string {
	var out []string
	seen := make(map[string]bool, len(keywords))
	for _, kw := range keywords {
		var kept []string
		for _, w := range strings.Fields(strings.ToLower(kw)) {
			if !stopWords[w] {
				kept = append(kept, w)
			}
		}
		term := strings.Join(kept, " ")
		if len(term) <= 3 || seen[term] {
			continue
		}
		seen[term] = true
		out = append(out, term)
	}
	return out
}

// quoteTerm wraps multi-word phrases in double quotes for exact matching.
func quoteTerm(t string) string {
	if strings.Contains(t, " ") {
		return `"` + t + `"`
	}
	return t
}

func joinQuoted(terms []string, sep string) string {
	quoted := make([]string, len(terms))
	for i, t := range terms {
		quoted[i] = quoteTerm(t)
	}
	return strings.Join(quoted, sep)
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
