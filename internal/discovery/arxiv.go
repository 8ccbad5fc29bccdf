// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package discovery

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/hassanmzia/AI-Research-Agent/internal/httputil"
	"github.com/hassanmzia/AI-Research-Agent/pkg/types"
)

// arxivAPIBase is the arXiv search endpoint. Declared as a var so tests can
// substitute an httptest server.
var arxivAPIBase = "https://export.arxiv.org/api/query"

// ArxivSource queries the arXiv API.
type ArxivSource struct {
	Client *http.Client
	Config types.SearchConfig
	Logger *zap.Logger
}

// Name returns the source identifier.
func (s *ArxivSource) Name() string { return "arxiv" }

// Search issues one structured query against arXiv, bounded by limit,
// category hints, and the publication window.
func (s *ArxivSource) Search(ctx context.Context, query string, limit int, window types.DateWindow, categories []string) ([]types.CandidatePaper, error) {
	expr := translateQuery(query)
	if expr == "" {
		return nil, fmt.Errorf("empty arXiv query")
	}

	if len(categories) > 0 {
		cats := make([]string, len(categories))
		for i, c := range categories {
			cats[i] = "cat:" + c
		}
		expr = fmt.Sprintf("(%s) AND (%s)", expr, strings.Join(cats, " OR "))
	}

	if !window.IsZero() {
		expr = fmt.Sprintf("%s AND submittedDate:[%s TO %s]",
			expr, arxivDate(window.From, "0000"), arxivDate(window.To, "2359"))
	}

	if limit <= 0 {
		limit = 20
	}

	params := url.Values{}
	params.Set("search_query", expr)
	params.Set("start", "0")
	params.Set("max_results", strconv.Itoa(limit))
	params.Set("sortBy", "submittedDate")
	params.Set("sortOrder", "descending")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, arxivAPIBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", s.Config.UserAgent)

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := httputil.DoWithRetry(ctx, client, req, 0, s.Logger)
	if err != nil {
		return nil, fmt.Errorf("arXiv API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arXiv API returned HTTP %d", resp.StatusCode)
	}

	var feed arxivFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("parsing arXiv response: %w", err)
	}

	var papers []types.CandidatePaper
	for _, entry := range feed.Entries {
		arxivID := extractArxivID(entry.ID)
		if arxivID == "" {
			continue
		}

		p := types.CandidatePaper{
			ID:        arxivID,
			Title:     collapseWhitespace(entry.Title),
			Abstract:  collapseWhitespace(entry.Summary),
			SourceURL: strings.TrimSpace(entry.ID),
			Source:    "arxiv",
		}

		for _, a := range entry.Authors {
			p.Authors = append(p.Authors, types.Author{Name: strings.TrimSpace(a.Name)})
		}
		for _, c := range entry.Categories {
			if c.Term != "" {
				p.Categories = append(p.Categories, c.Term)
			}
		}
		if t, parseErr := time.Parse(time.RFC3339, entry.Published); parseErr == nil {
			p.Published = t
		}

		papers = append(papers, p)
	}
	return papers, nil
}

// translateQuery rewrites a structured query into arXiv field syntax: every
// term is prefixed with all:, quoted phrases stay quoted, and parentheses and
// AND/OR operators pass through.
func translateQuery(query string) string {
	var out []string
	for _, tok := range tokenizeQuery(query) {
		switch tok {
		case "(", ")", "AND", "OR":
			out = append(out, tok)
		default:
			if strings.Contains(tok, " ") {
				out = append(out, `all:"`+tok+`"`)
			} else {
				out = append(out, "all:"+tok)
			}
		}
	}
	return strings.Join(out, " ")
}

// tokenizeQuery splits a structured query into parens, operators, quoted
// phrases (without their quotes), and bare words.
func tokenizeQuery(query string) []string {
	var tokens []string
	i := 0
	for i < len(query) {
		switch c := query[i]; {
		case c == ' ':
			i++
		case c == '(' || c == ')':
			tokens = append(tokens, string(c))
			i++
		case c == '"':
			end := strings.IndexByte(query[i+1:], '"')
			if end < 0 {
				tokens = append(tokens, query[i+1:])
				return tokens
			}
			tokens = append(tokens, query[i+1:i+1+end])
			i += end + 2
		default:
			j := i
			for j < len(query) && query[j] != ' ' && query[j] != '(' && query[j] != ')' && query[j] != '"' {
				j++
			}
			tokens = append(tokens, query[i:j])
			i = j
		}
	}
	return tokens
}

// arxivDate formats a time as the YYYYMMDDHHMM form the arXiv API expects.
func arxivDate(t time.Time, hhmm string) string {
	return t.Format("20060102") + hhmm
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// arXiv Atom feed XML structures.
type arxivFeed struct {
	Entries []arxivEntry `xml:"entry"`
}

type arxivEntry struct {
	ID         string          `xml:"id"`
	Title      string          `xml:"title"`
	Summary    string          `xml:"summary"`
	Published  string          `xml:"published"`
	Authors    []arxivAuthor   `xml:"author"`
	Categories []arxivCategory `xml:"category"`
}

type arxivAuthor struct {
	Name string `xml:"name"`
}

type arxivCategory struct {
	Term string `xml:"term,attr"`
}

// extractArxivID pulls the arXiv ID from the entry's <id> URL
// (e.g. "http://arxiv.org/abs/2301.07041v1" becomes "2301.07041").
func extractArxivID(idURL string) string {
	const prefix = "/abs/"
	idx := strings.Index(idURL, prefix)
	if idx < 0 {
		return ""
	}
	id := strings.TrimSpace(idURL[idx+len(prefix):])

	// Strip version suffix ("v1", "v2").
	if vIdx := strings.LastIndex(id, "v"); vIdx > 0 {
		if _, err := strconv.Atoi(id[vIdx+1:]); err == nil {
			id = id[:vIdx]
		}
	}
	return id
}
