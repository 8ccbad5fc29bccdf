// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package discovery

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/hassanmzia/AI-Research-Agent/pkg/types"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <entry>
    <id>http://arxiv.org/abs/2301.07041v2</id>
    <title>Attention Is
      Not All You Need</title>
    <summary>
      We revisit attention mechanisms
      in sequence models.
    </summary>
    <published>2026-01-17T18:59:59Z</published>
    <author><name>Ada Lovelace</name></author>
    <author><name>Alan Turing</name></author>
    <category term="cs.LG"/>
    <category term="cs.AI"/>
  </entry>
  <entry>
    <id>http://arxiv.org/abs/2302.00001v1</id>
    <title>Second Paper</title>
    <summary>Short summary.</summary>
    <published>not-a-date</published>
    <author><name>Grace Hopper</name></author>
  </entry>
</feed>`

func TestArxivSearchParsesFeed(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("search_query")
		if r.URL.Query().Get("sortBy") != "submittedDate" {
			t.Errorf("sortBy = %q, want submittedDate", r.URL.Query().Get("sortBy"))
		}
		if r.URL.Query().Get("max_results") != "25" {
			t.Errorf("max_results = %q, want 25", r.URL.Query().Get("max_results"))
		}
		w.Header().Set("Content-Type", "application/atom+xml")
		w.Write([]byte(sampleFeed))
	}))
	defer server.Close()

	oldBase := arxivAPIBase
	arxivAPIBase = server.URL
	defer func() { arxivAPIBase = oldBase }()

	src := &ArxivSource{Config: types.SearchConfig{}}
	window := types.DateWindow{
		From: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
	}
	papers, err := src.Search(context.Background(), `"attention mechanisms" AND sequence`, 25, window, []string{"cs.LG", "cs.AI"})
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}

	if !strings.Contains(gotQuery, `all:"attention mechanisms" AND all:sequence`) {
		t.Errorf("search_query missing translated terms: %q", gotQuery)
	}
	if !strings.Contains(gotQuery, "(cat:cs.LG OR cat:cs.AI)") {
		t.Errorf("search_query missing category filter: %q", gotQuery)
	}
	if !strings.Contains(gotQuery, "submittedDate:[202601010000 TO 202601312359]") {
		t.Errorf("search_query missing date window: %q", gotQuery)
	}

	if len(papers) != 2 {
		t.Fatalf("got %d papers, want 2", len(papers))
	}

	p := papers[0]
	if p.ID != "2301.07041" {
		t.Errorf("ID = %q, want 2301.07041 (version suffix stripped)", p.ID)
	}
	if p.Title != "Attention Is Not All You Need" {
		t.Errorf("Title = %q, whitespace not collapsed", p.Title)
	}
	if p.Abstract != "We revisit attention mechanisms in sequence models." {
		t.Errorf("Abstract = %q, whitespace not collapsed", p.Abstract)
	}
	if len(p.Authors) != 2 || p.Authors[0].Name != "Ada Lovelace" {
		t.Errorf("Authors = %v", p.Authors)
	}
	if len(p.Categories) != 2 || p.Categories[0] != "cs.LG" {
		t.Errorf("Categories = %v", p.Categories)
	}
	if p.Published.IsZero() {
		t.Error("Published not parsed")
	}
	if p.Source != "arxiv" {
		t.Errorf("Source = %q, want arxiv", p.Source)
	}

	if !papers[1].Published.IsZero() {
		t.Error("unparsable published date must stay zero")
	}
}

func TestArxivSearchHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadRequest)
	}))
	defer server.Close()

	oldBase := arxivAPIBase
	arxivAPIBase = server.URL
	defer func() { arxivAPIBase = oldBase }()

	src := &ArxivSource{}
	_, err := src.Search(context.Background(), "anything", 10, types.DateWindow{}, nil)
	if err == nil {
		t.Fatal("expected error on HTTP 400")
	}
}

func TestTranslateQuery(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{
			`"graph networks" AND attention`,
			`all:"graph networks" AND all:attention`,
		},
		{
			`("a b" AND cde) OR ("f g" OR hij)`,
			`( all:"a b" AND all:cde ) OR ( all:"f g" OR all:hij )`,
		},
		{
			`single`,
			`all:single`,
		},
	}
	for _, tt := range tests {
		if got := translateQuery(tt.in); got != tt.want {
			t.Errorf("translateQuery(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExtractArxivID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"http://arxiv.org/abs/2301.07041v1", "2301.07041"},
		{"http://arxiv.org/abs/2301.07041", "2301.07041"},
		{"https://arxiv.org/abs/cond-mat/0703470v2", "cond-mat/0703470"},
		{"http://example.com/nothing", ""},
	}
	for _, tt := range tests {
		if got := extractArxivID(tt.in); got != tt.want {
			t.Errorf("extractArxivID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
