// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"encoding/json"
	"strings"
	"time"
)

// Author identifies one paper author. Sources disagree on shape: arXiv gives a
// bare name, richer indexes give a {name, affiliation} object. Both forms are
// resolved into this struct at the discovery boundary.
type Author struct {
	// Name is the author's display name.
	Name string `json:"name" yaml:"name"`

	// Affiliation is the author's institution, when the source provides one.
	Affiliation string `json:"affiliation,omitempty" yaml:"affiliation,omitempty"`
}

// UnmarshalJSON accepts either a bare string ("Jane Doe") or a structured
// object ({"name": ..., "affiliation": ...}).
func (a *Author) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		a.Name = strings.TrimSpace(name)
		a.Affiliation = ""
		return nil
	}

	type plain Author
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*a = Author(p)
	return nil
}

// CandidatePaper is one paper returned by an academic search backend. It is
// produced by the discovery stage and consumed read-only downstream.
type CandidatePaper struct {
	// ID is the canonical identifier from the source (e.g. arXiv ID "2301.07041").
	ID string `json:"id" yaml:"id"`

	// Title is the paper title as returned by the source.
	Title string `json:"title" yaml:"title"`

	// Abstract is the paper abstract or summary.
	Abstract string `json:"abstract" yaml:"abstract"`

	// Authors lists the paper authors in source order.
	Authors []Author `json:"authors" yaml:"authors"`

	// Categories lists the source's subject classifications (e.g. "cs.AI").
	Categories []string `json:"categories,omitempty" yaml:"categories,omitempty"`

	// Published is the publication or preprint date.
	Published time.Time `json:"published" yaml:"published"`

	// SourceURL is the paper's landing page.
	SourceURL string `json:"source_url" yaml:"source_url"`

	// Source identifies which backend found this paper (e.g. "arxiv").
	Source string `json:"source" yaml:"source"`
}

// Identity returns the key used for cross-query deduplication: the source ID
// when present, otherwise the normalized title.
func (p CandidatePaper) Identity() string {
	if p.ID != "" {
		return "id:" + p.ID
	}
	return "title:" + strings.Join(strings.Fields(strings.ToLower(p.Title)), " ")
}

// AuthorNames returns just the author names, in source order.
func (p CandidatePaper) AuthorNames() []string {
	names := make([]string, 0, len(p.Authors))
	for _, a := range p.Authors {
		names = append(names, a.Name)
	}
	return names
}
