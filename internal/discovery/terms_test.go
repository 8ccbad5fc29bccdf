// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package discovery

import (
	"reflect"
	"testing"
)

func TestExtractRelevanceTerms(t *testing.T) {
	tests := []struct {
		name      string
		objective string
		keywords  []string
		want      []string
	}{
		{
			name:      "keywords precede bigrams precede unigrams",
			objective: "reinforcement learning agents",
			keywords:  []string{"policy gradient"},
			want: []string{
				"policy gradient",
				"reinforcement learning", "learning agents",
				"reinforcement", "learning", "agents",
			},
		},
		{
			name:      "keywords lowercased and short ones dropped",
			objective: "",
			keywords:  []string{"  Deep Learning  ", "AI", "ML"},
			want:      []string{"deep learning"},
		},
		{
			name:      "stop words excluded from objective terms",
			objective: "find recent papers on graph networks",
			keywords:  nil,
			want:      []string{"graph networks", "graph", "networks"},
		},
		{
			name:      "duplicates keep first occurrence",
			objective: "transformer models",
			keywords:  []string{"transformer models", "Transformer Models"},
			want:      []string{"transformer models", "transformer", "models"},
		},
		{
			name:      "empty inputs",
			objective: "",
			keywords:  nil,
			want:      nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractRelevanceTerms(tt.objective, tt.keywords)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractRelevanceTerms() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMeaningfulWords(t *testing.T) {
	got := meaningfulWords("How do LLM-based agents study multi-agent coordination?")
	want := []string{"llm", "agents", "multi", "agent", "coordination"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("meaningfulWords() = %v, want %v", got, want)
	}
}
