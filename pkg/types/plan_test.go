// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMergeKeywords(t *testing.T) {
	tests := []struct {
		name     string
		existing []string
		extra    []string
		want     []string
	}{
		{
			name:     "new keywords appended in order",
			existing: []string{"alpha"},
			extra:    []string{"beta", "gamma"},
			want:     []string{"alpha", "beta", "gamma"},
		},
		{
			name:     "case insensitive duplicates dropped",
			existing: []string{"Deep Learning"},
			extra:    []string{"deep learning", "deep  learning", "transformers"},
			want:     []string{"Deep Learning", "transformers"},
		},
		{
			name:     "empty entries dropped",
			existing: []string{"alpha"},
			extra:    []string{"", "   ", "beta"},
			want:     []string{"alpha", "beta"},
		},
		{
			name:  "merge into empty plan",
			extra: []string{"alpha"},
			want:  []string{"alpha"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := &ExecutionPlan{Keywords: tt.existing}
			plan.MergeKeywords(tt.extra)
			assert.Equal(t, tt.want, plan.Keywords)
		})
	}
}

func TestDateWindowIsZero(t *testing.T) {
	assert.True(t, DateWindow{}.IsZero())
	assert.False(t, DateWindow{From: time.Now()}.IsZero())
	assert.False(t, DateWindow{To: time.Now()}.IsZero())
}
