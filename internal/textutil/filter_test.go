package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilter(t *testing.T) {
	files := []string{"cat.png", "dog.txt", "cathedral.png"}

	tests := []struct {
		name     string
		list     []string
		required []string
		opts     []FilterOption
		want     []string
	}{
		{"contains", files, []string{"cat"}, nil, []string{"cat.png", "cathedral.png"}},
		{"prefix", files, []string{"cat"}, []FilterOption{MatchPrefix()}, []string{"cat.png", "cathedral.png"}},
		{"prefix dot", files, []string{"cat."}, []FilterOption{MatchPrefix()}, []string{"cat.png"}},
		{"suffix", files, []string{".png"}, []FilterOption{MatchSuffix()}, []string{"cat.png", "cathedral.png"}},
		{"exact", files, []string{"cat.png"}, []FilterOption{MatchPrefix(), MatchSuffix()}, []string{"cat.png"}},
		{"exact needs whole string", files, []string{"cat"}, []FilterOption{MatchPrefix(), MatchSuffix()}, []string{}},
		{"excluding", files, []string{"cat"}, []FilterOption{Excluding()}, []string{"dog.txt"}},
		{"excluding suffix", files, []string{".png"}, []FilterOption{Excluding(), MatchSuffix()}, []string{"dog.txt"}},
		{"all required", files, []string{"cat", "dral"}, nil, []string{"cathedral.png"}},
		{"none of", files, []string{"dog", "hed"}, []FilterOption{Excluding()}, []string{"cat.png"}},
		{"no requirements", files, nil, nil, files},
		{"keeps duplicates", []string{"a1", "b", "a1"}, []string{"a"}, nil, []string{"a1", "a1"}},
		{"empty list", nil, []string{"x"}, nil, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Filter(tt.list, tt.required, tt.opts...))
		})
	}
}

func TestFilterString(t *testing.T) {
	files := []string{"cat.png", "dog.txt", "cathedral.png"}

	assert.Equal(t, []string{"cat.png", "cathedral.png"}, FilterString(files, "cat"))
	assert.Equal(t, []string{"cat.png"}, FilterString(files, "cat.", MatchPrefix()))
	assert.Equal(t, []string{"dog.txt"}, FilterString(files, "cat", Excluding()))
}

func TestFilter_DoesNotModifyInput(t *testing.T) {
	files := []string{"b", "a", "b"}
	_ = Filter(files, []string{"a"}, Excluding())
	assert.Equal(t, []string{"b", "a", "b"}, files)
}
