package datecard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommonInterests(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []string
		expected []string
	}{
		{
			name:     "single overlap",
			a:        []string{"hiking", "coffee"},
			b:        []string{"hiking", "reading"},
			expected: []string{"hiking"},
		},
		{
			name:     "case insensitive",
			a:        []string{"Hiking", "COFFEE"},
			b:        []string{"coffee", "HIKING"},
			expected: []string{"hiking", "coffee"},
		},
		{
			name:     "surrounding whitespace ignored",
			a:        []string{"  music "},
			b:        []string{"Music"},
			expected: []string{"music"},
		},
		{
			name:     "duplicates collapsed",
			a:        []string{"art", "Art", "art"},
			b:        []string{"ART"},
			expected: []string{"art"},
		},
		{
			name:     "no overlap",
			a:        []string{"hiking"},
			b:        []string{"movies"},
			expected: []string{},
		},
		{
			name:     "first list empty",
			a:        nil,
			b:        []string{"movies"},
			expected: []string{},
		},
		{
			name:     "second list empty",
			a:        []string{"movies"},
			b:        []string{},
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CommonInterests(tt.a, tt.b))
		})
	}
}

func TestCommonInterests_SymmetricContent(t *testing.T) {
	pairs := [][2][]string{
		{{"Hiking", "coffee", "art"}, {"ART", "hiking", "wine"}},
		{{"music", "food"}, {"Food", "MUSIC", "food"}},
		{{"a"}, {"b"}},
	}

	for _, p := range pairs {
		assert.ElementsMatch(t, CommonInterests(p[0], p[1]), CommonInterests(p[1], p[0]))
	}
}

func TestSelectCategory(t *testing.T) {
	table := MustDefaultCategories()

	tests := []struct {
		name     string
		common   []string
		expected string
	}{
		{name: "no common interests", common: nil, expected: "coffee"},
		{name: "empty common interests", common: []string{}, expected: "coffee"},
		{name: "hiking", common: []string{"hiking"}, expected: "hiking"},
		{name: "nothing scores", common: []string{"knitting", "chess"}, expected: "coffee"},
		{name: "highest score wins", common: []string{"outdoors", "relaxing"}, expected: "park"},
		{name: "substring match", common: []string{"live music nights"}, expected: "concert"},
		{name: "tie keeps declaration order", common: []string{"art"}, expected: "museum"},
		{name: "keyword case ignored", common: []string{"WINE"}, expected: "dinner"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, table.SelectCategory(tt.common).ID)
		})
	}
}

func TestSelectCategory_FromProfiles(t *testing.T) {
	table := MustDefaultCategories()

	t.Run("shared hiking interest picks the hiking template", func(t *testing.T) {
		common := CommonInterests([]string{"hiking", "coffee"}, []string{"hiking", "reading"})
		require.Equal(t, []string{"hiking"}, common)
		assert.Equal(t, "hiking", table.SelectCategory(common).ID)
	})

	t.Run("disjoint interests fall back to coffee", func(t *testing.T) {
		common := CommonInterests([]string{"hiking", "coffee"}, []string{"movies", "reading"})
		assert.Equal(t, "coffee", table.SelectCategory(common).ID)
	})
}

func TestScoreCategories(t *testing.T) {
	table := MustDefaultCategories()

	scores := table.ScoreCategories([]string{"outdoors", "relaxing"})
	require.Len(t, scores, table.Len())

	assert.Equal(t, "park", scores[0].Category.ID)
	assert.Equal(t, 2, scores[0].Score)

	for i := 1; i < len(scores); i++ {
		assert.GreaterOrEqual(t, scores[i-1].Score, scores[i].Score)
	}

	// Score-1 templates keep their declaration order.
	var ones []string
	for _, s := range scores {
		if s.Score == 1 {
			ones = append(ones, s.Category.ID)
		}
	}
	assert.Equal(t, []string{"coffee", "hiking", "beach"}, ones)
}

func TestSelectCategory_NeverReturnsZeroScore(t *testing.T) {
	table := MustDefaultCategories()
	inputs := [][]string{
		{"food"}, {"cinema"}, {"photography"}, {"sports", "games"},
		{"swimming"}, {"zzz"}, {"walking"}, {"history", "art"},
	}

	for _, common := range inputs {
		selected := table.SelectCategory(common)
		scores := table.ScoreCategories(common)

		if scores[0].Score == 0 {
			assert.Equal(t, DefaultCategoryID, selected.ID, "input %v", common)
			continue
		}
		for _, s := range scores {
			if s.Category.ID == selected.ID {
				assert.Positive(t, s.Score, "input %v", common)
			}
		}
	}
}
