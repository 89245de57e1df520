package datecard

import (
	"sort"
	"strings"
)

// CategoryScore is a template together with how many of its keywords
// were found in the shared interests.
type CategoryScore struct {
	Category DateCategory
	Score    int
}

// CommonInterests returns the interests present in both lists, compared
// case-insensitively. Results are lower-cased and unique, ordered as they
// first appear in a.
func CommonInterests(a, b []string) []string {
	if len(a) == 0 || len(b) == 0 {
		return []string{}
	}

	inB := make(map[string]struct{}, len(b))
	for _, interest := range b {
		inB[normalizeInterest(interest)] = struct{}{}
	}

	seen := make(map[string]struct{}, len(a))
	common := make([]string, 0, len(a))
	for _, interest := range a {
		key := normalizeInterest(interest)
		if key == "" {
			continue
		}
		if _, ok := inB[key]; !ok {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		common = append(common, key)
	}

	return common
}

// ScoreCategories scores every template against the shared interests and
// returns them best first. Ties keep declaration order.
func (t *CategoryTable) ScoreCategories(common []string) []CategoryScore {
	lowered := make([]string, len(common))
	for i, c := range common {
		lowered[i] = strings.ToLower(c)
	}

	scores := make([]CategoryScore, 0, len(t.ordered))
	for _, category := range t.ordered {
		score := 0
		for _, keyword := range category.Interests {
			if anyContains(lowered, strings.ToLower(keyword)) {
				score++
			}
		}
		scores = append(scores, CategoryScore{Category: category, Score: score})
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Score > scores[j].Score
	})

	return scores
}

// SelectCategory picks the best template for the shared interests, or the
// default template when there are none or nothing scores.
func (t *CategoryTable) SelectCategory(common []string) DateCategory {
	if len(common) == 0 {
		return t.Default()
	}

	scores := t.ScoreCategories(common)
	if scores[0].Score == 0 {
		return t.Default()
	}

	return scores[0].Category
}

// anyContains reports whether any interest contains keyword as a substring,
// so "live music nights" still counts for "music".
func anyContains(interests []string, keyword string) bool {
	for _, interest := range interests {
		if strings.Contains(interest, keyword) {
			return true
		}
	}
	return false
}

func normalizeInterest(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
