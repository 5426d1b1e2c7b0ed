package utils

import (
	"sort"
)

// =============================================================================
// Trending Score Utilities
// =============================================================================

// TrendingScore computes the relative growth of a keyword's recent count
// over its historical baseline. With no history the raw recent count is
// the score. The two branches are not comparable in magnitude.
func TrendingScore(recent, historical int) float64 {
	if historical == 0 {
		return float64(recent)
	}
	return float64(recent-historical) / float64(historical)
}

// RankedKeyword pairs a keyword with its computed trending score.
type RankedKeyword struct {
	Keyword string
	Score   float64
}

// RankKeywords scores every keyword present in the recent counter against
// the historical counter and returns them ordered by score descending.
// Keywords absent from the recent window are dropped even if historically
// present. Ties break by keyword ascending so repeated runs over an
// unchanged corpus produce identical output.
func RankKeywords(recent, historical map[string]int) []RankedKeyword {
	ranked := make([]RankedKeyword, 0, len(recent))
	for keyword, r := range recent {
		ranked = append(ranked, RankedKeyword{
			Keyword: keyword,
			Score:   TrendingScore(r, historical[keyword]),
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Keyword < ranked[j].Keyword
	})

	return ranked
}

// MergeCounts adds every count in src into dst.
func MergeCounts(dst, src map[string]int) {
	for keyword, count := range src {
		dst[keyword] += count
	}
}
