package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// KeywordScore is one ranked keyword with its trending score.
// It serializes as a ["keyword", score] pair to match the API contract.
type KeywordScore struct {
	Keyword string
	Score   float64
}

// MarshalJSON encodes the keyword as a two-element array.
func (k KeywordScore) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]interface{}{k.Keyword, k.Score})
}

// UnmarshalJSON decodes the two-element array form.
func (k *KeywordScore) UnmarshalJSON(data []byte) error {
	var pair [2]json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if err := json.Unmarshal(pair[0], &k.Keyword); err != nil {
		return fmt.Errorf("keyword element: %w", err)
	}
	if err := json.Unmarshal(pair[1], &k.Score); err != nil {
		return fmt.Errorf("score element: %w", err)
	}
	return nil
}

// GlobalRanking is the precomputed global trending snapshot. At most one
// current record exists; each refresh replaces it wholesale.
type GlobalRanking struct {
	ID        uint           `gorm:"primaryKey" json:"-"`
	Timestamp time.Time      `gorm:"index:idx_global_ts" json:"timestamp"`
	Keywords  []KeywordScore `gorm:"serializer:json" json:"keywords"`
}

// CategoryRanking is the precomputed per-category trending snapshot.
// One record per category, fully replaced on each refresh.
type CategoryRanking struct {
	ID        uint           `gorm:"primaryKey" json:"-"`
	Category  string         `gorm:"index:idx_category_ranking" json:"category"`
	Timestamp time.Time      `json:"timestamp"`
	Keywords  []KeywordScore `gorm:"serializer:json" json:"keywords"`
}

// KeywordSet returns the ranking's keywords as a membership set, used as
// the allow-list for category partitioning.
func (g *GlobalRanking) KeywordSet() map[string]struct{} {
	set := make(map[string]struct{}, len(g.Keywords))
	for _, ks := range g.Keywords {
		set[ks.Keyword] = struct{}{}
	}
	return set
}

// ErrorResponse is the flat error body used by every endpoint.
type ErrorResponse struct {
	Error string `json:"error"`
}
