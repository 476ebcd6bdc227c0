package stylist

import (
	"fmt"
	"strings"
)

// Occasion scopes outfit generation.
type Occasion string

const (
	OccasionCasual   Occasion = "casual"
	OccasionFormal   Occasion = "formal"
	OccasionBusiness Occasion = "business"
	OccasionDate     Occasion = "date"
	OccasionParty    Occasion = "party"
	OccasionWorkout  Occasion = "workout"
)

// Occasions returns every valid occasion in display order.
func Occasions() []Occasion {
	return []Occasion{
		OccasionCasual,
		OccasionFormal,
		OccasionBusiness,
		OccasionDate,
		OccasionParty,
		OccasionWorkout,
	}
}

// ParseOccasion normalizes and validates an occasion value. Empty defaults
// to casual.
func ParseOccasion(raw string) (Occasion, error) {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if trimmed == "" {
		return OccasionCasual, nil
	}
	for _, occasion := range Occasions() {
		if Occasion(trimmed) == occasion {
			return occasion, nil
		}
	}
	return "", fmt.Errorf("unknown occasion %q", raw)
}

// Request is the generation payload accepted from clients.
type Request struct {
	Occasion string `json:"occasion"`
	Season   string `json:"season,omitempty"`
}

// Recommendation is one candidate outfit.
type Recommendation struct {
	ItemIDs     []int64  `json:"items"`
	Score       int      `json:"score"`
	Reasoning   string   `json:"reasoning"`
	StylingTips []string `json:"styling_tips"`
}

// Response is the full generation result returned to clients. It is never
// persisted server-side.
type Response struct {
	Occasion            string           `json:"occasion"`
	Season              string           `json:"season,omitempty"`
	UserBodyType        string           `json:"user_body_type,omitempty"`
	Recommendations     []Recommendation `json:"recommendations"`
	ShoppingSuggestions []string         `json:"shopping_suggestions,omitempty"`
}
