package stylist

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/stylehive/outfit-planner/internal/domain/closet"
	apperrors "github.com/stylehive/outfit-planner/pkg/errors"
)

// Combination caps, matching the product behavior of pairing a handful of
// pieces rather than the full cartesian product.
const (
	maxTops            = 3
	maxBottoms         = 2
	maxDresses         = 2
	maxRecommendations = 5

	pairScore  = 85
	dressScore = 90
)

// Service generates outfit recommendations from a wardrobe snapshot.
type Service interface {
	Generate(ctx context.Context, user closet.User, wardrobe []closet.ClothingItem, req Request) (Response, error)
}

type service struct {
	logger *slog.Logger
}

// NewService wires up the stylist domain.
func NewService(logger *slog.Logger) Service {
	return &service{logger: logger.With("component", "stylist.service")}
}

func (s *service) Generate(_ context.Context, user closet.User, wardrobe []closet.ClothingItem, req Request) (Response, error) {
	occasion, err := ParseOccasion(req.Occasion)
	if err != nil {
		return Response{}, apperrors.Wrap("invalid_input", "unknown occasion", err)
	}
	if !closet.ValidSeason(req.Season) {
		return Response{}, apperrors.Wrap("invalid_input", "unknown season", nil)
	}
	if len(wardrobe) == 0 {
		return Response{}, apperrors.Wrap("empty_wardrobe", "no clothing items in wardrobe", nil)
	}

	byCategory := make(map[closet.Category][]closet.ClothingItem)
	for _, item := range wardrobe {
		byCategory[item.Category] = append(byCategory[item.Category], item)
	}

	tops := byCategory[closet.CategoryTop]
	bottoms := byCategory[closet.CategoryBottom]
	dresses := byCategory[closet.CategoryDress]
	shoes := byCategory[closet.CategoryShoes]
	accessories := byCategory[closet.CategoryAccessory]

	var recs []Recommendation

	for _, top := range capSlice(tops, maxTops) {
		for _, bottom := range capSlice(bottoms, maxBottoms) {
			items := []int64{top.ID, bottom.ID}
			if len(shoes) > 0 {
				items = append(items, shoes[0].ID)
			}
			recs = append(recs, Recommendation{
				ItemIDs:   items,
				Score:     pairScore,
				Reasoning: fmt.Sprintf("Classic %s look with %s and %s", occasion, describe(top), describe(bottom)),
				StylingTips: []string{
					fmt.Sprintf("This combination works great for %s occasions", occasion),
					"Add a statement accessory to elevate the look",
					"Consider layering for different seasons",
				},
			})
		}
	}

	for _, dress := range capSlice(dresses, maxDresses) {
		items := []int64{dress.ID}
		if len(shoes) > 0 {
			items = append(items, shoes[0].ID)
		}
		if len(accessories) > 0 {
			items = append(items, accessories[0].ID)
		}
		recs = append(recs, Recommendation{
			ItemIDs:   items,
			Score:     dressScore,
			Reasoning: fmt.Sprintf("Elegant %s perfect for %s", describe(dress), occasion),
			StylingTips: []string{
				"Simple and chic - less is more",
				"Let the dress be the statement piece",
				"Comfortable yet stylish",
			},
		})
	}

	if len(recs) > maxRecommendations {
		recs = recs[:maxRecommendations]
	}
	s.logger.Info("outfits generated", "user_id", user.ID, "occasion", occasion, "count", len(recs))

	return Response{
		Occasion:        string(occasion),
		Season:          strings.ToLower(strings.TrimSpace(req.Season)),
		UserBodyType:    user.BodyType,
		Recommendations: recs,
		ShoppingSuggestions: []string{
			"Consider adding a blazer for more versatile formal options",
			"A neutral-colored cardigan would complement many outfits",
			"Statement accessories can transform basic outfits",
		},
	}, nil
}

func capSlice(items []closet.ClothingItem, max int) []closet.ClothingItem {
	if len(items) > max {
		return items[:max]
	}
	return items
}

func describe(item closet.ClothingItem) string {
	if item.Color == "" {
		return string(item.Category)
	}
	return item.Color + " " + string(item.Category)
}
