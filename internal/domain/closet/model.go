package closet

import (
	"fmt"
	"strings"
	"time"
)

// Category is the fixed garment classification used across the wardrobe.
type Category string

const (
	CategoryTop       Category = "top"
	CategoryBottom    Category = "bottom"
	CategoryDress     Category = "dress"
	CategoryOuterwear Category = "outerwear"
	CategoryShoes     Category = "shoes"
	CategoryAccessory Category = "accessory"
)

// Categories returns every valid category in display order.
func Categories() []Category {
	return []Category{
		CategoryTop,
		CategoryBottom,
		CategoryDress,
		CategoryOuterwear,
		CategoryShoes,
		CategoryAccessory,
	}
}

// ParseCategory normalizes and validates a category value.
func ParseCategory(raw string) (Category, error) {
	candidate := Category(strings.ToLower(strings.TrimSpace(raw)))
	for _, category := range Categories() {
		if candidate == category {
			return category, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", raw)
}

// Seasons accepted on garments and generation requests.
const (
	SeasonSpring = "spring"
	SeasonSummer = "summer"
	SeasonFall   = "fall"
	SeasonWinter = "winter"
	SeasonAll    = "all"
)

// ValidSeason reports whether raw names a known season. Empty means "any".
func ValidSeason(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", SeasonSpring, SeasonSummer, SeasonFall, SeasonWinter, SeasonAll:
		return true
	}
	return false
}

// User is the authoritative profile record, owned by the server.
type User struct {
	ID           int64             `json:"id"`
	Name         string            `json:"name"`
	Email        string            `json:"email"`
	PhotoURL     string            `json:"photo_url,omitempty"`
	BodyType     string            `json:"body_type,omitempty"`
	StyleProfile *StyleSuggestions `json:"style_profile,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
}

// ClothingItem is a single wardrobe entry.
type ClothingItem struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	ImageURL  string    `json:"image_url"`
	Category  Category  `json:"category"`
	Color     string    `json:"color,omitempty"`
	Style     string    `json:"style,omitempty"`
	Season    string    `json:"season,omitempty"`
	AITags    []string  `json:"ai_tags,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Outfit is a saved combination of wardrobe items.
type Outfit struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Name      string    `json:"name"`
	Occasion  string    `json:"occasion"`
	ItemIDs   []int64   `json:"items"`
	Score     int       `json:"ai_score,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewOutfit is the payload accepted by the save endpoint.
type NewOutfit struct {
	Name     string  `json:"name" binding:"required"`
	Occasion string  `json:"occasion" binding:"required"`
	ItemIDs  []int64 `json:"item_ids" binding:"required,min=1"`
}

// StyleSuggestions is the style guidance attached to a body analysis.
type StyleSuggestions struct {
	RecommendedFits  []string `json:"recommended_fits"`
	FlatteringStyles []string `json:"flattering_styles"`
	Tips             []string `json:"tips"`
}

// BodyAnalysis is produced when a profile photo is analyzed.
type BodyAnalysis struct {
	BodyType         string           `json:"body_type"`
	StyleSuggestions StyleSuggestions `json:"style_suggestions"`
}

// GarmentAnalysis is produced when a clothing photo is analyzed. An empty
// Category means the analyzer defers to the category submitted by the user.
type GarmentAnalysis struct {
	Category Category `json:"category,omitempty"`
	Color    string   `json:"color,omitempty"`
	Style    string   `json:"style,omitempty"`
	Season   string   `json:"season,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}

// PhotoUploadResult is returned verbatim to the uploading client.
type PhotoUploadResult struct {
	Message  string       `json:"message"`
	PhotoURL string       `json:"photo_url"`
	Analysis BodyAnalysis `json:"analysis"`
}

// Upload carries one image file through the service boundary.
type Upload struct {
	Filename string
	MimeType string
	Content  []byte
}
