package closet

import "context"

// UserRepository persists profile records.
type UserRepository interface {
	Create(ctx context.Context, name, email string) (User, error)
	Get(ctx context.Context, id int64) (User, bool, error)
	UpdatePhoto(ctx context.Context, id int64, photoURL, bodyType string, profile StyleSuggestions) (User, error)
}

// ClothingRepository persists wardrobe entries.
type ClothingRepository interface {
	Add(ctx context.Context, item ClothingItem) (ClothingItem, error)
	ListByUser(ctx context.Context, userID int64) ([]ClothingItem, error)
}

// OutfitRepository persists saved outfit combinations.
type OutfitRepository interface {
	Save(ctx context.Context, outfit Outfit) (Outfit, error)
	ListSaved(ctx context.Context, userID int64) ([]Outfit, error)
}
