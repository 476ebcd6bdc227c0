package closetrepo

import (
	"context"
	"sync"

	"github.com/stylehive/outfit-planner/internal/domain/closet"
	"github.com/stylehive/outfit-planner/pkg/util"
)

// MemoryUserRepository provides an in-memory user store for tests/dev.
type MemoryUserRepository struct {
	mu         sync.RWMutex
	users      map[int64]closet.User
	emailIndex map[string]int64
	seq        int64
}

// NewMemoryUserRepository constructs a new in-memory repository.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		users:      make(map[int64]closet.User),
		emailIndex: make(map[string]int64),
	}
}

// Create stores the user record.
func (r *MemoryUserRepository) Create(_ context.Context, name, email string) (closet.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.emailIndex[email]; exists {
		return closet.User{}, closet.ErrEmailExists
	}
	r.seq++
	user := closet.User{
		ID:        r.seq,
		Name:      name,
		Email:     email,
		CreatedAt: util.NowUTC(),
	}
	r.users[user.ID] = user
	r.emailIndex[email] = user.ID
	return user, nil
}

// Get fetches by ID.
func (r *MemoryUserRepository) Get(_ context.Context, id int64) (closet.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	return user, ok, nil
}

// UpdatePhoto attaches photo and analysis fields to the user.
func (r *MemoryUserRepository) UpdatePhoto(_ context.Context, id int64, photoURL, bodyType string, profile closet.StyleSuggestions) (closet.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return closet.User{}, closet.ErrUserNotFound
	}
	user.PhotoURL = photoURL
	user.BodyType = bodyType
	user.StyleProfile = &profile
	r.users[id] = user
	return user, nil
}

var _ closet.UserRepository = (*MemoryUserRepository)(nil)

// MemoryClothingRepository keeps wardrobe entries in memory, in insertion order.
type MemoryClothingRepository struct {
	mu    sync.RWMutex
	items map[int64][]closet.ClothingItem
	seq   int64
}

// NewMemoryClothingRepository constructs a new in-memory repository.
func NewMemoryClothingRepository() *MemoryClothingRepository {
	return &MemoryClothingRepository{items: make(map[int64][]closet.ClothingItem)}
}

// Add appends a wardrobe entry, assigning its identifier.
func (r *MemoryClothingRepository) Add(_ context.Context, item closet.ClothingItem) (closet.ClothingItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	item.ID = r.seq
	item.CreatedAt = util.NowUTC()
	r.items[item.UserID] = append(r.items[item.UserID], item)
	return item, nil
}

// ListByUser returns the user's wardrobe in insertion order.
func (r *MemoryClothingRepository) ListByUser(_ context.Context, userID int64) ([]closet.ClothingItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored := r.items[userID]
	out := make([]closet.ClothingItem, len(stored))
	copy(out, stored)
	return out, nil
}

var _ closet.ClothingRepository = (*MemoryClothingRepository)(nil)

// MemoryOutfitRepository keeps saved outfits in memory.
type MemoryOutfitRepository struct {
	mu      sync.RWMutex
	outfits map[int64][]closet.Outfit
	seq     int64
}

// NewMemoryOutfitRepository constructs a new in-memory repository.
func NewMemoryOutfitRepository() *MemoryOutfitRepository {
	return &MemoryOutfitRepository{outfits: make(map[int64][]closet.Outfit)}
}

// Save appends an outfit, assigning its identifier.
func (r *MemoryOutfitRepository) Save(_ context.Context, outfit closet.Outfit) (closet.Outfit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	outfit.ID = r.seq
	outfit.CreatedAt = util.NowUTC()
	r.outfits[outfit.UserID] = append(r.outfits[outfit.UserID], outfit)
	return outfit, nil
}

// ListSaved returns the user's saved outfits in insertion order.
func (r *MemoryOutfitRepository) ListSaved(_ context.Context, userID int64) ([]closet.Outfit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored := r.outfits[userID]
	out := make([]closet.Outfit, len(stored))
	copy(out, stored)
	return out, nil
}

var _ closet.OutfitRepository = (*MemoryOutfitRepository)(nil)
