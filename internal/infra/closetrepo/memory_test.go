package closetrepo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stylehive/outfit-planner/internal/domain/closet"
)

func TestMemoryUserRepository_CreateAndGet(t *testing.T) {
	repo := NewMemoryUserRepository()

	user, err := repo.Create(context.Background(), "Ada", "ada@example.com")
	require.NoError(t, err)
	require.Equal(t, int64(1), user.ID)
	require.False(t, user.CreatedAt.IsZero())

	got, found, err := repo.Get(context.Background(), user.ID)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, user, got)

	_, found, err = repo.Get(context.Background(), 99)
	require.NoError(t, err)
	require.False(t, found)
}

func TestMemoryUserRepository_DuplicateEmail(t *testing.T) {
	repo := NewMemoryUserRepository()

	_, err := repo.Create(context.Background(), "Ada", "ada@example.com")
	require.NoError(t, err)

	_, err = repo.Create(context.Background(), "Other", "ada@example.com")
	require.ErrorIs(t, err, closet.ErrEmailExists)
}

func TestMemoryUserRepository_UpdatePhoto(t *testing.T) {
	repo := NewMemoryUserRepository()
	user, err := repo.Create(context.Background(), "Ada", "ada@example.com")
	require.NoError(t, err)

	profile := closet.StyleSuggestions{Tips: []string{"tip"}}
	updated, err := repo.UpdatePhoto(context.Background(), user.ID, "uploads/users/1/x.jpg", "athletic", profile)
	require.NoError(t, err)
	require.Equal(t, "uploads/users/1/x.jpg", updated.PhotoURL)
	require.Equal(t, "athletic", updated.BodyType)
	require.Equal(t, &profile, updated.StyleProfile)

	_, err = repo.UpdatePhoto(context.Background(), 99, "x", "y", profile)
	require.ErrorIs(t, err, closet.ErrUserNotFound)
}

func TestMemoryClothingRepository_InsertionOrder(t *testing.T) {
	repo := NewMemoryClothingRepository()

	for _, category := range []closet.Category{closet.CategoryTop, closet.CategoryBottom, closet.CategoryShoes} {
		_, err := repo.Add(context.Background(), closet.ClothingItem{UserID: 1, Category: category})
		require.NoError(t, err)
	}

	items, err := repo.ListByUser(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, items, 3)
	require.Equal(t, closet.CategoryTop, items[0].Category)
	require.Equal(t, closet.CategoryBottom, items[1].Category)
	require.Equal(t, closet.CategoryShoes, items[2].Category)

	other, err := repo.ListByUser(context.Background(), 2)
	require.NoError(t, err)
	require.Empty(t, other)
}

func TestMemoryClothingRepository_ReturnsCopies(t *testing.T) {
	repo := NewMemoryClothingRepository()
	_, err := repo.Add(context.Background(), closet.ClothingItem{UserID: 1, Category: closet.CategoryTop, Color: "white"})
	require.NoError(t, err)

	items, err := repo.ListByUser(context.Background(), 1)
	require.NoError(t, err)
	items[0].Color = "mutated"

	fresh, err := repo.ListByUser(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, "white", fresh[0].Color)
}

func TestMemoryOutfitRepository_SaveAndList(t *testing.T) {
	repo := NewMemoryOutfitRepository()

	saved, err := repo.Save(context.Background(), closet.Outfit{UserID: 1, Name: "casual Outfit 1", ItemIDs: []int64{1, 2}})
	require.NoError(t, err)
	require.Equal(t, int64(1), saved.ID)

	outfits, err := repo.ListSaved(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, outfits, 1)
	require.Equal(t, "casual Outfit 1", outfits[0].Name)
}
