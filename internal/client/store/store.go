// Package store holds the frontend's session state: the active profile and
// the wardrobe snapshot. All mutations go through the API first; local state
// only changes after the server has acknowledged.
package store

import (
	"context"
	"log/slog"
	"sync"

	"github.com/stylehive/outfit-planner/internal/client/closetapi"
	"github.com/stylehive/outfit-planner/internal/domain/closet"
	apperrors "github.com/stylehive/outfit-planner/pkg/errors"
)

func errNoProfile() error {
	return apperrors.Wrap("no_profile", "no profile created in this session", nil)
}

// Store is the session-scoped client state.
type Store struct {
	mu       sync.RWMutex
	api      *closetapi.Client
	logger   *slog.Logger
	user     *closet.User
	wardrobe []closet.ClothingItem
}

// New builds an empty Store backed by the given API client.
func New(api *closetapi.Client, logger *slog.Logger) *Store {
	return &Store{
		api:    api,
		logger: logger.With("component", "client.store"),
	}
}

// API exposes the underlying client for operations that bypass local state,
// such as outfit generation.
func (s *Store) API() *closetapi.Client {
	return s.api
}

// User returns the active profile, if one has been created this session.
func (s *Store) User() (closet.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return closet.User{}, false
	}
	return *s.user, true
}

// Wardrobe returns a copy of the current wardrobe snapshot.
func (s *Store) Wardrobe() []closet.ClothingItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]closet.ClothingItem, len(s.wardrobe))
	copy(items, s.wardrobe)
	return items
}

// CreateUser registers a profile and, on success, makes it the session's
// active profile. On failure the previous state is untouched.
func (s *Store) CreateUser(ctx context.Context, name, email string) (closet.User, error) {
	user, err := s.api.CreateUser(ctx, name, email)
	if err != nil {
		return closet.User{}, err
	}

	s.mu.Lock()
	s.user = &user
	s.wardrobe = nil
	s.mu.Unlock()

	s.logger.Info("profile created", "user_id", user.ID)
	return user, nil
}

// UploadUserPhoto sends the photo, then refetches the profile so the stored
// user carries the server-computed analysis fields. If the refetch fails the
// previous profile is kept and the error is returned; the upload itself is
// not rolled back.
func (s *Store) UploadUserPhoto(ctx context.Context, img closet.Upload) (closet.PhotoUploadResult, error) {
	user, ok := s.User()
	if !ok {
		return closet.PhotoUploadResult{}, errNoProfile()
	}

	result, err := s.api.UploadPhoto(ctx, user.ID, img)
	if err != nil {
		return closet.PhotoUploadResult{}, err
	}

	refreshed, err := s.api.User(ctx, user.ID)
	if err != nil {
		s.logger.Warn("profile refresh failed after photo upload", "user_id", user.ID, "error", err)
		return closet.PhotoUploadResult{}, err
	}

	s.mu.Lock()
	s.user = &refreshed
	s.mu.Unlock()
	return result, nil
}

// LoadWardrobe replaces the local wardrobe snapshot with the server's list.
func (s *Store) LoadWardrobe(ctx context.Context) error {
	user, ok := s.User()
	if !ok {
		return errNoProfile()
	}

	items, err := s.api.Wardrobe(ctx, user.ID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.wardrobe = items
	s.mu.Unlock()
	return nil
}

// AddClothingItem uploads the garment, then reloads the full wardrobe so the
// snapshot reflects exactly what the server holds. A failed reload leaves the
// previous snapshot in place.
func (s *Store) AddClothingItem(ctx context.Context, img closet.Upload, category closet.Category) (closet.ClothingItem, error) {
	user, ok := s.User()
	if !ok {
		return closet.ClothingItem{}, errNoProfile()
	}

	item, err := s.api.AddClothingItem(ctx, user.ID, img, category)
	if err != nil {
		return closet.ClothingItem{}, err
	}

	if err := s.LoadWardrobe(ctx); err != nil {
		s.logger.Warn("wardrobe reload failed after add", "user_id", user.ID, "error", err)
		return closet.ClothingItem{}, err
	}
	return item, nil
}
