package closet

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/stylehive/outfit-planner/pkg/errors"
)

// Service exposes profile and wardrobe management.
type Service interface {
	CreateUser(ctx context.Context, name, email string) (User, error)
	GetUser(ctx context.Context, id int64) (User, error)
	UploadPhoto(ctx context.Context, userID int64, img Upload) (PhotoUploadResult, error)
	AddGarment(ctx context.Context, userID int64, img Upload, category Category) (ClothingItem, error)
	Wardrobe(ctx context.Context, userID int64) ([]ClothingItem, error)
	SaveOutfit(ctx context.Context, userID int64, req NewOutfit) (Outfit, error)
	SavedOutfits(ctx context.Context, userID int64) ([]Outfit, error)
}

// Config tunes service behavior.
type Config struct {
	AnalysisCacheTTL time.Duration
}

type service struct {
	cfg      Config
	users    UserRepository
	clothing ClothingRepository
	outfits  OutfitRepository
	images   ImageStore
	analyzer Analyzer
	cache    AnalysisCache
	logger   *slog.Logger
}

// NewService wires up the closet domain.
func NewService(cfg Config, users UserRepository, clothing ClothingRepository, outfits OutfitRepository, images ImageStore, analyzer Analyzer, cache AnalysisCache, logger *slog.Logger) Service {
	return &service{
		cfg:      cfg,
		users:    users,
		clothing: clothing,
		outfits:  outfits,
		images:   images,
		analyzer: analyzer,
		cache:    cache,
		logger:   logger.With("component", "closet.service"),
	}
}

func (s *service) CreateUser(ctx context.Context, name, email string) (User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" {
		return User{}, apperrors.Wrap("invalid_input", "name cannot be empty", nil)
	}
	if email == "" {
		return User{}, apperrors.Wrap("invalid_input", "email cannot be empty", nil)
	}

	user, err := s.users.Create(ctx, name, email)
	if err != nil {
		if errors.Is(err, ErrEmailExists) {
			return User{}, apperrors.Wrap("email_exists", "email already registered", err)
		}
		return User{}, apperrors.Wrap("persistence_error", "failed to create user", err)
	}
	s.logger.Info("user created", "user_id", user.ID)
	return user, nil
}

func (s *service) GetUser(ctx context.Context, id int64) (User, error) {
	user, found, err := s.users.Get(ctx, id)
	if err != nil {
		return User{}, apperrors.Wrap("persistence_error", "failed to load user", err)
	}
	if !found {
		return User{}, apperrors.Wrap("not_found", "user not found", ErrUserNotFound)
	}
	return user, nil
}

func (s *service) UploadPhoto(ctx context.Context, userID int64, img Upload) (PhotoUploadResult, error) {
	if len(img.Content) == 0 {
		return PhotoUploadResult{}, apperrors.Wrap("invalid_input", "file cannot be empty", nil)
	}
	if _, err := s.GetUser(ctx, userID); err != nil {
		return PhotoUploadResult{}, err
	}

	key := imageKey("users", userID, img.Filename)
	if _, err := s.images.Put(ctx, key, img.Content, img.MimeType); err != nil {
		return PhotoUploadResult{}, apperrors.Wrap("storage_error", "failed to store photo", err)
	}

	analysis, err := s.analyzer.AnalyzeBody(ctx, img)
	if err != nil {
		return PhotoUploadResult{}, apperrors.Wrap("analysis_error", "failed to analyze photo", err)
	}

	if _, err := s.users.UpdatePhoto(ctx, userID, key, analysis.BodyType, analysis.StyleSuggestions); err != nil {
		return PhotoUploadResult{}, apperrors.Wrap("persistence_error", "failed to update user", err)
	}

	s.logger.Info("profile photo uploaded", "user_id", userID, "key", key, "body_type", analysis.BodyType)
	return PhotoUploadResult{
		Message:  "Photo uploaded successfully",
		PhotoURL: key,
		Analysis: analysis,
	}, nil
}

func (s *service) AddGarment(ctx context.Context, userID int64, img Upload, category Category) (ClothingItem, error) {
	if len(img.Content) == 0 {
		return ClothingItem{}, apperrors.Wrap("invalid_input", "file cannot be empty", nil)
	}
	if _, err := ParseCategory(string(category)); err != nil {
		return ClothingItem{}, apperrors.Wrap("invalid_input", "unknown category", err)
	}
	if _, err := s.GetUser(ctx, userID); err != nil {
		return ClothingItem{}, err
	}

	key := imageKey("clothing", userID, img.Filename)
	if _, err := s.images.Put(ctx, key, img.Content, img.MimeType); err != nil {
		return ClothingItem{}, apperrors.Wrap("storage_error", "failed to store image", err)
	}

	analysis, err := s.analyzeGarmentCached(ctx, img)
	if err != nil {
		return ClothingItem{}, apperrors.Wrap("analysis_error", "failed to analyze garment", err)
	}

	// The submitted category wins unless the analyzer is confident enough to
	// return one of its own.
	resolved := category
	if analysis.Category != "" {
		resolved = analysis.Category
	}

	item, err := s.clothing.Add(ctx, ClothingItem{
		UserID:   userID,
		ImageURL: key,
		Category: resolved,
		Color:    analysis.Color,
		Style:    analysis.Style,
		Season:   analysis.Season,
		AITags:   analysis.Tags,
	})
	if err != nil {
		return ClothingItem{}, apperrors.Wrap("persistence_error", "failed to save clothing item", err)
	}
	s.logger.Info("clothing item added", "user_id", userID, "item_id", item.ID, "category", item.Category)
	return item, nil
}

func (s *service) analyzeGarmentCached(ctx context.Context, img Upload) (GarmentAnalysis, error) {
	sum := sha256.Sum256(img.Content)
	cacheKey := hex.EncodeToString(sum[:])

	if cached, found, err := s.cache.GetGarment(ctx, cacheKey); err == nil && found {
		return cached, nil
	} else if err != nil {
		s.logger.Warn("analysis cache read failed", "error", err)
	}

	analysis, err := s.analyzer.AnalyzeGarment(ctx, img)
	if err != nil {
		return GarmentAnalysis{}, err
	}
	if err := s.cache.SaveGarment(ctx, cacheKey, analysis, s.cfg.AnalysisCacheTTL); err != nil {
		s.logger.Warn("analysis cache write failed", "error", err)
	}
	return analysis, nil
}

func (s *service) Wardrobe(ctx context.Context, userID int64) ([]ClothingItem, error) {
	if _, err := s.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	items, err := s.clothing.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Wrap("persistence_error", "failed to load wardrobe", err)
	}
	return items, nil
}

func (s *service) SaveOutfit(ctx context.Context, userID int64, req NewOutfit) (Outfit, error) {
	if strings.TrimSpace(req.Name) == "" {
		return Outfit{}, apperrors.Wrap("invalid_input", "name cannot be empty", nil)
	}
	if len(req.ItemIDs) == 0 {
		return Outfit{}, apperrors.Wrap("invalid_input", "item_ids cannot be empty", nil)
	}
	if _, err := s.GetUser(ctx, userID); err != nil {
		return Outfit{}, err
	}

	outfit, err := s.outfits.Save(ctx, Outfit{
		UserID:   userID,
		Name:     strings.TrimSpace(req.Name),
		Occasion: req.Occasion,
		ItemIDs:  req.ItemIDs,
	})
	if err != nil {
		return Outfit{}, apperrors.Wrap("persistence_error", "failed to save outfit", err)
	}
	s.logger.Info("outfit saved", "user_id", userID, "outfit_id", outfit.ID)
	return outfit, nil
}

func (s *service) SavedOutfits(ctx context.Context, userID int64) ([]Outfit, error) {
	if _, err := s.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	outfits, err := s.outfits.ListSaved(ctx, userID)
	if err != nil {
		return nil, apperrors.Wrap("persistence_error", "failed to load outfits", err)
	}
	return outfits, nil
}

func imageKey(kind string, userID int64, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return fmt.Sprintf("uploads/%s/%d/%s%s", kind, userID, uuid.NewString(), ext)
}
