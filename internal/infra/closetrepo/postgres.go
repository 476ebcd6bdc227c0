package closetrepo

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stylehive/outfit-planner/internal/domain/closet"
)

const uniqueViolation = "23505"

// PostgresUserRepository implements closet.UserRepository using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresUserRepository constructs the repository.
func NewPostgresUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

// Create inserts the profile record.
func (r *PostgresUserRepository) Create(ctx context.Context, name, email string) (closet.User, error) {
	user := closet.User{Name: name, Email: email}
	err := r.pool.QueryRow(ctx, `
		INSERT INTO users (name, email, created_at)
		VALUES ($1, $2, now())
		RETURNING id, created_at
	`, name, email).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return closet.User{}, closet.ErrEmailExists
		}
		return closet.User{}, err
	}
	return user, nil
}

// Get fetches by ID.
func (r *PostgresUserRepository) Get(ctx context.Context, id int64) (closet.User, bool, error) {
	var (
		user    closet.User
		profile []byte
	)
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, email, COALESCE(photo_url, ''), COALESCE(body_type, ''), style_profile, created_at
		FROM users
		WHERE id = $1
	`, id).Scan(&user.ID, &user.Name, &user.Email, &user.PhotoURL, &user.BodyType, &profile, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return closet.User{}, false, nil
		}
		return closet.User{}, false, err
	}
	if len(profile) > 0 {
		var suggestions closet.StyleSuggestions
		if err := json.Unmarshal(profile, &suggestions); err == nil {
			user.StyleProfile = &suggestions
		}
	}
	return user, true, nil
}

// UpdatePhoto attaches photo and analysis fields to the user.
func (r *PostgresUserRepository) UpdatePhoto(ctx context.Context, id int64, photoURL, bodyType string, profile closet.StyleSuggestions) (closet.User, error) {
	encoded, err := json.Marshal(profile)
	if err != nil {
		return closet.User{}, err
	}
	tag, err := r.pool.Exec(ctx, `
		UPDATE users
		SET photo_url = $2, body_type = $3, style_profile = $4
		WHERE id = $1
	`, id, photoURL, bodyType, encoded)
	if err != nil {
		return closet.User{}, err
	}
	if tag.RowsAffected() == 0 {
		return closet.User{}, closet.ErrUserNotFound
	}
	user, _, err := r.Get(ctx, id)
	return user, err
}

var _ closet.UserRepository = (*PostgresUserRepository)(nil)

// PostgresClothingRepository implements closet.ClothingRepository using pgx.
type PostgresClothingRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresClothingRepository constructs the repository.
func NewPostgresClothingRepository(pool *pgxpool.Pool) *PostgresClothingRepository {
	return &PostgresClothingRepository{pool: pool}
}

// Add inserts a wardrobe entry.
func (r *PostgresClothingRepository) Add(ctx context.Context, item closet.ClothingItem) (closet.ClothingItem, error) {
	tags, err := json.Marshal(item.AITags)
	if err != nil {
		return closet.ClothingItem{}, err
	}
	err = r.pool.QueryRow(ctx, `
		INSERT INTO clothing_items (user_id, image_url, category, color, style, season, ai_tags, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		RETURNING id, created_at
	`, item.UserID, item.ImageURL, string(item.Category), item.Color, item.Style, item.Season, tags).Scan(&item.ID, &item.CreatedAt)
	if err != nil {
		return closet.ClothingItem{}, err
	}
	return item, nil
}

// ListByUser returns the user's wardrobe ordered by creation.
func (r *PostgresClothingRepository) ListByUser(ctx context.Context, userID int64) ([]closet.ClothingItem, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, image_url, category, COALESCE(color, ''), COALESCE(style, ''), COALESCE(season, ''), ai_tags, created_at
		FROM clothing_items
		WHERE user_id = $1
		ORDER BY id
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]closet.ClothingItem, 0)
	for rows.Next() {
		var (
			item closet.ClothingItem
			tags []byte
		)
		if err := rows.Scan(&item.ID, &item.UserID, &item.ImageURL, &item.Category, &item.Color, &item.Style, &item.Season, &tags, &item.CreatedAt); err != nil {
			return nil, err
		}
		if len(tags) > 0 {
			_ = json.Unmarshal(tags, &item.AITags)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

var _ closet.ClothingRepository = (*PostgresClothingRepository)(nil)

// PostgresOutfitRepository implements closet.OutfitRepository using pgx.
type PostgresOutfitRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresOutfitRepository constructs the repository.
func NewPostgresOutfitRepository(pool *pgxpool.Pool) *PostgresOutfitRepository {
	return &PostgresOutfitRepository{pool: pool}
}

// Save inserts a saved outfit.
func (r *PostgresOutfitRepository) Save(ctx context.Context, outfit closet.Outfit) (closet.Outfit, error) {
	items, err := json.Marshal(outfit.ItemIDs)
	if err != nil {
		return closet.Outfit{}, err
	}
	err = r.pool.QueryRow(ctx, `
		INSERT INTO outfits (user_id, name, occasion, items, ai_score, created_at)
		VALUES ($1, $2, $3, $4, $5, now())
		RETURNING id, created_at
	`, outfit.UserID, outfit.Name, outfit.Occasion, items, outfit.Score).Scan(&outfit.ID, &outfit.CreatedAt)
	if err != nil {
		return closet.Outfit{}, err
	}
	return outfit, nil
}

// ListSaved returns the user's saved outfits ordered by creation.
func (r *PostgresOutfitRepository) ListSaved(ctx context.Context, userID int64) ([]closet.Outfit, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, name, occasion, items, COALESCE(ai_score, 0), created_at
		FROM outfits
		WHERE user_id = $1
		ORDER BY id
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	outfits := make([]closet.Outfit, 0)
	for rows.Next() {
		var (
			outfit closet.Outfit
			items  []byte
		)
		if err := rows.Scan(&outfit.ID, &outfit.UserID, &outfit.Name, &outfit.Occasion, &items, &outfit.Score, &outfit.CreatedAt); err != nil {
			return nil, err
		}
		if len(items) > 0 {
			_ = json.Unmarshal(items, &outfit.ItemIDs)
		}
		outfits = append(outfits, outfit)
	}
	return outfits, rows.Err()
}

var _ closet.OutfitRepository = (*PostgresOutfitRepository)(nil)
