package store

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/stylehive/outfit-planner/internal/client/closetapi"
	"github.com/stylehive/outfit-planner/internal/domain/closet"
	"github.com/stylehive/outfit-planner/internal/infra/analysiscache"
	"github.com/stylehive/outfit-planner/internal/infra/analyzer"
	"github.com/stylehive/outfit-planner/internal/infra/closetrepo"
	"github.com/stylehive/outfit-planner/internal/infra/config"
	"github.com/stylehive/outfit-planner/internal/infra/imagestore"
	apihttp "github.com/stylehive/outfit-planner/internal/interface/http"
	apperrors "github.com/stylehive/outfit-planner/pkg/errors"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newStoreAgainst(t *testing.T, backend http.Handler) *Store {
	t.Helper()
	server := httptest.NewServer(backend)
	t.Cleanup(server.Close)
	return New(closetapi.New(server.URL, newTestLogger()), newTestLogger())
}

// newRealBackend spins up the actual API router on memory adapters.
func newRealBackend(t *testing.T) http.Handler {
	t.Helper()
	logger := newTestLogger()
	images := imagestore.NewMemoryStorage()
	svc := closet.NewService(
		closet.Config{AnalysisCacheTTL: time.Hour},
		closetrepo.NewMemoryUserRepository(),
		closetrepo.NewMemoryClothingRepository(),
		closetrepo.NewMemoryOutfitRepository(),
		images,
		analyzer.NewHeuristic(logger),
		analysiscache.NewMemoryCache(),
		logger,
	)
	handler := apihttp.NewHandler(svc, nil, images, logger)
	cfg := &config.Config{HTTP: config.HTTPConfig{Address: ":0", ReadTimeout: time.Second, WriteTimeout: time.Second}}
	return apihttp.NewRouter(cfg, handler, logger).Handler
}

func TestStore_StartsEmpty(t *testing.T) {
	st := newStoreAgainst(t, http.NotFoundHandler())

	_, ok := st.User()
	require.False(t, ok)
	require.Empty(t, st.Wardrobe())
}

func TestStore_CreateUserSetsActiveProfile(t *testing.T) {
	st := newStoreAgainst(t, newRealBackend(t))

	user, err := st.CreateUser(context.Background(), "Ada", "ada@example.com")
	require.NoError(t, err)
	require.Equal(t, int64(1), user.ID)

	active, ok := st.User()
	require.True(t, ok)
	require.Equal(t, user, active)
}

func TestStore_CreateUserFailureLeavesStateUntouched(t *testing.T) {
	backend := newRealBackend(t)
	st := newStoreAgainst(t, backend)

	first, err := st.CreateUser(context.Background(), "Ada", "ada@example.com")
	require.NoError(t, err)

	_, err = st.CreateUser(context.Background(), "Other", "ada@example.com")
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "email_exists"))

	active, ok := st.User()
	require.True(t, ok)
	require.Equal(t, first.ID, active.ID)
}

func TestStore_UploadPhotoRefreshesProfile(t *testing.T) {
	st := newStoreAgainst(t, newRealBackend(t))
	_, err := st.CreateUser(context.Background(), "Ada", "ada@example.com")
	require.NoError(t, err)

	result, err := st.UploadUserPhoto(context.Background(), closet.Upload{
		Filename: "selfie.jpg",
		MimeType: "image/jpeg",
		Content:  []byte("jpeg bytes"),
	})
	require.NoError(t, err)
	require.Equal(t, "Photo uploaded successfully", result.Message)
	require.Equal(t, "athletic", result.Analysis.BodyType)

	// Second round trip: the stored profile now carries the analysis.
	user, ok := st.User()
	require.True(t, ok)
	require.Equal(t, "athletic", user.BodyType)
	require.NotEmpty(t, user.PhotoURL)
	require.NotNil(t, user.StyleProfile)
}

func TestStore_UploadPhotoRefreshFailureKeepsPreviousProfile(t *testing.T) {
	var failGets atomic.Bool
	real := newRealBackend(t)
	backend := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet && failGets.Load() {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(map[string]map[string]string{
				"error": {"code": "persistence_error", "message": "boom"},
			})
			return
		}
		real.ServeHTTP(w, r)
	})
	st := newStoreAgainst(t, backend)

	created, err := st.CreateUser(context.Background(), "Ada", "ada@example.com")
	require.NoError(t, err)

	failGets.Store(true)
	_, err = st.UploadUserPhoto(context.Background(), closet.Upload{Filename: "s.jpg", Content: []byte("x")})
	require.Error(t, err)

	// Phase two failed: the profile is unchanged, no partial merge happened.
	user, ok := st.User()
	require.True(t, ok)
	require.Equal(t, created, user)
	require.Empty(t, user.BodyType)
}

func TestStore_UploadPhotoWithoutProfile(t *testing.T) {
	st := newStoreAgainst(t, newRealBackend(t))

	_, err := st.UploadUserPhoto(context.Background(), closet.Upload{Filename: "s.jpg", Content: []byte("x")})
	require.True(t, apperrors.IsCode(err, "no_profile"))
}

func TestStore_AddClothingItemReplacesSnapshotWholesale(t *testing.T) {
	st := newStoreAgainst(t, newRealBackend(t))
	_, err := st.CreateUser(context.Background(), "Ada", "ada@example.com")
	require.NoError(t, err)

	_, err = st.AddClothingItem(context.Background(), closet.Upload{Filename: "a.png", Content: []byte("first")}, closet.CategoryTop)
	require.NoError(t, err)
	require.Len(t, st.Wardrobe(), 1)

	_, err = st.AddClothingItem(context.Background(), closet.Upload{Filename: "b.png", Content: []byte("second")}, closet.CategoryBottom)
	require.NoError(t, err)

	wardrobe := st.Wardrobe()
	require.Len(t, wardrobe, 2)
	require.Equal(t, closet.CategoryTop, wardrobe[0].Category)
	require.Equal(t, closet.CategoryBottom, wardrobe[1].Category)
}

func TestStore_AddClothingItemReloadFailureKeepsSnapshot(t *testing.T) {
	var failLists atomic.Bool
	real := newRealBackend(t)
	backend := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet && failLists.Load() {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(map[string]map[string]string{
				"error": {"code": "persistence_error", "message": "boom"},
			})
			return
		}
		real.ServeHTTP(w, r)
	})
	st := newStoreAgainst(t, backend)

	_, err := st.CreateUser(context.Background(), "Ada", "ada@example.com")
	require.NoError(t, err)
	_, err = st.AddClothingItem(context.Background(), closet.Upload{Filename: "a.png", Content: []byte("first")}, closet.CategoryTop)
	require.NoError(t, err)

	failLists.Store(true)
	_, err = st.AddClothingItem(context.Background(), closet.Upload{Filename: "b.png", Content: []byte("second")}, closet.CategoryBottom)
	require.Error(t, err)

	// The previous snapshot stands; nothing was merged locally.
	require.Len(t, st.Wardrobe(), 1)
}

func TestStore_LoadWardrobeReplacesLocalState(t *testing.T) {
	st := newStoreAgainst(t, newRealBackend(t))
	_, err := st.CreateUser(context.Background(), "Ada", "ada@example.com")
	require.NoError(t, err)

	require.NoError(t, st.LoadWardrobe(context.Background()))
	require.Empty(t, st.Wardrobe())

	_, err = st.AddClothingItem(context.Background(), closet.Upload{Filename: "a.png", Content: []byte("x")}, closet.CategoryTop)
	require.NoError(t, err)
	require.NoError(t, st.LoadWardrobe(context.Background()))
	require.Len(t, st.Wardrobe(), 1)
}

func TestStore_WardrobeReturnsCopy(t *testing.T) {
	st := newStoreAgainst(t, newRealBackend(t))
	_, err := st.CreateUser(context.Background(), "Ada", "ada@example.com")
	require.NoError(t, err)
	_, err = st.AddClothingItem(context.Background(), closet.Upload{Filename: "a.png", Content: []byte("x")}, closet.CategoryTop)
	require.NoError(t, err)

	snapshot := st.Wardrobe()
	snapshot[0].Color = "mutated"
	require.NotEqual(t, "mutated", st.Wardrobe()[0].Color)
}
