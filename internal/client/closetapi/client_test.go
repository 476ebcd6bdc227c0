package closetapi

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stylehive/outfit-planner/internal/domain/closet"
	apperrors "github.com/stylehive/outfit-planner/pkg/errors"
)

func newClientAgainst(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(server.URL, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestClient_CreateUser(t *testing.T) {
	client := newClientAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/users", r.URL.Path)

		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.Equal(t, "Ada", payload["name"])

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(closet.User{ID: 1, Name: "Ada", Email: "ada@example.com"})
	})

	user, err := client.CreateUser(context.Background(), "Ada", "ada@example.com")
	require.NoError(t, err)
	require.Equal(t, int64(1), user.ID)
}

func TestClient_DecodesAPIErrorEnvelope(t *testing.T) {
	client := newClientAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":{"code":"email_exists","message":"email already registered"}}`))
	})

	_, err := client.CreateUser(context.Background(), "Ada", "ada@example.com")
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "email_exists"))
	require.Equal(t, "email already registered", apperrors.Message(err))
}

func TestClient_NonEnvelopeErrorFallsBack(t *testing.T) {
	client := newClientAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream exploded"))
	})

	_, err := client.User(context.Background(), 1)
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "api_error"))
}

func TestClient_UploadSendsMultipart(t *testing.T) {
	client := newClientAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/users/1/clothing", r.URL.Path)

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		require.Equal(t, "shirt.png", header.Filename)
		data, err := io.ReadAll(file)
		require.NoError(t, err)
		require.Equal(t, []byte("png bytes"), data)
		require.Equal(t, "top", r.FormValue("category"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(closet.ClothingItem{ID: 3, UserID: 1, Category: closet.CategoryTop})
	})

	item, err := client.AddClothingItem(context.Background(), 1, closet.Upload{
		Filename: "shirt.png",
		MimeType: "image/png",
		Content:  []byte("png bytes"),
	}, closet.CategoryTop)
	require.NoError(t, err)
	require.Equal(t, int64(3), item.ID)
}

func TestClient_ImageURL(t *testing.T) {
	client := New("http://localhost:8080/", slog.New(slog.NewTextHandler(io.Discard, nil)))

	require.Equal(t, "http://localhost:8080/uploads/users/1/x.jpg", client.ImageURL("uploads/users/1/x.jpg"))
	require.Empty(t, client.ImageURL(""))
}
