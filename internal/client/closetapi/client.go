// Package closetapi is the typed HTTP client for the outfit-planner API,
// used by the web frontend.
package closetapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/stylehive/outfit-planner/internal/domain/closet"
	"github.com/stylehive/outfit-planner/internal/domain/stylist"
	apperrors "github.com/stylehive/outfit-planner/pkg/errors"
)

const requestTimeout = 15 * time.Second

// Client talks to the outfit-planner API server.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// New builds a Client for the given API base URL.
func New(baseURL string, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: requestTimeout},
		logger:     logger.With("component", "closetapi.client"),
	}
}

// ImageURL resolves a stored image key to an absolute URL on the API server.
func (c *Client) ImageURL(key string) string {
	if key == "" {
		return ""
	}
	return c.baseURL + "/" + strings.TrimLeft(key, "/")
}

// CreateUser registers a profile.
func (c *Client) CreateUser(ctx context.Context, name, email string) (closet.User, error) {
	var user closet.User
	err := c.postJSON(ctx, "/api/users", map[string]string{"name": name, "email": email}, &user)
	return user, err
}

// User fetches a profile by id.
func (c *Client) User(ctx context.Context, id int64) (closet.User, error) {
	var user closet.User
	err := c.getJSON(ctx, fmt.Sprintf("/api/users/%d", id), &user)
	return user, err
}

// UploadPhoto sends a profile photo for storage and analysis.
func (c *Client) UploadPhoto(ctx context.Context, userID int64, img closet.Upload) (closet.PhotoUploadResult, error) {
	var result closet.PhotoUploadResult
	err := c.postMultipart(ctx, fmt.Sprintf("/api/users/%d/photo", userID), img, nil, &result)
	return result, err
}

// Wardrobe fetches every clothing item for the user.
func (c *Client) Wardrobe(ctx context.Context, userID int64) ([]closet.ClothingItem, error) {
	var items []closet.ClothingItem
	err := c.getJSON(ctx, fmt.Sprintf("/api/users/%d/clothing", userID), &items)
	return items, err
}

// AddClothingItem uploads one garment with its category.
func (c *Client) AddClothingItem(ctx context.Context, userID int64, img closet.Upload, category closet.Category) (closet.ClothingItem, error) {
	var item closet.ClothingItem
	fields := map[string]string{"category": string(category)}
	err := c.postMultipart(ctx, fmt.Sprintf("/api/users/%d/clothing", userID), img, fields, &item)
	return item, err
}

// GenerateOutfits requests recommendations for the occasion.
func (c *Client) GenerateOutfits(ctx context.Context, userID int64, req stylist.Request) (stylist.Response, error) {
	var resp stylist.Response
	err := c.postJSON(ctx, fmt.Sprintf("/api/users/%d/outfits/generate", userID), req, &resp)
	return resp, err
}

// SaveOutfit persists a chosen recommendation.
func (c *Client) SaveOutfit(ctx context.Context, userID int64, req closet.NewOutfit) (closet.Outfit, error) {
	var outfit closet.Outfit
	err := c.postJSON(ctx, fmt.Sprintf("/api/users/%d/outfits/save", userID), req, &outfit)
	return outfit, err
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return apperrors.Wrap("request_error", "failed to build request", err)
	}
	return c.do(req, out)
}

func (c *Client) postJSON(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return apperrors.Wrap("request_error", "failed to encode request", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return apperrors.Wrap("request_error", "failed to build request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) postMultipart(ctx context.Context, path string, img closet.Upload, fields map[string]string, out any) error {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", img.Filename)
	if err != nil {
		return apperrors.Wrap("request_error", "failed to encode upload", err)
	}
	if _, err := part.Write(img.Content); err != nil {
		return apperrors.Wrap("request_error", "failed to encode upload", err)
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return apperrors.Wrap("request_error", "failed to encode upload", err)
		}
	}
	if err := writer.Close(); err != nil {
		return apperrors.Wrap("request_error", "failed to encode upload", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &body)
	if err != nil {
		return apperrors.Wrap("request_error", "failed to build request", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.Wrap("network_error", "api request failed", err)
	}
	defer resp.Body.Close()
	c.logger.Debug("api request", "method", req.Method, "path", req.URL.Path, "status", resp.StatusCode, "latency_ms", time.Since(start).Milliseconds())

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeAPIError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.Wrap("decode_error", "failed to decode api response", err)
	}
	return nil
}

type apiErrorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeAPIError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	var envelope apiErrorEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Code != "" {
		return apperrors.Wrap(envelope.Error.Code, envelope.Error.Message, nil)
	}
	return apperrors.Wrap("api_error", fmt.Sprintf("api returned status %d", resp.StatusCode), nil)
}
