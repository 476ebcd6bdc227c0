package http

import (
	"io"
	"net/http"
	"strconv"

	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/stylehive/outfit-planner/internal/domain/closet"
	"github.com/stylehive/outfit-planner/internal/domain/stylist"
	apperrors "github.com/stylehive/outfit-planner/pkg/errors"
)

// Handler wires the HTTP transport to domain services.
type Handler struct {
	closetSvc  closet.Service
	stylistSvc stylist.Service
	images     closet.ImageStore
	logger     *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(closetSvc closet.Service, stylistSvc stylist.Service, images closet.ImageStore, logger *slog.Logger) *Handler {
	return &Handler{
		closetSvc:  closetSvc,
		stylistSvc: stylistSvc,
		images:     images,
		logger:     logger.With("component", "http.handler"),
	}
}

type createUserPayload struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

// CreateUser registers a new profile.
func (h *Handler) CreateUser(c *gin.Context) {
	var req createUserPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "name and a valid email are required", err))
		return
	}

	user, err := h.closetSvc.CreateUser(c.Request.Context(), req.Name, req.Email)
	if err != nil {
		abortWithError(c, serviceError(err, "create_failed"))
		return
	}
	c.JSON(http.StatusOK, user)
}

// GetUser returns a single profile.
func (h *Handler) GetUser(c *gin.Context) {
	userID, ok := pathUserID(c)
	if !ok {
		return
	}
	user, err := h.closetSvc.GetUser(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, serviceError(err, "fetch_failed"))
		return
	}
	c.JSON(http.StatusOK, user)
}

// UploadUserPhoto stores a profile photo and runs the body analysis.
func (h *Handler) UploadUserPhoto(c *gin.Context) {
	userID, ok := pathUserID(c)
	if !ok {
		return
	}
	img, ok := readUpload(c)
	if !ok {
		return
	}

	result, err := h.closetSvc.UploadPhoto(c.Request.Context(), userID, img)
	if err != nil {
		abortWithError(c, serviceError(err, "upload_failed"))
		return
	}
	c.JSON(http.StatusOK, result)
}

// AddClothingItem adds one garment to the wardrobe.
func (h *Handler) AddClothingItem(c *gin.Context) {
	userID, ok := pathUserID(c)
	if !ok {
		return
	}
	img, ok := readUpload(c)
	if !ok {
		return
	}
	category, err := closet.ParseCategory(c.PostForm("category"))
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "unknown category", err))
		return
	}

	item, err := h.closetSvc.AddGarment(c.Request.Context(), userID, img, category)
	if err != nil {
		abortWithError(c, serviceError(err, "upload_failed"))
		return
	}
	c.JSON(http.StatusOK, item)
}

// ListWardrobe returns every clothing item for the user.
func (h *Handler) ListWardrobe(c *gin.Context) {
	userID, ok := pathUserID(c)
	if !ok {
		return
	}
	items, err := h.closetSvc.Wardrobe(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, serviceError(err, "fetch_failed"))
		return
	}
	if items == nil {
		items = []closet.ClothingItem{}
	}
	c.JSON(http.StatusOK, items)
}

// GenerateOutfits builds outfit recommendations from the current wardrobe.
func (h *Handler) GenerateOutfits(c *gin.Context) {
	userID, ok := pathUserID(c)
	if !ok {
		return
	}
	var req stylist.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	user, err := h.closetSvc.GetUser(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, serviceError(err, "generate_failed"))
		return
	}
	wardrobe, err := h.closetSvc.Wardrobe(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, serviceError(err, "generate_failed"))
		return
	}

	resp, err := h.stylistSvc.Generate(c.Request.Context(), user, wardrobe, req)
	if err != nil {
		abortWithError(c, serviceError(err, "generate_failed"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SaveOutfit persists a chosen recommendation.
func (h *Handler) SaveOutfit(c *gin.Context) {
	userID, ok := pathUserID(c)
	if !ok {
		return
	}
	var req closet.NewOutfit
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "name, occasion and item_ids are required", err))
		return
	}

	outfit, err := h.closetSvc.SaveOutfit(c.Request.Context(), userID, req)
	if err != nil {
		abortWithError(c, serviceError(err, "save_failed"))
		return
	}
	c.JSON(http.StatusOK, outfit)
}

// ListSavedOutfits returns the user's saved outfits.
func (h *Handler) ListSavedOutfits(c *gin.Context) {
	userID, ok := pathUserID(c)
	if !ok {
		return
	}
	outfits, err := h.closetSvc.SavedOutfits(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, serviceError(err, "fetch_failed"))
		return
	}
	if outfits == nil {
		outfits = []closet.Outfit{}
	}
	c.JSON(http.StatusOK, outfits)
}

// ServeImage streams a stored upload back to the client.
func (h *Handler) ServeImage(c *gin.Context) {
	key := "uploads" + c.Param("path")
	reader, err := h.images.Get(c.Request.Context(), key)
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusNotFound, "not_found", "image not found", err))
		return
	}
	defer reader.Close()

	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, reader); err != nil {
		h.logger.Warn("image stream interrupted", "key", key, "error", err)
	}
}

func pathUserID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "invalid user id", err))
		return 0, false
	}
	return id, true
}

func readUpload(c *gin.Context) (closet.Upload, bool) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "file is required", err))
		return closet.Upload{}, false
	}
	file, err := fileHeader.Open()
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "failed to read upload", err))
		return closet.Upload{}, false
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "upload_failed", "failed to read file", err))
		return closet.Upload{}, false
	}
	return closet.Upload{
		Filename: fileHeader.Filename,
		MimeType: fileHeader.Header.Get("Content-Type"),
		Content:  data,
	}, true
}

func serviceError(err error, fallbackCode string) *HTTPError {
	status := http.StatusInternalServerError
	code := fallbackCode
	switch {
	case apperrors.IsCode(err, "invalid_input"):
		status = http.StatusBadRequest
		code = "invalid_request"
	case apperrors.IsCode(err, "empty_wardrobe"):
		status = http.StatusBadRequest
		code = "empty_wardrobe"
	case apperrors.IsCode(err, "not_found"):
		status = http.StatusNotFound
		code = "not_found"
	case apperrors.IsCode(err, "email_exists"):
		status = http.StatusConflict
		code = "email_exists"
	}
	return NewHTTPError(status, code, errMessage(err), err)
}
