package webui

import (
	"io"
	"net/http"
	"strconv"

	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/stylehive/outfit-planner/internal/client/pages"
	"github.com/stylehive/outfit-planner/internal/client/picker"
	"github.com/stylehive/outfit-planner/internal/client/store"
	"github.com/stylehive/outfit-planner/internal/domain/closet"
	"github.com/stylehive/outfit-planner/internal/domain/stylist"
)

// Handler renders the web frontend. One Handler serves one session; the
// store and page controllers hold the session's state.
type Handler struct {
	store          *store.Store
	profilePicker  *picker.Picker
	wardrobePicker *picker.Picker
	profile        *pages.ProfileController
	wardrobe       *pages.WardrobeController
	planner        *pages.PlannerController
	logger         *slog.Logger
}

// NewHandler wires the frontend controllers around a shared store. Each page
// gets its own picker: a file selected on the profile page is never the
// wardrobe page's pending garment, and vice versa.
func NewHandler(st *store.Store, logger *slog.Logger) *Handler {
	profilePicker := picker.New(logger)
	wardrobePicker := picker.New(logger)
	return &Handler{
		store:          st,
		profilePicker:  profilePicker,
		wardrobePicker: wardrobePicker,
		profile:        pages.NewProfileController(st, profilePicker, logger),
		wardrobe:       pages.NewWardrobeController(st, wardrobePicker, logger),
		planner:        pages.NewPlannerController(st, logger),
		logger:         logger.With("component", "webui.handler"),
	}
}

type navData struct {
	Active     string
	HasProfile bool
}

func (h *Handler) nav(active string) navData {
	_, hasProfile := h.store.User()
	return navData{Active: active, HasProfile: hasProfile}
}

// Home renders the landing page.
func (h *Handler) Home(c *gin.Context) {
	h.planner.Reset()
	c.HTML(http.StatusOK, "home.tmpl", gin.H{
		"Nav": h.nav("home"),
	})
}

// Profile renders the profile page in its current state.
func (h *Handler) Profile(c *gin.Context) {
	h.planner.Reset()
	h.renderProfile(c)
}

func (h *Handler) renderProfile(c *gin.Context) {
	user, hasUser := h.store.User()
	analysis, hasAnalysis := h.profile.Analysis()
	if !hasAnalysis && user.BodyType != "" && user.StyleProfile != nil {
		analysis = closet.BodyAnalysis{BodyType: user.BodyType, StyleSuggestions: *user.StyleProfile}
		hasAnalysis = true
	}
	c.HTML(http.StatusOK, "profile.tmpl", gin.H{
		"Nav":         h.nav("profile"),
		"User":        user,
		"HasUser":     hasUser,
		"Analysis":    analysis,
		"HasAnalysis": hasAnalysis,
		"PreviewURL":  h.profile.PreviewURL(),
		"Loading":     h.profile.Loading(),
		"Error":       h.profile.LastError(),
	})
}

// SubmitProfile handles the profile creation form.
func (h *Handler) SubmitProfile(c *gin.Context) {
	form := pages.ProfileForm{
		Name:  c.PostForm("name"),
		Email: c.PostForm("email"),
	}
	if err := h.profile.SubmitProfile(c.Request.Context(), form); err != nil {
		h.renderProfile(c)
		return
	}
	c.Redirect(http.StatusSeeOther, "/profile")
}

// SelectProfilePhoto validates the chosen file and shows its preview.
func (h *Handler) SelectProfilePhoto(c *gin.Context) {
	data, filename, ok := formFileBytes(c)
	if ok {
		h.profile.SelectPhoto(filename, data)
	}
	c.Redirect(http.StatusSeeOther, "/profile")
}

// UploadProfilePhoto sends the selected photo for analysis.
func (h *Handler) UploadProfilePhoto(c *gin.Context) {
	if err := h.profile.UploadPhoto(c.Request.Context()); err != nil {
		h.renderProfile(c)
		return
	}
	c.Redirect(http.StatusSeeOther, "/profile")
}

// ClearProfilePhoto drops the pending selection.
func (h *Handler) ClearProfilePhoto(c *gin.Context) {
	h.profile.ClearPhoto()
	c.Redirect(http.StatusSeeOther, "/profile")
}

// Wardrobe renders the wardrobe grid.
func (h *Handler) Wardrobe(c *gin.Context) {
	h.planner.Reset()
	_ = h.wardrobe.Open(c.Request.Context())
	h.renderWardrobe(c)
}

func (h *Handler) renderWardrobe(c *gin.Context) {
	_, hasUser := h.store.User()
	items := h.wardrobe.Visible()
	views := make([]gin.H, 0, len(items))
	for _, item := range items {
		views = append(views, gin.H{
			"Item":     item,
			"ImageURL": h.store.API().ImageURL(item.ImageURL),
		})
	}
	selection, hasSelection := h.wardrobePicker.Selection()
	c.HTML(http.StatusOK, "wardrobe.tmpl", gin.H{
		"Nav":          h.nav("wardrobe"),
		"HasUser":      hasUser,
		"Items":        views,
		"Filter":       h.wardrobe.Filter(),
		"Categories":   closet.Categories(),
		"PanelOpen":    h.wardrobe.PanelOpen(),
		"HasSelection": hasSelection,
		"PreviewURL":   selection.PreviewURL,
		"Loading":      h.wardrobe.Loading(),
		"Error":        h.wardrobe.LastError(),
	})
}

// FilterWardrobe switches the category filter.
func (h *Handler) FilterWardrobe(c *gin.Context) {
	h.wardrobe.SetFilter(c.PostForm("category"))
	c.Redirect(http.StatusSeeOther, "/wardrobe")
}

// ToggleWardrobePanel shows or hides the add-item panel.
func (h *Handler) ToggleWardrobePanel(c *gin.Context) {
	h.wardrobe.TogglePanel()
	c.Redirect(http.StatusSeeOther, "/wardrobe")
}

// SelectWardrobeImage validates the chosen garment photo.
func (h *Handler) SelectWardrobeImage(c *gin.Context) {
	data, filename, ok := formFileBytes(c)
	if ok {
		h.wardrobe.SelectImage(filename, data)
	}
	if category := c.PostForm("category"); category != "" {
		_ = h.wardrobe.SetCategory(category)
	}
	c.Redirect(http.StatusSeeOther, "/wardrobe")
}

// AddWardrobeItem uploads the pending garment.
func (h *Handler) AddWardrobeItem(c *gin.Context) {
	if category := c.PostForm("category"); category != "" {
		if err := h.wardrobe.SetCategory(category); err != nil {
			h.renderWardrobe(c)
			return
		}
	}
	if err := h.wardrobe.Upload(c.Request.Context()); err != nil {
		h.renderWardrobe(c)
		return
	}
	c.Redirect(http.StatusSeeOther, "/wardrobe")
}

// Planner renders the outfit planner.
func (h *Handler) Planner(c *gin.Context) {
	_ = h.planner.Open(c.Request.Context())
	h.renderPlanner(c)
}

func (h *Handler) renderPlanner(c *gin.Context) {
	result, hasResult := h.planner.Result()
	recs := make([]gin.H, 0, len(result.Recommendations))
	for i, rec := range result.Recommendations {
		recs = append(recs, gin.H{
			"Index":          i,
			"Recommendation": rec,
			"Saved":          h.planner.Saved(i),
		})
	}
	gate := h.planner.Gate()
	c.HTML(http.StatusOK, "planner.tmpl", gin.H{
		"Nav":             h.nav("planner"),
		"NoProfile":       gate == pages.PlannerNoProfile,
		"EmptyWardrobe":   gate == pages.PlannerEmptyWardrobe,
		"Ready":           gate == pages.PlannerReady,
		"Occasions":       stylist.Occasions(),
		"Occasion":        h.planner.Occasion(),
		"HasResult":       hasResult,
		"Result":          result,
		"Recommendations": recs,
		"Loading":         h.planner.Loading(),
		"Acknowledgment":  h.planner.Acknowledgment(),
		"Error":           h.planner.LastError(),
	})
}

// GenerateOutfits runs a generation round for the chosen occasion.
func (h *Handler) GenerateOutfits(c *gin.Context) {
	if occasion := c.PostForm("occasion"); occasion != "" {
		if err := h.planner.SetOccasion(occasion); err != nil {
			h.renderPlanner(c)
			return
		}
	}
	if season := c.PostForm("season"); season != "" {
		if err := h.planner.SetSeason(season); err != nil {
			h.renderPlanner(c)
			return
		}
	}
	_ = h.planner.Generate(c.Request.Context())
	h.renderPlanner(c)
}

// SaveOutfit persists the recommendation named in the form.
func (h *Handler) SaveOutfit(c *gin.Context) {
	index, err := strconv.Atoi(c.PostForm("index"))
	if err != nil {
		h.renderPlanner(c)
		return
	}
	_ = h.planner.Save(c.Request.Context(), index)
	h.renderPlanner(c)
}

// Preview serves the in-memory blob behind a local preview URL. Preview ids
// are uuids, so looking in both pickers cannot collide.
func (h *Handler) Preview(c *gin.Context) {
	data, ok := h.profilePicker.Preview(c.Param("id"))
	if !ok {
		data, ok = h.wardrobePicker.Preview(c.Param("id"))
	}
	if !ok {
		c.Status(http.StatusNotFound)
		return
	}
	c.Data(http.StatusOK, http.DetectContentType(data), data)
}

func formFileBytes(c *gin.Context) ([]byte, string, bool) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return nil, "", false
	}
	file, err := fileHeader.Open()
	if err != nil {
		return nil, "", false
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "", false
	}
	return data, fileHeader.Filename, true
}
