package pages

import (
	"context"
	"log/slog"
	"sync"

	"github.com/stylehive/outfit-planner/internal/client/picker"
	"github.com/stylehive/outfit-planner/internal/client/store"
	"github.com/stylehive/outfit-planner/internal/domain/closet"
	apperrors "github.com/stylehive/outfit-planner/pkg/errors"
)

// FilterAll is the category filter value that shows every item.
const FilterAll = "all"

// WardrobeController drives the wardrobe page: the item grid, the category
// filter and the add-item panel.
type WardrobeController struct {
	mu     sync.Mutex
	store  *store.Store
	picker *picker.Picker
	logger *slog.Logger

	panelOpen bool
	filter    string
	category  closet.Category
	loading   bool
	loaded    bool
	lastErr   string
}

// NewWardrobeController builds the controller for one session.
func NewWardrobeController(st *store.Store, pk *picker.Picker, logger *slog.Logger) *WardrobeController {
	return &WardrobeController{
		store:    st,
		picker:   pk,
		logger:   logger.With("component", "pages.wardrobe"),
		filter:   FilterAll,
		category: closet.CategoryTop,
	}
}

// Open loads the wardrobe from the server the first time the page is shown.
func (w *WardrobeController) Open(ctx context.Context) error {
	if _, ok := w.store.User(); !ok {
		return nil
	}
	w.mu.Lock()
	alreadyLoaded := w.loaded
	w.mu.Unlock()
	if alreadyLoaded {
		return nil
	}

	w.setLoading(true)
	defer w.setLoading(false)

	if err := w.store.LoadWardrobe(ctx); err != nil {
		w.setError(err)
		return err
	}
	w.mu.Lock()
	w.loaded = true
	w.mu.Unlock()
	return nil
}

// Visible filters the snapshot by the active category, preserving order.
// The snapshot itself is never mutated.
func (w *WardrobeController) Visible() []closet.ClothingItem {
	items := w.store.Wardrobe()

	w.mu.Lock()
	filter := w.filter
	w.mu.Unlock()
	if filter == FilterAll {
		return items
	}

	visible := make([]closet.ClothingItem, 0, len(items))
	for _, item := range items {
		if string(item.Category) == filter {
			visible = append(visible, item)
		}
	}
	return visible
}

// SetFilter switches the category filter. Unknown values fall back to all.
func (w *WardrobeController) SetFilter(raw string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if raw == FilterAll {
		w.filter = FilterAll
		return
	}
	category, err := closet.ParseCategory(raw)
	if err != nil {
		w.filter = FilterAll
		return
	}
	w.filter = string(category)
}

// Filter returns the active filter value.
func (w *WardrobeController) Filter() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.filter
}

// TogglePanel shows or hides the add-item panel.
func (w *WardrobeController) TogglePanel() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.panelOpen = !w.panelOpen
	if !w.panelOpen {
		w.picker.Clear()
	}
}

// PanelOpen reports whether the add-item panel is visible.
func (w *WardrobeController) PanelOpen() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.panelOpen
}

// SelectImage hands the chosen garment photo to the picker.
func (w *WardrobeController) SelectImage(filename string, data []byte) bool {
	return w.picker.Select(filename, data)
}

// SetCategory records the category picked for the pending upload.
func (w *WardrobeController) SetCategory(raw string) error {
	category, err := closet.ParseCategory(raw)
	if err != nil {
		return apperrors.Wrap("invalid_input", "unknown category", err)
	}
	w.mu.Lock()
	w.category = category
	w.mu.Unlock()
	return nil
}

// Upload sends the selected garment. On success the panel closes and the
// picker selection is released.
func (w *WardrobeController) Upload(ctx context.Context) error {
	selection, ok := w.picker.Selection()
	if !ok {
		err := apperrors.Wrap("invalid_input", "select an image first", nil)
		w.setError(err)
		return err
	}
	w.mu.Lock()
	category := w.category
	w.mu.Unlock()

	w.setLoading(true)
	defer w.setLoading(false)

	item, err := w.store.AddClothingItem(ctx, selection.Upload, category)
	if err != nil {
		w.setError(err)
		return err
	}

	w.picker.Clear()
	w.mu.Lock()
	w.panelOpen = false
	w.mu.Unlock()
	w.logger.Info("garment added", "item_id", item.ID, "category", item.Category)
	return nil
}

// Loading reports whether a request is in flight.
func (w *WardrobeController) Loading() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.loading
}

// LastError returns and clears the most recent error message.
func (w *WardrobeController) LastError() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	msg := w.lastErr
	w.lastErr = ""
	return msg
}

func (w *WardrobeController) setLoading(v bool) {
	w.mu.Lock()
	w.loading = v
	w.mu.Unlock()
}

func (w *WardrobeController) setError(err error) {
	w.mu.Lock()
	w.lastErr = apperrors.Message(err)
	w.mu.Unlock()
}
