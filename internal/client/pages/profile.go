// Package pages holds the per-page view controllers of the web frontend.
// Each controller owns its page-local state; shared session state lives in
// the store.
package pages

import (
	"context"
	"log/slog"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/stylehive/outfit-planner/internal/client/picker"
	"github.com/stylehive/outfit-planner/internal/client/store"
	"github.com/stylehive/outfit-planner/internal/domain/closet"
	apperrors "github.com/stylehive/outfit-planner/pkg/errors"
)

// ProfileState tracks how far the profile page has progressed.
type ProfileState int

const (
	// ProfileEmpty means no profile exists yet; the creation form is shown.
	ProfileEmpty ProfileState = iota
	// ProfileCreated means the profile exists but no photo was analyzed.
	ProfileCreated
	// ProfileAnalyzed means a photo was uploaded and analysis is displayed.
	ProfileAnalyzed
)

// ProfileForm is the profile creation form.
type ProfileForm struct {
	Name  string `validate:"required"`
	Email string `validate:"required,email"`
}

// ProfileController drives the profile page.
type ProfileController struct {
	mu       sync.Mutex
	store    *store.Store
	picker   *picker.Picker
	validate *validator.Validate
	logger   *slog.Logger

	loading  bool
	analysis *closet.BodyAnalysis
	lastErr  string
}

// NewProfileController builds the controller for one session.
func NewProfileController(st *store.Store, pk *picker.Picker, logger *slog.Logger) *ProfileController {
	return &ProfileController{
		store:    st,
		picker:   pk,
		validate: validator.New(),
		logger:   logger.With("component", "pages.profile"),
	}
}

// State derives the page state from the session.
func (p *ProfileController) State() ProfileState {
	user, ok := p.store.User()
	if !ok {
		return ProfileEmpty
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.analysis != nil || user.BodyType != "" {
		return ProfileAnalyzed
	}
	return ProfileCreated
}

// Loading reports whether a request is in flight.
func (p *ProfileController) Loading() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loading
}

// LastError returns and clears the most recent error message.
func (p *ProfileController) LastError() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	msg := p.lastErr
	p.lastErr = ""
	return msg
}

// Analysis returns the page-local copy of the body analysis, if present.
func (p *ProfileController) Analysis() (closet.BodyAnalysis, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.analysis == nil {
		return closet.BodyAnalysis{}, false
	}
	return *p.analysis, true
}

// PreviewURL returns the photo to display on the page.
func (p *ProfileController) PreviewURL() string {
	if url := p.picker.PreviewURL(); url != "" {
		return url
	}
	if user, ok := p.store.User(); ok && user.PhotoURL != "" {
		return p.store.API().ImageURL(user.PhotoURL)
	}
	return ""
}

// SubmitProfile validates the form and creates the profile.
func (p *ProfileController) SubmitProfile(ctx context.Context, form ProfileForm) error {
	if err := p.validate.Struct(form); err != nil {
		appErr := apperrors.Wrap("invalid_input", "name and a valid email are required", err)
		p.setError(appErr)
		return appErr
	}

	p.setLoading(true)
	defer p.setLoading(false)

	if _, err := p.store.CreateUser(ctx, form.Name, form.Email); err != nil {
		p.setError(err)
		return err
	}
	return nil
}

// SelectPhoto hands the chosen file to the picker. Invalid files are ignored.
func (p *ProfileController) SelectPhoto(filename string, data []byte) bool {
	return p.picker.Select(filename, data)
}

// ClearPhoto drops the pending selection.
func (p *ProfileController) ClearPhoto() {
	p.picker.Clear()
}

// UploadPhoto sends the selected photo and keeps the returned analysis on
// the page. After a successful upload the preview switches to the stored
// server-side image.
func (p *ProfileController) UploadPhoto(ctx context.Context) error {
	selection, ok := p.picker.Selection()
	if !ok {
		err := apperrors.Wrap("invalid_input", "select a photo first", nil)
		p.setError(err)
		return err
	}

	p.setLoading(true)
	defer p.setLoading(false)

	result, err := p.store.UploadUserPhoto(ctx, selection.Upload)
	if err != nil {
		p.setError(err)
		return err
	}

	p.mu.Lock()
	analysis := result.Analysis
	p.analysis = &analysis
	p.mu.Unlock()

	p.picker.SetRemotePreview(p.store.API().ImageURL(result.PhotoURL))
	p.logger.Info("profile photo analyzed", "body_type", result.Analysis.BodyType)
	return nil
}

func (p *ProfileController) setLoading(v bool) {
	p.mu.Lock()
	p.loading = v
	p.mu.Unlock()
}

func (p *ProfileController) setError(err error) {
	p.mu.Lock()
	p.lastErr = apperrors.Message(err)
	p.mu.Unlock()
}
