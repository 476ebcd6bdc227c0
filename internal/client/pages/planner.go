package pages

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/stylehive/outfit-planner/internal/client/store"
	"github.com/stylehive/outfit-planner/internal/domain/closet"
	"github.com/stylehive/outfit-planner/internal/domain/stylist"
	apperrors "github.com/stylehive/outfit-planner/pkg/errors"
)

// PlannerGate decides what the planner page can do.
type PlannerGate int

const (
	// PlannerReady means generation is available.
	PlannerReady PlannerGate = iota
	// PlannerNoProfile means no profile exists; the page prompts for one.
	PlannerNoProfile
	// PlannerEmptyWardrobe means the wardrobe has no items to combine.
	PlannerEmptyWardrobe
)

// PlannerController drives the outfit planner page. Generated
// recommendations are page-local and reset on navigation.
type PlannerController struct {
	mu     sync.Mutex
	store  *store.Store
	logger *slog.Logger

	occasion string
	season   string
	result   *stylist.Response
	saved    map[int]int64
	ack      string
	loading  bool
	lastErr  string
}

// NewPlannerController builds the controller for one session.
func NewPlannerController(st *store.Store, logger *slog.Logger) *PlannerController {
	return &PlannerController{
		store:    st,
		logger:   logger.With("component", "pages.planner"),
		occasion: string(stylist.OccasionCasual),
		saved:    make(map[int]int64),
	}
}

// Open refreshes the wardrobe snapshot and clears any previous results.
func (p *PlannerController) Open(ctx context.Context) error {
	p.Reset()
	if _, ok := p.store.User(); !ok {
		return nil
	}
	return p.store.LoadWardrobe(ctx)
}

// Gate derives the page's capability from the session.
func (p *PlannerController) Gate() PlannerGate {
	if _, ok := p.store.User(); !ok {
		return PlannerNoProfile
	}
	if len(p.store.Wardrobe()) == 0 {
		return PlannerEmptyWardrobe
	}
	return PlannerReady
}

// SetOccasion records the occasion chosen for the next generation.
func (p *PlannerController) SetOccasion(raw string) error {
	occasion, err := stylist.ParseOccasion(raw)
	if err != nil {
		return apperrors.Wrap("invalid_input", "unknown occasion", err)
	}
	p.mu.Lock()
	p.occasion = string(occasion)
	p.mu.Unlock()
	return nil
}

// SetSeason records the season for the next generation. Empty means any.
func (p *PlannerController) SetSeason(raw string) error {
	if !closet.ValidSeason(raw) {
		return apperrors.Wrap("invalid_input", "unknown season", nil)
	}
	p.mu.Lock()
	p.season = raw
	p.mu.Unlock()
	return nil
}

// Occasion returns the currently selected occasion.
func (p *PlannerController) Occasion() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.occasion
}

// Generate requests recommendations. It never calls the server while the
// gate is closed.
func (p *PlannerController) Generate(ctx context.Context) error {
	switch p.Gate() {
	case PlannerNoProfile:
		err := apperrors.Wrap("no_profile", "create a profile first", nil)
		p.setError(err)
		return err
	case PlannerEmptyWardrobe:
		err := apperrors.Wrap("empty_wardrobe", "add clothing items before generating outfits", nil)
		p.setError(err)
		return err
	}

	user, _ := p.store.User()
	p.mu.Lock()
	req := stylist.Request{Occasion: p.occasion, Season: p.season}
	p.mu.Unlock()

	p.setLoading(true)
	defer p.setLoading(false)

	resp, err := p.store.API().GenerateOutfits(ctx, user.ID, req)
	if err != nil {
		p.setError(err)
		return err
	}

	p.mu.Lock()
	p.result = &resp
	p.saved = make(map[int]int64)
	p.mu.Unlock()
	p.logger.Info("recommendations generated", "occasion", req.Occasion, "count", len(resp.Recommendations))
	return nil
}

// Result returns the page-local recommendations, if any.
func (p *PlannerController) Result() (stylist.Response, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.result == nil {
		return stylist.Response{}, false
	}
	return *p.result, true
}

// Saved reports whether the recommendation at index was already saved.
func (p *PlannerController) Saved(index int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.saved[index]
	return ok
}

// Save persists the recommendation at index under a generated name. Saving
// the same index twice is a no-op.
func (p *PlannerController) Save(ctx context.Context, index int) error {
	p.mu.Lock()
	if p.result == nil || index < 0 || index >= len(p.result.Recommendations) {
		p.mu.Unlock()
		err := apperrors.Wrap("invalid_input", "no such recommendation", nil)
		p.setError(err)
		return err
	}
	if _, done := p.saved[index]; done {
		p.mu.Unlock()
		return nil
	}
	rec := p.result.Recommendations[index]
	occasion := p.result.Occasion
	p.mu.Unlock()

	user, ok := p.store.User()
	if !ok {
		err := errNoProfileGate()
		p.setError(err)
		return err
	}

	outfit, err := p.store.API().SaveOutfit(ctx, user.ID, closet.NewOutfit{
		Name:     fmt.Sprintf("%s Outfit %d", occasion, index+1),
		Occasion: occasion,
		ItemIDs:  rec.ItemIDs,
	})
	if err != nil {
		p.setError(err)
		return err
	}

	p.mu.Lock()
	p.saved[index] = outfit.ID
	p.ack = fmt.Sprintf("Saved %q", outfit.Name)
	p.mu.Unlock()
	return nil
}

// Acknowledgment returns and clears the one-shot save confirmation.
func (p *PlannerController) Acknowledgment() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	msg := p.ack
	p.ack = ""
	return msg
}

// Reset drops page-local results. Called when the user navigates away.
func (p *PlannerController) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.result = nil
	p.saved = make(map[int]int64)
	p.ack = ""
	p.lastErr = ""
}

// Loading reports whether a request is in flight.
func (p *PlannerController) Loading() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loading
}

// LastError returns and clears the most recent error message.
func (p *PlannerController) LastError() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	msg := p.lastErr
	p.lastErr = ""
	return msg
}

func (p *PlannerController) setLoading(v bool) {
	p.mu.Lock()
	p.loading = v
	p.mu.Unlock()
}

func (p *PlannerController) setError(err error) {
	p.mu.Lock()
	p.lastErr = apperrors.Message(err)
	p.mu.Unlock()
}

func errNoProfileGate() error {
	return apperrors.Wrap("no_profile", "create a profile first", nil)
}
