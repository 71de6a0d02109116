package consent

import (
	"context"
	"fmt"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/cookieconsent/pkg/domain"
)

// Phase is the visibility state of the consent prompt
type Phase string

// prompt phases
const (
	PhaseHidden  Phase = "hidden"
	PhaseSummary Phase = "summary"
	PhaseDetail  Phase = "detail"
)

// Visible reports whether the prompt is shown in this phase
func (p Phase) Visible() bool {
	return p == PhaseSummary || p == PhaseDetail
}

// State is what the presentation layer renders. Draft is set only in PhaseDetail.
type State struct {
	Phase Phase               `json:"phase"`
	Draft *domain.Preferences `json:"draft,omitempty"`
}

// RecordStore persists the consent record, implemented by Store
type RecordStore interface {
	HasRecord(ctx context.Context) bool
	Save(ctx context.Context, rec domain.ConsentRecord) error
}

// Controller drives the consent prompt: hidden, summary and detail phases.
// It holds the draft preferences while the detail view is open and persists
// decisions through RecordStore. Not safe for concurrent use.
type Controller struct {
	store RecordStore
	now   func() time.Time

	phase Phase
	draft domain.Preferences
}

// Option customizes Controller
type Option func(c *Controller)

// WithClock sets the time source used to stamp decisions
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// NewController makes a controller. The prompt starts hidden if a decision is already stored.
func NewController(ctx context.Context, store RecordStore, opts ...Option) *Controller {
	c := &Controller{
		store: store,
		now:   time.Now,
		phase: PhaseSummary,
		draft: domain.DefaultPreferences(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if store.HasRecord(ctx) {
		c.phase = PhaseHidden
	}
	lgr.Printf("[DEBUG] consent controller started in %s phase", c.phase)
	return c
}

// State returns the current phase and, in the detail phase, a copy of the draft
func (c *Controller) State() State {
	st := State{Phase: c.phase}
	if c.phase == PhaseDetail {
		draft := c.draft
		st.Draft = &draft
	}
	return st
}

// Dispatch applies the intent to the current phase. Intents not valid for the phase are ignored.
// If persisting a decision fails, the phase and draft stay as they were and the error is returned,
// so the same intent can be dispatched again.
func (c *Controller) Dispatch(ctx context.Context, intent Intent) error {
	switch c.phase {
	case PhaseSummary:
		switch intent {
		case AcceptAll:
			return c.decide(ctx, domain.AcceptAllRecord(c.now()))
		case RejectAll:
			return c.decide(ctx, domain.RejectAllRecord(c.now()))
		case OpenDetails:
			c.draft = domain.DefaultPreferences()
			c.phase = PhaseDetail
			return nil
		}
	case PhaseDetail:
		switch intent {
		case ToggleAnalytics:
			c.draft.Analytics = !c.draft.Analytics
			return nil
		case ToggleMarketing:
			c.draft.Marketing = !c.draft.Marketing
			return nil
		case Save:
			return c.decide(ctx, domain.NewConsentRecord(c.draft, c.now()))
		case Back:
			c.draft = domain.DefaultPreferences()
			c.phase = PhaseSummary
			return nil
		}
	}

	lgr.Printf("[DEBUG] intent %s ignored in %s phase", intent, c.phase)
	return nil
}

// decide persists the record and hides the prompt, only if the write succeeded
func (c *Controller) decide(ctx context.Context, rec domain.ConsentRecord) error {
	if err := c.store.Save(ctx, rec); err != nil {
		lgr.Printf("[WARN] consent not recorded, prompt stays in %s phase: %v", c.phase, err)
		return fmt.Errorf("save consent: %w", err)
	}
	c.phase = PhaseHidden
	c.draft = domain.DefaultPreferences()
	lgr.Printf("[INFO] consent recorded, analytics=%v, marketing=%v", rec.Analytics, rec.Marketing)
	return nil
}
