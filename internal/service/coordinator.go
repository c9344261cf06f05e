// Package service contains the view coordinator that owns the screen state
// and mediates every change to the event store.
package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/wazxo/EmercengyAPP/internal/errs"
	"github.com/wazxo/EmercengyAPP/internal/model"
	"github.com/wazxo/EmercengyAPP/internal/repository"
)

// Coordinator owns the in-memory mirror of the store, the Draft and the
// Selection. Storage calls are made without holding the lock; the mirror is
// updated from completed results only, so a failed write leaves it untouched.
type Coordinator struct {
	repo      repository.EventRepository
	log       *zap.Logger
	opTimeout time.Duration
	refetch   bool

	mu    sync.Mutex
	state model.ScreenState
	// gen counts mirror mutations; Load uses it to detect writes that
	// completed while ListAll was running.
	gen uint64
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithLogger sets the logger. Default is zap.NewNop.
func WithLogger(l *zap.Logger) Option {
	return func(c *Coordinator) {
		if l != nil {
			c.log = l
		}
	}
}

// WithOpTimeout bounds each repository call. Zero disables it.
func WithOpTimeout(d time.Duration) Option {
	return func(c *Coordinator) { c.opTimeout = d }
}

// WithRefetch makes Submit re-read the written row instead of trusting the
// submitted values.
func WithRefetch(on bool) Option {
	return func(c *Coordinator) { c.refetch = on }
}

// NewCoordinator returns a Coordinator with an empty mirror and a Creating draft.
func NewCoordinator(repo repository.EventRepository, opts ...Option) *Coordinator {
	c := &Coordinator{
		repo: repo,
		log:  zap.NewNop(),
		state: model.ScreenState{
			Events: []model.Event{},
			Draft:  model.Draft{Mode: model.Creating{}},
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Coordinator) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.opTimeout > 0 {
		return context.WithTimeout(ctx, c.opTimeout)
	}
	return ctx, func() {}
}

// Load replaces the mirror with the store contents. On failure the mirror is
// kept as is and the caller may retry. If a write lands in the mirror while
// the list is being read, the list is read again.
func (c *Coordinator) Load(ctx context.Context) error {
	ctx, cancel := c.opCtx(ctx)
	defer cancel()

	for {
		c.mu.Lock()
		gen := c.gen
		c.mu.Unlock()

		events, err := c.repo.ListAll(ctx)
		if err != nil {
			c.log.Error("load events", zap.Error(err))
			return err
		}

		c.mu.Lock()
		if c.gen == gen {
			c.applyLoaded(events)
			c.mu.Unlock()
			return nil
		}
		c.mu.Unlock()

		c.log.Debug("mirror changed during load, reloading")
		if err := ctx.Err(); err != nil {
			return err
		}
	}
}

// applyLoaded installs events as the mirror. Caller holds c.mu.
func (c *Coordinator) applyLoaded(events []model.Event) {
	c.state.Events = events
	if sel := c.state.Selection.Event; sel != nil {
		if i := indexOf(events, sel.ID); i >= 0 {
			c.state.Selection.Event = snapshot(events[i])
		} else {
			c.state.Selection = model.Selection{}
		}
	}
	c.log.Debug("events loaded", zap.Int("count", len(events)))
}

// Events returns a copy of the mirror in store order.
func (c *Coordinator) Events() []model.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.state.Events)
}

// Find looks an event up in the mirror.
func (c *Coordinator) Find(id int64) (model.Event, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := indexOf(c.state.Events, id); i >= 0 {
		return c.state.Events[i], true
	}
	return model.Event{}, false
}

// View hands the screen state to fn under the lock. fn must not retain it
// or call back into the Coordinator.
func (c *Coordinator) View(fn func(*model.ScreenState)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(&c.state)
}

// Submit validates the Draft and creates or updates an event depending on
// its mode. A ValidationError never reaches the store.
func (c *Coordinator) Submit(ctx context.Context) (model.Event, error) {
	c.mu.Lock()
	d := c.state.Draft
	c.mu.Unlock()

	if missing := d.Missing(); len(missing) > 0 {
		c.log.Warn("submit rejected", zap.Strings("missing", missing))
		return model.Event{}, &errs.ValidationError{Missing: missing}
	}

	switch m := d.Mode.(type) {
	case nil, model.Creating:
		return c.create(ctx, d)
	case model.Editing:
		return c.update(ctx, m.ID, d)
	default:
		return model.Event{}, fmt.Errorf("unknown draft mode %T", m)
	}
}

func (c *Coordinator) create(ctx context.Context, d model.Draft) (model.Event, error) {
	ctx, cancel := c.opCtx(ctx)
	defer cancel()

	id, err := c.repo.Insert(ctx, d.EventFields)
	if err != nil {
		c.log.Error("create event", zap.Error(err))
		return model.Event{}, err
	}
	ev := c.readBack(ctx, model.Event{ID: id, EventFields: d.EventFields})

	c.mu.Lock()
	defer c.mu.Unlock()

	// A Load that ran after the insert committed may already list the row.
	if i := indexOf(c.state.Events, ev.ID); i >= 0 {
		c.state.Events[i] = ev
	} else {
		c.state.Events = append(c.state.Events, ev)
	}
	c.gen++
	c.clearDraft(d)
	c.log.Info("event created", zap.Int64("id", ev.ID), zap.String("title", ev.Title))
	return ev, nil
}

func (c *Coordinator) update(ctx context.Context, id int64, d model.Draft) (model.Event, error) {
	ctx, cancel := c.opCtx(ctx)
	defer cancel()

	if err := c.repo.Update(ctx, id, d.EventFields); err != nil {
		c.log.Error("update event", zap.Int64("id", id), zap.Error(err))
		return model.Event{}, err
	}
	ev := c.readBack(ctx, model.Event{ID: id, EventFields: d.EventFields})

	c.mu.Lock()
	defer c.mu.Unlock()

	c.gen++
	if i := indexOf(c.state.Events, id); i >= 0 {
		c.state.Events[i] = ev
	} else {
		c.log.Warn("updated event not in mirror", zap.Int64("id", id))
	}
	if sel := c.state.Selection.Event; sel != nil && sel.ID == id {
		c.state.Selection.Event = snapshot(ev)
	}
	c.clearDraft(d)
	c.log.Info("event updated", zap.Int64("id", id))
	return ev, nil
}

// readBack returns the stored row when refetch is enabled. Any read problem
// falls back to the submitted values.
func (c *Coordinator) readBack(ctx context.Context, ev model.Event) model.Event {
	if !c.refetch {
		return ev
	}
	got, err := c.repo.Get(ctx, ev.ID)
	if err != nil {
		if !errors.Is(err, errs.ErrNotFound) {
			c.log.Warn("refetch event", zap.Int64("id", ev.ID), zap.Error(err))
		}
		return ev
	}
	return got
}

// clearDraft resets the Draft unless it was changed while the write was in flight.
// Caller holds c.mu.
func (c *Coordinator) clearDraft(submitted model.Draft) {
	if c.state.Draft == submitted {
		c.state.Draft = model.Draft{Mode: model.Creating{}}
	}
}

// Remove deletes the event with id from the store and then from the mirror.
// A removed event is also dropped from the Selection and from an edit in progress.
func (c *Coordinator) Remove(ctx context.Context, id int64) error {
	ctx, cancel := c.opCtx(ctx)
	defer cancel()

	if err := c.repo.Delete(ctx, id); err != nil {
		c.log.Error("delete event", zap.Int64("id", id), zap.Error(err))
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.Events = slices.DeleteFunc(c.state.Events, func(e model.Event) bool { return e.ID == id })
	c.gen++
	if sel := c.state.Selection.Event; sel != nil && sel.ID == id {
		c.state.Selection = model.Selection{}
	}
	if editID, ok := c.state.Draft.EditingID(); ok && editID == id {
		c.state.Draft.Mode = model.Creating{}
	}
	c.log.Info("event deleted", zap.Int64("id", id))
	return nil
}

func indexOf(events []model.Event, id int64) int {
	return slices.IndexFunc(events, func(e model.Event) bool { return e.ID == id })
}

func snapshot(e model.Event) *model.Event { return &e }
