package service

import (
	"context"
	"slices"
	"sync"

	"github.com/wazxo/EmercengyAPP/internal/errs"
	"github.com/wazxo/EmercengyAPP/internal/model"
	"github.com/wazxo/EmercengyAPP/internal/repository"
)

// fakeEventRepo is an in-memory store with per-operation error injection.
type fakeEventRepo struct {
	mu     sync.Mutex
	rows   []model.Event
	nextID int64

	listErr   error
	insertErr error
	updateErr error
	deleteErr error
	getErr    error

	// getOverride, when set, is returned by Get instead of the stored row.
	getOverride *model.Event

	// listEntered, when set, is signalled after ListAll has copied the rows.
	listEntered chan struct{}
	// listGate, when set, holds ListAll after the copy until it yields.
	listGate chan struct{}

	// insertEntered, when set, is signalled as Insert starts.
	insertEntered chan struct{}
	// insertGate, when set, blocks Insert until a value is received.
	insertGate chan struct{}

	// afterInsert, when set, runs after a successful Insert has committed.
	afterInsert func()

	calls map[string]int
}

var _ repository.EventRepository = (*fakeEventRepo)(nil)

func newFakeRepo(seed ...model.EventFields) *fakeEventRepo {
	f := &fakeEventRepo{calls: map[string]int{}}
	for _, s := range seed {
		f.nextID++
		f.rows = append(f.rows, model.Event{ID: f.nextID, EventFields: s})
	}
	return f
}

func (f *fakeEventRepo) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeEventRepo) ListAll(ctx context.Context) ([]model.Event, error) {
	f.mu.Lock()
	f.calls["list"]++
	if f.listErr != nil {
		f.mu.Unlock()
		return nil, f.listErr
	}
	rows := slices.Clone(f.rows)
	f.mu.Unlock()

	if f.listEntered != nil {
		f.listEntered <- struct{}{}
	}
	if f.listGate != nil {
		select {
		case <-f.listGate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return rows, nil
}

func (f *fakeEventRepo) Insert(ctx context.Context, in model.EventFields) (int64, error) {
	if f.insertEntered != nil {
		f.insertEntered <- struct{}{}
	}
	if f.insertGate != nil {
		select {
		case <-f.insertGate:
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}
	f.mu.Lock()
	f.calls["insert"]++
	if f.insertErr != nil {
		f.mu.Unlock()
		return 0, f.insertErr
	}
	f.nextID++
	id := f.nextID
	f.rows = append(f.rows, model.Event{ID: id, EventFields: in})
	hook := f.afterInsert
	f.mu.Unlock()

	if hook != nil {
		hook()
	}
	return id, nil
}

func (f *fakeEventRepo) Update(_ context.Context, id int64, in model.EventFields) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["update"]++
	if f.updateErr != nil {
		return f.updateErr
	}
	for i := range f.rows {
		if f.rows[i].ID == id {
			f.rows[i].EventFields = in
		}
	}
	return nil
}

func (f *fakeEventRepo) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["delete"]++
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.rows = slices.DeleteFunc(f.rows, func(e model.Event) bool { return e.ID == id })
	return nil
}

func (f *fakeEventRepo) Get(_ context.Context, id int64) (model.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["get"]++
	if f.getErr != nil {
		return model.Event{}, f.getErr
	}
	if f.getOverride != nil {
		return *f.getOverride, nil
	}
	for _, e := range f.rows {
		if e.ID == id {
			return e, nil
		}
	}
	return model.Event{}, errs.ErrNotFound
}

func (f *fakeEventRepo) Close() error { return nil }
