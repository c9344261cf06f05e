// Package repository defines storage interfaces implemented by concrete backends.
package repository

import (
	"context"

	"github.com/wazxo/EmercengyAPP/internal/model"
)

// EventRepository provides durable CRUD over the events relation.
// Implementations wrap failures with errs.ErrStorageRead or errs.ErrStorageWrite.
type EventRepository interface {
	// ListAll returns every stored event in insertion order.
	ListAll(ctx context.Context) ([]model.Event, error)

	// Insert stores a new event and returns its assigned id.
	Insert(ctx context.Context, f model.EventFields) (int64, error)

	// Update replaces all mutable fields of the event with id. Missing id is a no-op.
	Update(ctx context.Context, id int64, f model.EventFields) error

	// Delete removes the event with id. Missing id is a no-op.
	Delete(ctx context.Context, id int64) error

	// Get returns a single event by id, or errs.ErrNotFound.
	Get(ctx context.Context, id int64) (model.Event, error)

	// Close releases the underlying store.
	Close() error
}
