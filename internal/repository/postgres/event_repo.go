package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/wazxo/EmercengyAPP/internal/errs"
	"github.com/wazxo/EmercengyAPP/internal/model"
)

const eventsTable = "events"

var builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var baseQuery = builder.
	Select(
		"id",
		"COALESCE(title, '') AS title",
		"COALESCE(description, '') AS description",
		"COALESCE(date, '') AS date",
		"COALESCE(photo, '') AS photo",
	).
	From(eventsTable)

type eventDTO struct {
	ID          int64  `db:"id"`
	Title       string `db:"title"`
	Description string `db:"description"`
	Date        string `db:"date"`
	Photo       string `db:"photo"`
}

func (d eventDTO) toModel() model.Event {
	return model.Event{
		ID: d.ID,
		EventFields: model.EventFields{
			Title:       d.Title,
			Description: d.Description,
			Date:        d.Date,
			Photo:       d.Photo,
		},
	}
}

// EventRepo implements repository.EventRepository on PostgreSQL.
type EventRepo struct{ db *DB }

// NewEventRepo returns a new EventRepo.
func NewEventRepo(db *DB) *EventRepo { return &EventRepo{db: db} }

// Open connects, migrates and returns a ready repository.
func Open(ctx context.Context, dsn string) (*EventRepo, error) {
	db, err := New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return NewEventRepo(db), nil
}

// Close closes the pool.
func (r *EventRepo) Close() error {
	r.db.Close()
	return nil
}

// ListAll returns all events ordered by id.
func (r *EventRepo) ListAll(ctx context.Context) ([]model.Event, error) {
	q, args, err := baseQuery.OrderBy("id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("list events: %w: %w", errs.ErrStorageRead, err)
	}

	var dtos []eventDTO
	if err := pgxscan.Select(ctx, r.db.Pool, &dtos, q, args...); err != nil {
		return nil, fmt.Errorf("list events: %w: %w", errs.ErrStorageRead, err)
	}

	out := make([]model.Event, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, d.toModel())
	}
	return out, nil
}

// Get returns one event by id.
func (r *EventRepo) Get(ctx context.Context, id int64) (model.Event, error) {
	q, args, err := baseQuery.Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return model.Event{}, fmt.Errorf("get event: %w: %w", errs.ErrStorageRead, err)
	}

	var d eventDTO
	if err := pgxscan.Get(ctx, r.db.Pool, &d, q, args...); err != nil {
		if pgxscan.NotFound(err) {
			return model.Event{}, errs.ErrNotFound
		}
		return model.Event{}, fmt.Errorf("get event %d: %w: %w", id, errs.ErrStorageRead, err)
	}
	return d.toModel(), nil
}

// Insert stores a new row and returns its identity value.
func (r *EventRepo) Insert(ctx context.Context, f model.EventFields) (int64, error) {
	q, args, err := builder.
		Insert(eventsTable).
		Columns("title", "description", "date", "photo").
		Values(f.Title, f.Description, f.Date, f.Photo).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("insert event: %w: %w", errs.ErrStorageWrite, err)
	}

	var id int64
	if err := r.db.Pool.QueryRow(ctx, q, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert event: %w: %w", errs.ErrStorageWrite, err)
	}
	return id, nil
}

// Update replaces every mutable column of the row with id.
func (r *EventRepo) Update(ctx context.Context, id int64, f model.EventFields) error {
	q, args, err := builder.
		Update(eventsTable).
		Set("title", f.Title).
		Set("description", f.Description).
		Set("date", f.Date).
		Set("photo", f.Photo).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("update event %d: %w: %w", id, errs.ErrStorageWrite, err)
	}

	if _, err := r.db.Pool.Exec(ctx, q, args...); err != nil {
		return fmt.Errorf("update event %d: %w: %w", id, errs.ErrStorageWrite, err)
	}
	return nil
}

// Delete removes the row with id.
func (r *EventRepo) Delete(ctx context.Context, id int64) error {
	q, args, err := builder.
		Delete(eventsTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("delete event %d: %w: %w", id, errs.ErrStorageWrite, err)
	}

	if _, err := r.db.Pool.Exec(ctx, q, args...); err != nil {
		return fmt.Errorf("delete event %d: %w: %w", id, errs.ErrStorageWrite, err)
	}
	return nil
}
