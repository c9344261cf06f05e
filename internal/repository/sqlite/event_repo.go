package sqlite

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/sqlscan"

	"github.com/wazxo/EmercengyAPP/internal/errs"
	"github.com/wazxo/EmercengyAPP/internal/model"
)

const eventsTable = "events"

var builder = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// NULL columns read back as empty strings.
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

func mapToEvent(dto eventDTO) model.Event {
	return model.Event{
		ID: dto.ID,
		EventFields: model.EventFields{
			Title:       dto.Title,
			Description: dto.Description,
			Date:        dto.Date,
			Photo:       dto.Photo,
		},
	}
}

// ListAll returns all events ordered by id (insertion order).
func (r *EventRepo) ListAll(ctx context.Context) ([]model.Event, error) {
	q, args, err := baseQuery.OrderBy("id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("list events: %w: %w", errs.ErrStorageRead, err)
	}

	var dtos []eventDTO
	if err := sqlscan.Select(ctx, r.db, &dtos, q, args...); err != nil {
		return nil, fmt.Errorf("list events: %w: %w", errs.ErrStorageRead, err)
	}

	out := make([]model.Event, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, mapToEvent(d))
	}
	return out, nil
}

// Get returns one event by id.
func (r *EventRepo) Get(ctx context.Context, id int64) (model.Event, error) {
	q, args, err := baseQuery.Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return model.Event{}, fmt.Errorf("get event: %w: %w", errs.ErrStorageRead, err)
	}

	var dto eventDTO
	if err := sqlscan.Get(ctx, r.db, &dto, q, args...); err != nil {
		if sqlscan.NotFound(err) {
			return model.Event{}, errs.ErrNotFound
		}
		return model.Event{}, fmt.Errorf("get event %d: %w: %w", id, errs.ErrStorageRead, err)
	}
	return mapToEvent(dto), nil
}

// Insert stores a new row and returns the rowid SQLite assigned to it.
func (r *EventRepo) Insert(ctx context.Context, f model.EventFields) (int64, error) {
	q, args, err := builder.
		Insert(eventsTable).
		Columns("title", "description", "date", "photo").
		Values(f.Title, f.Description, f.Date, f.Photo).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("insert event: %w: %w", errs.ErrStorageWrite, err)
	}

	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, fmt.Errorf("insert event: %w: %w", errs.ErrStorageWrite, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
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

	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
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

	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("delete event %d: %w: %w", id, errs.ErrStorageWrite, err)
	}
	return nil
}
