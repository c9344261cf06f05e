package postgres

import (
	"context"
	"errors"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	"github.com/wazxo/EmercengyAPP/internal/errs"
	"github.com/wazxo/EmercengyAPP/internal/model"
	"github.com/wazxo/EmercengyAPP/internal/repository"
)

var _ repository.EventRepository = (*EventRepo)(nil)

var eventCols = []string{"id", "title", "description", "date", "photo"}

func newDB(t *testing.T) (*DB, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	return &DB{Pool: mock}, mock
}

func TestEventRepo_ListAll_OK(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewEventRepo(db)

	mock.ExpectQuery(`SELECT id, COALESCE\(title, ''\) AS title, .* FROM events ORDER BY id`).
		WillReturnRows(pgxmock.NewRows(eventCols).
			AddRow(int64(1), "Flood", "", "2024-05-01", "file:///a.jpg").
			AddRow(int64(2), "Fire", "Barn", "2024-05-02", "file:///b.jpg"))

	got, err := r.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, int64(1), got[0].ID)
	require.Equal(t, "Flood", got[0].Title)
	require.Equal(t, "Barn", got[1].Description)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepo_ListAll_Empty(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewEventRepo(db)

	mock.ExpectQuery(`FROM events ORDER BY id`).
		WillReturnRows(pgxmock.NewRows(eventCols))

	got, err := r.ListAll(context.Background())
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestEventRepo_ListAll_ReadError(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewEventRepo(db)

	mock.ExpectQuery(`FROM events`).WillReturnError(errors.New("conn reset"))

	_, err := r.ListAll(context.Background())
	require.ErrorIs(t, err, errs.ErrStorageRead)
	require.ErrorContains(t, err, "conn reset")
}

func TestEventRepo_Insert_ReturnsID(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewEventRepo(db)

	f := model.EventFields{Title: "Flood", Date: "2024-05-01", Photo: "file:///a.jpg"}
	mock.ExpectQuery(`INSERT INTO events \(title,description,date,photo\) VALUES \(\$1,\$2,\$3,\$4\) RETURNING id`).
		WithArgs(f.Title, f.Description, f.Date, f.Photo).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(7)))

	id, err := r.Insert(context.Background(), f)
	require.NoError(t, err)
	require.Equal(t, int64(7), id)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepo_Insert_WriteError(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewEventRepo(db)

	mock.ExpectQuery(`INSERT INTO events`).
		WithArgs("x", "", "", "").
		WillReturnError(errors.New("disk full"))

	_, err := r.Insert(context.Background(), model.EventFields{Title: "x"})
	require.ErrorIs(t, err, errs.ErrStorageWrite)
	require.ErrorContains(t, err, "disk full")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepo_Update_OK(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewEventRepo(db)

	f := model.EventFields{Title: "Flood", Description: "River", Date: "2024-05-01", Photo: "file:///a.jpg"}
	mock.ExpectExec(`UPDATE events SET title = \$1, description = \$2, date = \$3, photo = \$4 WHERE id = \$5`).
		WithArgs(f.Title, f.Description, f.Date, f.Photo, int64(3)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, r.Update(context.Background(), 3, f))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepo_Update_MissingIsNoop(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewEventRepo(db)

	mock.ExpectExec(`UPDATE events`).
		WithArgs("x", "", "", "", int64(999)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	require.NoError(t, r.Update(context.Background(), 999, model.EventFields{Title: "x"}))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepo_Update_WriteError(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewEventRepo(db)

	mock.ExpectExec(`UPDATE events`).
		WithArgs("", "", "", "", int64(1)).
		WillReturnError(errors.New("boom"))

	err := r.Update(context.Background(), 1, model.EventFields{})
	require.ErrorIs(t, err, errs.ErrStorageWrite)
	require.ErrorContains(t, err, "boom")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepo_Delete_OK(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewEventRepo(db)

	mock.ExpectExec(`DELETE FROM events WHERE id = \$1`).
		WithArgs(int64(4)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	require.NoError(t, r.Delete(context.Background(), 4))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepo_Delete_WriteError(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewEventRepo(db)

	mock.ExpectExec(`DELETE FROM events`).
		WithArgs(int64(4)).
		WillReturnError(errors.New("boom"))

	err := r.Delete(context.Background(), 4)
	require.ErrorIs(t, err, errs.ErrStorageWrite)
	require.ErrorContains(t, err, "boom")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepo_Get(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewEventRepo(db)

	mock.ExpectQuery(`FROM events WHERE id = \$1`).
		WithArgs(int64(2)).
		WillReturnRows(pgxmock.NewRows(eventCols).AddRow(int64(2), "Fire", "", "2024-05-02", "file:///b.jpg"))

	ev, err := r.Get(context.Background(), 2)
	require.NoError(t, err)
	require.Equal(t, "Fire", ev.Title)

	mock.ExpectQuery(`FROM events WHERE id = \$1`).
		WithArgs(int64(9)).
		WillReturnRows(pgxmock.NewRows(eventCols))

	_, err = r.Get(context.Background(), 9)
	if !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}
