package sqlite

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peoplehub/hrdocs/internal/catalog"
	"github.com/peoplehub/hrdocs/internal/store"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewWithDB(db, nil), mock
}

func smartTagRow(version int) *sqlmock.Rows {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	return sqlmock.NewRows([]string{
		"id", "tag", "field", "source", "category", "description",
		"is_system", "is_active", "version", "created_at", "updated_at",
	}).AddRow("stag-1", "<<Badge>>", "employee_number", "employee", "Employee", "", 0, 1, version, now, now)
}

func TestCreateSmartTag_UniqueViolationMapsToAlreadyExists(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec("INSERT INTO smart_tags").
		WillReturnError(errors.New("constraint failed: UNIQUE constraint failed: smart_tags.tag (2067)"))

	err := s.CreateSmartTag(context.Background(), makeTestSmartTag("stag-1", "Badge", catalog.FieldEmployeeNumber))
	assert.ErrorIs(t, err, store.ErrAlreadyExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateSmartTag_DriverErrorIsWrapped(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec("INSERT INTO smart_tags").WillReturnError(errors.New("disk I/O error"))

	err := s.CreateSmartTag(context.Background(), makeTestSmartTag("stag-1", "Badge", catalog.FieldEmployeeNumber))
	require.Error(t, err)
	assert.NotErrorIs(t, err, store.ErrAlreadyExists)
	assert.Contains(t, err.Error(), "disk I/O error")
}

func TestUpdateSmartTag_NoRowsDistinguishesConflictFromMissing(t *testing.T) {
	selectByID := regexp.QuoteMeta("FROM smart_tags WHERE id = ?")

	t.Run("stale version", func(t *testing.T) {
		s, mock := newMockStore(t)
		mock.ExpectQuery("UPDATE smart_tags SET").WillReturnRows(sqlmock.NewRows([]string{"version"}))
		mock.ExpectQuery(selectByID).WithArgs("stag-1").WillReturnRows(smartTagRow(5))

		err := s.UpdateSmartTag(context.Background(), makeTestSmartTag("stag-1", "Badge", catalog.FieldEmployeeNumber), 4)
		assert.ErrorIs(t, err, store.ErrConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row", func(t *testing.T) {
		s, mock := newMockStore(t)
		mock.ExpectQuery("UPDATE smart_tags SET").WillReturnRows(sqlmock.NewRows([]string{"version"}))
		mock.ExpectQuery(selectByID).WithArgs("stag-1").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		err := s.UpdateSmartTag(context.Background(), makeTestSmartTag("stag-1", "Badge", catalog.FieldEmployeeNumber), 4)
		assert.ErrorIs(t, err, store.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUpdateSmartTag_TakesVersionFromUpdate(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectQuery("RETURNING version").
		WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(7))

	tag := makeTestSmartTag("stag-1", "Badge", catalog.FieldEmployeeNumber)
	err := s.UpdateSmartTag(context.Background(), tag, 6)
	require.NoError(t, err)
	assert.Equal(t, 7, tag.Version)
	// No follow-up read: a second statement would fail the expectations.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedSmartTags_RollsBackOnError(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectBegin()
	prep := mock.ExpectPrepare("INSERT INTO smart_tags")
	prep.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 1))
	prep.ExpectExec().WillReturnError(errors.New("database is locked"))
	mock.ExpectRollback()

	_, err := s.SeedSmartTags(context.Background(), catalog.Builtin()[:2])
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database is locked")
	assert.NoError(t, mock.ExpectationsWereMet())
}
