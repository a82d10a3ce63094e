package archive

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peoplehub/hrdocs/internal/domain"
	"github.com/peoplehub/hrdocs/internal/store"
)

func newTestArchive(t *testing.T) *Archive {
	t.Helper()
	a, err := OpenInMemory(slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func TestSaveAndGet(t *testing.T) {
	a := newTestArchive(t)
	ctx := context.Background()

	doc := &domain.GeneratedDocument{
		EmployeeID:   "emp-1",
		TemplateName: "offer_letter.html",
		Format:       domain.FormatHTML,
		Body:         "<p>Dear Amina</p>",
		Unresolved:   []string{"<<Badge>>"},
	}
	require.NoError(t, a.Save(ctx, doc))

	assert.NotEmpty(t, doc.ID, "Save assigns an ID")
	assert.False(t, doc.CreatedAt.IsZero(), "Save assigns a creation time")

	got, err := a.Get(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, doc.Body, got.Body)
	assert.Equal(t, doc.TemplateName, got.TemplateName)
	assert.Equal(t, []string{"<<Badge>>"}, got.Unresolved)
	assert.True(t, doc.CreatedAt.Equal(got.CreatedAt))
}

func TestGet_NotFound(t *testing.T) {
	a := newTestArchive(t)

	_, err := a.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestListForEmployee_NewestFirst(t *testing.T) {
	a := newTestArchive(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	for i, body := range []string{"first", "second", "third"} {
		require.NoError(t, a.Save(ctx, &domain.GeneratedDocument{
			EmployeeID: "emp-1",
			Format:     domain.FormatHTML,
			Body:       body,
			CreatedAt:  base.Add(time.Duration(i) * time.Hour),
		}))
	}
	require.NoError(t, a.Save(ctx, &domain.GeneratedDocument{EmployeeID: "emp-10", Body: "other"}))
	require.NoError(t, a.Save(ctx, &domain.GeneratedDocument{Body: "inline"}))

	docs, err := a.ListForEmployee(ctx, "emp-1")
	require.NoError(t, err)
	require.Len(t, docs, 3, "prefix must not match emp-10")
	assert.Equal(t, "third", docs[0].Body)
	assert.Equal(t, "first", docs[2].Body)

	n, err := a.Count()
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}

func TestListForEmployee_Empty(t *testing.T) {
	a := newTestArchive(t)

	docs, err := a.ListForEmployee(context.Background(), "emp-none")
	require.NoError(t, err)
	assert.NotNil(t, docs)
	assert.Empty(t, docs)
}

func TestOpen_OnDisk(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	a, err := Open(dir, nil)
	require.NoError(t, err)
	doc := &domain.GeneratedDocument{Body: "kept"}
	require.NoError(t, a.Save(ctx, doc))
	require.NoError(t, a.Close())

	reopened, err := Open(dir, nil)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "kept", got.Body)
}
