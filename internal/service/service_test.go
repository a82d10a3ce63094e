package service

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/peoplehub/hrdocs/internal/archive"
	"github.com/peoplehub/hrdocs/internal/domain"
	"github.com/peoplehub/hrdocs/internal/render"
	"github.com/peoplehub/hrdocs/internal/resolver"
	"github.com/peoplehub/hrdocs/internal/search"
	"github.com/peoplehub/hrdocs/internal/store/sqlite"
	"github.com/peoplehub/hrdocs/internal/templates"
	"github.com/peoplehub/hrdocs/internal/validation"
)

func ptr[T any](v T) *T { return &v }

type testEnv struct {
	store       *sqlite.Store
	catalog     *CatalogService
	docs        *DocumentService
	archive     *archive.Archive
	templateDir string
}

// setupTestEnv wires the services against a temp SQLite store, an in-memory
// archive and an empty template directory. System tags are seeded.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	tmpDir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	st, err := sqlite.Open(filepath.Join(tmpDir, "hrdocs.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	index, err := search.NewTagIndex(logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = index.Close() })

	arch, err := archive.OpenInMemory(logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = arch.Close() })

	templateDir := filepath.Join(tmpDir, "templates")
	lib, err := templates.Open(templateDir, logger, templates.Options{SettleDelay: 10 * time.Millisecond})
	require.NoError(t, err)
	t.Cleanup(func() { _ = lib.Close() })

	v := validation.New()
	catalogService := NewCatalogService(st, index, v, logger)
	_, err = catalogService.SeedSystemTags(context.Background())
	require.NoError(t, err)

	clock := func() time.Time { return time.Date(2026, time.February, 10, 8, 0, 0, 0, time.UTC) }
	renderer := render.New(resolver.New(resolver.WithClock(clock)))

	docs := NewDocumentService(DocumentServiceConfig{
		Records:   st,
		Catalog:   catalogService,
		Renderer:  renderer,
		Library:   lib,
		Archive:   arch,
		Validator: v,
		Logger:    logger,
	})

	return &testEnv{
		store:       st,
		catalog:     catalogService,
		docs:        docs,
		archive:     arch,
		templateDir: templateDir,
	}
}

// seedEmployee stores the offer letter fixture: Amina Khalil, Accountant in
// Finance, starting March 1 2026 on 1,500 BHD.
func (e *testEnv) seedEmployee(t *testing.T) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, e.store.UpsertCompany(ctx, &domain.Company{
		ID: "co-1", Name: "Gulf Ledger", City: "Manama", Country: "Bahrain", Currency: "BHD",
	}))
	require.NoError(t, e.store.UpsertPosition(ctx, &domain.Position{ID: "pos-1", Title: "Accountant"}))
	require.NoError(t, e.store.UpsertDepartment(ctx, &domain.Department{ID: "dep-1", Name: "Finance"}))
	require.NoError(t, e.store.UpsertEmployee(ctx, &domain.Employee{
		ID:             "emp-1",
		CompanyID:      "co-1",
		EmployeeNumber: "E-1001",
		FirstName:      "Amina",
		LastName:       "Khalil",
		HireDate:       ptr("2026-03-01"),
		PositionID:     "pos-1",
		DepartmentID:   "dep-1",
		Salary:         ptr(1500.0),
	}))
}

// loadTemplate writes a template file and reloads the library synchronously.
func (e *testEnv) loadTemplate(t *testing.T, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(e.templateDir, name), []byte(body), 0o644))
	require.NoError(t, e.docs.library.Reload())
}
