package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peoplehub/hrdocs/internal/catalog"
	"github.com/peoplehub/hrdocs/internal/search"
)

func createBadgeTag(t *testing.T, ts *testServer) SmartTagResponse {
	t.Helper()
	resp := ts.api.Post("/api/v1/smart-tags", map[string]any{
		"tag":         "<<Badge Number>>",
		"field":       "employee_number",
		"source":      "employee",
		"category":    "Custom",
		"description": "Access badge",
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	return decodeEnvelope[SmartTagResponse](t, resp).Data
}

func TestSourceFields(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/sources/position/fields")

	require.Equal(t, http.StatusOK, resp.Code)
	env := decodeEnvelope[SourceFieldsResponse](t, resp)
	assert.Equal(t, "position", env.Data.Source)
	require.Len(t, env.Data.Fields, 3)
	assert.Equal(t, "job_title", env.Data.Fields[0].Field)
}

func TestSourceFields_UnknownSourceIsEmpty(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/sources/payroll/fields")

	require.Equal(t, http.StatusOK, resp.Code)
	env := decodeEnvelope[SourceFieldsResponse](t, resp)
	assert.NotNil(t, env.Data.Fields)
	assert.Empty(t, env.Data.Fields)
}

func TestListBuiltinSmartTags(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/smart-tags/builtin")
	env := decodeEnvelope[ListSmartTagsResponse](t, resp)
	assert.Len(t, env.Data.Tags, len(catalog.Builtin()))

	resp = ts.api.Get("/api/v1/smart-tags/builtin?category=Signature")
	env = decodeEnvelope[ListSmartTagsResponse](t, resp)
	require.NotEmpty(t, env.Data.Tags)
	for _, tag := range env.Data.Tags {
		assert.Equal(t, catalog.CategorySignature, tag.Category)
	}

	resp = ts.api.Get("/api/v1/smart-tags/builtin?category=signature")
	env = decodeEnvelope[ListSmartTagsResponse](t, resp)
	assert.Empty(t, env.Data.Tags)
}

func TestSmartTagCRUD(t *testing.T) {
	ts := setupTestServer(t)

	created := createBadgeTag(t, ts)
	assert.Equal(t, "Badge Number", created.DisplayName)
	assert.Equal(t, 1, created.Version)
	assert.True(t, created.IsActive)
	assert.False(t, created.IsSystem)

	resp := ts.api.Get("/api/v1/smart-tags/" + created.ID)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, created.Tag, decodeEnvelope[SmartTagResponse](t, resp).Data.Tag)

	resp = ts.api.Patch("/api/v1/smart-tags/"+created.ID, map[string]any{
		"description":      "Building access badge",
		"expected_version": 1,
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	updated := decodeEnvelope[SmartTagResponse](t, resp).Data
	assert.Equal(t, "Building access badge", updated.Description)
	assert.Equal(t, 2, updated.Version)

	resp = ts.api.Delete("/api/v1/smart-tags/" + created.ID)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "Smart tag deleted", decodeEnvelope[MessageResponse](t, resp).Data.Message)

	resp = ts.api.Get("/api/v1/smart-tags/" + created.ID)
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Equal(t, "NOT_FOUND", decodeEnvelope[any](t, resp).Code)
}

func TestCreateSmartTag_DuplicateActiveToken(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/smart-tags", map[string]any{
		"tag":      "<<First Name>>",
		"field":    "first_name",
		"source":   "employee",
		"category": "Custom",
	})

	assert.Equal(t, http.StatusConflict, resp.Code)
	env := decodeEnvelope[any](t, resp)
	assert.False(t, env.Success)
	assert.Equal(t, "ALREADY_EXISTS", env.Code)
}

func TestCreateSmartTag_Validation(t *testing.T) {
	ts := setupTestServer(t)

	tests := []struct {
		name   string
		body   map[string]any
		status int
	}{
		{
			name:   "malformed token",
			body:   map[string]any{"tag": "Badge", "field": "employee_number", "source": "employee", "category": "Custom"},
			status: http.StatusBadRequest,
		},
		{
			name:   "field not in source",
			body:   map[string]any{"tag": "<<Badge>>", "field": "company_name", "source": "employee", "category": "Custom"},
			status: http.StatusBadRequest,
		},
		{
			name:   "unknown source",
			body:   map[string]any{"tag": "<<Badge>>", "field": "employee_number", "source": "payroll", "category": "Custom"},
			status: http.StatusBadRequest,
		},
		{
			name:   "missing field property",
			body:   map[string]any{"tag": "<<Badge>>", "source": "employee", "category": "Custom"},
			status: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := ts.api.Post("/api/v1/smart-tags", tt.body)
			assert.Equal(t, tt.status, resp.Code, resp.Body.String())
			env := decodeEnvelope[any](t, resp)
			assert.False(t, env.Success)
			assert.Equal(t, "VALIDATION", env.Code)
			assert.NotEmpty(t, env.Details)
		})
	}
}

func TestUpdateSmartTag_StaleVersion(t *testing.T) {
	ts := setupTestServer(t)
	created := createBadgeTag(t, ts)

	resp := ts.api.Patch("/api/v1/smart-tags/"+created.ID, map[string]any{"category": "Access"})
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Patch("/api/v1/smart-tags/"+created.ID, map[string]any{
		"category":         "Security",
		"expected_version": 1,
	})
	assert.Equal(t, http.StatusConflict, resp.Code)
	assert.Equal(t, "CONFLICT", decodeEnvelope[any](t, resp).Code)
}

func TestDeleteSmartTag_SystemForbidden(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Delete("/api/v1/smart-tags/" + catalog.SystemTagID(catalog.FieldFirstName))

	assert.Equal(t, http.StatusForbidden, resp.Code)
	assert.Equal(t, "FORBIDDEN", decodeEnvelope[any](t, resp).Code)
}

func TestListSmartTags_Deactivation(t *testing.T) {
	ts := setupTestServer(t)
	created := createBadgeTag(t, ts)

	resp := ts.api.Patch("/api/v1/smart-tags/"+created.ID, map[string]any{"is_active": false})
	require.Equal(t, http.StatusOK, resp.Code)

	active := decodeEnvelope[ListSmartTagsResponse](t, ts.api.Get("/api/v1/smart-tags")).Data.Tags
	all := decodeEnvelope[ListSmartTagsResponse](t, ts.api.Get("/api/v1/smart-tags?include_inactive=true")).Data.Tags

	assert.Len(t, active, len(catalog.Builtin()))
	assert.Len(t, all, len(catalog.Builtin())+1)
}

func TestListSmartTagCategories(t *testing.T) {
	ts := setupTestServer(t)
	createBadgeTag(t, ts)

	resp := ts.api.Get("/api/v1/smart-tags/categories")

	env := decodeEnvelope[CategoriesResponse](t, resp)
	assert.Equal(t, []string{
		catalog.CategoryEmployee,
		catalog.CategoryEmployment,
		catalog.CategoryCompensation,
		catalog.CategoryCompany,
		catalog.CategorySignature,
		catalog.CategoryDate,
		"Custom",
	}, env.Data.Categories)
}

func TestSearchSmartTags(t *testing.T) {
	ts := setupTestServer(t)
	createBadgeTag(t, ts)

	resp := ts.api.Get("/api/v1/smart-tags/search?q=badge")

	require.Equal(t, http.StatusOK, resp.Code)
	hits := decodeEnvelope[SearchSmartTagsResponse](t, resp).Data.Hits
	require.NotEmpty(t, hits)
	assert.Equal(t, "<<Badge Number>>", hits[0].Tag)
}

func TestSearchSmartTags_Filters(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/smart-tags/search?q=salary&category=Compensation&limit=1")

	hits := decodeEnvelope[SearchSmartTagsResponse](t, resp).Data.Hits
	require.Len(t, hits, 1)
	assert.Equal(t, catalog.CategoryCompensation, hits[0].Category)
}

func TestSearchSmartTags_RequiresQuery(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/smart-tags/search")

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	assert.Equal(t, "VALIDATION", decodeEnvelope[[]search.Hit](t, resp).Code)
}
