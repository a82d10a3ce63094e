package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/peoplehub/hrdocs/internal/domain"
	"github.com/peoplehub/hrdocs/internal/search"
	"github.com/peoplehub/hrdocs/internal/service"
)

func (s *Server) registerSmartTagRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listBuiltinSmartTags",
		Method:      http.MethodGet,
		Path:        "/api/v1/smart-tags/builtin",
		Summary:     "List built-in smart tags",
		Description: "Returns the compiled-in catalog, optionally filtered to one category",
		Tags:        []string{"Smart Tags"},
	}, s.handleListBuiltinSmartTags)

	huma.Register(s.api, huma.Operation{
		OperationID: "listSmartTagCategories",
		Method:      http.MethodGet,
		Path:        "/api/v1/smart-tags/categories",
		Summary:     "List smart tag categories",
		Description: "Returns the distinct categories of the active catalog in display order",
		Tags:        []string{"Smart Tags"},
	}, s.handleListSmartTagCategories)

	huma.Register(s.api, huma.Operation{
		OperationID: "searchSmartTags",
		Method:      http.MethodGet,
		Path:        "/api/v1/smart-tags/search",
		Summary:     "Search smart tags",
		Description: "Full-text search over active tag names, fields and descriptions",
		Tags:        []string{"Smart Tags"},
	}, s.handleSearchSmartTags)

	huma.Register(s.api, huma.Operation{
		OperationID: "listSmartTags",
		Method:      http.MethodGet,
		Path:        "/api/v1/smart-tags",
		Summary:     "List smart tags",
		Description: "Returns the active catalog ordered by category then tag",
		Tags:        []string{"Smart Tags"},
	}, s.handleListSmartTags)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createSmartTag",
		Method:        http.MethodPost,
		Path:          "/api/v1/smart-tags",
		Summary:       "Create smart tag",
		Description:   "Adds a custom tag bound to a source field",
		Tags:          []string{"Smart Tags"},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateSmartTag)

	huma.Register(s.api, huma.Operation{
		OperationID: "getSmartTag",
		Method:      http.MethodGet,
		Path:        "/api/v1/smart-tags/{id}",
		Summary:     "Get smart tag",
		Description: "Returns a smart tag by ID",
		Tags:        []string{"Smart Tags"},
	}, s.handleGetSmartTag)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateSmartTag",
		Method:      http.MethodPatch,
		Path:        "/api/v1/smart-tags/{id}",
		Summary:     "Update smart tag",
		Description: "Partially updates a smart tag. Send expected_version to reject stale writes.",
		Tags:        []string{"Smart Tags"},
	}, s.handleUpdateSmartTag)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteSmartTag",
		Method:      http.MethodDelete,
		Path:        "/api/v1/smart-tags/{id}",
		Summary:     "Delete smart tag",
		Description: "Deletes a custom smart tag. System tags cannot be deleted, only deactivated.",
		Tags:        []string{"Smart Tags"},
	}, s.handleDeleteSmartTag)
}

// === DTOs ===

// SmartTagResponse contains smart tag data in API responses.
type SmartTagResponse struct {
	ID          string    `json:"id" doc:"Smart tag ID"`
	Tag         string    `json:"tag" doc:"Literal token, e.g. <<First Name>>"`
	DisplayName string    `json:"display_name" doc:"Token without delimiters"`
	Field       string    `json:"field" doc:"Bound source field"`
	Source      string    `json:"source" doc:"Record group the value comes from"`
	Category    string    `json:"category" doc:"Display category"`
	Description string    `json:"description" doc:"Help text"`
	IsSystem    bool      `json:"is_system" doc:"Built-in tag, cannot be deleted"`
	IsActive    bool      `json:"is_active" doc:"Participates in rendering"`
	Version     int       `json:"version" doc:"Optimistic locking version"`
	CreatedAt   time.Time `json:"created_at" doc:"Creation time"`
	UpdatedAt   time.Time `json:"updated_at" doc:"Last update time"`
}

func toSmartTagResponse(t *domain.SmartTag) SmartTagResponse {
	return SmartTagResponse{
		ID:          t.ID,
		Tag:         t.Tag,
		DisplayName: t.DisplayName(),
		Field:       t.Field,
		Source:      string(t.Source),
		Category:    t.Category,
		Description: t.Description,
		IsSystem:    t.IsSystem,
		IsActive:    t.IsActive,
		Version:     t.Version,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func toSmartTagResponses(tags []domain.SmartTag) []SmartTagResponse {
	resp := make([]SmartTagResponse, len(tags))
	for i := range tags {
		resp[i] = toSmartTagResponse(&tags[i])
	}
	return resp
}

// ListSmartTagsResponse contains a list of smart tags.
type ListSmartTagsResponse struct {
	Tags []SmartTagResponse `json:"tags" doc:"Smart tags"`
}

// ListSmartTagsOutput wraps the list response for Huma.
type ListSmartTagsOutput struct {
	Body ListSmartTagsResponse
}

// ListBuiltinSmartTagsInput contains parameters for listing built-in tags.
type ListBuiltinSmartTagsInput struct {
	Category string `query:"category" doc:"Exact category name to filter by"`
}

// ListSmartTagsInput contains parameters for listing persisted tags.
type ListSmartTagsInput struct {
	IncludeInactive bool `query:"include_inactive" doc:"Include deactivated tags"`
}

// CategoriesResponse lists category names.
type CategoriesResponse struct {
	Categories []string `json:"categories" doc:"Category names in display order"`
}

// CategoriesOutput wraps the categories response for Huma.
type CategoriesOutput struct {
	Body CategoriesResponse
}

// SearchSmartTagsInput contains parameters for searching tags.
type SearchSmartTagsInput struct {
	Query    string `query:"q" required:"true" minLength:"1" maxLength:"200" doc:"Search text"`
	Category string `query:"category" doc:"Exact category filter"`
	Source   string `query:"source" doc:"Exact source filter"`
	Limit    int    `query:"limit" minimum:"1" maximum:"100" default:"20" doc:"Maximum results"`
}

// SearchSmartTagsResponse contains search hits.
type SearchSmartTagsResponse struct {
	Hits []search.Hit `json:"hits" doc:"Matching tags, best first"`
}

// SearchSmartTagsOutput wraps the search response for Huma.
type SearchSmartTagsOutput struct {
	Body SearchSmartTagsResponse
}

// CreateSmartTagRequest is the request body for creating a smart tag.
type CreateSmartTagRequest struct {
	Tag         string `json:"tag" doc:"Literal token, e.g. <<Badge Number>>"`
	Field       string `json:"field" doc:"Source field to bind"`
	Source      string `json:"source" doc:"Record group of the field"`
	Category    string `json:"category" doc:"Display category"`
	Description string `json:"description,omitempty" doc:"Help text"`
	IsSystem    bool   `json:"is_system,omitempty" doc:"Protect the tag from deletion"`
	IsActive    *bool  `json:"is_active,omitempty" doc:"Defaults to true"`
}

// CreateSmartTagInput wraps the create request for Huma.
type CreateSmartTagInput struct {
	Body CreateSmartTagRequest
}

// SmartTagOutput wraps a smart tag response for Huma.
type SmartTagOutput struct {
	Body SmartTagResponse
}

// SmartTagIDInput identifies a smart tag.
type SmartTagIDInput struct {
	ID string `path:"id" doc:"Smart tag ID"`
}

// UpdateSmartTagRequest is the request body for updating a smart tag.
type UpdateSmartTagRequest struct {
	Tag             *string `json:"tag,omitempty" doc:"Literal token"`
	Field           *string `json:"field,omitempty" doc:"Source field to bind"`
	Source          *string `json:"source,omitempty" doc:"Record group of the field"`
	Category        *string `json:"category,omitempty" doc:"Display category"`
	Description     *string `json:"description,omitempty" doc:"Help text"`
	IsActive        *bool   `json:"is_active,omitempty" doc:"Participates in rendering"`
	ExpectedVersion *int    `json:"expected_version,omitempty" doc:"Reject the update unless this is the stored version"`
}

// UpdateSmartTagInput wraps the update request for Huma.
type UpdateSmartTagInput struct {
	ID   string `path:"id" doc:"Smart tag ID"`
	Body UpdateSmartTagRequest
}

// MessageResponse is a plain acknowledgement.
type MessageResponse struct {
	Message string `json:"message" doc:"Result message"`
}

// MessageOutput wraps a message response for Huma.
type MessageOutput struct {
	Body MessageResponse
}

// === Handlers ===

func (s *Server) handleListBuiltinSmartTags(_ context.Context, input *ListBuiltinSmartTagsInput) (*ListSmartTagsOutput, error) {
	tags := s.services.Catalog.BuiltinTags(input.Category)
	return &ListSmartTagsOutput{Body: ListSmartTagsResponse{Tags: toSmartTagResponses(tags)}}, nil
}

func (s *Server) handleListSmartTags(ctx context.Context, input *ListSmartTagsInput) (*ListSmartTagsOutput, error) {
	tags, err := s.services.Catalog.ListTags(ctx, input.IncludeInactive)
	if err != nil {
		return nil, err
	}
	return &ListSmartTagsOutput{Body: ListSmartTagsResponse{Tags: toSmartTagResponses(tags)}}, nil
}

func (s *Server) handleListSmartTagCategories(ctx context.Context, _ *struct{}) (*CategoriesOutput, error) {
	categories, err := s.services.Catalog.Categories(ctx)
	if err != nil {
		return nil, err
	}
	return &CategoriesOutput{Body: CategoriesResponse{Categories: categories}}, nil
}

func (s *Server) handleSearchSmartTags(ctx context.Context, input *SearchSmartTagsInput) (*SearchSmartTagsOutput, error) {
	hits, err := s.services.Catalog.Search(ctx, search.Params{
		Query:    input.Query,
		Category: input.Category,
		Source:   input.Source,
		Limit:    input.Limit,
	})
	if err != nil {
		return nil, err
	}
	return &SearchSmartTagsOutput{Body: SearchSmartTagsResponse{Hits: hits}}, nil
}

func (s *Server) handleCreateSmartTag(ctx context.Context, input *CreateSmartTagInput) (*SmartTagOutput, error) {
	t, err := s.services.Catalog.CreateTag(ctx, service.CreateSmartTagInput{
		Tag:         input.Body.Tag,
		Field:       input.Body.Field,
		Source:      input.Body.Source,
		Category:    input.Body.Category,
		Description: input.Body.Description,
		IsSystem:    input.Body.IsSystem,
		IsActive:    input.Body.IsActive,
	})
	if err != nil {
		return nil, err
	}
	return &SmartTagOutput{Body: toSmartTagResponse(t)}, nil
}

func (s *Server) handleGetSmartTag(ctx context.Context, input *SmartTagIDInput) (*SmartTagOutput, error) {
	t, err := s.services.Catalog.GetTag(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &SmartTagOutput{Body: toSmartTagResponse(t)}, nil
}

func (s *Server) handleUpdateSmartTag(ctx context.Context, input *UpdateSmartTagInput) (*SmartTagOutput, error) {
	t, err := s.services.Catalog.UpdateTag(ctx, input.ID, service.UpdateSmartTagInput{
		Tag:             input.Body.Tag,
		Field:           input.Body.Field,
		Source:          input.Body.Source,
		Category:        input.Body.Category,
		Description:     input.Body.Description,
		IsActive:        input.Body.IsActive,
		ExpectedVersion: input.Body.ExpectedVersion,
	})
	if err != nil {
		return nil, err
	}
	return &SmartTagOutput{Body: toSmartTagResponse(t)}, nil
}

func (s *Server) handleDeleteSmartTag(ctx context.Context, input *SmartTagIDInput) (*MessageOutput, error) {
	if err := s.services.Catalog.DeleteTag(ctx, input.ID); err != nil {
		return nil, err
	}
	return &MessageOutput{Body: MessageResponse{Message: "Smart tag deleted"}}, nil
}
