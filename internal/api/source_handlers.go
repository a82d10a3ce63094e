package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/peoplehub/hrdocs/internal/domain"
)

func (s *Server) registerSourceRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listSourceFields",
		Method:      http.MethodGet,
		Path:        "/api/v1/sources/{source}/fields",
		Summary:     "List source fields",
		Description: "Returns the fields a smart tag of the given source can bind to. Unknown sources have no fields.",
		Tags:        []string{"Smart Tags"},
	}, s.handleListSourceFields)
}

// ListSourceFieldsInput contains parameters for listing source fields.
type ListSourceFieldsInput struct {
	Source string `path:"source" doc:"Tag source, e.g. employee or company"`
}

// SourceFieldsResponse lists the fields of one source.
type SourceFieldsResponse struct {
	Source string               `json:"source" doc:"Tag source"`
	Fields []domain.SourceField `json:"fields" doc:"Fields in display order"`
}

// SourceFieldsOutput wraps the source fields response for Huma.
type SourceFieldsOutput struct {
	Body SourceFieldsResponse
}

func (s *Server) handleListSourceFields(_ context.Context, input *ListSourceFieldsInput) (*SourceFieldsOutput, error) {
	fields := s.services.Catalog.FieldsForSource(input.Source)
	if fields == nil {
		fields = []domain.SourceField{}
	}
	return &SourceFieldsOutput{
		Body: SourceFieldsResponse{Source: input.Source, Fields: fields},
	}, nil
}
