package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/peoplehub/hrdocs/internal/domain"
	"github.com/peoplehub/hrdocs/internal/service"
)

func (s *Server) registerDocumentRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "resolveTagData",
		Method:      http.MethodPost,
		Path:        "/api/v1/documents/resolve",
		Summary:     "Resolve tag data",
		Description: "Returns every field value and active tag display name for an employee or inline records",
		Tags:        []string{"Documents"},
	}, s.handleResolveTagData)

	huma.Register(s.api, huma.Operation{
		OperationID: "renderTemplate",
		Method:      http.MethodPost,
		Path:        "/api/v1/documents/render",
		Summary:     "Render template",
		Description: "Renders a library template or inline body. Strict renders fail with 422 when tokens remain.",
		Tags:        []string{"Documents"},
		Middlewares: huma.Middlewares{RateLimitMiddleware(s.api, s.renderLimiter, s.logger)},
	}, s.handleRenderTemplate)

	huma.Register(s.api, huma.Operation{
		OperationID: "getDocument",
		Method:      http.MethodGet,
		Path:        "/api/v1/documents/{id}",
		Summary:     "Get archived document",
		Description: "Returns a previously archived render",
		Tags:        []string{"Documents"},
	}, s.handleGetDocument)

	huma.Register(s.api, huma.Operation{
		OperationID: "listEmployeeDocuments",
		Method:      http.MethodGet,
		Path:        "/api/v1/employees/{id}/documents",
		Summary:     "List employee documents",
		Description: "Returns an employee's archived documents, newest first",
		Tags:        []string{"Documents"},
	}, s.handleListEmployeeDocuments)
}

// === DTOs ===

// DataRequest selects the records to render from.
type DataRequest struct {
	EmployeeID string             `json:"employee_id,omitempty" doc:"Stored employee to render for"`
	Data       *domain.RenderData `json:"data,omitempty" doc:"Inline records, used when no employee_id is given"`
	EndDate    *string            `json:"end_date,omitempty" doc:"Overrides the employee end date"`
	ExpiryDays *int               `json:"expiry_days,omitempty" doc:"Offer validity window in days"`
}

func (r DataRequest) toService() service.DataInput {
	return service.DataInput{
		EmployeeID: r.EmployeeID,
		Data:       r.Data,
		EndDate:    r.EndDate,
		ExpiryDays: r.ExpiryDays,
	}
}

// ResolveInput wraps the resolve request for Huma.
type ResolveInput struct {
	Body DataRequest
}

// ResolveResponse contains the resolved value map.
type ResolveResponse struct {
	Values map[string]string `json:"values" doc:"Field identifiers and tag display names mapped to display values"`
}

// ResolveOutput wraps the resolve response for Huma.
type ResolveOutput struct {
	Body ResolveResponse
}

// RenderRequest is the request body for rendering a template.
type RenderRequest struct {
	DataRequest
	TemplateName string `json:"template_name,omitempty" doc:"Library template file name"`
	Body         string `json:"body,omitempty" doc:"Inline template text, used when no template_name is given"`
	Format       string `json:"format,omitempty" doc:"Output format: html (default) or markdown"`
	Strict       *bool  `json:"strict,omitempty" doc:"Fail when tokens remain unresolved"`
	Archive      bool   `json:"archive,omitempty" doc:"Store the rendered document"`
}

// RenderInput wraps the render request for Huma.
type RenderInput struct {
	Body RenderRequest
}

// RenderResponse contains a rendered document.
type RenderResponse struct {
	DocumentID   string   `json:"document_id,omitempty" doc:"Archive ID when archived"`
	TemplateName string   `json:"template_name,omitempty" doc:"Library template used"`
	Format       string   `json:"format" doc:"Output format"`
	Body         string   `json:"body" doc:"Rendered text"`
	Unresolved   []string `json:"unresolved" doc:"Tokens left in the output"`
}

// RenderOutput wraps the render response for Huma.
type RenderOutput struct {
	Body RenderResponse
}

// DocumentIDInput identifies an archived document.
type DocumentIDInput struct {
	ID string `path:"id" doc:"Document ID"`
}

// DocumentOutput wraps an archived document for Huma.
type DocumentOutput struct {
	Body *domain.GeneratedDocument
}

// EmployeeIDInput identifies an employee.
type EmployeeIDInput struct {
	ID string `path:"id" doc:"Employee ID"`
}

// DocumentsResponse lists archived documents.
type DocumentsResponse struct {
	Documents []*domain.GeneratedDocument `json:"documents" doc:"Archived documents, newest first"`
}

// DocumentsOutput wraps the documents response for Huma.
type DocumentsOutput struct {
	Body DocumentsResponse
}

// === Handlers ===

func (s *Server) handleResolveTagData(ctx context.Context, input *ResolveInput) (*ResolveOutput, error) {
	values, err := s.services.Document.Resolve(ctx, input.Body.toService())
	if err != nil {
		return nil, err
	}
	return &ResolveOutput{Body: ResolveResponse{Values: values}}, nil
}

func (s *Server) handleRenderTemplate(ctx context.Context, input *RenderInput) (*RenderOutput, error) {
	out, err := s.services.Document.Render(ctx, service.RenderInput{
		DataInput:    input.Body.toService(),
		TemplateName: input.Body.TemplateName,
		Body:         input.Body.Body,
		Format:       domain.DocumentFormat(input.Body.Format),
		Strict:       input.Body.Strict,
		Archive:      input.Body.Archive,
	})
	if err != nil {
		return nil, err
	}
	return &RenderOutput{
		Body: RenderResponse{
			DocumentID:   out.DocumentID,
			TemplateName: out.TemplateName,
			Format:       string(out.Format),
			Body:         out.Body,
			Unresolved:   out.Unresolved,
		},
	}, nil
}

func (s *Server) handleGetDocument(ctx context.Context, input *DocumentIDInput) (*DocumentOutput, error) {
	doc, err := s.services.Document.GetDocument(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &DocumentOutput{Body: doc}, nil
}

func (s *Server) handleListEmployeeDocuments(ctx context.Context, input *EmployeeIDInput) (*DocumentsOutput, error) {
	docs, err := s.services.Document.ListDocuments(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &DocumentsOutput{Body: DocumentsResponse{Documents: docs}}, nil
}
