package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/peoplehub/hrdocs/internal/templates"
)

func (s *Server) registerTemplateRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listTemplates",
		Method:      http.MethodGet,
		Path:        "/api/v1/templates",
		Summary:     "List templates",
		Description: "Returns the template library without bodies",
		Tags:        []string{"Templates"},
	}, s.handleListTemplates)

	huma.Register(s.api, huma.Operation{
		OperationID: "getTemplate",
		Method:      http.MethodGet,
		Path:        "/api/v1/templates/{name}",
		Summary:     "Get template",
		Description: "Returns one template including its body",
		Tags:        []string{"Templates"},
	}, s.handleGetTemplate)
}

// TemplatesResponse lists library templates.
type TemplatesResponse struct {
	Templates []templates.Template `json:"templates" doc:"Templates sorted by name"`
}

// TemplatesOutput wraps the templates response for Huma.
type TemplatesOutput struct {
	Body TemplatesResponse
}

// TemplateNameInput identifies a library template.
type TemplateNameInput struct {
	Name string `path:"name" doc:"Template file name"`
}

// TemplateOutput wraps one template for Huma.
type TemplateOutput struct {
	Body *templates.Template
}

func (s *Server) handleListTemplates(_ context.Context, _ *struct{}) (*TemplatesOutput, error) {
	return &TemplatesOutput{Body: TemplatesResponse{Templates: s.services.Document.Templates()}}, nil
}

func (s *Server) handleGetTemplate(_ context.Context, input *TemplateNameInput) (*TemplateOutput, error) {
	tmpl, err := s.services.Templates.Get(input.Name)
	if err != nil {
		return nil, err
	}
	return &TemplateOutput{Body: tmpl}, nil
}
