package service

import (
	"context"
	"log/slog"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"github.com/peoplehub/hrdocs/internal/archive"
	"github.com/peoplehub/hrdocs/internal/domain"
	domainerrors "github.com/peoplehub/hrdocs/internal/errors"
	"github.com/peoplehub/hrdocs/internal/render"
	"github.com/peoplehub/hrdocs/internal/store"
	"github.com/peoplehub/hrdocs/internal/templates"
	"github.com/peoplehub/hrdocs/internal/validation"
)

// DataInput selects the records a document is rendered from: a stored
// employee, or inline records when nothing is persisted yet (offer candidates).
type DataInput struct {
	EmployeeID string             `json:"employee_id" validate:"required_without=Data"`
	Data       *domain.RenderData `json:"data" validate:"required_without=EmployeeID"`
	// EndDate and ExpiryDays override whatever the records carry.
	EndDate    *string `json:"end_date"`
	ExpiryDays *int    `json:"expiry_days" validate:"omitempty,min=1,max=365"`
}

// RenderInput is one render request. Exactly one of TemplateName and Body is set.
type RenderInput struct {
	DataInput
	TemplateName string                `json:"template_name" validate:"required_without=Body,excluded_with=Body"`
	Body         string                `json:"body" validate:"required_without=TemplateName"`
	Format       domain.DocumentFormat `json:"format" validate:"omitempty,oneof=html markdown"`
	Strict       *bool                 `json:"strict"`
	Archive      bool                  `json:"archive"`
}

// RenderOutput is a rendered document.
type RenderOutput struct {
	DocumentID   string                `json:"document_id,omitempty"`
	TemplateName string                `json:"template_name,omitempty"`
	Format       domain.DocumentFormat `json:"format"`
	Body         string                `json:"body"`
	Unresolved   []string              `json:"unresolved"`
}

// DocumentService renders templates for employees and archives the results.
type DocumentService struct {
	records       store.RecordStore
	catalog       *CatalogService
	renderer      *render.Renderer
	library       *templates.Library
	archive       *archive.Archive
	validator     *validation.Validator
	strictDefault bool
	archiveAll    bool
	logger        *slog.Logger
}

// DocumentServiceConfig holds the collaborators of a DocumentService.
type DocumentServiceConfig struct {
	Records       store.RecordStore
	Catalog       *CatalogService
	Renderer      *render.Renderer
	Library       *templates.Library
	Archive       *archive.Archive
	Validator     *validation.Validator
	StrictDefault bool
	// ArchiveAll archives every render regardless of the request.
	ArchiveAll bool
	Logger     *slog.Logger
}

// NewDocumentService creates a document service.
func NewDocumentService(cfg DocumentServiceConfig) *DocumentService {
	return &DocumentService{
		records:       cfg.Records,
		catalog:       cfg.Catalog,
		renderer:      cfg.Renderer,
		library:       cfg.Library,
		archive:       cfg.Archive,
		validator:     cfg.Validator,
		strictDefault: cfg.StrictDefault,
		archiveAll:    cfg.ArchiveAll,
		logger:        cfg.Logger,
	}
}

// Resolve returns the value map a render of in would substitute: every field
// identifier plus the display name of each active tag.
func (s *DocumentService) Resolve(ctx context.Context, in DataInput) (map[string]string, error) {
	if err := s.validator.Validate(in); err != nil {
		return nil, err
	}
	data, err := s.renderData(ctx, in)
	if err != nil {
		return nil, err
	}
	tags, err := s.catalog.ActiveTags(ctx)
	if err != nil {
		return nil, err
	}
	return s.renderer.Resolver().Resolve(*data, tags), nil
}

// Render renders a library template or an inline body.
//
// In strict mode a document that still contains tokens is rejected with the
// list of offending tokens; otherwise the list is returned alongside the body.
func (s *DocumentService) Render(ctx context.Context, in RenderInput) (*RenderOutput, error) {
	if err := s.validator.Validate(in); err != nil {
		return nil, err
	}

	body, plainText, err := s.templateBody(in)
	if err != nil {
		return nil, err
	}
	data, err := s.renderData(ctx, in.DataInput)
	if err != nil {
		return nil, err
	}
	tags, err := s.catalog.ActiveTags(ctx)
	if err != nil {
		return nil, err
	}

	result := s.renderer.RenderStrict(body, *data, tags)

	strict := s.strictDefault
	if in.Strict != nil {
		strict = *in.Strict
	}
	if strict && len(result.Unresolved) > 0 {
		return nil, domainerrors.Unresolved(result.Unresolved)
	}

	out := &RenderOutput{
		TemplateName: in.TemplateName,
		Format:       domain.FormatHTML,
		Body:         result.Body,
		Unresolved:   result.Unresolved,
	}
	if in.Format == domain.FormatMarkdown {
		out.Format = domain.FormatMarkdown
		if !plainText {
			md, err := htmltomarkdown.ConvertString(result.Body)
			if err != nil {
				return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "convert document to markdown")
			}
			out.Body = md
		}
	}

	if in.Archive || s.archiveAll {
		doc := &domain.GeneratedDocument{
			EmployeeID:   in.EmployeeID,
			TemplateName: in.TemplateName,
			Format:       out.Format,
			Body:         out.Body,
			Unresolved:   out.Unresolved,
		}
		if err := s.archive.Save(ctx, doc); err != nil {
			return nil, err
		}
		out.DocumentID = doc.ID
	}

	s.logger.Info("document rendered",
		"template", in.TemplateName,
		"employee_id", in.EmployeeID,
		"format", out.Format,
		"unresolved", len(out.Unresolved),
		"document_id", out.DocumentID,
	)
	return out, nil
}

// GetDocument returns an archived document.
func (s *DocumentService) GetDocument(ctx context.Context, docID string) (*domain.GeneratedDocument, error) {
	return s.archive.Get(ctx, docID)
}

// ListDocuments returns an employee's archived documents, newest first.
func (s *DocumentService) ListDocuments(ctx context.Context, employeeID string) ([]*domain.GeneratedDocument, error) {
	if _, err := s.records.GetEmployee(ctx, employeeID); err != nil {
		return nil, err
	}
	return s.archive.ListForEmployee(ctx, employeeID)
}

// Templates lists the template library.
func (s *DocumentService) Templates() []templates.Template {
	return s.library.List()
}

// templateBody returns the text to render and whether it is plain text.
func (s *DocumentService) templateBody(in RenderInput) (string, bool, error) {
	if in.TemplateName == "" {
		return in.Body, false, nil
	}
	tmpl, err := s.library.Get(in.TemplateName)
	if err != nil {
		return "", false, err
	}
	return tmpl.Body, tmpl.Format == templates.FormatText, nil
}

func (s *DocumentService) renderData(ctx context.Context, in DataInput) (*domain.RenderData, error) {
	var data domain.RenderData
	if in.EmployeeID != "" {
		loaded, err := s.records.LoadRenderData(ctx, in.EmployeeID)
		if err != nil {
			return nil, err
		}
		data = *loaded
	} else {
		data = *in.Data
	}

	if in.EndDate != nil {
		data.EndDate = in.EndDate
	}
	if in.ExpiryDays != nil {
		data.ExpiryDays = in.ExpiryDays
	}
	return &data, nil
}
