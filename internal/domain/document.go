package domain

import "time"

// DocumentFormat selects how a rendered body is returned.
type DocumentFormat string

// Supported output formats.
const (
	FormatHTML     DocumentFormat = "html"
	FormatMarkdown DocumentFormat = "markdown"
)

// GeneratedDocument is an archived render result.
type GeneratedDocument struct {
	ID           string         `json:"id"`
	EmployeeID   string         `json:"employee_id,omitempty"`
	TemplateName string         `json:"template_name,omitempty"`
	Format       DocumentFormat `json:"format"`
	Body         string         `json:"body"`
	Unresolved   []string       `json:"unresolved,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
}
