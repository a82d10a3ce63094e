package api

import (
	"github.com/peoplehub/hrdocs/internal/search"
	"github.com/peoplehub/hrdocs/internal/service"
	"github.com/peoplehub/hrdocs/internal/templates"
)

// Services groups the business services and components used by the API server.
type Services struct {
	Catalog   *service.CatalogService
	Document  *service.DocumentService
	Search    *search.TagIndex   // Reported by the health check
	Templates *templates.Library // Reported by the health check
}
