// Package di provides dependency injection configuration for the document service.
package di

import (
	"github.com/samber/do/v2"

	"github.com/peoplehub/hrdocs/internal/config"
	"github.com/peoplehub/hrdocs/internal/di/providers"
	"github.com/peoplehub/hrdocs/internal/logger"
	"github.com/peoplehub/hrdocs/internal/render"
	"github.com/peoplehub/hrdocs/internal/service"
	"github.com/peoplehub/hrdocs/internal/validation"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideValidator)

	// Storage layer
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideArchive)
	do.Provide(injector, providers.ProvideTemplateLibrary)

	// Search layer
	do.Provide(injector, providers.ProvideSearchIndex)

	// Rendering and business services
	do.Provide(injector, providers.ProvideRenderer)
	do.Provide(injector, providers.ProvideCatalogService)
	do.Provide(injector, providers.ProvideDocumentService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns once the HTTP server is listening.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	if _, err := do.Invoke[*config.Config](injector); err != nil {
		return err
	}
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*validation.Validator](injector)

	if _, err := do.Invoke[*providers.StoreHandle](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.ArchiveHandle](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.TemplateLibraryHandle](injector); err != nil {
		return err
	}
	_ = do.MustInvoke[*providers.SearchIndexHandle](injector)

	_ = do.MustInvoke[*render.Renderer](injector)
	if _, err := do.Invoke[*service.CatalogService](injector); err != nil {
		return err
	}
	_ = do.MustInvoke[*service.DocumentService](injector)

	// Server
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
