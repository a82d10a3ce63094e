package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/peoplehub/hrdocs/internal/config"
	"github.com/peoplehub/hrdocs/internal/logger"
	"github.com/peoplehub/hrdocs/internal/render"
	"github.com/peoplehub/hrdocs/internal/resolver"
	"github.com/peoplehub/hrdocs/internal/service"
	"github.com/peoplehub/hrdocs/internal/validation"
)

// ProvideValidator provides the request validator.
func ProvideValidator(i do.Injector) (*validation.Validator, error) {
	return validation.New(), nil
}

// ProvideRenderer provides the template renderer configured from the render settings.
func ProvideRenderer(i do.Injector) (*render.Renderer, error) {
	cfg := do.MustInvoke[*config.Config](i)

	res := resolver.New(
		resolver.WithExpiryDays(cfg.Render.OfferExpiryDays),
		resolver.WithLogoMaxHeight(cfg.Render.LogoMaxHeight),
	)
	return render.New(res), nil
}

// ProvideCatalogService provides the smart tag catalog service. System tags
// are seeded and the catalog is loaded before the service is handed out.
func ProvideCatalogService(i do.Injector) (*service.CatalogService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	v := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	svc := service.NewCatalogService(storeHandle.Store, indexHandle.TagIndex, v, log.Component("catalog"))

	ctx := context.Background()
	added, err := svc.SeedSystemTags(ctx)
	if err != nil {
		return nil, err
	}
	tags, err := svc.ActiveTags(ctx)
	if err != nil {
		return nil, err
	}

	log.Info("Smart tag catalog ready", "seeded", added, "active", len(tags))

	return svc, nil
}

// ProvideDocumentService provides the document rendering service.
func ProvideDocumentService(i do.Injector) (*service.DocumentService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	archiveHandle := do.MustInvoke[*ArchiveHandle](i)
	libraryHandle := do.MustInvoke[*TemplateLibraryHandle](i)
	catalogService := do.MustInvoke[*service.CatalogService](i)
	renderer := do.MustInvoke[*render.Renderer](i)
	v := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewDocumentService(service.DocumentServiceConfig{
		Records:       storeHandle.Store,
		Catalog:       catalogService,
		Renderer:      renderer,
		Library:       libraryHandle.Library,
		Archive:       archiveHandle.Archive,
		Validator:     v,
		StrictDefault: cfg.Render.StrictDefault,
		ArchiveAll:    cfg.Data.ArchiveDocuments,
		Logger:        log.Component("documents"),
	}), nil
}
