package providers

import (
	"fmt"

	"github.com/samber/do/v2"

	"github.com/peoplehub/hrdocs/internal/archive"
	"github.com/peoplehub/hrdocs/internal/config"
	"github.com/peoplehub/hrdocs/internal/logger"
	"github.com/peoplehub/hrdocs/internal/templates"
)

// ArchiveHandle wraps the document archive with shutdown capability.
type ArchiveHandle struct {
	*archive.Archive
}

// Shutdown implements do.Shutdownable.
func (h *ArchiveHandle) Shutdown() error {
	return h.Close()
}

// ProvideArchive provides the badger-backed archive of rendered documents.
func ProvideArchive(i do.Injector) (*ArchiveHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	arch, err := archive.Open(cfg.Data.ArchivePath, log.Component("archive"))
	if err != nil {
		return nil, fmt.Errorf("document archive: %w", err)
	}

	count, _ := arch.Count()
	log.Info("Document archive initialized", "path", cfg.Data.ArchivePath, "documents", count)

	return &ArchiveHandle{Archive: arch}, nil
}

// TemplateLibraryHandle wraps the template library with shutdown capability.
type TemplateLibraryHandle struct {
	*templates.Library
}

// Shutdown implements do.Shutdownable. It stops the directory watcher.
func (h *TemplateLibraryHandle) Shutdown() error {
	return h.Close()
}

// ProvideTemplateLibrary provides the template library and starts watching
// its directory.
func ProvideTemplateLibrary(i do.Injector) (*TemplateLibraryHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	lib, err := templates.Open(cfg.Data.TemplatePath, log.Component("templates"), templates.Options{})
	if err != nil {
		return nil, fmt.Errorf("template library: %w", err)
	}

	log.Info("Template library loaded", "path", lib.Dir(), "templates", len(lib.List()))

	return &TemplateLibraryHandle{Library: lib}, nil
}
