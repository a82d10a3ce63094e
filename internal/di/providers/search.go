package providers

import (
	"github.com/samber/do/v2"

	"github.com/peoplehub/hrdocs/internal/logger"
	"github.com/peoplehub/hrdocs/internal/search"
)

// SearchIndexHandle wraps the tag index with shutdown capability.
type SearchIndexHandle struct {
	*search.TagIndex
}

// Shutdown implements do.Shutdownable.
func (h *SearchIndexHandle) Shutdown() error {
	return h.Close()
}

// ProvideSearchIndex provides the in-memory smart tag index. It is filled the
// first time the catalog is loaded.
func ProvideSearchIndex(i do.Injector) (*SearchIndexHandle, error) {
	log := do.MustInvoke[*logger.Logger](i)

	index, err := search.NewTagIndex(log.Component("search"))
	if err != nil {
		return nil, err
	}

	return &SearchIndexHandle{TagIndex: index}, nil
}
