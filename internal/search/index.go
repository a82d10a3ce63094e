// Package search provides free-text lookup over the active smart tag catalog
// for tag pickers.
package search

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/blevesearch/bleve/v2"

	"github.com/peoplehub/hrdocs/internal/domain"
)

// TagIndex is an in-memory Bleve index of smart tags. Rebuild swaps in a fresh
// index atomically, so searches never observe a half-built catalog.
//
// All methods are safe for concurrent use.
type TagIndex struct {
	mu     sync.RWMutex
	index  bleve.Index
	logger *slog.Logger
}

// NewTagIndex creates an empty index.
func NewTagIndex(logger *slog.Logger) (*TagIndex, error) {
	if logger == nil {
		logger = slog.Default()
	}
	index, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("create tag index: %w", err)
	}
	return &TagIndex{index: index, logger: logger}, nil
}

func tagDocument(t *domain.SmartTag) map[string]any {
	name := t.DisplayName()
	return map[string]any{
		fieldName:        name,
		fieldNamePrefix:  name,
		fieldTag:         t.Tag,
		fieldBinding:     strings.ReplaceAll(t.Field, "_", " "),
		fieldSource:      string(t.Source),
		fieldCategory:    t.Category,
		fieldDescription: t.Description,
	}
}

// Rebuild replaces the indexed catalog with tags.
func (x *TagIndex) Rebuild(tags []*domain.SmartTag) error {
	index, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return fmt.Errorf("create tag index: %w", err)
	}

	batch := index.NewBatch()
	for _, t := range tags {
		if err := batch.Index(t.ID, tagDocument(t)); err != nil {
			_ = index.Close()
			return fmt.Errorf("index smart tag %s: %w", t.ID, err)
		}
	}
	if err := index.Batch(batch); err != nil {
		_ = index.Close()
		return fmt.Errorf("commit tag batch: %w", err)
	}

	x.mu.Lock()
	old := x.index
	x.index = index
	x.mu.Unlock()

	if err := old.Close(); err != nil {
		x.logger.Warn("failed to close previous tag index", "error", err)
	}
	x.logger.Debug("rebuilt tag index", "tags", len(tags))
	return nil
}

// DocumentCount returns the number of indexed tags.
func (x *TagIndex) DocumentCount() (uint64, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.index.DocCount()
}

// Close releases the index.
func (x *TagIndex) Close() error {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.index.Close()
}

// Shutdown closes the index when the DI container shuts down.
func (x *TagIndex) Shutdown() error {
	return x.Close()
}
