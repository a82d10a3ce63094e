package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/peoplehub/hrdocs/internal/catalog"
	"github.com/peoplehub/hrdocs/internal/domain"
	domainerrors "github.com/peoplehub/hrdocs/internal/errors"
	"github.com/peoplehub/hrdocs/internal/id"
	"github.com/peoplehub/hrdocs/internal/search"
	"github.com/peoplehub/hrdocs/internal/store"
	"github.com/peoplehub/hrdocs/internal/validation"
)

// CreateSmartTagInput is a new catalog entry.
type CreateSmartTagInput struct {
	Tag         string `json:"tag" validate:"required,max=128,smarttag"`
	Field       string `json:"field" validate:"required,max=64"`
	Source      string `json:"source" validate:"required,tagsource"`
	Category    string `json:"category" validate:"required,max=64"`
	Description string `json:"description" validate:"max=500"`
	IsSystem    bool   `json:"is_system"`
	IsActive    *bool  `json:"is_active"` // Defaults to true
}

// UpdateSmartTagInput is a partial update. Nil fields keep their value.
type UpdateSmartTagInput struct {
	Tag             *string `json:"tag" validate:"omitempty,max=128,smarttag"`
	Field           *string `json:"field" validate:"omitempty,max=64"`
	Source          *string `json:"source" validate:"omitempty,tagsource"`
	Category        *string `json:"category" validate:"omitempty,min=1,max=64"`
	Description     *string `json:"description" validate:"omitempty,max=500"`
	IsActive        *bool   `json:"is_active"`
	ExpectedVersion *int    `json:"expected_version" validate:"omitempty,min=1"`
}

// CatalogService manages the editable smart tag catalog.
//
// The active catalog is read on every render, so it is cached. Every mutation
// invalidates the cache; the next reader refills it once through singleflight
// and rebuilds the search index from the same snapshot.
type CatalogService struct {
	store     store.SmartTagStore
	index     *search.TagIndex
	validator *validation.Validator
	logger    *slog.Logger

	mu     sync.RWMutex
	active []domain.SmartTag // nil when invalid
	gen    uint64            // bumped by every invalidation
	fill   singleflight.Group
}

// NewCatalogService creates a catalog service.
func NewCatalogService(s store.SmartTagStore, index *search.TagIndex, v *validation.Validator, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		store:     s,
		index:     index,
		validator: v,
		logger:    logger,
	}
}

// FieldsForSource returns the fields a tag of source may bind to.
func (s *CatalogService) FieldsForSource(source string) []domain.SourceField {
	return catalog.FieldsForSource(domain.Source(source))
}

// BuiltinTags returns the compiled-in tags, optionally limited to one category.
func (s *CatalogService) BuiltinTags(category string) []domain.SmartTag {
	if category == "" {
		return catalog.Builtin()
	}
	tags := catalog.TagsByCategory(category)
	if tags == nil {
		tags = []domain.SmartTag{}
	}
	return tags
}

// SeedSystemTags inserts any built-in tags missing from the store.
func (s *CatalogService) SeedSystemTags(ctx context.Context) (int, error) {
	added, err := s.store.SeedSmartTags(ctx, catalog.Builtin())
	if err != nil {
		return 0, fmt.Errorf("seed system smart tags: %w", err)
	}
	s.invalidate()
	s.logger.Info("seeded system smart tags", "added", added)
	return added, nil
}

// ActiveTags returns the active catalog ordered by category then tag. The
// result is a copy the caller may keep.
func (s *CatalogService) ActiveTags(ctx context.Context) ([]domain.SmartTag, error) {
	s.mu.RLock()
	cached := s.active
	s.mu.RUnlock()
	if cached != nil {
		return slices.Clone(cached), nil
	}

	// The fill is shared, so it must outlive any single caller's context.
	ch := s.fill.DoChan("active", func() (any, error) {
		return s.loadActive(context.WithoutCancel(ctx))
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return slices.Clone(res.Val.([]domain.SmartTag)), nil
	}
}

func (s *CatalogService) loadActive(ctx context.Context) ([]domain.SmartTag, error) {
	s.mu.RLock()
	gen := s.gen
	s.mu.RUnlock()

	rows, err := s.store.ListActiveSmartTags(ctx)
	if err != nil {
		return nil, fmt.Errorf("load active smart tags: %w", err)
	}
	tags := make([]domain.SmartTag, len(rows))
	for i, t := range rows {
		tags[i] = *t
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		// Invalidated while loading; serve the snapshot without caching it.
		return tags, nil
	}
	if s.index != nil {
		if err := s.index.Rebuild(rows); err != nil {
			s.logger.Error("failed to rebuild tag index", "error", err)
		}
	}
	s.active = tags
	return tags, nil
}

func (s *CatalogService) invalidate() {
	s.mu.Lock()
	s.active = nil
	s.gen++
	s.mu.Unlock()
}

// ListTags returns the active catalog, or every tag when includeInactive is set.
func (s *CatalogService) ListTags(ctx context.Context, includeInactive bool) ([]domain.SmartTag, error) {
	if !includeInactive {
		return s.ActiveTags(ctx)
	}
	rows, err := s.store.ListAllSmartTags(ctx)
	if err != nil {
		return nil, err
	}
	tags := make([]domain.SmartTag, len(rows))
	for i, t := range rows {
		tags[i] = *t
	}
	return tags, nil
}

// Categories returns the distinct categories of the active catalog. Built-in
// categories come first in their display order, then custom ones by name.
func (s *CatalogService) Categories(ctx context.Context) ([]string, error) {
	tags, err := s.ActiveTags(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	for _, t := range tags {
		seen[t.Category] = true
	}

	out := make([]string, 0, len(seen))
	for _, c := range catalog.Categories {
		if seen[c] {
			out = append(out, c)
			delete(seen, c)
		}
	}
	custom := make([]string, 0, len(seen))
	for c := range seen {
		custom = append(custom, c)
	}
	slices.Sort(custom)
	return append(out, custom...), nil
}

// Search finds active tags by name, field or description.
func (s *CatalogService) Search(ctx context.Context, p search.Params) ([]search.Hit, error) {
	// Filling the cache also rebuilds the index.
	if _, err := s.ActiveTags(ctx); err != nil {
		return nil, err
	}
	return s.index.Search(ctx, p)
}

// GetTag returns one tag by ID.
func (s *CatalogService) GetTag(ctx context.Context, tagID string) (*domain.SmartTag, error) {
	return s.store.GetSmartTag(ctx, tagID)
}

// CreateTag validates and stores a new tag.
func (s *CatalogService) CreateTag(ctx context.Context, in CreateSmartTagInput) (*domain.SmartTag, error) {
	if err := s.validator.Validate(in); err != nil {
		return nil, err
	}
	source := domain.Source(in.Source)
	if err := checkBinding(source, in.Field); err != nil {
		return nil, err
	}

	tagID, err := id.Generate(id.PrefixSmartTag)
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "generate smart tag id")
	}

	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}

	now := time.Now().UTC()
	tag := &domain.SmartTag{
		ID:          tagID,
		Tag:         in.Tag,
		Field:       in.Field,
		Source:      source,
		Category:    in.Category,
		Description: in.Description,
		IsSystem:    in.IsSystem,
		IsActive:    active,
		Version:     1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.CreateSmartTag(ctx, tag); err != nil {
		return nil, err
	}
	s.invalidate()

	s.logger.Info("smart tag created",
		"tag_id", tag.ID,
		"tag", tag.Tag,
		"field", tag.Field,
	)
	return tag, nil
}

// UpdateTag applies a partial update. With ExpectedVersion set, the update is
// rejected when another writer got there first; without it the last write wins.
func (s *CatalogService) UpdateTag(ctx context.Context, tagID string, in UpdateSmartTagInput) (*domain.SmartTag, error) {
	if err := s.validator.Validate(in); err != nil {
		return nil, err
	}

	tag, err := s.store.GetSmartTag(ctx, tagID)
	if err != nil {
		return nil, err
	}

	if in.Tag != nil {
		tag.Tag = *in.Tag
	}
	if in.Field != nil {
		tag.Field = *in.Field
	}
	if in.Source != nil {
		tag.Source = domain.Source(*in.Source)
	}
	if in.Category != nil {
		tag.Category = *in.Category
	}
	if in.Description != nil {
		tag.Description = *in.Description
	}
	if in.IsActive != nil {
		tag.IsActive = *in.IsActive
	}
	if in.Field != nil || in.Source != nil {
		if err := checkBinding(tag.Source, tag.Field); err != nil {
			return nil, err
		}
	}

	expected := 0
	if in.ExpectedVersion != nil {
		expected = *in.ExpectedVersion
	}

	tag.Touch()
	if err := s.store.UpdateSmartTag(ctx, tag, expected); err != nil {
		return nil, err
	}
	s.invalidate()

	s.logger.Info("smart tag updated",
		"tag_id", tag.ID,
		"version", tag.Version,
		"active", tag.IsActive,
	)
	return tag, nil
}

// DeleteTag removes a custom tag. System tags can only be deactivated.
func (s *CatalogService) DeleteTag(ctx context.Context, tagID string) error {
	tag, err := s.store.GetSmartTag(ctx, tagID)
	if err != nil {
		return err
	}
	if tag.IsSystem {
		return domainerrors.Forbiddenf("smart tag %s is a system tag and cannot be deleted", tag.Tag)
	}

	if err := s.store.DeleteSmartTag(ctx, tagID); err != nil {
		return err
	}
	s.invalidate()

	s.logger.Info("smart tag deleted", "tag_id", tagID, "tag", tag.Tag)
	return nil
}

// checkBinding rejects a field that its source does not provide.
func checkBinding(source domain.Source, field string) error {
	if catalog.HasField(source, field) {
		return nil
	}
	return domainerrors.ValidationWithDetails("validation failed", map[string]string{
		"field": fmt.Sprintf("%q is not a field of source %s", field, source),
	})
}
