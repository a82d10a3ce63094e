package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/peoplehub/hrdocs/internal/catalog"
	"github.com/peoplehub/hrdocs/internal/domain"
	"github.com/peoplehub/hrdocs/internal/store"
)

// makeTestSmartTag creates an active custom tag with sensible defaults.
func makeTestSmartTag(id, name, field string) *domain.SmartTag {
	now := time.Now()
	return &domain.SmartTag{
		ID:          id,
		Tag:         domain.Token(name),
		Field:       field,
		Source:      domain.SourceEmployee,
		Category:    catalog.CategoryEmployee,
		Description: "custom " + name,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestCreateAndGetSmartTag(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	tag := makeTestSmartTag("stag-1", "Given Name", catalog.FieldFirstName)
	if err := s.CreateSmartTag(ctx, tag); err != nil {
		t.Fatalf("CreateSmartTag: %v", err)
	}

	got, err := s.GetSmartTag(ctx, "stag-1")
	if err != nil {
		t.Fatalf("GetSmartTag: %v", err)
	}

	if got.Tag != "<<Given Name>>" {
		t.Errorf("Tag: got %q", got.Tag)
	}
	if got.Field != catalog.FieldFirstName || got.Source != domain.SourceEmployee {
		t.Errorf("binding: got %s/%s", got.Source, got.Field)
	}
	if got.IsSystem || !got.IsActive {
		t.Errorf("flags: system=%v active=%v", got.IsSystem, got.IsActive)
	}
	if got.Version != 1 {
		t.Errorf("Version: got %d, want 1", got.Version)
	}
	if got.CreatedAt.Unix() != tag.CreatedAt.Unix() {
		t.Errorf("CreatedAt: got %v, want %v", got.CreatedAt, tag.CreatedAt)
	}
}

func TestGetSmartTag_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetSmartTag(context.Background(), "stag-missing")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateSmartTag_DuplicateActiveToken(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.CreateSmartTag(ctx, makeTestSmartTag("stag-a", "Badge", catalog.FieldEmployeeNumber)); err != nil {
		t.Fatalf("first create: %v", err)
	}

	err := s.CreateSmartTag(ctx, makeTestSmartTag("stag-b", "Badge", catalog.FieldEmail))
	if !errors.Is(err, store.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestCreateSmartTag_InactiveDuplicatesAllowed(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"stag-old-1", "stag-old-2"} {
		tag := makeTestSmartTag(id, "Badge", catalog.FieldEmployeeNumber)
		tag.IsActive = false
		if err := s.CreateSmartTag(ctx, tag); err != nil {
			t.Fatalf("create inactive %s: %v", id, err)
		}
	}

	if err := s.CreateSmartTag(ctx, makeTestSmartTag("stag-new", "Badge", catalog.FieldEmployeeNumber)); err != nil {
		t.Fatalf("active tag alongside inactive duplicates: %v", err)
	}
}

func TestUpdateSmartTag_BumpsVersion(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	tag := makeTestSmartTag("stag-1", "Badge", catalog.FieldEmployeeNumber)
	if err := s.CreateSmartTag(ctx, tag); err != nil {
		t.Fatalf("CreateSmartTag: %v", err)
	}

	tag.Description = "Staff badge number"
	tag.UpdatedAt = time.Now()
	if err := s.UpdateSmartTag(ctx, tag, 1); err != nil {
		t.Fatalf("UpdateSmartTag: %v", err)
	}
	if tag.Version != 2 {
		t.Errorf("Version after update: got %d, want 2", tag.Version)
	}

	got, err := s.GetSmartTag(ctx, "stag-1")
	if err != nil {
		t.Fatalf("GetSmartTag: %v", err)
	}
	if got.Description != "Staff badge number" || got.Version != 2 {
		t.Errorf("stored: description=%q version=%d", got.Description, got.Version)
	}
}

func TestUpdateSmartTag_StaleVersion(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	tag := makeTestSmartTag("stag-1", "Badge", catalog.FieldEmployeeNumber)
	if err := s.CreateSmartTag(ctx, tag); err != nil {
		t.Fatalf("CreateSmartTag: %v", err)
	}

	first := *tag
	first.Description = "first writer"
	if err := s.UpdateSmartTag(ctx, &first, 1); err != nil {
		t.Fatalf("first update: %v", err)
	}

	second := *tag
	second.Description = "second writer"
	err := s.UpdateSmartTag(ctx, &second, 1)
	if !errors.Is(err, store.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	// Without an expected version the write always lands.
	if err := s.UpdateSmartTag(ctx, &second, 0); err != nil {
		t.Fatalf("last-write-wins update: %v", err)
	}
	got, _ := s.GetSmartTag(ctx, "stag-1")
	if got.Description != "second writer" || got.Version != 3 {
		t.Errorf("stored: description=%q version=%d", got.Description, got.Version)
	}
}

func TestUpdateSmartTag_NotFound(t *testing.T) {
	s := newTestStore(t)

	err := s.UpdateSmartTag(context.Background(), makeTestSmartTag("stag-missing", "X", catalog.FieldEmail), 0)
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateSmartTag_ReactivateTakenToken(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	old := makeTestSmartTag("stag-old", "Badge", catalog.FieldEmployeeNumber)
	old.IsActive = false
	if err := s.CreateSmartTag(ctx, old); err != nil {
		t.Fatalf("create inactive: %v", err)
	}
	if err := s.CreateSmartTag(ctx, makeTestSmartTag("stag-new", "Badge", catalog.FieldEmployeeNumber)); err != nil {
		t.Fatalf("create active: %v", err)
	}

	old.IsActive = true
	err := s.UpdateSmartTag(ctx, old, 0)
	if !errors.Is(err, store.ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestDeleteSmartTag(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.CreateSmartTag(ctx, makeTestSmartTag("stag-1", "Badge", catalog.FieldEmployeeNumber)); err != nil {
		t.Fatalf("CreateSmartTag: %v", err)
	}
	if err := s.DeleteSmartTag(ctx, "stag-1"); err != nil {
		t.Fatalf("DeleteSmartTag: %v", err)
	}
	if _, err := s.GetSmartTag(ctx, "stag-1"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := s.DeleteSmartTag(ctx, "stag-1"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("second delete: expected ErrNotFound, got %v", err)
	}
}

func TestListSmartTags_OrderAndVisibility(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	tags := []*domain.SmartTag{
		makeTestSmartTag("stag-1", "Zeta", catalog.FieldEmail),
		makeTestSmartTag("stag-2", "Alpha", catalog.FieldPhone),
		makeTestSmartTag("stag-3", "Hidden", catalog.FieldNationality),
		makeTestSmartTag("stag-4", "Beta", catalog.FieldCompanyName),
	}
	tags[2].IsActive = false
	tags[3].Source = domain.SourceCompany
	tags[3].Category = catalog.CategoryCompany
	for _, tag := range tags {
		if err := s.CreateSmartTag(ctx, tag); err != nil {
			t.Fatalf("CreateSmartTag %s: %v", tag.ID, err)
		}
	}

	active, err := s.ListActiveSmartTags(ctx)
	if err != nil {
		t.Fatalf("ListActiveSmartTags: %v", err)
	}
	wantActive := []string{"<<Beta>>", "<<Alpha>>", "<<Zeta>>"}
	if len(active) != len(wantActive) {
		t.Fatalf("active: got %d tags, want %d", len(active), len(wantActive))
	}
	for i, want := range wantActive {
		if active[i].Tag != want {
			t.Errorf("active[%d]: got %q, want %q", i, active[i].Tag, want)
		}
	}

	all, err := s.ListAllSmartTags(ctx)
	if err != nil {
		t.Fatalf("ListAllSmartTags: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("all: got %d tags, want 4", len(all))
	}
}

func TestListSmartTags_EmptyIsNotNil(t *testing.T) {
	s := newTestStore(t)

	tags, err := s.ListActiveSmartTags(context.Background())
	if err != nil {
		t.Fatalf("ListActiveSmartTags: %v", err)
	}
	if tags == nil {
		t.Error("expected empty slice, got nil")
	}
}

func TestSeedSmartTags_Idempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	builtin := catalog.Builtin()

	n, err := s.SeedSmartTags(ctx, builtin)
	if err != nil {
		t.Fatalf("first seed: %v", err)
	}
	if n != len(builtin) {
		t.Errorf("first seed inserted %d, want %d", n, len(builtin))
	}

	// A user edit to a system tag survives reseeding.
	first, err := s.GetSmartTag(ctx, builtin[0].ID)
	if err != nil {
		t.Fatalf("GetSmartTag: %v", err)
	}
	first.Description = "edited"
	if err := s.UpdateSmartTag(ctx, first, 0); err != nil {
		t.Fatalf("UpdateSmartTag: %v", err)
	}

	n, err = s.SeedSmartTags(ctx, builtin)
	if err != nil {
		t.Fatalf("second seed: %v", err)
	}
	if n != 0 {
		t.Errorf("second seed inserted %d, want 0", n)
	}

	got, _ := s.GetSmartTag(ctx, builtin[0].ID)
	if got.Description != "edited" {
		t.Errorf("reseed overwrote edit: %q", got.Description)
	}
	if !got.IsSystem {
		t.Error("seeded tag should be a system tag")
	}
}

func TestSeedSmartTags_SkipsTakenToken(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	custom := makeTestSmartTag("stag-custom", "First Name", catalog.FieldFirstName)
	if err := s.CreateSmartTag(ctx, custom); err != nil {
		t.Fatalf("CreateSmartTag: %v", err)
	}

	builtin := catalog.Builtin()
	n, err := s.SeedSmartTags(ctx, builtin)
	if err != nil {
		t.Fatalf("SeedSmartTags: %v", err)
	}
	if n != len(builtin)-1 {
		t.Errorf("inserted %d, want %d", n, len(builtin)-1)
	}
}
