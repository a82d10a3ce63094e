// Package store defines the persistence interfaces for the document service.
package store

import (
	"context"

	"github.com/peoplehub/hrdocs/internal/domain"
)

// SmartTagStore persists the editable smart tag catalog.
type SmartTagStore interface {
	CreateSmartTag(ctx context.Context, tag *domain.SmartTag) error
	GetSmartTag(ctx context.Context, id string) (*domain.SmartTag, error)
	// UpdateSmartTag writes tag and bumps its version. A non-zero
	// expectedVersion must match the stored version or ErrConflict is returned.
	UpdateSmartTag(ctx context.Context, tag *domain.SmartTag, expectedVersion int) error
	DeleteSmartTag(ctx context.Context, id string) error
	ListActiveSmartTags(ctx context.Context) ([]*domain.SmartTag, error)
	ListAllSmartTags(ctx context.Context) ([]*domain.SmartTag, error)
	// SeedSmartTags inserts tags that are not present yet and reports how many
	// were added.
	SeedSmartTags(ctx context.Context, tags []domain.SmartTag) (int, error)
}

// RecordStore reads and writes the HR records documents are rendered from.
type RecordStore interface {
	UpsertCompany(ctx context.Context, c *domain.Company) error
	UpsertPosition(ctx context.Context, p *domain.Position) error
	UpsertDepartment(ctx context.Context, d *domain.Department) error
	UpsertWorkLocation(ctx context.Context, w *domain.WorkLocation) error
	UpsertEmployee(ctx context.Context, e *domain.Employee) error
	GetEmployee(ctx context.Context, id string) (*domain.Employee, error)
	// LoadRenderData gathers the employee and every record it references.
	LoadRenderData(ctx context.Context, employeeID string) (*domain.RenderData, error)
}

// Store is the full persistence surface.
type Store interface {
	SmartTagStore
	RecordStore
	Ping(ctx context.Context) error
	Close() error
}
