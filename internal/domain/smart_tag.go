// Package domain contains the core types shared by the catalog, resolver and renderer.
package domain

import (
	"strings"
	"time"
)

// Source identifies the record group a smart tag reads its value from.
type Source string

// Known tag sources.
const (
	SourceEmployee     Source = "employee"
	SourceCompany      Source = "company"
	SourcePosition     Source = "position"
	SourceDepartment   Source = "department"
	SourceWorkLocation Source = "work_location"
	SourceManager      Source = "manager"
	SourceSystem       Source = "system"
)

// Sources lists every source in display order.
var Sources = []Source{
	SourceEmployee,
	SourceCompany,
	SourcePosition,
	SourceDepartment,
	SourceWorkLocation,
	SourceManager,
	SourceSystem,
}

// Valid reports whether s is one of the known sources.
func (s Source) Valid() bool {
	for _, known := range Sources {
		if s == known {
			return true
		}
	}
	return false
}

// Token delimiters. A tag literal is TokenOpen + display name + TokenClose.
const (
	TokenOpen  = "<<"
	TokenClose = ">>"
)

// Token wraps a display name or field identifier in the token delimiters.
func Token(name string) string {
	return TokenOpen + name + TokenClose
}

// DisplayName strips the token delimiters from a tag literal: "<<First Name>>" → "First Name".
func DisplayName(tag string) string {
	name := strings.TrimPrefix(tag, TokenOpen)
	return strings.TrimSuffix(name, TokenClose)
}

// SourceField describes one resolvable field of a source.
// Field identifiers are unique across all sources so resolved values fit in one flat map.
type SourceField struct {
	Field       string `json:"field"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// SmartTag binds a literal template token to a source field.
type SmartTag struct {
	ID          string    `json:"id"`
	Tag         string    `json:"tag"` // Literal token, e.g. "<<First Name>>"
	Field       string    `json:"field"`
	Source      Source    `json:"source"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	IsSystem    bool      `json:"is_system"` // Seeded built-in, cannot be deleted
	IsActive    bool      `json:"is_active"` // Participates in resolution
	Version     int       `json:"version"`   // Bumped on every update
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DisplayName returns the tag's token text without delimiters.
func (t *SmartTag) DisplayName() string {
	return DisplayName(t.Tag)
}

// Touch updates the UpdatedAt timestamp.
func (t *SmartTag) Touch() {
	t.UpdatedAt = time.Now().UTC()
}

// SmartTagUpdate carries a partial update. Nil fields are left unchanged.
// ExpectedVersion, when set, rejects the update if the stored version differs.
type SmartTagUpdate struct {
	Tag             *string
	Field           *string
	Source          *Source
	Category        *string
	Description     *string
	IsActive        *bool
	ExpectedVersion *int
}
