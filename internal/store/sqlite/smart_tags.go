package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/peoplehub/hrdocs/internal/domain"
	"github.com/peoplehub/hrdocs/internal/store"
)

// smartTagColumns must match the scan order in scanSmartTag.
const smartTagColumns = `id, tag, field, source, category, description, is_system, is_active, version, created_at, updated_at`

// Catalog order: category, then token.
const smartTagOrder = ` ORDER BY category ASC, tag ASC`

func scanSmartTag(scanner interface{ Scan(dest ...any) error }) (*domain.SmartTag, error) {
	var (
		t         domain.SmartTag
		source    string
		isSystem  int
		isActive  int
		createdAt string
		updatedAt string
	)

	err := scanner.Scan(
		&t.ID,
		&t.Tag,
		&t.Field,
		&source,
		&t.Category,
		&t.Description,
		&isSystem,
		&isActive,
		&t.Version,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.Source = domain.Source(source)
	t.IsSystem = isSystem != 0
	t.IsActive = isActive != 0

	t.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	t.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &t, nil
}

// CreateSmartTag inserts a new catalog row.
// Returns store.ErrAlreadyExists when the token is already used by an active tag.
func (s *Store) CreateSmartTag(ctx context.Context, t *domain.SmartTag) error {
	if t.Version == 0 {
		t.Version = 1
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO smart_tags (`+smartTagColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID,
		t.Tag,
		t.Field,
		string(t.Source),
		t.Category,
		t.Description,
		boolToInt(t.IsSystem),
		boolToInt(t.IsActive),
		t.Version,
		formatTime(t.CreatedAt),
		formatTime(t.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists.WithCause(err)
		}
		return fmt.Errorf("insert smart tag: %w", err)
	}
	return nil
}

// GetSmartTag retrieves a catalog row by ID.
// Returns store.ErrNotFound if it does not exist.
func (s *Store) GetSmartTag(ctx context.Context, id string) (*domain.SmartTag, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+smartTagColumns+` FROM smart_tags WHERE id = ?`, id)

	t, err := scanSmartTag(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// UpdateSmartTag overwrites the mutable columns of t and increments its version.
// On success t carries the new version.
func (s *Store) UpdateSmartTag(ctx context.Context, t *domain.SmartTag, expectedVersion int) error {
	var version int
	err := s.db.QueryRowContext(ctx, `
		UPDATE smart_tags SET
			tag = ?,
			field = ?,
			source = ?,
			category = ?,
			description = ?,
			is_active = ?,
			version = version + 1,
			updated_at = ?
		WHERE id = ? AND (? = 0 OR version = ?)
		RETURNING version`,
		t.Tag,
		t.Field,
		string(t.Source),
		t.Category,
		t.Description,
		boolToInt(t.IsActive),
		formatTime(t.UpdatedAt),
		t.ID,
		expectedVersion,
		expectedVersion,
	).Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		current, err := s.GetSmartTag(ctx, t.ID)
		if err != nil {
			return err
		}
		s.logger.Debug("stale smart tag update",
			"tag_id", t.ID,
			"expected_version", expectedVersion,
			"current_version", current.Version,
		)
		return store.ErrConflict
	}
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists.WithCause(err)
		}
		return fmt.Errorf("update smart tag: %w", err)
	}

	t.Version = version
	return nil
}

// DeleteSmartTag hard-deletes a catalog row.
// Returns store.ErrNotFound if it does not exist.
func (s *Store) DeleteSmartTag(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM smart_tags WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete smart tag: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete smart tag rows affected: %w", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// ListActiveSmartTags returns active tags in catalog order.
func (s *Store) ListActiveSmartTags(ctx context.Context) ([]*domain.SmartTag, error) {
	return s.listSmartTags(ctx,
		`SELECT `+smartTagColumns+` FROM smart_tags WHERE is_active = 1`+smartTagOrder)
}

// ListAllSmartTags returns every tag, active or not, in catalog order.
func (s *Store) ListAllSmartTags(ctx context.Context) ([]*domain.SmartTag, error) {
	return s.listSmartTags(ctx,
		`SELECT `+smartTagColumns+` FROM smart_tags`+smartTagOrder)
}

func (s *Store) listSmartTags(ctx context.Context, query string) ([]*domain.SmartTag, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := []*domain.SmartTag{}
	for rows.Next() {
		t, err := scanSmartTag(rows)
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tags, nil
}

// SeedSmartTags inserts any of tags not yet present, in one transaction.
// Rows that collide on ID or on an active token are skipped, so repeated seeding
// leaves user edits to system tags intact.
func (s *Store) SeedSmartTags(ctx context.Context, tags []domain.SmartTag) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO smart_tags (`+smartTagColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT DO NOTHING`)
	if err != nil {
		return 0, fmt.Errorf("prepare seed: %w", err)
	}
	defer stmt.Close()

	now := formatTime(time.Now())
	inserted := 0
	for i := range tags {
		t := &tags[i]
		version := t.Version
		if version == 0 {
			version = 1
		}
		res, err := stmt.ExecContext(ctx,
			t.ID,
			t.Tag,
			t.Field,
			string(t.Source),
			t.Category,
			t.Description,
			boolToInt(t.IsSystem),
			boolToInt(t.IsActive),
			version,
			now,
			now,
		)
		if err != nil {
			return 0, fmt.Errorf("seed smart tag %s: %w", t.ID, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("seed rows affected: %w", err)
		}
		inserted += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit seed: %w", err)
	}
	return inserted, nil
}
