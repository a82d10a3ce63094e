// Package archive keeps rendered documents in a Badger key-value store.
//
// Key layout:
//
//	doc:{id}                                         JSON document
//	idx:documents:employee:{employeeID}:{ts}:{id}    empty, ts is zero padded unix nanos
package archive

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/peoplehub/hrdocs/internal/domain"
	"github.com/peoplehub/hrdocs/internal/id"
	"github.com/peoplehub/hrdocs/internal/store"
)

const (
	documentPrefix   = "doc:"
	byEmployeePrefix = "idx:documents:employee:"
)

// Archive stores generated documents.
type Archive struct {
	db     *badger.DB
	logger *slog.Logger
}

// Open opens or creates an archive in dir.
func Open(dir string, logger *slog.Logger) (*Archive, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	opts.SyncWrites = true
	opts.CompactL0OnClose = true
	return open(opts, logger)
}

// OpenInMemory opens an archive that lives only as long as the process.
func OpenInMemory(logger *slog.Logger) (*Archive, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	return open(opts, logger)
}

func open(opts badger.Options, logger *slog.Logger) (*Archive, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger archive: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("document archive opened", "dir", opts.Dir, "in_memory", opts.InMemory)
	return &Archive{db: db, logger: logger}, nil
}

// Close closes the underlying database.
func (a *Archive) Close() error {
	return a.db.Close()
}

// Shutdown closes the archive when the DI container shuts down.
func (a *Archive) Shutdown() error {
	return a.Close()
}

func documentKey(docID string) []byte {
	return []byte(documentPrefix + docID)
}

func employeeIndexKey(doc *domain.GeneratedDocument) []byte {
	return fmt.Appendf(nil, "%s%s:%020d:%s",
		byEmployeePrefix, doc.EmployeeID, doc.CreatedAt.UnixNano(), doc.ID)
}

// Save stores doc, assigning an ID and creation time when they are unset.
func (a *Archive) Save(_ context.Context, doc *domain.GeneratedDocument) error {
	if doc.ID == "" {
		doc.ID = id.Document()
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now().UTC()
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}

	err = a.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(documentKey(doc.ID), data); err != nil {
			return err
		}
		if doc.EmployeeID != "" {
			return txn.Set(employeeIndexKey(doc), nil)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("save document %s: %w", doc.ID, err)
	}

	a.logger.Debug("document archived", "document_id", doc.ID, "employee_id", doc.EmployeeID)
	return nil
}

// Get loads a document. Returns store.ErrNotFound when it does not exist.
func (a *Archive) Get(_ context.Context, docID string) (*domain.GeneratedDocument, error) {
	var doc domain.GeneratedDocument
	err := a.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(documentKey(docID))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &doc)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, store.ErrNotFound.WithMessage("document not found")
	}
	if err != nil {
		return nil, fmt.Errorf("get document %s: %w", docID, err)
	}
	return &doc, nil
}

// ListForEmployee returns an employee's documents, newest first.
func (a *Archive) ListForEmployee(ctx context.Context, employeeID string) ([]*domain.GeneratedDocument, error) {
	prefix := []byte(byEmployeePrefix + employeeID + ":")

	var docIDs []string
	err := a.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			key := string(it.Item().Key())
			if i := strings.LastIndexByte(key, ':'); i >= 0 && i < len(key)-1 {
				docIDs = append(docIDs, key[i+1:])
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan employee index: %w", err)
	}
	slices.Reverse(docIDs)

	docs := make([]*domain.GeneratedDocument, 0, len(docIDs))
	for _, docID := range docIDs {
		doc, err := a.Get(ctx, docID)
		if err != nil {
			a.logger.Warn("dangling document index entry", "document_id", docID, "error", err)
			continue
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// Count returns the number of stored documents.
func (a *Archive) Count() (int, error) {
	prefix := []byte(documentPrefix)
	n := 0
	err := a.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			n++
		}
		return nil
	})
	return n, err
}
