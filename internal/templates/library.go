// Package templates serves the document templates stored in a directory and
// keeps them current as files change on disk.
package templates

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/peoplehub/hrdocs/internal/store"
)

// Format is the markup a template is written in.
type Format string

// Template formats.
const (
	FormatHTML Format = "html"
	FormatText Format = "text"
)

// Template is one template file.
type Template struct {
	Name     string    `json:"name"` // File name, e.g. "offer_letter.html"
	Format   Format    `json:"format"`
	Body     string    `json:"body"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
}

// Library holds the templates found in one directory. The watcher reloads it
// after changes settle; readers always see a complete snapshot.
type Library struct {
	dir    string
	opts   Options
	logger *slog.Logger

	mu        sync.RWMutex
	templates map[string]*Template

	watcher *fsnotify.Watcher
	timerMu sync.Mutex
	timer   *time.Timer
	done    chan struct{}
	wg      sync.WaitGroup
	closed  sync.Once
}

// Open loads every template in dir, creating the directory if needed, and
// starts watching it for changes.
func Open(dir string, logger *slog.Logger, opts Options) (*Library, error) {
	if logger == nil {
		logger = slog.Default()
	}
	opts.setDefaults()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create template directory: %w", err)
	}

	lib := &Library{
		dir:       dir,
		opts:      opts,
		logger:    logger,
		templates: make(map[string]*Template),
		done:      make(chan struct{}),
	}
	if err := lib.Reload(); err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watch template directory: %w", err)
	}
	lib.watcher = watcher

	lib.wg.Add(1)
	go lib.processEvents()

	return lib, nil
}

// Dir returns the watched directory.
func (l *Library) Dir() string {
	return l.dir
}

// Reload rereads the directory and swaps in the new set.
func (l *Library) Reload() error {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return fmt.Errorf("read template directory: %w", err)
	}

	loaded := make(map[string]*Template, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || l.opts.shouldIgnore(entry.Name()) {
			continue
		}
		format, ok := formatFor(entry.Name())
		if !ok {
			continue
		}
		tmpl, err := l.load(entry, format)
		if err != nil {
			l.logger.Warn("skipping template", "name", entry.Name(), "error", err)
			continue
		}
		loaded[tmpl.Name] = tmpl
	}

	l.mu.Lock()
	l.templates = loaded
	l.mu.Unlock()

	l.logger.Debug("loaded templates", "dir", l.dir, "count", len(loaded))
	return nil
}

func (l *Library) load(entry os.DirEntry, format Format) (*Template, error) {
	info, err := entry.Info()
	if err != nil {
		return nil, err
	}
	if info.Size() > l.opts.MaxFileSize {
		return nil, fmt.Errorf("file is %d bytes, limit is %d", info.Size(), l.opts.MaxFileSize)
	}
	body, err := os.ReadFile(filepath.Join(l.dir, entry.Name()))
	if err != nil {
		return nil, err
	}
	return &Template{
		Name:     entry.Name(),
		Format:   format,
		Body:     string(body),
		Size:     info.Size(),
		Modified: info.ModTime().UTC(),
	}, nil
}

// List returns all templates sorted by name. Bodies are omitted.
func (l *Library) List() []Template {
	l.mu.RLock()
	out := make([]Template, 0, len(l.templates))
	for _, t := range l.templates {
		summary := *t
		summary.Body = ""
		out = append(out, summary)
	}
	l.mu.RUnlock()

	slices.SortFunc(out, func(a, b Template) int {
		switch {
		case a.Name < b.Name:
			return -1
		case a.Name > b.Name:
			return 1
		}
		return 0
	})
	return out
}

// Get returns the named template.
func (l *Library) Get(name string) (*Template, error) {
	l.mu.RLock()
	t, ok := l.templates[name]
	l.mu.RUnlock()
	if !ok {
		return nil, store.ErrNotFound.WithMessage(fmt.Sprintf("template %q not found", name))
	}
	out := *t
	return &out, nil
}

// Close stops the watcher. It is safe to call more than once.
func (l *Library) Close() error {
	var err error
	l.closed.Do(func() {
		close(l.done)
		l.timerMu.Lock()
		if l.timer != nil {
			l.timer.Stop()
		}
		l.timerMu.Unlock()
		if l.watcher != nil {
			err = l.watcher.Close()
		}
		l.wg.Wait()
	})
	return err
}

// Shutdown closes the library when the DI container shuts down.
func (l *Library) Shutdown() error {
	return l.Close()
}
