package templates

import (
	"path/filepath"
	"strings"
	"time"
)

// Options configures the template library.
type Options struct {
	// SettleDelay is how long the directory must be quiet before a reload.
	SettleDelay time.Duration
	// MaxFileSize skips template files larger than this many bytes.
	MaxFileSize int64
	// IgnorePatterns are filepath.Match patterns applied to base names.
	IgnorePatterns []string
}

func (o *Options) setDefaults() {
	if o.SettleDelay == 0 {
		o.SettleDelay = 100 * time.Millisecond
	}
	if o.MaxFileSize == 0 {
		o.MaxFileSize = 1 << 20
	}
	if o.IgnorePatterns == nil {
		o.IgnorePatterns = []string{"*.tmp", "*.temp", "*~", "*.swp"}
	}
}

// shouldIgnore reports whether name is hidden or matches an ignore pattern.
func (o *Options) shouldIgnore(name string) bool {
	base := filepath.Base(name)
	if strings.HasPrefix(base, ".") {
		return true
	}
	for _, pattern := range o.IgnorePatterns {
		if matched, err := filepath.Match(pattern, base); err == nil && matched {
			return true
		}
	}
	return false
}

// formatFor maps a file extension to a template format. ok is false for files
// the library does not serve.
func formatFor(name string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".html", ".htm":
		return FormatHTML, true
	case ".txt":
		return FormatText, true
	default:
		return "", false
	}
}
