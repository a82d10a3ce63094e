package templates

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

func (l *Library) processEvents() {
	defer l.wg.Done()

	for {
		select {
		case <-l.done:
			return
		case event, ok := <-l.watcher.Events:
			if !ok {
				return
			}
			l.handleEvent(event)
		case err, ok := <-l.watcher.Errors:
			if !ok {
				return
			}
			l.logger.Warn("template watcher error", "error", err)
		}
	}
}

func (l *Library) handleEvent(event fsnotify.Event) {
	if event.Op == fsnotify.Chmod {
		return
	}
	if filepath.Dir(event.Name) != filepath.Clean(l.dir) || l.opts.shouldIgnore(event.Name) {
		return
	}
	if _, ok := formatFor(event.Name); !ok {
		return
	}
	l.logger.Debug("template changed", "path", event.Name, "op", event.Op.String())
	l.scheduleReload()
}

// scheduleReload debounces bursts of events, such as an editor's write and
// rename, into one reload.
func (l *Library) scheduleReload() {
	l.timerMu.Lock()
	defer l.timerMu.Unlock()

	select {
	case <-l.done:
		return
	default:
	}

	if l.timer != nil {
		l.timer.Stop()
	}
	l.timer = time.AfterFunc(l.opts.SettleDelay, func() {
		select {
		case <-l.done:
			return
		default:
		}
		if err := l.Reload(); err != nil {
			l.logger.Error("template reload failed", "dir", l.dir, "error", err)
		}
	})
}
