package content

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const reloadDebounce = 250 * time.Millisecond

// Source serves the current content snapshot.
type Source struct {
	mu       sync.RWMutex
	snapshot Snapshot
	dir      string
	logger   *zap.Logger
}

// NewSource returns a source over the embedded content.
func NewSource(logger *zap.Logger) (*Source, error) {
	snapshot, err := Embedded()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Source{snapshot: snapshot, logger: logger}, nil
}

// NewDirSource returns a source loaded from dir.
func NewDirSource(dir string, logger *zap.Logger) (*Source, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Source{dir: filepath.Clean(dir), logger: logger}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Snapshot returns the current content.
func (s *Source) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Reload re-reads the content directory. A source over embedded content
// has nothing to reload. On error the previous snapshot is kept.
func (s *Source) Reload() error {
	if s.dir == "" {
		return nil
	}
	snapshot, err := Load(os.DirFS(s.dir))
	if err != nil {
		return fmt.Errorf("load content from %s: %w", s.dir, err)
	}
	s.mu.Lock()
	s.snapshot = snapshot
	s.mu.Unlock()
	return nil
}

// Watch reloads the content directory whenever one of its YAML files
// changes, until ctx is done. Bursts of events are coalesced.
func (s *Source) Watch(ctx context.Context) error {
	if s.dir == "" {
		return errors.New("content source has no directory to watch")
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create content watcher: %w", err)
	}
	defer func() {
		_ = watcher.Close()
	}()
	if err := watcher.Add(s.dir); err != nil {
		return fmt.Errorf("watch %s: %w", s.dir, err)
	}
	s.logger.Info("watching content directory", zap.String("dir", s.dir))

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isContentFile(event.Name) || event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			pending = time.After(reloadDebounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("content watcher error", zap.Error(err))
		case <-pending:
			pending = nil
			if err := s.Reload(); err != nil {
				s.logger.Warn("content reload failed", zap.Error(err))
				continue
			}
			s.logger.Info("content reloaded", zap.String("dir", s.dir))
		}
	}
}

func isContentFile(path string) bool {
	switch filepath.Base(path) {
	case hardwareFile, logFile:
		return true
	}
	return false
}
