package server

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	foundationerrors "git.home.luguber.info/inful/apidocs/internal/foundation/errors"
	"git.home.luguber.info/inful/apidocs/internal/logfields"
	"git.home.luguber.info/inful/apidocs/internal/site"
)

// LoadFunc builds a fresh Site from the metadata on disk.
type LoadFunc func() (*site.Site, error)

// MetadataWatcher monitors the metadata directory and, after a quiet period,
// rebuilds the Site and publishes it to the server. A failed reload keeps the
// previous Site in service.
type MetadataWatcher struct {
	dir          string
	load         LoadFunc
	server       *Server
	watcher      *fsnotify.Watcher
	debounceTime time.Duration

	mu         sync.Mutex
	stopChan   chan struct{}
	stopOnce   sync.Once
	reloadChan chan struct{}
	// reloaded receives after each reload attempt.
	reloaded chan struct{}
}

// NewMetadataWatcher creates a watcher for dir that reloads through load.
func NewMetadataWatcher(dir string, load LoadFunc, server *Server) (*MetadataWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, foundationerrors.FileSystemError("failed to create file watcher").WithCause(err).Build()
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		_ = watcher.Close()
		return nil, foundationerrors.FileSystemError("failed to resolve metadata directory").
			WithCause(err).
			WithContext("path", dir).
			Build()
	}
	return &MetadataWatcher{
		dir:          absDir,
		load:         load,
		server:       server,
		watcher:      watcher,
		debounceTime: 500 * time.Millisecond,
		stopChan:     make(chan struct{}),
		reloadChan:   make(chan struct{}, 1),
		reloaded:     make(chan struct{}, 1),
	}, nil
}

// Start watches the metadata directory and its version directories.
func (mw *MetadataWatcher) Start(ctx context.Context) error {
	mw.mu.Lock()
	defer mw.mu.Unlock()

	if err := mw.watcher.Add(mw.dir); err != nil {
		return foundationerrors.FileSystemError("failed to watch metadata directory").
			WithCause(err).
			WithContext("path", mw.dir).
			Build()
	}
	entries, err := os.ReadDir(mw.dir)
	if err != nil {
		return foundationerrors.FileSystemError("failed to read metadata directory").
			WithCause(err).
			WithContext("path", mw.dir).
			Build()
	}
	for _, e := range entries {
		if e.IsDir() {
			mw.addDir(filepath.Join(mw.dir, e.Name()))
		}
	}

	slog.Info("Watching metadata for changes", logfields.Path(mw.dir))
	go mw.watchLoop(ctx)
	go mw.reloadLoop(ctx)
	return nil
}

// Stop stops the watcher. It is safe to call more than once.
func (mw *MetadataWatcher) Stop() error {
	var err error
	mw.stopOnce.Do(func() {
		close(mw.stopChan)
		err = mw.watcher.Close()
	})
	return err
}

func (mw *MetadataWatcher) addDir(path string) {
	if err := mw.watcher.Add(path); err != nil {
		slog.Warn("Failed to watch version directory", logfields.Path(path), logfields.Error(err))
	}
}

func isMetadataFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}

func (mw *MetadataWatcher) watchLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-mw.stopChan:
			return
		case event, ok := <-mw.watcher.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Create) && filepath.Dir(event.Name) == mw.dir {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					mw.addDir(event.Name)
					mw.triggerReload()
					continue
				}
			}
			if !isMetadataFile(event.Name) {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				slog.Debug("Metadata change detected", logfields.Path(event.Name), slog.String("op", event.Op.String()))
				mw.triggerReload()
			}
		case err, ok := <-mw.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("Metadata watcher error", logfields.Error(err))
		}
	}
}

func (mw *MetadataWatcher) reloadLoop(ctx context.Context) {
	var reloadTimer *time.Timer
	stopTimer := func() {
		if reloadTimer != nil {
			reloadTimer.Stop()
		}
	}
	for {
		select {
		case <-ctx.Done():
			stopTimer()
			return
		case <-mw.stopChan:
			stopTimer()
			return
		case <-mw.reloadChan:
			stopTimer()
			reloadTimer = time.AfterFunc(mw.debounceTime, mw.performReload)
		}
	}
}

// triggerReload requests a debounced reload.
func (mw *MetadataWatcher) triggerReload() {
	select {
	case mw.reloadChan <- struct{}{}:
	default:
	}
}

func (mw *MetadataWatcher) performReload() {
	start := time.Now()
	next, err := mw.load()
	if err != nil {
		slog.Error("Failed to reload metadata, keeping previous version", logfields.Error(err))
	} else {
		mw.server.SetSite(next)
		slog.Info("Metadata reloaded", logfields.Duration(time.Since(start)))
	}
	select {
	case mw.reloaded <- struct{}{}:
	default:
	}
}
