// Package watch monitors a drop directory and generates subtitles for each
// media file as soon as its companion script arrives. A media file pairs
// with the script sharing its base name, so "episode.mkv" waits for
// "episode.txt" and vice versa.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gofrs/flock"

	"scriptsync/internal/logging"
)

// Handler processes one paired media file and script.
type Handler func(ctx context.Context, mediaPath, scriptPath string) error

// ErrAlreadyRunning indicates another watcher holds the directory lock.
var ErrAlreadyRunning = errors.New("another watcher is already running for this directory")

var mediaExtensions = map[string]struct{}{
	".mp4":  {},
	".mkv":  {},
	".mov":  {},
	".avi":  {},
	".webm": {},
	".m4v":  {},
	".wav":  {},
	".mp3":  {},
	".flac": {},
	".m4a":  {},
}

const scriptExtension = ".txt"

// Options tunes watcher behavior. Zero values select the defaults.
type Options struct {
	// MaxConcurrent bounds how many pairs process at once. Default: 2
	MaxConcurrent int
	// SettleDelay is how long to wait after a create event before touching
	// the file, so partially written files are not picked up. Default: 500ms
	SettleDelay time.Duration
}

// Watcher monitors a directory and dispatches paired files to a handler.
type Watcher struct {
	dir     string
	handler Handler
	logger  *slog.Logger
	opts    Options

	fsWatcher *fsnotify.Watcher
	lock      *flock.Flock

	semaphore chan struct{}
	wg        sync.WaitGroup

	mu        sync.Mutex
	processed map[string]struct{}
}

// New creates a watcher over dir. The directory must already exist.
func New(dir string, handler Handler, logger *slog.Logger, opts Options) (*Watcher, error) {
	if handler == nil {
		return nil, errors.New("watch: nil handler")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = 2
	}
	if opts.SettleDelay <= 0 {
		opts.SettleDelay = 500 * time.Millisecond
	}

	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("watch: %s is not a directory", dir)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create watcher: %w", err)
	}
	if err := fsWatcher.Add(dir); err != nil {
		_ = fsWatcher.Close()
		return nil, fmt.Errorf("watch: add path: %w", err)
	}

	return &Watcher{
		dir:       dir,
		handler:   handler,
		logger:    logger,
		opts:      opts,
		fsWatcher: fsWatcher,
		lock:      flock.New(filepath.Join(dir, ".scriptsync.lock")),
		semaphore: make(chan struct{}, opts.MaxConcurrent),
		processed: make(map[string]struct{}),
	}, nil
}

// Run acquires the directory lock, processes pairs already present, then
// blocks dispatching new pairs until ctx is canceled.
func (w *Watcher) Run(ctx context.Context) error {
	ok, err := w.lock.TryLock()
	if err != nil {
		return fmt.Errorf("watch: acquire lock: %w", err)
	}
	if !ok {
		return ErrAlreadyRunning
	}
	defer func() {
		if err := w.lock.Unlock(); err != nil {
			w.logger.Warn("release watch lock", logging.Error(err))
		}
	}()

	w.logger.Info("watching directory",
		logging.String("dir", w.dir),
		logging.Int("max_concurrent", w.opts.MaxConcurrent))

	if err := w.scanExisting(ctx); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("waiting for in-flight runs")
			w.wg.Wait()
			w.logger.Info("watcher stopped")
			return ctx.Err()

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				w.wg.Wait()
				return errors.New("watch: events channel closed")
			}
			if event.Op.Has(fsnotify.Create) || event.Op.Has(fsnotify.Rename) {
				w.consider(ctx, event.Name)
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				w.wg.Wait()
				return errors.New("watch: errors channel closed")
			}
			w.logger.Warn("watch error", logging.Error(err))
		}
	}
}

// Close releases the underlying file watcher.
func (w *Watcher) Close() error {
	return w.fsWatcher.Close()
}

func (w *Watcher) scanExisting(ctx context.Context) error {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return fmt.Errorf("watch: scan: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		w.consider(ctx, filepath.Join(w.dir, entry.Name()))
	}
	return nil
}

// consider dispatches the pair for path when both halves exist and the pair
// has not been processed yet.
func (w *Watcher) consider(ctx context.Context, path string) {
	var mediaPath, scriptPath string
	switch {
	case isMediaFile(path):
		mediaPath = path
		scriptPath = scriptFor(path)
	case strings.EqualFold(filepath.Ext(path), scriptExtension):
		scriptPath = path
		mediaPath = mediaFor(path)
	default:
		return
	}
	if mediaPath == "" || scriptPath == "" {
		return
	}
	if _, err := os.Stat(scriptPath); err != nil {
		return
	}
	if _, err := os.Stat(mediaPath); err != nil {
		return
	}

	w.mu.Lock()
	if _, done := w.processed[mediaPath]; done {
		w.mu.Unlock()
		return
	}
	w.processed[mediaPath] = struct{}{}
	w.mu.Unlock()

	select {
	case w.semaphore <- struct{}{}:
	case <-ctx.Done():
		return
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer func() { <-w.semaphore }()

		// Give a freshly created file time to finish writing.
		select {
		case <-time.After(w.opts.SettleDelay):
		case <-ctx.Done():
			return
		}

		w.logger.Info("processing pair",
			logging.String("media", mediaPath),
			logging.String("script", scriptPath))
		if err := w.handler(ctx, mediaPath, scriptPath); err != nil {
			w.logger.Error("pair failed",
				logging.String("media", mediaPath),
				logging.Error(err))
		}
	}()
}

func isMediaFile(path string) bool {
	_, ok := mediaExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

// scriptFor returns the script path paired with a media file.
func scriptFor(mediaPath string) string {
	ext := filepath.Ext(mediaPath)
	return strings.TrimSuffix(mediaPath, ext) + scriptExtension
}

// mediaFor returns the first existing media file paired with a script, or
// empty when none is present yet.
func mediaFor(scriptPath string) string {
	base := strings.TrimSuffix(scriptPath, filepath.Ext(scriptPath))
	for ext := range mediaExtensions {
		candidate := base + ext
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}
