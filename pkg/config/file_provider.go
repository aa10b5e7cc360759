package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const reloadDebounce = 100 * time.Millisecond

// FileProvider serves the configuration loaded from a local file and reloads
// it when the file changes. Invalid edits are logged and the previous
// configuration is kept.
type FileProvider struct {
	path        string
	logger      *slog.Logger
	mu          sync.RWMutex
	current     *Config
	subscribers []chan *Config
	watcher     *fsnotify.Watcher
	cancel      context.CancelFunc
	done        chan struct{}
}

// NewFileProvider loads path and starts watching it. The initial load must
// succeed.
func NewFileProvider(path string, logger *slog.Logger) (*FileProvider, error) {
	if logger == nil {
		logger = slog.Default()
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	cfg, err := Load(absPath)
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	// Watch the directory so editors that replace the file are still seen.
	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch directory: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	p := &FileProvider{
		path:    absPath,
		logger:  logger,
		current: cfg,
		watcher: watcher,
		cancel:  cancel,
		done:    make(chan struct{}),
	}

	go p.watchLoop(ctx)

	return p, nil
}

// Current returns the most recently loaded configuration.
func (p *FileProvider) Current() *Config {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.current
}

// Subscribe returns a channel that receives the current configuration
// immediately and every successful reload afterwards. Slow subscribers miss
// intermediate versions.
func (p *FileProvider) Subscribe() <-chan *Config {
	p.mu.Lock()
	defer p.mu.Unlock()
	ch := make(chan *Config, 1)
	p.subscribers = append(p.subscribers, ch)
	ch <- p.current
	return ch
}

// Close stops the watcher and closes subscriber channels.
func (p *FileProvider) Close() error {
	p.cancel()
	err := p.watcher.Close()
	<-p.done

	p.mu.Lock()
	defer p.mu.Unlock()
	for _, ch := range p.subscribers {
		close(ch)
	}
	p.subscribers = nil
	return err
}

func (p *FileProvider) watchLoop(ctx context.Context) {
	defer close(p.done)

	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-p.watcher.Events:
			if !ok {
				return
			}

			if filepath.Clean(event.Name) != p.path {
				continue
			}

			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				debounceTimer = time.AfterFunc(reloadDebounce, func() { p.reload(ctx) })
			}
		case err, ok := <-p.watcher.Errors:
			if !ok {
				return
			}
			p.logger.Warn("Config watcher error", "error", err)
		}
	}
}

func (p *FileProvider) reload(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	cfg, err := Load(p.path)
	if err != nil {
		p.logger.Error("Error reloading config", "path", p.path, "error", err)
		return
	}

	p.mu.Lock()
	if ctx.Err() != nil {
		p.mu.Unlock()
		return
	}
	p.current = cfg
	for _, ch := range p.subscribers {
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- cfg:
		default:
		}
	}
	p.mu.Unlock()

	p.logger.Info("Configuration reloaded", "path", p.path)
}
