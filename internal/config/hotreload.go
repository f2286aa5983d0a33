package config

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ChangeHandler is called when the config file changes.
// It receives the newly loaded config.
type ChangeHandler func(cfg *Config)

// Watcher watches the config file for changes and reloads it.
// Changes are debounced (300ms) to avoid rapid reloads. On reload it
// logs which jotbot settings actually changed and flags the ones that
// only take effect after a restart.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	handlers []ChangeHandler
	last     *Config
	debounce time.Duration
	stopChan chan struct{}
	mu       sync.Mutex
}

// NewWatcher creates a config file watcher. current is the config the
// bot started with, used to report what changed on reload.
func NewWatcher(configPath string, current *Config) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		path:     configPath,
		watcher:  w,
		last:     current,
		debounce: 300 * time.Millisecond,
	}, nil
}

// OnChange registers a handler to be called when config changes.
func (cw *Watcher) OnChange(handler ChangeHandler) {
	cw.mu.Lock()
	defer cw.mu.Unlock()
	cw.handlers = append(cw.handlers, handler)
}

// Start begins watching the config file for changes.
func (cw *Watcher) Start() error {
	if err := cw.watcher.Add(cw.path); err != nil {
		return err
	}

	cw.stopChan = make(chan struct{})
	go cw.watchLoop()

	slog.Info("config watcher started", "path", cw.path)
	return nil
}

// Stop halts the file watcher.
func (cw *Watcher) Stop() {
	if cw.stopChan != nil {
		close(cw.stopChan)
	}
	cw.watcher.Close()
	slog.Info("config watcher stopped")
}

func (cw *Watcher) watchLoop() {
	var debounceTimer *time.Timer

	for {
		select {
		case <-cw.stopChan:
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return

		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}

			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			// Debounce: reset timer on each change
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(cw.debounce, func() {
				cw.reload()
			})

		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("config watcher error", "error", err)
		}
	}
}

// restartOnlySettings are applied at wiring time; a reload cannot
// change the running bot, store, or inference client.
var restartOnlySettings = map[string]bool{
	"telegram.token":       true,
	"database.postgresDsn": true,
	"ollama.baseUrl":       true,
	"ollama.model":         true,
	"whisper.url":          true,
}

// settingsDiff lists the settings that differ between two configs,
// using the config file key names.
func settingsDiff(old, next *Config) []string {
	if old == nil {
		return nil
	}
	var changed []string
	if old.Telegram.Token != next.Telegram.Token {
		changed = append(changed, "telegram.token")
	}
	if old.Database.PostgresDSN != next.Database.PostgresDSN {
		changed = append(changed, "database.postgresDsn")
	}
	if old.Ollama.BaseURL != next.Ollama.BaseURL {
		changed = append(changed, "ollama.baseUrl")
	}
	if old.Ollama.Model != next.Ollama.Model {
		changed = append(changed, "ollama.model")
	}
	if old.Whisper.URL != next.Whisper.URL {
		changed = append(changed, "whisper.url")
	}
	if old.Log.Level != next.Log.Level {
		changed = append(changed, "log.level")
	}
	return changed
}

func (cw *Watcher) reload() {
	slog.Info("config file changed, reloading", "path", cw.path)

	cfg, err := Load(cw.path)
	if err != nil {
		slog.Error("config reload failed, keeping previous config", "error", err)
		return
	}

	cw.mu.Lock()
	changed := settingsDiff(cw.last, cfg)
	cw.last = cfg
	handlers := make([]ChangeHandler, len(cw.handlers))
	copy(handlers, cw.handlers)
	cw.mu.Unlock()

	if len(changed) == 0 {
		slog.Info("config reloaded, no settings changed")
		return
	}

	var deferred []string
	for _, key := range changed {
		if restartOnlySettings[key] {
			deferred = append(deferred, key)
		}
	}

	slog.Info("config reloaded", "changed", strings.Join(changed, ", "))
	if len(deferred) > 0 {
		slog.Warn("changed settings take effect after restart",
			"settings", strings.Join(deferred, ", "))
	}

	for _, h := range handlers {
		h(cfg)
	}
}
