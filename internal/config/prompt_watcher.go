package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"hiresight/internal/errors"

	"github.com/fsnotify/fsnotify"
)

// promptFileRef ties a watched file to the stage prompt slot it feeds.
type promptFileRef struct {
	path       string
	stage      string
	promptType string // "system" or "user"
}

// PromptWatcher watches stage prompt override files and hot-reloads their
// content into the loaded prompt store.
type PromptWatcher struct {
	mu sync.RWMutex

	refs        []promptFileRef
	lastModTime map[string]time.Time

	fsWatcher     *fsnotify.Watcher
	debounceDelay time.Duration
	debounceTimer *time.Timer

	stopChan   chan struct{}
	reloadChan chan struct{}

	logger *errors.Logger

	running bool
}

// NewPromptWatcher creates a watcher for every prompt file the config
// references. Returns nil when hot reloading is disabled or no stage uses
// file-based prompts.
func NewPromptWatcher(cfg *Config, logger *errors.Logger) *PromptWatcher {
	if !cfg.AI.PromptReload.Enabled {
		return nil
	}

	var refs []promptFileRef
	for stage, prompts := range cfg.stagePromptRefs() {
		if prompts.SystemFile != "" {
			refs = append(refs, promptFileRef{path: prompts.SystemFile, stage: stage, promptType: "system"})
		}
		if prompts.UserFile != "" {
			refs = append(refs, promptFileRef{path: prompts.UserFile, stage: stage, promptType: "user"})
		}
	}
	if len(refs) == 0 {
		return nil
	}

	debounce := cfg.AI.PromptReload.DebounceDelay
	if debounce == 0 {
		debounce = time.Second
	}

	return &PromptWatcher{
		refs:          refs,
		lastModTime:   make(map[string]time.Time),
		debounceDelay: debounce,
		stopChan:      make(chan struct{}),
		reloadChan:    make(chan struct{}, 1), // Buffered to prevent blocking
		logger:        logger,
	}
}

// Start begins watching prompt files for changes
func (pw *PromptWatcher) Start() error {
	pw.mu.Lock()
	defer pw.mu.Unlock()

	if pw.running {
		return fmt.Errorf("prompt watcher is already running")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	pw.fsWatcher = watcher

	pw.updateModTimes()

	for _, ref := range pw.refs {
		if err := pw.addFileToWatcher(ref.path); err != nil && pw.logger != nil {
			pw.logger.Warn("Failed to watch prompt file", "file", ref.path, "error", err)
		}
	}

	pw.running = true
	go pw.watchLoop()

	if pw.logger != nil {
		pw.logger.Info("Prompt file watcher started",
			"files", pw.watchedFiles(),
			"debounce_delay", pw.debounceDelay)
	}
	return nil
}

// Stop stops the prompt file watcher
func (pw *PromptWatcher) Stop() error {
	pw.mu.Lock()
	defer pw.mu.Unlock()

	if !pw.running {
		return nil
	}

	close(pw.stopChan)

	if pw.debounceTimer != nil {
		pw.debounceTimer.Stop()
	}

	if pw.fsWatcher != nil {
		if err := pw.fsWatcher.Close(); err != nil {
			if pw.logger != nil {
				pw.logger.LogError(err, "Failed to close file system watcher")
			}
			return err
		}
	}

	pw.running = false

	if pw.logger != nil {
		pw.logger.Info("Prompt file watcher stopped")
	}

	return nil
}

// IsRunning returns whether the watcher is currently running
func (pw *PromptWatcher) IsRunning() bool {
	pw.mu.RLock()
	defer pw.mu.RUnlock()
	return pw.running
}

func (pw *PromptWatcher) watchedFiles() []string {
	files := make([]string, 0, len(pw.refs))
	for _, ref := range pw.refs {
		files = append(files, ref.path)
	}
	return files
}

// addFileToWatcher adds a file and its directory to the file system watcher
func (pw *PromptWatcher) addFileToWatcher(file string) error {
	if err := pw.fsWatcher.Add(file); err != nil {
		if os.IsNotExist(err) {
			dir := filepath.Dir(file)
			if err := pw.fsWatcher.Add(dir); err != nil {
				return fmt.Errorf("failed to watch directory %s: %w", dir, err)
			}
			if pw.logger != nil {
				pw.logger.Info("Watching directory for prompt file",
					"file", file, "directory", dir)
			}
		} else {
			return fmt.Errorf("failed to watch file %s: %w", file, err)
		}
	}

	// Also watch the directory to catch atomic writes (rename operations)
	dir := filepath.Dir(file)
	if err := pw.fsWatcher.Add(dir); err != nil {
		if pw.logger != nil {
			pw.logger.Warn("Failed to watch directory for atomic writes",
				"directory", dir, "error", err)
		}
	}

	return nil
}

func (pw *PromptWatcher) updateModTimes() {
	for _, ref := range pw.refs {
		if stat, err := os.Stat(ref.path); err == nil {
			pw.lastModTime[ref.path] = stat.ModTime()
		}
	}
}

// hasFileChanged checks if a file has been modified since last check
func (pw *PromptWatcher) hasFileChanged(file string) bool {
	stat, err := os.Stat(file)
	if err != nil {
		if os.IsNotExist(err) {
			if _, exists := pw.lastModTime[file]; exists {
				delete(pw.lastModTime, file)
				return true
			}
		}
		return false
	}

	lastMod, exists := pw.lastModTime[file]
	if !exists || stat.ModTime().After(lastMod) {
		pw.lastModTime[file] = stat.ModTime()
		return true
	}

	return false
}

// watchLoop is the main event loop for file watching
func (pw *PromptWatcher) watchLoop() {
	for {
		select {
		case event, ok := <-pw.fsWatcher.Events:
			if !ok {
				return
			}

			if pw.shouldProcessEvent(event) {
				pw.scheduleReload()
			}

		case err, ok := <-pw.fsWatcher.Errors:
			if !ok {
				return
			}
			if pw.logger != nil {
				pw.logger.LogError(err, "File watcher error")
			}

		case <-pw.reloadChan:
			pw.reloadChangedPrompts()

		case <-pw.stopChan:
			return
		}
	}
}

// shouldProcessEvent determines if a file system event should trigger a reload check
func (pw *PromptWatcher) shouldProcessEvent(event fsnotify.Event) bool {
	isWatchedFile := false
	for _, ref := range pw.refs {
		if event.Name == ref.path || filepath.Base(event.Name) == filepath.Base(ref.path) {
			isWatchedFile = true
			break
		}
	}
	if !isWatchedFile {
		return false
	}

	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}

// reloadChangedPrompts reloads every watched prompt file that changed since
// the last check. A file that fails to load keeps its previous content.
func (pw *PromptWatcher) reloadChangedPrompts() {
	for _, ref := range pw.refs {
		if !pw.hasFileChanged(ref.path) {
			continue
		}

		content, err := loadPromptFromFile(ref.path, ref.promptType, ref.stage)
		if err != nil {
			if pw.logger != nil {
				pw.logger.LogError(err, "Failed to reload prompt file, keeping previous content",
					"file", ref.path, "stage", ref.stage)
			}
			continue
		}

		switch ref.promptType {
		case "system":
			loadedPrompts.setSystem(ref.stage, content)
		case "user":
			loadedPrompts.setUser(ref.stage, content)
		}

		if pw.logger != nil {
			pw.logger.Info("Prompt file reloaded",
				"file", ref.path,
				"stage", ref.stage,
				"type", ref.promptType)
		}
	}
}

// scheduleReload schedules a debounced reload
func (pw *PromptWatcher) scheduleReload() {
	pw.mu.Lock()
	defer pw.mu.Unlock()

	if pw.debounceTimer != nil {
		pw.debounceTimer.Stop()
	}

	pw.debounceTimer = time.AfterFunc(pw.debounceDelay, func() {
		select {
		case pw.reloadChan <- struct{}{}:
		default:
			// Reload already scheduled
		}
	})
}
