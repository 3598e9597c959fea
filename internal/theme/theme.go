// Package theme manages the display theme: an explicit light or dark choice,
// or "system", which follows the host scheme and tracks it live.
package theme

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/ymgs-pharma/storefront/internal/localstore"
	"github.com/ymgs-pharma/storefront/pkg/enums"
	"github.com/ymgs-pharma/storefront/pkg/logger"
)

// SchemeSource reports the host's current scheme, light or dark.
type SchemeSource interface {
	Scheme() enums.Theme
}

// SchemeSourceFunc adapts a func to the SchemeSource interface.
type SchemeSourceFunc func() enums.Theme

func (f SchemeSourceFunc) Scheme() enums.Theme { return f() }

// Listener observes resolved theme changes.
type Listener func(resolved enums.Theme)

// Manager owns the theme mode, persists it, and resolves "system" against the
// scheme source. While in system mode it watches the source's hint file so an
// external scheme flip propagates without a restart.
type Manager struct {
	store  *localstore.Store
	source SchemeSource
	log    *logger.Logger

	mu        sync.Mutex
	mode      enums.Theme
	resolved  enums.Theme
	listeners []Listener

	watcher *fsnotify.Watcher
	watched string
	done    chan struct{}
}

// Params collects the manager's dependencies.
type Params struct {
	Store  *localstore.Store
	Source SchemeSource
	Logger *logger.Logger
	// WatchPath is the file the scheme source reads from. Empty disables
	// live tracking; system mode then resolves once per query.
	WatchPath string
}

// NewManager restores the persisted mode, defaulting to light when nothing
// was saved or the saved value no longer parses.
func NewManager(p Params) (*Manager, error) {
	if p.Store == nil {
		return nil, fmt.Errorf("local store is required")
	}
	if p.Source == nil {
		return nil, fmt.Errorf("scheme source is required")
	}

	m := &Manager{
		store:   p.Store,
		source:  p.Source,
		log:     p.Logger,
		mode:    enums.ThemeLight,
		watched: p.WatchPath,
	}

	saved, err := p.Store.Get(localstore.KeyTheme)
	if err != nil && !errors.Is(err, localstore.ErrNotFound) {
		return nil, err
	}
	if err == nil {
		if mode, parseErr := enums.ParseTheme(saved); parseErr == nil {
			m.mode = mode
		}
	}

	m.resolved = m.resolveLocked()
	if m.mode == enums.ThemeSystem {
		m.startWatchLocked()
	}
	return m, nil
}

// SetMode switches the theme and persists the choice. Entering system mode
// starts live tracking; leaving it stops the watcher.
func (m *Manager) SetMode(mode enums.Theme) error {
	if !mode.IsValid() {
		return fmt.Errorf("unknown theme %q", mode)
	}
	if err := m.store.Put(localstore.KeyTheme, mode.String()); err != nil {
		return err
	}

	m.mu.Lock()
	previous := m.mode
	m.mode = mode
	if previous == enums.ThemeSystem && mode != enums.ThemeSystem {
		m.stopWatchLocked()
	}
	if previous != enums.ThemeSystem && mode == enums.ThemeSystem {
		m.startWatchLocked()
	}
	resolved := m.resolveLocked()
	changed := resolved != m.resolved
	m.resolved = resolved
	listeners := append([]Listener(nil), m.listeners...)
	m.mu.Unlock()

	if changed {
		for _, l := range listeners {
			l(resolved)
		}
	}
	return nil
}

// Toggle flips between light and dark. From system mode it pins the opposite
// of the currently resolved scheme.
func (m *Manager) Toggle() error {
	if m.Resolved() == enums.ThemeDark {
		return m.SetMode(enums.ThemeLight)
	}
	return m.SetMode(enums.ThemeDark)
}

// Mode returns the selected mode, which may be system.
func (m *Manager) Mode() enums.Theme {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mode
}

// Resolved returns the effective scheme, light or dark.
func (m *Manager) Resolved() enums.Theme {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.mode != enums.ThemeSystem {
		return m.mode
	}
	return m.resolveLocked()
}

// OnChange registers a listener for resolved scheme changes.
func (m *Manager) OnChange(l Listener) {
	if l == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, l)
}

// Close stops the watcher if one is running.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopWatchLocked()
	return nil
}

func (m *Manager) resolveLocked() enums.Theme {
	if m.mode != enums.ThemeSystem {
		return m.mode
	}
	scheme := m.source.Scheme()
	if scheme != enums.ThemeDark {
		scheme = enums.ThemeLight
	}
	return scheme
}

// startWatchLocked begins following the scheme hint file. Watching the parent
// directory survives editors that replace the file on write.
func (m *Manager) startWatchLocked() {
	if m.watched == "" || m.watcher != nil {
		return
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		m.logWarn("scheme watcher unavailable")
		return
	}
	if err := watcher.Add(filepath.Dir(m.watched)); err != nil {
		_ = watcher.Close()
		m.logWarn("scheme watch failed")
		return
	}
	m.watcher = watcher
	m.done = make(chan struct{})
	go m.watchLoop(watcher, m.done, m.watched)
}

func (m *Manager) stopWatchLocked() {
	if m.watcher == nil {
		return
	}
	close(m.done)
	_ = m.watcher.Close()
	m.watcher = nil
	m.done = nil
}

func (m *Manager) watchLoop(watcher *fsnotify.Watcher, done chan struct{}, path string) {
	for {
		select {
		case <-done:
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			m.refresh()
		case _, ok := <-watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

// refresh re-resolves the scheme and fans out to listeners when it changed.
func (m *Manager) refresh() {
	m.mu.Lock()
	if m.mode != enums.ThemeSystem {
		m.mu.Unlock()
		return
	}
	resolved := m.resolveLocked()
	if resolved == m.resolved {
		m.mu.Unlock()
		return
	}
	m.resolved = resolved
	listeners := append([]Listener(nil), m.listeners...)
	m.mu.Unlock()

	for _, l := range listeners {
		l(resolved)
	}
}

func (m *Manager) logWarn(msg string) {
	if m.log != nil {
		m.log.Warn(context.Background(), msg)
	}
}

// FileSchemeSource reads the host scheme from a one-word hint file. Anything
// other than "dark" resolves light.
type FileSchemeSource struct {
	Path string
}

// Scheme implements SchemeSource.
func (f FileSchemeSource) Scheme() enums.Theme {
	raw, err := os.ReadFile(f.Path)
	if err != nil {
		return enums.ThemeLight
	}
	if strings.TrimSpace(strings.ToLower(string(raw))) == enums.ThemeDark.String() {
		return enums.ThemeDark
	}
	return enums.ThemeLight
}
