package catalog

import (
	"github.com/bsglauncher/webui/internal/domain"
)

// The catalog notifies listeners through these capabilities. A listener
// implements any subset of them.

// GameLoaderSetter is told which game the loader should show.
type GameLoaderSetter interface {
	SetCurrentGameLoader(gameName string)
}

// SelectedGameObserver is told when the selected, active game changes or is
// refreshed.
type SelectedGameObserver interface {
	OnSelectedGameUpdated(old, updated domain.Game, forceRedraw bool)
}

// SelectedBranchObserver receives the branches of the selected game when the
// branch selector must be redrawn.
type SelectedBranchObserver interface {
	OnSelectedBranchChange(branches []domain.Branch)
}

// GameObserver is told about every replaced catalog entry.
type GameObserver interface {
	OnGameUpdated(old, updated domain.Game)
}

// LanguageRedrawer re-renders localized UI in the given language.
type LanguageRedrawer interface {
	RedrawLanguage(language string)
}

type subscription struct {
	id       uint64
	listener any
}

func implementsAny(l any) bool {
	switch l.(type) {
	case GameLoaderSetter, SelectedGameObserver, SelectedBranchObserver, GameObserver, LanguageRedrawer:
		return true
	}
	return false
}

// Subscribe registers a listener. It returns a function that removes it; the
// function is safe to call more than once.
func (c *Catalog) Subscribe(listener any) (func(), error) {
	if listener == nil || !implementsAny(listener) {
		return nil, domain.ErrValidation("listener implements no catalog capability")
	}

	c.subMu.Lock()
	c.nextSubID++
	id := c.nextSubID
	c.subs = append(c.subs, subscription{id: id, listener: listener})
	c.subMu.Unlock()

	return func() { c.unsubscribe(id) }, nil
}

func (c *Catalog) unsubscribe(id uint64) {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	for i, s := range c.subs {
		if s.id == id {
			c.subs = append(c.subs[:i:i], c.subs[i+1:]...)
			return
		}
	}
}

// listeners returns a snapshot of the registry in subscription order.
func (c *Catalog) listeners() []any {
	c.subMu.RLock()
	defer c.subMu.RUnlock()
	out := make([]any, len(c.subs))
	for i, s := range c.subs {
		out[i] = s.listener
	}
	return out
}

func (c *Catalog) setCurrentGameLoader(name string) {
	for _, l := range c.listeners() {
		if h, ok := l.(GameLoaderSetter); ok {
			h.SetCurrentGameLoader(name)
		}
	}
}

func (c *Catalog) onSelectedGameUpdated(old, updated domain.Game, forceRedraw bool) {
	for _, l := range c.listeners() {
		if h, ok := l.(SelectedGameObserver); ok {
			h.OnSelectedGameUpdated(old.Clone(), updated.Clone(), forceRedraw)
		}
	}
}

func (c *Catalog) onSelectedBranchChange(branches []domain.Branch) {
	for _, l := range c.listeners() {
		if h, ok := l.(SelectedBranchObserver); ok {
			h.OnSelectedBranchChange(append([]domain.Branch(nil), branches...))
		}
	}
}

func (c *Catalog) onGameUpdated(old, updated domain.Game) {
	for _, l := range c.listeners() {
		if h, ok := l.(GameObserver); ok {
			h.OnGameUpdated(old.Clone(), updated.Clone())
		}
	}
}

func (c *Catalog) redrawLanguage(language string) {
	for _, l := range c.listeners() {
		if h, ok := l.(LanguageRedrawer); ok {
			h.RedrawLanguage(language)
		}
	}
}
