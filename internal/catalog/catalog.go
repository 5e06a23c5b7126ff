// Package catalog holds the authoritative in-memory list of games and their
// branches. Snapshots from the launcher host are applied in bulk; entries that
// changed are replaced wholesale and listeners are notified.
package catalog

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/bsglauncher/webui/internal/domain"
)

// Catalog is the game catalog. The zero value is not usable; call New.
type Catalog struct {
	logger *slog.Logger

	// applyMu serializes ApplySnapshot and Redraw.
	applyMu sync.Mutex

	mu               sync.RWMutex
	selectedGameName string
	list             map[string]domain.Game

	subMu     sync.RWMutex
	subs      []subscription
	nextSubID uint64
}

// New creates an empty catalog.
func New(logger *slog.Logger) *Catalog {
	if logger == nil {
		logger = slog.Default()
	}
	return &Catalog{
		logger: logger,
		list:   make(map[string]domain.Game),
	}
}

// ApplySnapshot applies raw game records in input order. A record whose game
// is structurally equal to the stored one is skipped unless force is set.
// It returns the number of records that were handled as changes.
func (c *Catalog) ApplySnapshot(games []domain.RawGame, force bool, view *View) int {
	c.applyMu.Lock()
	defer c.applyMu.Unlock()

	if view == nil {
		view = NewView("")
	}
	changed := 0
	for _, raw := range games {
		old := c.Game(raw.Name)
		updated := domain.NewGame(raw)
		if !force && updated.Equal(old) {
			continue
		}
		c.handleGameChange(old, updated, force, view)
		changed++
	}

	c.logger.Debug("catalog snapshot applied",
		"games", len(games),
		"changed", changed,
		"force", force,
	)
	return changed
}

// handleGameChange stores updated and raises notifications. Hooks run without
// the state lock so they may read the catalog.
func (c *Catalog) handleGameChange(old, updated domain.Game, force bool, view *View) {
	newBranch, hasNewBranch := updated.SelectedBranch()
	shownBranch, hasShownBranch := view.SelectedBranch()

	c.mu.Lock()
	selectedGameIsChanged := updated.IsSelected && c.selectedGameName != updated.Name
	selectedBranchChanged := updated.IsSelected &&
		(hasShownBranch != hasNewBranch || shownBranch.Name != newBranch.Name)
	forceRedraw := selectedGameIsChanged || selectedBranchChanged || force

	c.list[updated.Name] = updated

	activates := updated.IsSelected && !updated.IsLegalCheckRequired
	if activates {
		c.selectedGameName = updated.Name
	}
	c.mu.Unlock()

	if activates {
		c.logger.Info("selected game updated",
			"game", updated.Name,
			"branch", updated.SelectedBranchName,
			"force_redraw", forceRedraw,
		)
		c.setCurrentGameLoader(updated.Name)
		c.onSelectedGameUpdated(old, updated, forceRedraw)

		view.SetSelectedBranch(newBranch, hasNewBranch)
		if forceRedraw {
			c.onSelectedBranchChange(updated.Branches)
		}
	}

	c.onGameUpdated(old, updated)

	if forceRedraw && !updated.IsLegalCheckRequired {
		c.redrawLanguage(view.Language())
	}
}

// Redraw asks every redrawer to re-render in the view's language.
func (c *Catalog) Redraw(view *View) {
	c.applyMu.Lock()
	defer c.applyMu.Unlock()
	if view == nil {
		view = NewView("")
	}
	c.redrawLanguage(view.Language())
}

// Game returns the game with the given name, or the empty placeholder.
func (c *Catalog) Game(name string) domain.Game {
	c.mu.RLock()
	defer c.mu.RUnlock()
	g, ok := c.list[name]
	if !ok {
		return domain.Game{}
	}
	return g.Clone()
}

// Games returns every stored game ordered by name.
func (c *Catalog) Games() []domain.Game {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.Game, 0, len(c.list))
	for _, g := range c.list {
		out = append(out, g.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// SelectedGameName returns the name of the active game, empty if none.
func (c *Catalog) SelectedGameName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.selectedGameName
}

// SelectedGame returns a game flagged as selected, or the empty placeholder.
// The active game wins when several are flagged; otherwise the first by name.
func (c *Catalog) SelectedGame() domain.Game {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if g, ok := c.list[c.selectedGameName]; ok && g.IsSelected {
		return g.Clone()
	}
	names := make([]string, 0, len(c.list))
	for name, g := range c.list {
		if g.IsSelected {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return domain.Game{}
	}
	sort.Strings(names)
	return c.list[names[0]].Clone()
}

// CurrentGameBranchByName returns a branch of the selected game.
func (c *Catalog) CurrentGameBranchByName(name string) (domain.Branch, bool) {
	return c.SelectedGame().Branch(name)
}

// SelectedBranch returns the selected branch of the selected game.
func (c *Catalog) SelectedBranch() (domain.Branch, bool) {
	return c.SelectedGame().SelectedBranch()
}
