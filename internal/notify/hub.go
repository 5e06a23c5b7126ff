// Package notify turns catalog notifications into pushes to connected pages
// and durable outbox events.
package notify

import (
	"log/slog"

	"github.com/bsglauncher/webui/internal/domain"
)

// RoomUI is the websocket room every page joins.
const RoomUI = "ui"

// Websocket event names.
const (
	EventGameLoader            = "game.loader"
	EventSelectedGameUpdated   = "game.selected.updated"
	EventSelectedBranchChanged = "branch.selected.changed"
	EventGameUpdated           = "game.updated"
	EventLanguageRedraw        = "language.redraw"
)

// Publisher delivers an event to every connection in a room.
type Publisher interface {
	Publish(room string, event string, data interface{})
}

// GameChange is the payload of game update events.
type GameChange struct {
	Old domain.Game `json:"old"`
	New domain.Game `json:"new"`
}

// SelectedGameChange is the payload of EventSelectedGameUpdated.
type SelectedGameChange struct {
	Old         domain.Game `json:"old"`
	New         domain.Game `json:"new"`
	ForceRedraw bool        `json:"forceRedraw"`
}

// HubNotifier forwards every catalog notification to the UI room.
type HubNotifier struct {
	hub    Publisher
	logger *slog.Logger
}

// NewHubNotifier creates a notifier publishing through hub.
func NewHubNotifier(hub Publisher, logger *slog.Logger) *HubNotifier {
	return &HubNotifier{hub: hub, logger: logger}
}

func (n *HubNotifier) SetCurrentGameLoader(gameName string) {
	n.hub.Publish(RoomUI, EventGameLoader, map[string]string{"game": gameName})
}

func (n *HubNotifier) OnSelectedGameUpdated(old, updated domain.Game, forceRedraw bool) {
	n.hub.Publish(RoomUI, EventSelectedGameUpdated, SelectedGameChange{Old: old, New: updated, ForceRedraw: forceRedraw})
}

func (n *HubNotifier) OnSelectedBranchChange(branches []domain.Branch) {
	if branches == nil {
		branches = []domain.Branch{}
	}
	n.hub.Publish(RoomUI, EventSelectedBranchChanged, map[string][]domain.Branch{"branches": branches})
}

func (n *HubNotifier) OnGameUpdated(old, updated domain.Game) {
	n.hub.Publish(RoomUI, EventGameUpdated, GameChange{Old: old, New: updated})
}

func (n *HubNotifier) RedrawLanguage(language string) {
	n.logger.Debug("redraw requested", "language", language)
	n.hub.Publish(RoomUI, EventLanguageRedraw, map[string]string{"language": language})
}
