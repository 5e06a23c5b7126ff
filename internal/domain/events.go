package domain

import "time"

// NewGameUpdatedEvent records that a game's catalog entry was replaced.
func NewGameUpdatedEvent(old, updated Game, at time.Time) (OutboxDraft, error) {
	return NewOutboxDraft(AggregateGame, updated.Name, EventGameUpdated,
		GameUpdatedPayload{Old: old, New: updated}, at)
}

// NewGameSelectedEvent records a change to the selected, active game.
func NewGameSelectedEvent(old, updated Game, forceRedraw bool, at time.Time) (OutboxDraft, error) {
	return NewOutboxDraft(AggregateGame, updated.Name, EventGameSelected,
		GameSelectedPayload{Old: old, New: updated, ForceRedraw: forceRedraw}, at)
}

// NewLanguageRedrawnEvent records a UI redraw in the given language.
func NewLanguageRedrawnEvent(language string, at time.Time) (OutboxDraft, error) {
	return NewOutboxDraft(AggregateSettings, "language", EventLanguageRedrawn,
		map[string]string{"language": language}, at)
}
