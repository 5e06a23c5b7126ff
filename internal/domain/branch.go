package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// FeedbackBehavior controls whether a branch collects tester feedback.
type FeedbackBehavior string

const (
	FeedbackDisabled FeedbackBehavior = "disabled"
	FeedbackEnabled  FeedbackBehavior = "enabled"
	FeedbackRequired FeedbackBehavior = "required"
)

// ParticipantStatus is the player's enrolment state on a test branch.
type ParticipantStatus string

const (
	ParticipantNotApplied ParticipantStatus = "notApplied"
	ParticipantApplied    ParticipantStatus = "applied"
	ParticipantApproved   ParticipantStatus = "approved"
	ParticipantSuspended  ParticipantStatus = "suspended"
)

// participantStatuses is indexed by the numeric status code.
var participantStatuses = [...]ParticipantStatus{
	ParticipantNotApplied,
	ParticipantApplied,
	ParticipantApproved,
	ParticipantSuspended,
}

// ParticipantStatusFromCode maps a numeric code to its label.
func ParticipantStatusFromCode(code int) (ParticipantStatus, bool) {
	if code < 0 || code >= len(participantStatuses) {
		return "", false
	}
	return participantStatuses[code], true
}

// Code returns the numeric code of the status. Unknown labels report 0.
func (s ParticipantStatus) Code() int {
	for i, known := range participantStatuses {
		if known == s {
			return i
		}
	}
	return 0
}

// Known reports whether s is one of the four labels.
func (s ParticipantStatus) Known() bool {
	for _, known := range participantStatuses {
		if known == s {
			return true
		}
	}
	return false
}

// UnmarshalJSON accepts either the label or its numeric code.
func (s *ParticipantStatus) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = ""
		return nil
	}
	var label string
	if err := json.Unmarshal(data, &label); err == nil {
		if n, convErr := strconv.Atoi(label); convErr == nil {
			if st, ok := ParticipantStatusFromCode(n); ok {
				*s = st
				return nil
			}
		}
		*s = ParticipantStatus(label)
		return nil
	}
	var code int
	if err := json.Unmarshal(data, &code); err != nil {
		return fmt.Errorf("participantStatus must be a label or a code: %s", string(data))
	}
	st, _ := ParticipantStatusFromCode(code)
	*s = st
	return nil
}

// GameState is the install state of a branch as reported by the host.
type GameState string

const (
	GameStateInstallRequired   GameState = "installRequired"
	GameStateUpdateRequired    GameState = "updateRequired"
	GameStateRepairRequired    GameState = "repairRequired"
	GameStateReinstallRequired GameState = "reinstallRequired"
	GameStateReadyToGame       GameState = "readyToGame"
)

// GameUpdateState is the state of the update engine for a branch.
type GameUpdateState string

const (
	GameUpdateIdle    GameUpdateState = "idle"
	GameUpdatePause   GameUpdateState = "pause"
	GameUpdateStopped GameUpdateState = "stopped"
)

// Progress holds download counters. Speed and ETA are -1 while nothing downloads.
type Progress struct {
	Current      int64 `json:"current"`
	CurrentSpeed int64 `json:"currentSpeed"`
	SecondsLeft  int64 `json:"secondsLeft"`
	Total        int64 `json:"total"`
}

// IdleProgress is the "not downloading" tuple.
var IdleProgress = Progress{Current: 0, CurrentSpeed: -1, SecondsLeft: -1, Total: 0}

// UnmarshalJSON fills counters missing from a partial object from IdleProgress.
func (p *Progress) UnmarshalJSON(data []byte) error {
	type plain Progress
	decoded := plain(IdleProgress)
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*p = Progress(decoded)
	return nil
}

// Downloading reports whether the counters describe an active transfer.
func (p Progress) Downloading() bool {
	return p.CurrentSpeed >= 0
}

// Percent returns completion in the range 0..100.
func (p Progress) Percent() float64 {
	if p.Total <= 0 {
		return 0
	}
	pct := float64(p.Current) * 100 / float64(p.Total)
	if pct > 100 {
		return 100
	}
	return pct
}

// Branch is one release channel of a game. Empty strings stand for null.
type Branch struct {
	FeedbackBehavior    FeedbackBehavior  `json:"feedbackBehavior"`
	GameVersion         string            `json:"gameVersion"`
	GameVersionToUpdate string            `json:"gameVersionToUpdate"`
	IsActive            bool              `json:"isActive"`
	IsDefault           bool              `json:"isDefault"`
	Name                string            `json:"name"`
	ParticipantStatus   ParticipantStatus `json:"participantStatus"`
	SiteURI             string            `json:"siteUri"`
	Status              int               `json:"status"`
	GameState           GameState         `json:"gameState"`
	GameUpdateState     GameUpdateState   `json:"gameUpdateState"`
	Progress            Progress          `json:"progress"`
}

// NewBranch builds a Branch from a raw record, defaulting missing fields.
func NewBranch(raw RawBranch) Branch {
	b := Branch{
		FeedbackBehavior:    raw.FeedbackBehavior,
		GameVersion:         raw.GameVersion,
		GameVersionToUpdate: raw.GameVersionToUpdate,
		IsActive:            raw.IsActive,
		IsDefault:           raw.IsDefault,
		Name:                raw.Name,
		ParticipantStatus:   raw.ParticipantStatus,
		SiteURI:             raw.SiteURI,
		Status:              raw.Status,
		GameState:           raw.GameState,
		GameUpdateState:     raw.GameUpdateState,
		Progress:            IdleProgress,
	}
	if b.FeedbackBehavior == "" {
		b.FeedbackBehavior = FeedbackDisabled
	}
	if !b.ParticipantStatus.Known() {
		b.ParticipantStatus = ParticipantNotApplied
	}
	if b.GameUpdateState == "" {
		b.GameUpdateState = GameUpdateIdle
	}
	if raw.Progress != nil {
		b.Progress = *raw.Progress
	}
	return b
}

// ParticipantStatusKey returns the numeric code of the participant status.
func (b Branch) ParticipantStatusKey() int {
	return b.ParticipantStatus.Code()
}

// IsFeedbackEnabled reports whether feedback is enabled or required.
func (b Branch) IsFeedbackEnabled() bool {
	return b.FeedbackBehavior != FeedbackDisabled
}

// Equal compares every field of two branches.
func (b Branch) Equal(other Branch) bool {
	return b.FeedbackBehavior == other.FeedbackBehavior &&
		b.GameVersion == other.GameVersion &&
		b.GameVersionToUpdate == other.GameVersionToUpdate &&
		b.IsActive == other.IsActive &&
		b.IsDefault == other.IsDefault &&
		b.Name == other.Name &&
		b.ParticipantStatus == other.ParticipantStatus &&
		b.SiteURI == other.SiteURI &&
		b.Status == other.Status &&
		b.GameState == other.GameState &&
		b.GameUpdateState == other.GameUpdateState &&
		b.Progress == other.Progress
}
