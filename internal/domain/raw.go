package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// RawBranch is a branch record as sent by the launcher host.
type RawBranch struct {
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
	Progress            *Progress         `json:"progress"`
}

// RawGame is a game record as sent by the launcher host.
type RawGame struct {
	Name                 string      `json:"name"`
	FullName             string      `json:"fullName"`
	GameEdition          string      `json:"gameEdition"`
	GameEditionTitle     string      `json:"gameEditionTitle"`
	PurchaseRegion       string      `json:"purchaseRegion"`
	AuthRegionByIP       string      `json:"authRegionByIp"`
	SelectedBranch       string      `json:"selectedBranch"`
	IsBought             bool        `json:"isBought"`
	IsSelected           bool        `json:"isSelected"`
	IsLegalCheckRequired bool        `json:"isLegalCheckRequired"`
	Branches             []RawBranch `json:"branches"`
}

// DecodeGames parses a snapshot document: a JSON array of game records.
// Structurally malformed input is reported as a validation error.
func DecodeGames(data []byte) ([]RawGame, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, ErrValidation("games snapshot must be a JSON array")
	}

	var games []RawGame
	if err := json.Unmarshal(trimmed, &games); err != nil {
		return nil, validationFromJSON("games snapshot", err)
	}
	if err := rejectNullRecords(trimmed); err != nil {
		return nil, err
	}
	return games, nil
}

// rejectNullRecords fails on null game records and null branch entries, which
// json.Unmarshal would otherwise turn into zero values. The document is
// already known to be well formed.
func rejectNullRecords(data []byte) error {
	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return validationFromJSON("games snapshot", err)
	}
	for i, record := range records {
		if isJSONNull(record) {
			return ErrValidation(fmt.Sprintf("games snapshot: game %d is null", i))
		}
		var shape struct {
			Name     string            `json:"name"`
			Branches []json.RawMessage `json:"branches"`
		}
		if err := json.Unmarshal(record, &shape); err != nil {
			return validationFromJSON("games snapshot", err)
		}
		for j, branch := range shape.Branches {
			if isJSONNull(branch) {
				return ErrValidation(fmt.Sprintf("games snapshot: game %q branch %d is null", shape.Name, j))
			}
		}
	}
	return nil
}

func isJSONNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// EncodeGames is the inverse of DecodeGames, used to persist snapshots.
func EncodeGames(games []RawGame) ([]byte, error) {
	if games == nil {
		games = []RawGame{}
	}
	data, err := json.Marshal(games)
	if err != nil {
		return nil, fmt.Errorf("encode games snapshot: %w", err)
	}
	return data, nil
}

func validationFromJSON(what string, err error) *AppError {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = "document"
		}
		appErr := ErrValidation(fmt.Sprintf("%s: field %s must be %s, got %s", what, field, typeErr.Type, typeErr.Value))
		appErr.Cause = err
		return appErr
	}
	appErr := ErrValidation(fmt.Sprintf("%s: malformed JSON", what))
	appErr.Cause = err
	return appErr
}
