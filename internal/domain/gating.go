package domain

// stateGate lists the update and install states in which a UI action is offered.
type stateGate struct {
	updateStates []GameUpdateState
	gameStates   []GameState
}

func (g stateGate) allows(b Branch) bool {
	return containsState(g.updateStates, b.GameUpdateState) && containsState(g.gameStates, b.GameState)
}

func containsState[T comparable](list []T, v T) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

var (
	selectFolderGate = stateGate{
		updateStates: []GameUpdateState{GameUpdateIdle},
		gameStates: []GameState{
			GameStateInstallRequired, GameStateUpdateRequired, GameStateRepairRequired,
			GameStateReinstallRequired, GameStateReadyToGame,
		},
	}
	checkForUpdateGate = stateGate{
		updateStates: []GameUpdateState{GameUpdateIdle},
		gameStates:   []GameState{GameStateUpdateRequired, GameStateReadyToGame},
	}
	selectBranchGate = stateGate{
		updateStates: []GameUpdateState{GameUpdateIdle, GameUpdatePause, GameUpdateStopped},
		gameStates: []GameState{
			GameStateInstallRequired, GameStateUpdateRequired, GameStateRepairRequired,
			GameStateReinstallRequired, GameStateReadyToGame,
		},
	}
	sendFeedbackGate = stateGate{
		updateStates: []GameUpdateState{GameUpdateIdle, GameUpdatePause, GameUpdateStopped},
		gameStates: []GameState{
			GameStateUpdateRequired, GameStateRepairRequired,
			GameStateReinstallRequired, GameStateReadyToGame,
		},
	}
)

// CanSelectFolder reports whether the install folder may be changed.
func (b Branch) CanSelectFolder() bool { return selectFolderGate.allows(b) }

// CanCheckForUpdate reports whether a manual update check may be started.
func (b Branch) CanCheckForUpdate() bool { return checkForUpdateGate.allows(b) }

// CanSelectBranch reports whether the user may switch to another branch.
func (b Branch) CanSelectBranch() bool { return selectBranchGate.allows(b) }

// CanSendFeedback reports whether the install state permits sending feedback.
// It does not look at FeedbackBehavior; combine with IsFeedbackEnabled.
func (b Branch) CanSendFeedback() bool { return sendFeedbackGate.allows(b) }
