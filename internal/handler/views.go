package handler

import "github.com/bsglauncher/webui/internal/domain"

// branchActions lists the launcher actions the branch's install state permits.
type branchActions struct {
	SelectFolder   bool `json:"selectFolder"`
	CheckForUpdate bool `json:"checkForUpdate"`
	SelectBranch   bool `json:"selectBranch"`
	SendFeedback   bool `json:"sendFeedback"`
}

type branchView struct {
	domain.Branch
	Actions     branchActions `json:"actions"`
	Percent     float64       `json:"percent"`
	Downloading bool          `json:"downloading"`
}

func newBranchView(b domain.Branch) branchView {
	return branchView{
		Branch: b,
		Actions: branchActions{
			SelectFolder:   b.CanSelectFolder(),
			CheckForUpdate: b.CanCheckForUpdate(),
			SelectBranch:   b.CanSelectBranch(),
			SendFeedback:   b.IsFeedbackEnabled() && b.CanSendFeedback(),
		},
		Percent:     b.Progress.Percent(),
		Downloading: b.Progress.Downloading(),
	}
}

// gameView shadows the embedded branches with their views.
type gameView struct {
	domain.Game
	Branches []branchView `json:"branches"`
}

func newGameView(g domain.Game) gameView {
	branches := make([]branchView, len(g.Branches))
	for i, b := range g.Branches {
		branches[i] = newBranchView(b)
	}
	return gameView{Game: g, Branches: branches}
}

func newGameViews(games []domain.Game) []gameView {
	out := make([]gameView, len(games))
	for i, g := range games {
		out[i] = newGameView(g)
	}
	return out
}

// settingsView fills in the placeholder avatar.
func settingsView(s domain.Settings) domain.Settings {
	s.Account.Avatar = s.Account.AvatarOrDefault()
	return s
}
