package uiconf

import "fmt"

// Click goal actions that exist once per game.
const (
	ActionTab      = "tab"
	ActionBuy      = "buy"
	ActionDownload = "download"
	ActionUpdate   = "update"
	ActionLaunch   = "launch"
)

// Click goals that do not depend on the game.
const (
	GoalUserProfile         = "click_user_profile"
	GoalResetProfile        = "click_reset_profile"
	GoalActivateCodeProfile = "click_activate_code_profile"
	GoalLogoutProfile       = "click_logout_profile"
	GoalActivateCode        = "click_activate_code"
	GoalTabNews             = "click_tab_news"
	GoalCreateAccount       = "click_create_account"
)

// EventGoalLogin is reported after a successful sign-in.
const EventGoalLogin = "login"

var (
	perGameActions = []string{ActionTab, ActionBuy, ActionDownload, ActionUpdate, ActionLaunch}
	goalGames      = []string{"eft", "arena"}
	fixedGoals     = []string{
		GoalUserProfile, GoalResetProfile, GoalActivateCodeProfile, GoalLogoutProfile,
		GoalActivateCode, GoalTabNews, GoalCreateAccount,
	}

	clickGoals = func() map[string]struct{} {
		m := make(map[string]struct{})
		for _, a := range perGameActions {
			for _, g := range goalGames {
				m[fmt.Sprintf("click_%s_%s", a, g)] = struct{}{}
			}
		}
		for _, g := range fixedGoals {
			m[g] = struct{}{}
		}
		return m
	}()
)

// ClickGoal returns the goal name for a per-game action, e.g. click_buy_eft.
func ClickGoal(action, game string) (string, bool) {
	name := fmt.Sprintf("click_%s_%s", action, game)
	_, ok := clickGoals[name]
	return name, ok
}

// IsClickGoal reports whether name is a known click goal.
func IsClickGoal(name string) bool {
	_, ok := clickGoals[name]
	return ok
}

// ClickGoals returns every click goal name.
func ClickGoals() []string {
	out := make([]string, 0, len(clickGoals))
	for _, a := range perGameActions {
		for _, g := range goalGames {
			out = append(out, fmt.Sprintf("click_%s_%s", a, g))
		}
	}
	return append(out, fixedGoals...)
}

// EventGoals returns every event goal name.
func EventGoals() []string {
	return []string{EventGoalLogin}
}
