package uiconf

import "strings"

// AuthCenterURI is the default site the auth links are joined to.
const AuthCenterURI = "https://www.escapefromtarkov.com"

// Auth center link keys.
const (
	LinkRoot            = "root"
	LinkResetPassword   = "resetPassword"
	LinkRegistration    = "registration"
	LinkLegalAgreements = "legalAgreements"
)

var authCenterLinks = map[string]string{
	LinkRoot:            "/",
	LinkResetPassword:   "/password-recovery?utm_source=launcher&utm_medium=link_reset_password&utm_campaign=dropdown",
	LinkRegistration:    "/registration?utm_source=launcher&utm_medium=link&utm_campaign=footer",
	LinkLegalAgreements: "/legal-agreements?utm_source=launcher&utm_medium=link&utm_campaign=footer",
}

var mainMenuTemplate = map[string]string{
	"root":         "",
	"profile":      "/profile?utm_source=launcher&utm_medium=link_profile&utm_campaign=dropdown",
	"resetProfile": "/reset-game-profile?utm_source=launcher&utm_medium=link_reset_game_profile&utm_campaign=dropdown",
	"preorder":     "/preorder-page",
	"support":      "/support?utm_source=launcher&utm_medium=link_support&utm_campaign=menu",
	"expansions":   "/expansions?utm_source=launcher&utm_medium=menu&utm_campaign=head&utm_term=expansions_link",
}

// AuthCenterLinks returns the auth links joined onto base. An empty base uses
// AuthCenterURI.
func AuthCenterLinks(base string) map[string]string {
	if base == "" {
		base = AuthCenterURI
	}
	return joinAll(base, authCenterLinks)
}

// MainMenuLinks returns the main menu template joined onto a site root.
func MainMenuLinks(siteRoot string) map[string]string {
	return joinAll(siteRoot, mainMenuTemplate)
}

func joinAll(base string, paths map[string]string) map[string]string {
	base = strings.TrimRight(base, "/")
	out := make(map[string]string, len(paths))
	for k, p := range paths {
		out[k] = base + p
	}
	return out
}
