package domain

// Game is one product in the launcher. The zero value is the empty placeholder
// returned for unknown names.
type Game struct {
	Name                 string   `json:"name"`
	FullName             string   `json:"fullName"`
	GameEdition          string   `json:"gameEdition"`
	GameEditionTitle     string   `json:"gameEditionTitle"`
	PurchaseRegion       string   `json:"purchaseRegion"`
	AuthRegionByIP       string   `json:"authRegionByIp"`
	SelectedBranchName   string   `json:"selectedBranchName"`
	IsBought             bool     `json:"isBought"`
	IsSelected           bool     `json:"isSelected"`
	IsLegalCheckRequired bool     `json:"isLegalCheckRequired"`
	Branches             []Branch `json:"branches"`
}

// NewGame builds a Game from a raw record. Branch order follows the input.
func NewGame(raw RawGame) Game {
	g := Game{
		Name:                 raw.Name,
		FullName:             raw.FullName,
		GameEdition:          raw.GameEdition,
		GameEditionTitle:     raw.GameEditionTitle,
		PurchaseRegion:       raw.PurchaseRegion,
		AuthRegionByIP:       raw.AuthRegionByIP,
		SelectedBranchName:   raw.SelectedBranch,
		IsBought:             raw.IsBought,
		IsSelected:           raw.IsSelected,
		IsLegalCheckRequired: raw.IsLegalCheckRequired,
		Branches:             make([]Branch, 0, len(raw.Branches)),
	}
	for _, rb := range raw.Branches {
		g.Branches = append(g.Branches, NewBranch(rb))
	}
	return g
}

// IsPlaceholder reports whether g is the empty placeholder game.
func (g Game) IsPlaceholder() bool {
	return g.Equal(Game{})
}

// Branch returns the branch with the given name.
func (g Game) Branch(name string) (Branch, bool) {
	for _, b := range g.Branches {
		if b.Name == name {
			return b, true
		}
	}
	return Branch{}, false
}

// SelectedBranch returns the branch named by SelectedBranchName.
func (g Game) SelectedBranch() (Branch, bool) {
	return g.Branch(g.SelectedBranchName)
}

// Equal compares two games field by field, branches in order.
// A nil and an empty branch list are equal.
func (g Game) Equal(other Game) bool {
	if g.Name != other.Name ||
		g.FullName != other.FullName ||
		g.GameEdition != other.GameEdition ||
		g.GameEditionTitle != other.GameEditionTitle ||
		g.PurchaseRegion != other.PurchaseRegion ||
		g.AuthRegionByIP != other.AuthRegionByIP ||
		g.SelectedBranchName != other.SelectedBranchName ||
		g.IsBought != other.IsBought ||
		g.IsSelected != other.IsSelected ||
		g.IsLegalCheckRequired != other.IsLegalCheckRequired {
		return false
	}
	if len(g.Branches) != len(other.Branches) {
		return false
	}
	for i := range g.Branches {
		if !g.Branches[i].Equal(other.Branches[i]) {
			return false
		}
	}
	return true
}

// Clone returns a copy that does not share the branch slice.
func (g Game) Clone() Game {
	if g.Branches != nil {
		g.Branches = append([]Branch(nil), g.Branches...)
	}
	return g
}
