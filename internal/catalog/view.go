package catalog

import (
	"sync"

	"github.com/bsglauncher/webui/internal/domain"
)

// View is the page state the catalog reads and updates while applying a
// snapshot: the branch currently shown and the UI language. It is owned by the
// caller and passed to ApplySnapshot explicitly.
type View struct {
	mu             sync.RWMutex
	selectedBranch *domain.Branch
	language       string
}

// NewView returns a view with no selected branch.
func NewView(language string) *View {
	if language == "" {
		language = domain.DefaultLanguage
	}
	return &View{language: language}
}

// SelectedBranch returns the branch currently shown, if any.
func (v *View) SelectedBranch() (domain.Branch, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.selectedBranch == nil {
		return domain.Branch{}, false
	}
	return *v.selectedBranch, true
}

// SetSelectedBranch replaces the shown branch; ok=false clears it.
func (v *View) SetSelectedBranch(b domain.Branch, ok bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !ok {
		v.selectedBranch = nil
		return
	}
	v.selectedBranch = &b
}

// Language returns the UI language code.
func (v *View) Language() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.language
}

// SetLanguage changes the UI language code.
func (v *View) SetLanguage(language string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.language = language
}
