package tui

import (
	"fmt"

	"github.com/charmbracelet/huh"
)

// Confirmer asks the user to approve an action.
type Confirmer interface {
	Confirm(title, description string) (bool, error)
}

// PromptConfirmer asks through an interactive huh form.
type PromptConfirmer struct{}

// Confirm shows a yes/no prompt. In non-interactive sessions it approves
// without asking.
func (PromptConfirmer) Confirm(title, description string) (bool, error) {
	if !IsInteractive() {
		return true, nil
	}

	confirmed := false
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Write").
				Negative("Cancel").
				Value(&confirmed),
		),
	).WithTheme(currentThemeOrDefault())

	if err := form.Run(); err != nil {
		return false, fmt.Errorf("confirmation prompt failed: %w", err)
	}
	return confirmed, nil
}
