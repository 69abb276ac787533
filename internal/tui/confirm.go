package tui

import (
	"github.com/charmbracelet/huh"
)

// Confirm asks a yes/no question on the terminal.
func Confirm(title, description, yes, no string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Description(description).
		Affirmative(yes).
		Negative(no).
		Value(&ok).
		Run()
	return ok, err
}
