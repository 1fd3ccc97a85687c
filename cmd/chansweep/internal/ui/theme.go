package ui

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

var HuhTheme = ThemeBase16Ext() // default theme for all forms.

var (
	black  = lipgloss.Color("0")
	green  = lipgloss.Color("2")
	yellow = lipgloss.Color("3")
	purple = lipgloss.Color("5")
	cyan   = lipgloss.AdaptiveColor{Light: "4", Dark: "6"}
	white  = lipgloss.AdaptiveColor{Light: "0", Dark: "7"}
	gray   = lipgloss.Color("8")
	ltred  = lipgloss.Color("9")
)

// ThemeBase16Ext returns a modified Base16 theme based on huh.ThemeBase.
func ThemeBase16Ext() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Base = t.Focused.Base.BorderForeground(gray)
	t.Focused.Title = t.Focused.Title.Foreground(cyan)
	t.Focused.NoteTitle = t.Focused.NoteTitle.Foreground(cyan)
	t.Focused.Description = t.Focused.Description.Foreground(gray)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(ltred)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(ltred)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(yellow)
	t.Focused.NextIndicator = t.Focused.NextIndicator.Foreground(yellow)
	t.Focused.PrevIndicator = t.Focused.PrevIndicator.Foreground(yellow)
	t.Focused.Option = t.Focused.Option.Foreground(white)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(black).Background(green)
	t.Focused.SelectedPrefix = t.Focused.SelectedPrefix.Foreground(green)
	t.Focused.UnselectedOption = t.Focused.UnselectedOption.Foreground(white)
	t.Focused.FocusedButton = t.Focused.FocusedButton.Foreground(white).Background(purple)
	t.Focused.BlurredButton = t.Focused.BlurredButton.Foreground(white).Background(black)

	t.Focused.TextInput.Cursor.Foreground(purple)
	t.Focused.TextInput.Placeholder.Foreground(gray)
	t.Focused.TextInput.Prompt.Foreground(yellow)

	t.Blurred = t.Focused
	t.Blurred.Base = t.Blurred.Base.BorderStyle(lipgloss.HiddenBorder())
	t.Blurred.NoteTitle = t.Blurred.NoteTitle.Foreground(gray)
	t.Blurred.Title = t.Blurred.NoteTitle.Foreground(gray)

	t.Blurred.TextInput.Prompt = t.Blurred.TextInput.Prompt.Foreground(gray)
	t.Blurred.TextInput.Text = t.Blurred.TextInput.Text.Foreground(white)

	t.Blurred.NextIndicator = lipgloss.NewStyle()
	t.Blurred.PrevIndicator = lipgloss.NewStyle()

	return t
}
