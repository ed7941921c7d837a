// Package cli provides styled terminal output for finsight-seed.
package cli

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette. Adaptive colors keep output readable on light terminals.
var (
	accent  = lipgloss.AdaptiveColor{Light: "#2E7D5B", Dark: "#6FCF97"}
	credit  = lipgloss.AdaptiveColor{Light: "#2E7D5B", Dark: "#6FCF97"}
	debit   = lipgloss.AdaptiveColor{Light: "#B3261E", Dark: "#F2994A"}
	caution = lipgloss.AdaptiveColor{Light: "#8A6D00", Dark: "#F2C94C"}
	failure = lipgloss.AdaptiveColor{Light: "#B3261E", Dark: "#EB5757"}
	muted   = lipgloss.AdaptiveColor{Light: "#6B6B6B", Dark: "#8C8C8C"}
)

var (
	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().Bold(true).Underline(true).Foreground(accent)

	// SuccessStyle formats success messages.
	SuccessStyle = lipgloss.NewStyle().Foreground(accent)

	// WarningStyle formats warnings and confirmation notices.
	WarningStyle = lipgloss.NewStyle().Foreground(caution)

	// ErrorStyle formats errors.
	ErrorStyle = lipgloss.NewStyle().Bold(true).Foreground(failure)

	// InfoStyle highlights identifiers such as checkpoint names.
	InfoStyle = lipgloss.NewStyle().Foreground(accent).Italic(true)

	// SubtleStyle formats ids, hints and empty-state messages.
	SubtleStyle = lipgloss.NewStyle().Foreground(muted)

	// BoldStyle marks system rows such as Uncategorized.
	BoldStyle = lipgloss.NewStyle().Bold(true)

	// TableHeaderStyle is used for table headers.
	TableHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(muted)

	creditStyle = lipgloss.NewStyle().Foreground(credit)
	debitStyle  = lipgloss.NewStyle().Foreground(debit)
)

// Icons.
const (
	SuccessIcon = "✓"
	ErrorIcon   = "✗"
	WarningIcon = "!"
)

// FormatSuccess formats a success message with icon.
func FormatSuccess(message string) string {
	return SuccessStyle.Render(SuccessIcon + " " + message)
}

// FormatError formats an error message with icon.
func FormatError(message string) string {
	return ErrorStyle.Render(ErrorIcon + " " + message)
}

// FormatWarning formats a warning message with icon.
func FormatWarning(message string) string {
	return WarningStyle.Render(WarningIcon + " " + message)
}

// FormatTitle formats a section title.
func FormatTitle(title string) string {
	return TitleStyle.Render(title)
}

// FormatAmount colors an already formatted amount by the sign of cents:
// debits in the debit color, credits and zero in the credit color.
func FormatAmount(cents int64, text string) string {
	if cents < 0 {
		return debitStyle.Render(text)
	}
	return creditStyle.Render(text)
}
