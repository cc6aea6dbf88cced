// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Text hierarchy
	TextPrimaryColor     = lipgloss.AdaptiveColor{Light: "#1F1F1F", Dark: "#CCCCCC"} // Main text
	TextSecondaryColor   = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BBBBBB"} // Ids, secondary info
	TextMutedColor       = lipgloss.AdaptiveColor{Light: "#8A8A8A", Dark: "#696969"} // Hints, help text
	TextDescriptionColor = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#999999"} // Post bodies

	// Borders
	BorderDefaultColor = lipgloss.AdaptiveColor{Light: "#C8C8C8", Dark: "#696969"}
	BorderFocusColor   = lipgloss.AdaptiveColor{Light: "#1E66F5", Dark: "#54A0FF"}

	// Status
	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#2E9E55", Dark: "#73F59F"}
	StatusWarningColor = lipgloss.AdaptiveColor{Light: "#C98A00", Dark: "#FECA57"}
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#D63031", Dark: "#FF8787"}

	// Selection
	SelectionIndicatorColor  = lipgloss.AdaptiveColor{Light: "#1F1F1F", Dark: "#FFFFFF"}
	SelectionBackgroundColor = lipgloss.AdaptiveColor{Light: "#E6E9EF", Dark: "#313244"}

	// Destinations
	FavoriteMarkerColor = lipgloss.AdaptiveColor{Light: "#D4A017", Dark: "#FECA57"}
	LocationColor       = lipgloss.AdaptiveColor{Light: "#179299", Dark: "#94E2D5"}

	// Overlays
	OverlayTitleColor  = lipgloss.AdaptiveColor{Light: "#333333", Dark: "#C9C9C9"}
	OverlayBorderColor = lipgloss.AdaptiveColor{Light: "#8C8C8C", Dark: "#8C8C8C"}

	// Toast notifications
	ToastBorderSuccessColor = lipgloss.AdaptiveColor{Light: "#2E9E55", Dark: "#73F59F"}
	ToastBorderErrorColor   = lipgloss.AdaptiveColor{Light: "#D63031", Dark: "#FF8787"}
	ToastBorderInfoColor    = lipgloss.AdaptiveColor{Light: "#1E66F5", Dark: "#54A0FF"}
	ToastBorderWarnColor    = lipgloss.AdaptiveColor{Light: "#C98A00", Dark: "#FECA57"}

	SpinnerColor = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#FFFFFF"}

	// Text on filled buttons. Not themeable; it contrasts with the focus and
	// error colors of every preset.
	buttonTextColor = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1E1E2E"}

	// Styles are rebuilt by rebuildStyles whenever colors change.
	SelectionIndicatorStyle = lipgloss.NewStyle().Bold(true).Foreground(SelectionIndicatorColor)
	SelectedRowStyle        = lipgloss.NewStyle().Background(SelectionBackgroundColor)
	TitleStyle              = lipgloss.NewStyle().Bold(true).Foreground(TextPrimaryColor)
	SecondaryStyle          = lipgloss.NewStyle().Foreground(TextSecondaryColor)
	MutedStyle              = lipgloss.NewStyle().Foreground(TextMutedColor)
	DescriptionStyle        = lipgloss.NewStyle().Foreground(TextDescriptionColor)
	FavoriteMarkerStyle     = lipgloss.NewStyle().Foreground(FavoriteMarkerColor)
	LocationStyle           = lipgloss.NewStyle().Foreground(LocationColor)
	SpinnerStyle            = lipgloss.NewStyle().Foreground(SpinnerColor)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextSecondaryColor).
			Padding(0, 1)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(StatusErrorColor).
			Bold(true).
			Padding(1, 2)

	// Buttons
	baseButtonStyle = lipgloss.NewStyle().Padding(0, 2).Bold(true)

	PrimaryButtonStyle          = baseButtonStyle.Foreground(TextSecondaryColor).Background(SelectionBackgroundColor)
	PrimaryButtonFocusedStyle   = baseButtonStyle.Foreground(buttonTextColor).Background(BorderFocusColor).Underline(true)
	DangerButtonStyle           = baseButtonStyle.Foreground(StatusErrorColor).Background(SelectionBackgroundColor)
	DangerButtonFocusedStyle    = baseButtonStyle.Foreground(buttonTextColor).Background(StatusErrorColor).Underline(true)
	SecondaryButtonStyle        = baseButtonStyle.Foreground(TextMutedColor).Background(SelectionBackgroundColor)
	SecondaryButtonFocusedStyle = baseButtonStyle.Foreground(TextPrimaryColor).Background(SelectionBackgroundColor).Underline(true)
)
