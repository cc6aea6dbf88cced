package styles

import (
	"fmt"
	"maps"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/wayfarer/internal/theme"
)

// ThemeConfig mirrors config.ThemeConfig to avoid circular imports.
type ThemeConfig struct {
	Preset string
	Colors map[string]string
}

// ApplyTheme applies a complete theme configuration.
// Order of application:
// 1. Start with default colors
// 2. Apply preset (if specified)
// 3. Apply individual color overrides (both backgrounds)
// 4. Rebuild all Style objects
func ApplyTheme(cfg ThemeConfig) error {
	dark := maps.Clone(DefaultPreset.Colors)
	light := maps.Clone(DefaultPreset.Light)

	if cfg.Preset != "" && cfg.Preset != "default" {
		preset, ok := Presets[cfg.Preset]
		if !ok {
			return fmt.Errorf("unknown theme preset: %s", cfg.Preset)
		}
		maps.Copy(dark, preset.Colors)
		if preset.Light != nil {
			maps.Copy(light, preset.Light)
		} else {
			maps.Copy(light, preset.Colors)
		}
	}

	for key, value := range cfg.Colors {
		token := ColorToken(key)
		if !isValidToken(token) {
			return fmt.Errorf("unknown color token: %s", key)
		}
		if !isValidHexColor(value) {
			return fmt.Errorf("invalid hex color for %s: %s", key, value)
		}
		dark[token] = value
		light[token] = value
	}

	applyColors(dark, light)
	rebuildStyles()
	return nil
}

// ApplyMode switches between the light and dark halves of every adaptive
// color. Adaptive colors resolve at render time, so no rebuild is needed.
func ApplyMode(m theme.Mode) {
	lipgloss.SetHasDarkBackground(m == theme.Dark)
}

// CurrentMode reports the mode lipgloss is rendering with.
func CurrentMode() theme.Mode {
	if lipgloss.HasDarkBackground() {
		return theme.Dark
	}
	return theme.Light
}

func colorTargets() map[ColorToken]*lipgloss.AdaptiveColor {
	return map[ColorToken]*lipgloss.AdaptiveColor{
		TokenTextPrimary:         &TextPrimaryColor,
		TokenTextSecondary:       &TextSecondaryColor,
		TokenTextMuted:           &TextMutedColor,
		TokenTextDescription:     &TextDescriptionColor,
		TokenBorderDefault:       &BorderDefaultColor,
		TokenBorderFocus:         &BorderFocusColor,
		TokenStatusSuccess:       &StatusSuccessColor,
		TokenStatusWarning:       &StatusWarningColor,
		TokenStatusError:         &StatusErrorColor,
		TokenSelectionIndicator:  &SelectionIndicatorColor,
		TokenSelectionBackground: &SelectionBackgroundColor,
		TokenFavoriteMarker:      &FavoriteMarkerColor,
		TokenLocation:            &LocationColor,
		TokenOverlayTitle:        &OverlayTitleColor,
		TokenOverlayBorder:       &OverlayBorderColor,
		TokenToastSuccess:        &ToastBorderSuccessColor,
		TokenToastError:          &ToastBorderErrorColor,
		TokenToastInfo:           &ToastBorderInfoColor,
		TokenToastWarn:           &ToastBorderWarnColor,
		TokenSpinner:             &SpinnerColor,
	}
}

func applyColors(dark, light map[ColorToken]string) {
	for token, target := range colorTargets() {
		d, ok := dark[token]
		if !ok {
			continue
		}
		l, ok := light[token]
		if !ok {
			l = d
		}
		*target = lipgloss.AdaptiveColor{Light: l, Dark: d}
	}
}

// rebuildStyles recreates all Style objects with updated colors.
// lipgloss.Style values capture colors at creation time.
func rebuildStyles() {
	SelectionIndicatorStyle = lipgloss.NewStyle().Bold(true).Foreground(SelectionIndicatorColor)
	SelectedRowStyle = lipgloss.NewStyle().Background(SelectionBackgroundColor)
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(TextPrimaryColor)
	SecondaryStyle = lipgloss.NewStyle().Foreground(TextSecondaryColor)
	MutedStyle = lipgloss.NewStyle().Foreground(TextMutedColor)
	DescriptionStyle = lipgloss.NewStyle().Foreground(TextDescriptionColor)
	FavoriteMarkerStyle = lipgloss.NewStyle().Foreground(FavoriteMarkerColor)
	LocationStyle = lipgloss.NewStyle().Foreground(LocationColor)
	SpinnerStyle = lipgloss.NewStyle().Foreground(SpinnerColor)

	StatusBarStyle = lipgloss.NewStyle().
		Foreground(TextSecondaryColor).
		Padding(0, 1)

	ErrorStyle = lipgloss.NewStyle().
		Foreground(StatusErrorColor).
		Bold(true).
		Padding(1, 2)

	PrimaryButtonStyle = baseButtonStyle.Foreground(TextSecondaryColor).Background(SelectionBackgroundColor)
	PrimaryButtonFocusedStyle = baseButtonStyle.Foreground(buttonTextColor).Background(BorderFocusColor).Underline(true)
	DangerButtonStyle = baseButtonStyle.Foreground(StatusErrorColor).Background(SelectionBackgroundColor)
	DangerButtonFocusedStyle = baseButtonStyle.Foreground(buttonTextColor).Background(StatusErrorColor).Underline(true)
	SecondaryButtonStyle = baseButtonStyle.Foreground(TextMutedColor).Background(SelectionBackgroundColor)
	SecondaryButtonFocusedStyle = baseButtonStyle.Foreground(TextPrimaryColor).Background(SelectionBackgroundColor).Underline(true)
}

func isValidToken(token ColorToken) bool {
	_, ok := colorTargets()[token]
	return ok
}

func isValidHexColor(s string) bool {
	if !strings.HasPrefix(s, "#") {
		return false
	}
	hex := s[1:]
	if len(hex) != 3 && len(hex) != 6 {
		return false
	}
	_, err := strconv.ParseUint(hex, 16, 64)
	return err == nil
}
