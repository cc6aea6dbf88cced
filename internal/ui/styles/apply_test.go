package styles

import (
	"slices"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/wayfarer/internal/theme"
)

func resetTheme(t *testing.T) {
	t.Helper()
	t.Cleanup(func() { _ = ApplyTheme(ThemeConfig{}) })
}

func TestApplyTheme_Default(t *testing.T) {
	resetTheme(t)
	require.NoError(t, ApplyTheme(ThemeConfig{}))
	require.Equal(t, DefaultPreset.Colors[TokenTextPrimary], TextPrimaryColor.Dark)
	require.Equal(t, DefaultPreset.Light[TokenTextPrimary], TextPrimaryColor.Light)
}

func TestApplyTheme_PresetWithoutLightUsesColorsForBoth(t *testing.T) {
	resetTheme(t)
	Presets["test"] = Preset{
		Name:   "test",
		Colors: map[ColorToken]string{TokenTextPrimary: "#FF0000"},
	}
	defer delete(Presets, "test")

	require.NoError(t, ApplyTheme(ThemeConfig{Preset: "test"}))
	require.Equal(t, "#FF0000", TextPrimaryColor.Dark)
	require.Equal(t, "#FF0000", TextPrimaryColor.Light)
	// Tokens the preset omits keep the default values.
	require.Equal(t, DefaultPreset.Colors[TokenStatusError], StatusErrorColor.Dark)
}

func TestApplyTheme_MochaPairsWithLatte(t *testing.T) {
	resetTheme(t)
	require.NoError(t, ApplyTheme(ThemeConfig{Preset: "catppuccin-mocha"}))
	require.Equal(t, CatppuccinMochaPreset.Colors[TokenBorderFocus], BorderFocusColor.Dark)
	require.Equal(t, CatppuccinLattePreset.Colors[TokenBorderFocus], BorderFocusColor.Light)
}

func TestApplyTheme_ColorOverrideAppliesToBothModes(t *testing.T) {
	resetTheme(t)
	err := ApplyTheme(ThemeConfig{
		Preset: "nord",
		Colors: map[string]string{"favorite.marker": "#00FF00"},
	})
	require.NoError(t, err)
	require.Equal(t, lipgloss.AdaptiveColor{Light: "#00FF00", Dark: "#00FF00"}, FavoriteMarkerColor)
	require.Equal(t, NordPreset.Colors[TokenLocation], LocationColor.Dark)
}

func TestApplyTheme_RebuildsStyles(t *testing.T) {
	resetTheme(t)
	require.NoError(t, ApplyTheme(ThemeConfig{Colors: map[string]string{"status.error": "#123456"}}))
	require.Equal(t, lipgloss.AdaptiveColor{Light: "#123456", Dark: "#123456"}, ErrorStyle.GetForeground())
}

func TestApplyTheme_Errors(t *testing.T) {
	resetTheme(t)
	cases := map[string]struct {
		cfg     ThemeConfig
		wantErr string
	}{
		"unknown preset": {ThemeConfig{Preset: "nonexistent"}, "unknown theme preset"},
		"unknown token":  {ThemeConfig{Colors: map[string]string{"invalid.token": "#FF0000"}}, "unknown color token"},
		"bad hex":        {ThemeConfig{Colors: map[string]string{"text.primary": "not-a-color"}}, "invalid hex color"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			require.ErrorContains(t, ApplyTheme(tc.cfg), tc.wantErr)
		})
	}
}

func TestPresets_CoverEveryToken(t *testing.T) {
	for name, preset := range Presets {
		for _, token := range AllTokens() {
			require.Contains(t, preset.Colors, token, "%s missing %s", name, token)
			if preset.Light != nil {
				require.Contains(t, preset.Light, token, "%s light missing %s", name, token)
			}
		}
	}
}

func TestAllTokens_SortedAndValid(t *testing.T) {
	tokens := AllTokens()
	require.Len(t, tokens, 20)
	require.True(t, slices.IsSorted(tokens))
	require.Contains(t, tokens, TokenFavoriteMarker)
	require.True(t, isValidToken(TokenLocation))
	require.False(t, isValidToken("board.column"))
}

func TestApplyMode(t *testing.T) {
	prev := lipgloss.HasDarkBackground()
	t.Cleanup(func() { lipgloss.SetHasDarkBackground(prev) })

	ApplyMode(theme.Light)
	require.Equal(t, theme.Light, CurrentMode())

	ApplyMode(theme.Dark)
	require.Equal(t, theme.Dark, CurrentMode())
}

func TestIsValidHexColor(t *testing.T) {
	tests := []struct {
		color string
		valid bool
	}{
		{"#FFF", true},
		{"#FFFFFF", true},
		{"#abc", true},
		{"#AbCdEf", true},
		{"FFFFFF", false},   // Missing #
		{"#FF", false},      // Too short
		{"#FFFFFFF", false}, // Too long
		{"#GGGGGG", false},  // Invalid chars
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.color, func(t *testing.T) {
			require.Equal(t, tt.valid, isValidHexColor(tt.color))
		})
	}
}
