package styles

// Preset represents a complete color theme. Colors are the dark-background
// values; Light overrides them on a light background. A preset without
// Light uses Colors for both.
type Preset struct {
	Name        string
	Description string
	Colors      map[ColorToken]string
	Light       map[ColorToken]string
}

// Presets contains all built-in theme presets.
var Presets = map[string]Preset{
	"default":          DefaultPreset,
	"catppuccin-mocha": CatppuccinMochaPreset,
	"catppuccin-latte": CatppuccinLattePreset,
	"dracula":          DraculaPreset,
	"nord":             NordPreset,
	"high-contrast":    HighContrastPreset,
}

// DefaultPreset is the stock wayfarer scheme.
var DefaultPreset = Preset{
	Name:        "default",
	Description: "Default wayfarer theme",
	Colors: map[ColorToken]string{
		TokenTextPrimary:         "#CCCCCC",
		TokenTextSecondary:       "#BBBBBB",
		TokenTextMuted:           "#696969",
		TokenTextDescription:     "#999999",
		TokenBorderDefault:       "#696969",
		TokenBorderFocus:         "#54A0FF",
		TokenStatusSuccess:       "#73F59F",
		TokenStatusWarning:       "#FECA57",
		TokenStatusError:         "#FF8787",
		TokenSelectionIndicator:  "#FFFFFF",
		TokenSelectionBackground: "#313244",
		TokenFavoriteMarker:      "#FECA57",
		TokenLocation:            "#94E2D5",
		TokenOverlayTitle:        "#C9C9C9",
		TokenOverlayBorder:       "#8C8C8C",
		TokenToastSuccess:        "#73F59F",
		TokenToastError:          "#FF8787",
		TokenToastInfo:           "#54A0FF",
		TokenToastWarn:           "#FECA57",
		TokenSpinner:             "#FFFFFF",
	},
	Light: map[ColorToken]string{
		TokenTextPrimary:         "#1F1F1F",
		TokenTextSecondary:       "#555555",
		TokenTextMuted:           "#8A8A8A",
		TokenTextDescription:     "#666666",
		TokenBorderDefault:       "#C8C8C8",
		TokenBorderFocus:         "#1E66F5",
		TokenStatusSuccess:       "#2E9E55",
		TokenStatusWarning:       "#C98A00",
		TokenStatusError:         "#D63031",
		TokenSelectionIndicator:  "#1F1F1F",
		TokenSelectionBackground: "#E6E9EF",
		TokenFavoriteMarker:      "#D4A017",
		TokenLocation:            "#179299",
		TokenOverlayTitle:        "#333333",
		TokenOverlayBorder:       "#8C8C8C",
		TokenToastSuccess:        "#2E9E55",
		TokenToastError:          "#D63031",
		TokenToastInfo:           "#1E66F5",
		TokenToastWarn:           "#C98A00",
		TokenSpinner:             "#874BFD",
	},
}

// CatppuccinMochaPreset is the Catppuccin Mocha palette, paired with Latte
// on light backgrounds.
var CatppuccinMochaPreset = Preset{
	Name:        "catppuccin-mocha",
	Description: "Warm, cozy dark theme",
	Colors: map[ColorToken]string{
		TokenTextPrimary:         "#CDD6F4",
		TokenTextSecondary:       "#BAC2DE",
		TokenTextMuted:           "#6C7086",
		TokenTextDescription:     "#A6ADC8",
		TokenBorderDefault:       "#45475A",
		TokenBorderFocus:         "#89B4FA",
		TokenStatusSuccess:       "#A6E3A1",
		TokenStatusWarning:       "#F9E2AF",
		TokenStatusError:         "#F38BA8",
		TokenSelectionIndicator:  "#F5E0DC",
		TokenSelectionBackground: "#313244",
		TokenFavoriteMarker:      "#F9E2AF",
		TokenLocation:            "#94E2D5",
		TokenOverlayTitle:        "#CDD6F4",
		TokenOverlayBorder:       "#6C7086",
		TokenToastSuccess:        "#A6E3A1",
		TokenToastError:          "#F38BA8",
		TokenToastInfo:           "#89B4FA",
		TokenToastWarn:           "#F9E2AF",
		TokenSpinner:             "#CBA6F7",
	},
	Light: CatppuccinLattePreset.Colors,
}

// CatppuccinLattePreset is the Catppuccin Latte palette.
var CatppuccinLattePreset = Preset{
	Name:        "catppuccin-latte",
	Description: "Warm, cozy light theme",
	Colors: map[ColorToken]string{
		TokenTextPrimary:         "#4C4F69",
		TokenTextSecondary:       "#5C5F77",
		TokenTextMuted:           "#9CA0B0",
		TokenTextDescription:     "#6C6F85",
		TokenBorderDefault:       "#BCC0CC",
		TokenBorderFocus:         "#1E66F5",
		TokenStatusSuccess:       "#40A02B",
		TokenStatusWarning:       "#DF8E1D",
		TokenStatusError:         "#D20F39",
		TokenSelectionIndicator:  "#DC8A78",
		TokenSelectionBackground: "#E6E9EF",
		TokenFavoriteMarker:      "#DF8E1D",
		TokenLocation:            "#179299",
		TokenOverlayTitle:        "#4C4F69",
		TokenOverlayBorder:       "#9CA0B0",
		TokenToastSuccess:        "#40A02B",
		TokenToastError:          "#D20F39",
		TokenToastInfo:           "#1E66F5",
		TokenToastWarn:           "#DF8E1D",
		TokenSpinner:             "#8839EF",
	},
}

// DraculaPreset is the Dracula palette.
var DraculaPreset = Preset{
	Name:        "dracula",
	Description: "Dark theme with vibrant colors",
	Colors: map[ColorToken]string{
		TokenTextPrimary:         "#F8F8F2",
		TokenTextSecondary:       "#E2E2DC",
		TokenTextMuted:           "#6272A4",
		TokenTextDescription:     "#BFBFBF",
		TokenBorderDefault:       "#44475A",
		TokenBorderFocus:         "#BD93F9",
		TokenStatusSuccess:       "#50FA7B",
		TokenStatusWarning:       "#F1FA8C",
		TokenStatusError:         "#FF5555",
		TokenSelectionIndicator:  "#FF79C6",
		TokenSelectionBackground: "#44475A",
		TokenFavoriteMarker:      "#F1FA8C",
		TokenLocation:            "#8BE9FD",
		TokenOverlayTitle:        "#F8F8F2",
		TokenOverlayBorder:       "#6272A4",
		TokenToastSuccess:        "#50FA7B",
		TokenToastError:          "#FF5555",
		TokenToastInfo:           "#8BE9FD",
		TokenToastWarn:           "#FFB86C",
		TokenSpinner:             "#BD93F9",
	},
}

// NordPreset is the Nord palette.
var NordPreset = Preset{
	Name:        "nord",
	Description: "Arctic, north-bluish palette",
	Colors: map[ColorToken]string{
		TokenTextPrimary:         "#ECEFF4",
		TokenTextSecondary:       "#E5E9F0",
		TokenTextMuted:           "#4C566A",
		TokenTextDescription:     "#D8DEE9",
		TokenBorderDefault:       "#4C566A",
		TokenBorderFocus:         "#88C0D0",
		TokenStatusSuccess:       "#A3BE8C",
		TokenStatusWarning:       "#EBCB8B",
		TokenStatusError:         "#BF616A",
		TokenSelectionIndicator:  "#88C0D0",
		TokenSelectionBackground: "#3B4252",
		TokenFavoriteMarker:      "#EBCB8B",
		TokenLocation:            "#8FBCBB",
		TokenOverlayTitle:        "#ECEFF4",
		TokenOverlayBorder:       "#4C566A",
		TokenToastSuccess:        "#A3BE8C",
		TokenToastError:          "#BF616A",
		TokenToastInfo:           "#81A1C1",
		TokenToastWarn:           "#EBCB8B",
		TokenSpinner:             "#B48EAD",
	},
}

// HighContrastPreset maximizes contrast for accessibility.
var HighContrastPreset = Preset{
	Name:        "high-contrast",
	Description: "High contrast for accessibility",
	Colors: map[ColorToken]string{
		TokenTextPrimary:         "#FFFFFF",
		TokenTextSecondary:       "#FFFFFF",
		TokenTextMuted:           "#C0C0C0",
		TokenTextDescription:     "#FFFFFF",
		TokenBorderDefault:       "#FFFFFF",
		TokenBorderFocus:         "#FFFF00",
		TokenStatusSuccess:       "#00FF00",
		TokenStatusWarning:       "#FFFF00",
		TokenStatusError:         "#FF0000",
		TokenSelectionIndicator:  "#FFFF00",
		TokenSelectionBackground: "#000080",
		TokenFavoriteMarker:      "#FFFF00",
		TokenLocation:            "#00FFFF",
		TokenOverlayTitle:        "#FFFFFF",
		TokenOverlayBorder:       "#FFFFFF",
		TokenToastSuccess:        "#00FF00",
		TokenToastError:          "#FF0000",
		TokenToastInfo:           "#00FFFF",
		TokenToastWarn:           "#FFFF00",
		TokenSpinner:             "#FFFFFF",
	},
	Light: map[ColorToken]string{
		TokenTextPrimary:         "#000000",
		TokenTextSecondary:       "#000000",
		TokenTextMuted:           "#404040",
		TokenTextDescription:     "#000000",
		TokenBorderDefault:       "#000000",
		TokenBorderFocus:         "#0000FF",
		TokenStatusSuccess:       "#006400",
		TokenStatusWarning:       "#8B4513",
		TokenStatusError:         "#B00000",
		TokenSelectionIndicator:  "#0000FF",
		TokenSelectionBackground: "#FFFF99",
		TokenFavoriteMarker:      "#8B4513",
		TokenLocation:            "#006666",
		TokenOverlayTitle:        "#000000",
		TokenOverlayBorder:       "#000000",
		TokenToastSuccess:        "#006400",
		TokenToastError:          "#B00000",
		TokenToastInfo:           "#0000FF",
		TokenToastWarn:           "#8B4513",
		TokenSpinner:             "#000000",
	},
}
