package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/wayfarer/internal/presentation"
	"github.com/zjrosen/wayfarer/internal/theme"
)

var themeCmd = &cobra.Command{
	Use:   "theme [light|dark|toggle|system]",
	Short: "Show or change the color theme",
	Long: `Show the effective theme, or change it.

  light, dark  store an explicit choice
  toggle       switch to the opposite of the current theme
  system       forget the explicit choice and follow theme.system`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"light", "dark", "toggle", "system"},
	RunE:      runTheme,
}

func init() {
	rootCmd.AddCommand(themeCmd)
}

func runTheme(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime(cfg, runtimeOptions{Ephemeral: ephemeral})
	if err != nil {
		return err
	}
	defer func() { _ = rt.Close() }()

	if len(args) == 1 {
		if err := applyThemeArg(rt.Theme, args[0]); err != nil {
			return err
		}
	}
	return presentation.NewFormatter(cmd.OutOrStdout(), jsonOut).FormatTheme(presentation.FromTheme(rt.Theme))
}

func applyThemeArg(svc *theme.Service, arg string) error {
	switch arg {
	case "toggle":
		_, err := svc.Toggle()
		return err
	case "system":
		return svc.Reset()
	default:
		mode, err := theme.ParseMode(arg)
		if err != nil {
			return fmt.Errorf("unknown theme %q (want light, dark, toggle or system)", arg)
		}
		return svc.Set(mode)
	}
}
