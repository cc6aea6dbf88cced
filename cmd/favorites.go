package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/zjrosen/wayfarer/internal/presentation"
)

var favoritesCmd = &cobra.Command{
	Use:     "favorites",
	Aliases: []string{"favs"},
	Short:   "List and edit saved destinations",
	Long: `List and edit the favorites registry.

Examples:
  wayfarer favorites list
  wayfarer favorites add 7
  wayfarer favorites remove 7
  wayfarer favorites clear`,
}

var favoritesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List favorites, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		rt, err := newRuntime(cfg, runtimeOptions{Ephemeral: ephemeral})
		if err != nil {
			return err
		}
		defer func() { _ = rt.Close() }()

		formatter := presentation.NewFormatter(cmd.OutOrStdout(), jsonOut)
		return formatter.FormatFavorites(presentation.FromFavorites(rt.Registry.List()))
	},
}

var favoritesAddCmd = &cobra.Command{
	Use:   "add <id>",
	Short: "Fetch a destination and add it to favorites",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parsePostID(args[0])
		if err != nil {
			return err
		}
		rt, err := newRuntime(cfg, runtimeOptions{Ephemeral: ephemeral})
		if err != nil {
			return err
		}
		defer func() { _ = rt.Close() }()

		out := rt.Fetcher.FetchByID(cmd.Context(), id)
		if err := outcomeError(out); err != nil {
			return err
		}
		added, err := rt.Registry.Add(out.Post)
		if err != nil {
			return err
		}

		formatter := presentation.NewFormatter(cmd.OutOrStdout(), jsonOut)
		if !added {
			return formatter.FormatMessage(fmt.Sprintf("%q is already a favorite", out.Post.Title))
		}
		return formatter.FormatMessage(fmt.Sprintf("Added %q to favorites", out.Post.Title))
	},
}

var favoritesRemoveCmd = &cobra.Command{
	Use:     "remove <id>",
	Aliases: []string{"rm"},
	Short:   "Remove a favorite by id",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parsePostID(args[0])
		if err != nil {
			return err
		}
		rt, err := newRuntime(cfg, runtimeOptions{Ephemeral: ephemeral})
		if err != nil {
			return err
		}
		defer func() { _ = rt.Close() }()

		formatter := presentation.NewFormatter(cmd.OutOrStdout(), jsonOut)
		if !rt.Registry.Contains(id) {
			return formatter.FormatMessage(fmt.Sprintf("%d is not a favorite", id))
		}
		if err := rt.Registry.Remove(id); err != nil {
			return err
		}
		return formatter.FormatMessage(fmt.Sprintf("Removed %d", id))
	},
}

var favoritesClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all favorites",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		rt, err := newRuntime(cfg, runtimeOptions{Ephemeral: ephemeral})
		if err != nil {
			return err
		}
		defer func() { _ = rt.Close() }()

		n := rt.Registry.Len()
		if err := rt.Registry.Clear(); err != nil {
			return err
		}
		return presentation.NewFormatter(cmd.OutOrStdout(), jsonOut).FormatMessage(fmt.Sprintf("Cleared %d favorites", n))
	},
}

func init() {
	favoritesCmd.AddCommand(favoritesListCmd, favoritesAddCmd, favoritesRemoveCmd, favoritesClearCmd)
	rootCmd.AddCommand(favoritesCmd)
}

func parsePostID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid post id %q: must be a positive integer", s)
	}
	return id, nil
}
