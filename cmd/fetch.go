package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/zjrosen/wayfarer/internal/posts"
	"github.com/zjrosen/wayfarer/internal/presentation"
)

var fetchID int

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch and print a destination",
	Long: `Fetch a destination from the post API and print it.

Without --id a random destination is chosen.

Examples:
  wayfarer fetch
  wayfarer fetch --id 7
  wayfarer fetch --id 7 --json | jq .title`,
	Args: cobra.NoArgs,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().IntVar(&fetchID, "id", 0, "post id to fetch (default: random)")
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, _ []string) error {
	// Fetching never touches stored state.
	rt, err := newRuntime(cfg, runtimeOptions{Ephemeral: true})
	if err != nil {
		return err
	}
	defer func() { _ = rt.Close() }()

	var out posts.Outcome
	if cmd.Flags().Changed("id") {
		out = rt.Fetcher.FetchByID(cmd.Context(), fetchID)
	} else {
		out = rt.Fetcher.FetchRandom(cmd.Context())
	}
	if err := outcomeError(out); err != nil {
		return err
	}

	return presentation.NewFormatter(cmd.OutOrStdout(), jsonOut).FormatPost(presentation.FromPost(out.Post))
}

// fetchError reports a failed fetch with its user-facing message.
type fetchError struct {
	out posts.Outcome
}

func (e *fetchError) Error() string { return e.out.Message }
func (e *fetchError) Unwrap() error { return e.out.Err }

var errFetchCanceled = errors.New("fetch canceled")

func outcomeError(out posts.Outcome) error {
	switch out.Kind {
	case posts.OutcomeSuccess:
		return nil
	case posts.OutcomeCanceled:
		return errFetchCanceled
	default:
		return &fetchError{out: out}
	}
}
