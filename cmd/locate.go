package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/zjrosen/wayfarer/internal/config"
	"github.com/zjrosen/wayfarer/internal/geo"
	"github.com/zjrosen/wayfarer/internal/log"
	"github.com/zjrosen/wayfarer/internal/presentation"
)

var (
	locateTimeout     time.Duration
	locateMaxAge      time.Duration
	locateLowAccuracy bool
)

var locateCmd = &cobra.Command{
	Use:   "locate",
	Short: "Print your approximate location",
	Long: `Look up your approximate location.

The first lookup asks for permission unless geo.permission is set in the
config file. Your answer is saved there.`,
	Args: cobra.NoArgs,
	RunE: runLocate,
}

func init() {
	locateCmd.Flags().DurationVar(&locateTimeout, "timeout", 0, "lookup timeout (default: geo.timeout)")
	locateCmd.Flags().DurationVar(&locateMaxAge, "max-age", 0, "accept a cached position up to this old")
	locateCmd.Flags().BoolVar(&locateLowAccuracy, "low-accuracy", false, "allow a coarse fix")
	rootCmd.AddCommand(locateCmd)
}

func runLocate(cmd *cobra.Command, _ []string) error {
	savePath := configFilePath()
	rt, err := newRuntime(cfg, runtimeOptions{
		Ephemeral: ephemeral,
		Prompter:  stdinPrompter(cmd.InOrStdin(), cmd.ErrOrStderr()),
		OnPermissionDecided: func(p geo.Permission) {
			if savePath == "" {
				return
			}
			if err := config.SaveGeoPermission(savePath, p); err != nil {
				log.ErrorErr(log.CatConfig, "Saving geo permission failed", err, "path", savePath)
			}
		},
	})
	if err != nil {
		return err
	}
	defer func() { _ = rt.Close() }()

	if !rt.Locator.Supported() {
		return errors.New("location is not supported: geo.provider_url is empty")
	}

	timeout := cfg.Geo.Timeout
	if cmd.Flags().Changed("timeout") {
		timeout = locateTimeout
	}
	pos, err := rt.Locator.Locate(cmd.Context(),
		geo.WithTimeout(timeout),
		geo.WithMaximumAge(locateMaxAge),
		geo.WithHighAccuracy(!locateLowAccuracy),
	)
	if err != nil {
		var geoErr *geo.Error
		if errors.As(err, &geoErr) {
			return fmt.Errorf("%s: %w", geoErr.Message(), err)
		}
		return err
	}
	return presentation.NewFormatter(cmd.OutOrStdout(), jsonOut).FormatPosition(presentation.FromPosition(pos))
}

// stdinPrompter asks a yes/no question on out and reads the answer from in.
// Anything other than y or yes declines.
func stdinPrompter(in io.Reader, out io.Writer) geo.Prompter {
	return geo.PrompterFunc(func(ctx context.Context) (bool, error) {
		if _, err := fmt.Fprint(out, "Allow wayfarer to use your location? [y/N] "); err != nil {
			return false, err
		}
		answer := make(chan string, 1)
		go func() {
			line, _ := bufio.NewReader(in).ReadString('\n')
			answer <- line
		}()
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case line := <-answer:
			switch strings.ToLower(strings.TrimSpace(line)) {
			case "y", "yes":
				return true, nil
			default:
				return false, nil
			}
		}
	})
}
