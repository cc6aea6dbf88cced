package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/wayfarer/internal/app"
	"github.com/zjrosen/wayfarer/internal/config"
	"github.com/zjrosen/wayfarer/internal/geo"
	"github.com/zjrosen/wayfarer/internal/log"
	"github.com/zjrosen/wayfarer/internal/watcher"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in input fields.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

// localConfigPath is checked before the user config directory.
const localConfigPath = ".wayfarer/config.yaml"

var (
	version   = "dev"
	cfgFile   string
	dbPath    string
	ephemeral bool
	debugFlag bool
	jsonOut   bool
	cfg       config.Config
	cfgErr    error
)

var rootCmd = &cobra.Command{
	Use:   "wayfarer",
	Short: "Explore random travel destinations from your terminal",
	Long: `A terminal user interface for discovering travel destinations,
bookmarking favorites, and finding out where you are.

Run without a subcommand to start the interactive explorer.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
	RunE:              runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/wayfarer/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "",
		"path to the favorites database (overrides store.path)")
	rootCmd.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false,
		"keep favorites and theme in memory only")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false,
		"write debug logs (also WAYFARER_DEBUG=1)")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false,
		"print subcommand results as JSON")
}

func initConfig() {
	config.SetDefaults(viper.GetViper())
	_ = viper.BindPFlag("store.path", rootCmd.PersistentFlags().Lookup("db"))

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .wayfarer/config.yaml (current directory)
		// 2. ~/.config/wayfarer/config.yaml (user config)
		if _, err := os.Stat(localConfigPath); err == nil {
			viper.SetConfigFile(localConfigPath)
		} else if dir := config.ConfigDir(); dir != "" {
			viper.AddConfigPath(dir)
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// No config file found anywhere - create the default in the
			// user config directory.
			if defaultPath := defaultConfigPath(); defaultPath != "" {
				if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
					viper.SetConfigFile(defaultPath)
					_ = viper.ReadInConfig()
				}
			}
			// If write fails, just continue with defaults (no config file)
		} else {
			cfgErr = fmt.Errorf("reading config: %w", err)
			return
		}
	}

	cfg, cfgErr = config.Unmarshal(viper.GetViper())
}

func defaultConfigPath() string {
	dir := config.ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// configFilePath is the file edits are written back to.
func configFilePath() string {
	if used := viper.ConfigFileUsed(); used != "" {
		return used
	}
	if cfgFile != "" {
		return cfgFile
	}
	return defaultConfigPath()
}

// reloadConfig re-reads the config file for the watcher.
func reloadConfig() (config.Config, error) {
	if err := viper.ReadInConfig(); err != nil {
		return config.Config{}, fmt.Errorf("reading config: %w", err)
	}
	return config.Unmarshal(viper.GetViper())
}

func setupLogging(cmd *cobra.Command, _ []string) error {
	if cfgErr != nil {
		return cfgErr
	}

	// Initialize logging if debug mode enabled (via flag or env var)
	if os.Getenv("WAYFARER_DEBUG") == "" && !debugFlag {
		return nil
	}
	logPath := os.Getenv("WAYFARER_LOG")
	if logPath == "" {
		logPath = "debug.log"
	}
	cleanup, err := log.Init(logPath)
	if err != nil {
		return fmt.Errorf("initializing logging: %w", err)
	}
	cobra.OnFinalize(cleanup)

	log.Info(log.CatConfig, "wayfarer starting", "command", cmd.Name(), "config", viper.ConfigFileUsed(), "logPath", logPath)
	return nil
}

func debugEnabled() bool {
	return debugFlag || os.Getenv("WAYFARER_DEBUG") != ""
}

func runApp(_ *cobra.Command, _ []string) error {
	rt, err := newRuntime(cfg, runtimeOptions{
		Ephemeral: ephemeral,
		Prompter:  geo.AlwaysAllow,
	})
	if err != nil {
		return err
	}
	defer func() { _ = rt.Close() }()

	var w *watcher.Watcher
	if path := viper.ConfigFileUsed(); path != "" {
		w, err = watcher.New(watcher.DefaultConfig(path))
		if err == nil {
			if startErr := w.Start(); startErr != nil {
				log.ErrorErr(log.CatWatcher, "Config watcher not started", startErr, "path", path)
				w = nil
			}
		}
	}

	model, err := app.New(app.Config{
		Registry: rt.Registry,
		Fetcher:  rt.Fetcher,
		Theme:    rt.Theme,
		Locator:  rt.Locator,
		Watcher:  w,
		Reload:   reloadConfig,
		UI:       cfg.UI,
		Debug:    debugEnabled(),
	})
	if err != nil {
		if w != nil {
			_ = w.Stop()
		}
		return err
	}

	zone.NewGlobal()
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err = p.Run()

	// Clean up subscriptions and watcher resources
	if closeErr := model.Close(); closeErr != nil && err == nil {
		err = closeErr
	}

	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
