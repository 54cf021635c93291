package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/alanpramil7/underdog/internal/config"
	"github.com/alanpramil7/underdog/internal/logger"
	"github.com/alanpramil7/underdog/internal/tui"
	"github.com/alanpramil7/underdog/internal/yt"
	"github.com/alanpramil7/underdog/internal/yt/services"
)

var (
	cfgFile string
	verbose bool
	cfg     *config.Config
	log     *slog.Logger
	version = "dev"
)

const formLogFile = "underdog.log"

// newSource builds the upstream capability. Tests replace it with a fake.
var newSource = func(ctx context.Context, c *config.Config) (services.Source, error) {
	if err := c.RequireAPIKey(); err != nil {
		return nil, err
	}
	return yt.NewClient(ctx, c.YouTube.APIKey, c.YouTube.Timeout)
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "underdog",
	Short: "Find recent YouTube videos from small channels",
	Long: `Underdog searches YouTube for recently published videos whose view count
and channel subscriber count are both below the limits you set.

Examples:
  underdog search "day trading"
  underdog search "indie games" --max-views 50 --max-subs 500 --days 3
  underdog serve --addr :8501
  underdog  # Launch interactive form`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// The form owns the terminal, so logs go to a file or nowhere
		var logOut io.Writer = io.Discard
		level := cfg.Logging.Level
		if verbose {
			level = "debug"
			f, err := tea.LogToFile(formLogFile, "underdog")
			if err != nil {
				return fmt.Errorf("opening log file: %w", err)
			}
			defer f.Close()
			logOut = f
		}
		formLog, err := logger.New(level, cfg.Logging.Format, logOut)
		if err != nil {
			return err
		}

		// buffered so a run never waits on the UI
		stages := make(chan services.Stage, 8)
		pipeline, err := buildPipeline(cmd.Context(), formLog, services.WithProgress(func(s services.Stage) {
			select {
			case stages <- s:
			default:
			}
		}))
		if err != nil {
			return err
		}

		app := tui.NewApp(pipeline, cfg.Search.Defaults()).
			WithContext(cmd.Context()).
			WithProgress(stages)
		program := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("running form: %w", err)
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

// SetVersion sets the version string for the CLI
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .underdog.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// initConfig reads in config file and ENV variables and builds the logger.
func initConfig(cmd *cobra.Command) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}
	log, err = logger.New(level, cfg.Logging.Format, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	log.Debug("configuration loaded",
		"search_defaults", cfg.Search,
		"stats_concurrency", cfg.Stats.Concurrency,
		"version", version,
	)
	return nil
}

func buildPipeline(ctx context.Context, log *slog.Logger, extra ...services.Option) (*services.Pipeline, error) {
	source, err := newSource(ctx, cfg)
	if err != nil {
		return nil, err
	}
	opts := []services.Option{
		services.WithLogger(log),
		services.WithLinks(cfg.Links.LinkBuilder()),
		services.WithStatsConcurrency(cfg.Stats.Concurrency),
	}
	return services.NewPipeline(source, append(opts, extra...)...), nil
}
