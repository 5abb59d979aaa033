// projectboard - terminal kanban board for the project REST API.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jxmullins/projectboard/internal/apiclient"
	"github.com/jxmullins/projectboard/internal/config"
	"github.com/jxmullins/projectboard/internal/logging"
	"github.com/jxmullins/projectboard/internal/tui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const version = "v0.1.0"

var (
	cfgFile string
	verbose bool
	apiURL  string

	searchTerm string

	// Loaded in PersistentPreRunE.
	cfg    *config.Config
	logger *zap.Logger
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "projectboard",
	Short: "Kanban board for projects",
	Long: `projectboard shows the projects stored behind the project API as a
kanban board with four columns: Planning, Active, On Hold and Completed.

Run without a subcommand to open the interactive board:
  projectboard
  projectboard --search harbor

Projects can be added, edited and deleted from the board. Every change
is sent to the API and the board is reloaded from it.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runBoard,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "projectboard %s (Go)\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "", "API base URL (overrides config)")

	rootCmd.Flags().StringVarP(&searchTerm, "search", "s", "", "initial search term")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(importCmd)
}

// setup loads config and builds the logger before any command runs.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Resolve(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if apiURL != "" {
		cfg.API.BaseURL = apiURL
	}

	logger, err = logging.New(logging.Options{
		File:    cfg.Log.File,
		Level:   cfg.Log.Level,
		Verbose: verbose,
	})
	if err != nil {
		return err
	}
	logger.Debug("config loaded",
		zap.String("command", cmd.Name()),
		zap.String("api", cfg.API.BaseURL),
		zap.Duration("timeout", cfg.Timeout()))
	return nil
}

func newClient() *apiclient.Client {
	return apiclient.New(apiclient.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.Timeout(),
		Logger:  logger.Named("api"),
	})
}

func runBoard(cmd *cobra.Command, args []string) error {
	opts := tui.Options{
		Search:         searchTerm,
		SearchDebounce: cfg.SearchDebounce(),
		HideHelpBar:    !*cfg.UI.ShowHelpBar,
		Logger:         logger.Named("tui"),
	}
	logger.Info("starting board", zap.String("api", cfg.API.BaseURL))
	return tui.Run(cmd.Context(), newClient(), opts)
}
