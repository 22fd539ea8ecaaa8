// Package cmd defines and implements the CLI commands for the ddr
// executable.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/sebbesen/ddr/internal/config"
	"github.com/sebbesen/ddr/internal/logging"
)

var (
	cfgFile string
	logger  *zap.Logger
)

// newRootCmd creates and configures the root command.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ddr",
		Short: "Resumable archiver for DR articles.",
		Long: `ddr archives the raw HTML of DR articles. The discover command queries
the DR search API and writes a URL list; the archive command downloads
every listed URL into frequency-ranked bucket folders, checkpointing
progress so an interrupted run resumes where it stopped.`,
		SilenceUsage: true,

		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			config.Init(viper.GetViper(), cfgFile, nil)
			l, err := logging.New(viper.GetBool("logging.development"))
			if err != nil {
				return fmt.Errorf("initialize logger: %w", err)
			}
			logger = l
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to config file")
	cmd.PersistentFlags().Bool("dev", false, "use development (console) logging")
	_ = viper.BindPFlag("logging.development", cmd.PersistentFlags().Lookup("dev"))

	cmd.AddCommand(newArchiveCmd(), newDiscoverCmd())
	return cmd
}

// Execute runs the CLI. An interrupt cancels the run context; the archiver
// checkpoints after every URL, so stopping mid-run is always safe.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
