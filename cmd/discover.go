package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/sebbesen/ddr/internal/discover"
)

// newDiscoverCmd creates the 'discover' subcommand.
func newDiscoverCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "discover",
		Short: "Queries the DR search API and writes the URL list",
		RunE:  runDiscoverCommand,
	}

	cmd.Flags().String("query", "", "search query")
	cmd.Flags().String("out", "", "output path for the URL list")
	_ = viper.BindPFlag("discover.query", cmd.Flags().Lookup("query"))
	_ = viper.BindPFlag("discover.output_path", cmd.Flags().Lookup("out"))
	return cmd
}

func runDiscoverCommand(cmd *cobra.Command, _ []string) error {
	cfg, err := discover.LoadConfig(viper.GetViper())
	if err != nil {
		return fmt.Errorf("load discover config: %w", err)
	}

	client, err := discover.New(cfg, logger)
	if err != nil {
		return err
	}

	urls, err := client.URLs(cmd.Context())
	if err != nil {
		return fmt.Errorf("collect search results: %w", err)
	}
	if len(urls) == 0 {
		logger.Warn("no URLs found; nothing written", zap.String("query", cfg.Query))
		return nil
	}

	if err := discover.WriteURLFile(cfg.OutputPath, urls); err != nil {
		return err
	}
	logger.Info("url list written",
		zap.Int("urls", len(urls)),
		zap.String("path", cfg.OutputPath))
	return nil
}
