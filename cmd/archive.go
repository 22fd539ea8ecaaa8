package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/sebbesen/ddr/internal/api"
	"github.com/sebbesen/ddr/internal/archive"
	collyfetcher "github.com/sebbesen/ddr/internal/fetcher/colly"
	"github.com/sebbesen/ddr/internal/metrics"
	"github.com/sebbesen/ddr/internal/progress"
)

// newArchiveCmd creates the 'archive' subcommand.
func newArchiveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Downloads every listed URL into the archive tree",
		Long: `Reads the URL list, groups URLs into frequency-ranked bucket folders,
and downloads each article's raw HTML exactly once. Permanent failures
(404s, redirect loops) are appended to durable logs; exhausted retries
halt the run so the next invocation can resume cleanly.`,
		RunE: runArchiveCommand,
	}

	cmd.Flags().String("input", "", "path to the newline-delimited URL list")
	cmd.Flags().String("out", "", "archive base directory")
	cmd.Flags().Bool("yes", false, "resume from saved progress without prompting")
	_ = viper.BindPFlag("archive.input_path", cmd.Flags().Lookup("input"))
	_ = viper.BindPFlag("archive.base_dir", cmd.Flags().Lookup("out"))
	return cmd
}

func runArchiveCommand(cmd *cobra.Command, _ []string) error {
	v := viper.GetViper()
	cfg, err := archive.LoadConfig(v)
	if err != nil {
		return fmt.Errorf("load archive config: %w", err)
	}

	urls, err := archive.LoadURLList(cfg.InputPath)
	if err != nil {
		return err
	}

	store := progress.NewStore(cfg.ProgressPath, logger)
	marker, err := store.Load()
	hasProgress := err == nil
	if err != nil && !errors.Is(err, progress.ErrNoProgress) {
		return err
	}

	resume := false
	if hasProgress {
		if assumeYes, _ := cmd.Flags().GetBool("yes"); assumeYes {
			resume = true
		} else {
			question := fmt.Sprintf("Progress found: %d of %d URLs done. Resume?", marker+1, len(urls))
			resume, err = promptYesNo(cmd.InOrStdin(), cmd.OutOrStdout(), question)
			if err != nil {
				return err
			}
		}
	}
	startIndex := progress.StartIndex(marker, hasProgress, resume)

	reg := prometheus.NewRegistry()
	met, err := metrics.New(reg)
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}
	if addr := v.GetString("metrics.addr"); addr != "" {
		statusServer := api.NewServer(reg, logger)
		go func() {
			if serveErr := statusServer.ListenAndServe(cmd.Context(), addr); serveErr != nil {
				logger.Warn("status server stopped", zap.Error(serveErr))
			}
		}()
	}

	fetcher := collyfetcher.New(collyfetcher.Config{Timeout: cfg.RequestTimeout})
	archiver, err := archive.New(cfg, fetcher, store, met, logger)
	if err != nil {
		return err
	}

	summary, err := archiver.Run(cmd.Context(), urls, startIndex)
	if err != nil {
		return err
	}
	logger.Info("archive finished",
		zap.Int("processed", summary.Total()),
		zap.Int("saved", summary.Count(archive.OutcomeSaved)),
		zap.Int("skipped_existing", summary.Count(archive.OutcomeSkippedExisting)))
	return nil
}

// promptYesNo asks a yes/no question on the CLI. Anything but an explicit
// yes declines, and declining a resume restarts the run from scratch.
func promptYesNo(in io.Reader, out io.Writer, question string) (bool, error) {
	fmt.Fprintf(out, "%s [y/N]: ", question)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read answer: %w", err)
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}
