package archive

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sebbesen/ddr/internal/classify"
	"github.com/sebbesen/ddr/internal/metrics"
	"github.com/sebbesen/ddr/internal/progress"
)

// Archiver drives the sequential download loop: one URL at a time, in list
// order, with a progress checkpoint after every terminal outcome. The
// single worker is the politeness contract, not a limitation.
type Archiver struct {
	cfg       Config
	fetcher   Fetcher
	store     *progress.Store
	sink      *FileSystemSink
	notFound  *Appender
	redirects *Appender
	backoff   *BackoffPolicy
	pauser    Pauser
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// New wires an Archiver from its configuration. The metrics handle may be
// nil.
func New(cfg Config, fetcher Fetcher, store *progress.Store, met *metrics.Metrics, logger *zap.Logger) (*Archiver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("archive config: %w", err)
	}
	if fetcher == nil {
		return nil, fmt.Errorf("archive: fetcher must not be nil")
	}
	if store == nil {
		return nil, fmt.Errorf("archive: progress store must not be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	sink, err := NewFileSystemSink(cfg.BaseDir, cfg.FileExtension)
	if err != nil {
		return nil, err
	}
	return &Archiver{
		cfg:       cfg,
		fetcher:   fetcher,
		store:     store,
		sink:      sink,
		notFound:  NewAppender(cfg.NotFoundLogPath),
		redirects: NewAppender(cfg.RedirectLogPath),
		backoff:   NewBackoffPolicy(0),
		pauser:    timerPauser{},
		metrics:   met,
		logger:    logger,
	}, nil
}

// Run processes urls from startIndex to the end. The bucket mapping is
// built from the full list before the first download so folder names
// reflect global frequencies regardless of where the run resumes.
//
// Every outcome except OutcomeFatal advances the progress marker; a fatal
// outcome halts the run immediately with the marker still pointing at the
// previous URL, so the next resume re-attempts the failing URL from
// scratch. The marker is removed only when the loop finishes naturally.
func (a *Archiver) Run(ctx context.Context, urls []string, startIndex int) (Summary, error) {
	summary := newSummary()
	if startIndex < 0 {
		startIndex = 0
	}
	runLog := a.logger.With(zap.String("run_id", uuid.NewString()))

	buckets := classify.Buckets(urls)
	runLog.Info("bucket mapping built",
		zap.Int("urls", len(urls)),
		zap.Int("buckets", buckets.Len()),
		zap.Int("start_index", startIndex))

	for i := startIndex; i < len(urls); i++ {
		if err := ctx.Err(); err != nil {
			return a.finish(summary, runLog, fmt.Errorf("run canceled at index %d: %w", i, err))
		}

		res, err := a.processURL(ctx, runLog, buckets, urls[i], i)
		if err != nil {
			return a.finish(summary, runLog, err)
		}
		summary.add(res.Outcome)
		a.metrics.ObserveOutcome(res.Outcome.String())

		if !res.Outcome.Processed() {
			err := fmt.Errorf("halting run at %q (index %d) after %d attempts: %w",
				res.URL, res.Index, res.Attempts, res.Err)
			return a.finish(summary, runLog, err)
		}
		if err := a.store.Save(i); err != nil {
			return a.finish(summary, runLog, err)
		}
		if i < len(urls)-1 {
			a.pauser.Pause(ctx, randomDelay(a.cfg.DelayMin, a.cfg.DelayMax))
		}
	}

	if err := a.store.Clear(); err != nil {
		return a.finish(summary, runLog, err)
	}
	a.metrics.ObserveRun("completed")
	runLog.Info("archive run complete",
		zap.Int("saved", summary.Count(OutcomeSaved)),
		zap.Int("skipped_existing", summary.Count(OutcomeSkippedExisting)),
		zap.Int("skipped_malformed", summary.Count(OutcomeSkippedMalformed)),
		zap.Int("skipped_no_bucket", summary.Count(OutcomeSkippedNoBucket)),
		zap.Int("not_found", summary.Count(OutcomeNotFound)),
		zap.Int("redirect_loops", summary.Count(OutcomeRedirectLoop)))
	return summary, nil
}

func (a *Archiver) finish(summary Summary, runLog *zap.Logger, err error) (Summary, error) {
	result := "halted"
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		result = "canceled"
	}
	a.metrics.ObserveRun(result)
	runLog.Error("archive run stopped", zap.String("result", result), zap.Error(err))
	return summary, err
}

// processURL walks one URL through the fetch state machine. A non-nil
// error is an infrastructure failure (sink write, error-log append,
// cancellation) that must stop the run without advancing the marker.
func (a *Archiver) processURL(
	ctx context.Context,
	runLog *zap.Logger,
	buckets *classify.Mapping,
	url string,
	index int,
) (Result, error) {
	res := Result{URL: url, Index: index}

	key, ok := classify.Key(url)
	if !ok {
		runLog.Warn("skipping malformed url", zap.String("url", url), zap.Int("index", index))
		res.Outcome = OutcomeSkippedMalformed
		return res, nil
	}
	bucketName, ok := buckets.Name(key)
	if !ok {
		runLog.Warn("no bucket mapping for url", zap.String("url", url), zap.Int("index", index))
		res.Outcome = OutcomeSkippedNoBucket
		return res, nil
	}

	target := a.sink.TargetPath(bucketName, url[len(key):])
	res.Path = target
	if a.sink.Exists(target) {
		runLog.Debug("already archived", zap.String("url", url), zap.String("path", target))
		res.Outcome = OutcomeSkippedExisting
		return res, nil
	}

	for attempt := 0; attempt < a.cfg.MaxAttempts; attempt++ {
		res.Attempts = attempt + 1
		body, err := a.fetcher.Fetch(ctx, url, a.userAgent())
		if err == nil {
			if serr := a.sink.Save(target, body); serr != nil {
				return res, serr
			}
			a.metrics.ObserveSavedBytes(len(body))
			runLog.Info("saved article",
				zap.String("url", url),
				zap.Int("index", index),
				zap.String("path", target))
			res.Outcome = OutcomeSaved
			return res, nil
		}
		res.Err = err

		switch {
		case errors.Is(err, ErrRedirectLoop):
			if aerr := a.redirects.Append(url); aerr != nil {
				return res, aerr
			}
			runLog.Warn("redirect loop, logged permanently", zap.String("url", url))
			res.Outcome = OutcomeRedirectLoop
			return res, nil
		case IsNotFound(err):
			if aerr := a.notFound.Append(url); aerr != nil {
				return res, aerr
			}
			runLog.Warn("article not found, logged permanently", zap.String("url", url))
			res.Outcome = OutcomeNotFound
			return res, nil
		case ctx.Err() != nil:
			return res, fmt.Errorf("canceled while fetching %q: %w", url, ctx.Err())
		default:
			if attempt+1 < a.cfg.MaxAttempts {
				delay := a.backoff.Backoff(attempt)
				runLog.Warn("transient failure, backing off",
					zap.String("url", url),
					zap.Int("attempt", attempt+1),
					zap.Duration("delay", delay),
					zap.Error(err))
				a.metrics.ObserveRetry()
				a.pauser.Pause(ctx, delay)
			}
		}
	}

	res.Outcome = OutcomeFatal
	return res, nil
}

func (a *Archiver) userAgent() string {
	return a.cfg.UserAgents[randomIndex(len(a.cfg.UserAgents))]
}
