package jobs

import (
	"context"
	"log/slog"
	"time"

	"devis/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// SentQuotesResumer is the use case the recovery job drives.
type SentQuotesResumer interface {
	Handle(ctx context.Context, cmd commands.ResumeSentQuotesCommand) (int, error)
}

// RecoveryConfig tunes QuoteSentRecoveryJob.
type RecoveryConfig struct {
	// Schedule is a cron expression with a leading seconds field.
	Schedule string
	// Grace is how long a request must have stayed in QUOTE_SENT.
	Grace time.Duration
	// BatchSize caps the requests handled per run.
	BatchSize int
	// Timeout bounds a single run.
	Timeout time.Duration
}

// QuoteSentRecoveryJob finishes quote sends that stopped between the document
// upload and the client notification.
type QuoteSentRecoveryJob struct {
	handler SentQuotesResumer
	cfg     RecoveryConfig
	cron    *cron.Cron
	logger  *slog.Logger
}

func NewQuoteSentRecoveryJob(handler SentQuotesResumer, cfg RecoveryConfig, logger *slog.Logger) *QuoteSentRecoveryJob {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = time.Minute
	}
	return &QuoteSentRecoveryJob{
		handler: handler,
		cfg:     cfg,
		cron:    cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:  logger.With("component", "quote_sent_recovery_job"),
	}
}

// Start schedules the job. An invalid schedule is returned as an error.
func (j *QuoteSentRecoveryJob) Start() error {
	if _, err := j.cron.AddFunc(j.cfg.Schedule, j.run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Quote sent recovery job started",
		"schedule", j.cfg.Schedule, "grace", j.cfg.Grace)
	return nil
}

// Stop waits for a running pass to finish.
func (j *QuoteSentRecoveryJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Quote sent recovery job stopped")
}

// RunOnce performs a single recovery pass and reports how many requests moved on.
func (j *QuoteSentRecoveryJob) RunOnce(ctx context.Context) (int, error) {
	cmd, err := commands.NewResumeSentQuotesCommand(j.cfg.Grace, j.cfg.BatchSize)
	if err != nil {
		return 0, err
	}
	return j.handler.Handle(ctx, cmd)
}

func (j *QuoteSentRecoveryJob) run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.cfg.Timeout)
	defer cancel()

	resumed, err := j.RunOnce(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Quote sent recovery job failed", "error", err)
		return
	}
	if resumed > 0 {
		j.logger.InfoContext(ctx, "Resumed sent quotes", "count", resumed)
	}
}
