package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	quoteSentRecoveryJob *QuoteSentRecoveryJob
}

func NewJobManager(resumer SentQuotesResumer, recovery RecoveryConfig, logger *slog.Logger) *JobManager {
	return &JobManager{
		quoteSentRecoveryJob: NewQuoteSentRecoveryJob(resumer, recovery, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.quoteSentRecoveryJob.Start(); err != nil {
		return fmt.Errorf("failed to start quote sent recovery job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.quoteSentRecoveryJob.Stop()
}
