// Package jobs provides scheduled background tasks for the quote service.
//
// Jobs run on github.com/robfig/cron/v3 with a seconds field, and a pass that
// is still running when the next tick fires is skipped.
//
// # Available Jobs
//
// QuoteSentRecoveryJob picks up requests left in QUOTE_SENT longer than the
// grace period, notifies the client again and moves them to
// AWAITING_VALIDATION. A send interrupted after the document upload is thus
// completed without staff action.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(resumeHandler, jobs.RecoveryConfig{
//		Schedule: "0 */5 * * * *",
//		Grace:    10 * time.Minute,
//	}, logger)
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
package jobs
