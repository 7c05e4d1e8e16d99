// Package jobs runs the background work of the order desk.
//
// EscalationJob sweeps pending orders on a github.com/robfig/cron/v3 schedule
// with seconds (default "0 */5 * * * *") and raises each due order by one
// escalation level. Overlapping runs are skipped. JobManager starts it
// together with the customer-care listener and stops both on shutdown:
//
//	jm := jobs.NewJobManager(jobs.NewEscalationJob(handler, schedule, m, logger), listener, logger)
//	if err := jm.StartAll(); err != nil {
//		return err
//	}
//	defer jm.StopAll()
//
// Sweep failures are logged and counted; the next tick tries again.
package jobs
