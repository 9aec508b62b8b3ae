// Package background runs the maintenance jobs that live outside the
// request path.
package background

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

var consentSweepDeletedTotal = promauto.NewCounter(prometheus.CounterOpts{
	Name: "consent_sweep_deleted_records_total",
	Help: "Terminal consent records physically removed by the sweep.",
})

// sweepFunc deletes terminal consent records and reports how many went.
type sweepFunc func() (int64, error)

// Sweeper periodically reclaims expired and revoked consent records. The
// schedule is independent of request traffic; a skipped or delayed run only
// costs storage, never correctness.
type Sweeper struct {
	cron  *cron.Cron
	sweep sweepFunc
}

func NewSweeper(sweep sweepFunc) *Sweeper {
	return &Sweeper{
		cron:  cron.New(),
		sweep: sweep,
	}
}

// Start registers the sweep on the given cron schedule (e.g. "@hourly")
// and launches the scheduler. Sweep failures are logged and the next run
// proceeds as scheduled.
func (s *Sweeper) Start(schedule string) error {
	if _, err := s.cron.AddFunc(schedule, s.run); err != nil {
		return err
	}
	s.cron.Start()

	log.WithFields(log.Fields{
		"prefix":   "sweeper",
		"schedule": schedule,
	}).Info("consent sweeper scheduled")

	return nil
}

func (s *Sweeper) run() {
	deleted, err := s.sweep()
	if err != nil {
		log.WithField("prefix", "sweeper").WithError(err).Error("consent sweep failed")
		return
	}

	consentSweepDeletedTotal.Add(float64(deleted))
	log.WithFields(log.Fields{
		"prefix":  "sweeper",
		"deleted": deleted,
	}).Info("consent sweep finished")
}

// Stop halts the scheduler and waits for a running sweep to finish.
func (s *Sweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
