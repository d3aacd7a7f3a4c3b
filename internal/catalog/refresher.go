package catalog

import (
	"fmt"

	"github.com/event-monitor/internal/logging"
	"github.com/robfig/cron/v3"
)

// Refresher reloads a catalog file on a cron schedule. A failed reload
// keeps the previous contents.
type Refresher struct {
	catalog *Catalog
	path    string
	cron    *cron.Cron
	logger  *logging.Logger
}

// NewRefresher schedules reloads of path into c. schedule is a standard
// five-field cron spec (e.g. "*/15 * * * *").
func NewRefresher(c *Catalog, path, schedule string, logger *logging.Logger) (*Refresher, error) {
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}

	r := &Refresher{
		catalog: c,
		path:    path,
		cron:    cron.New(),
		logger:  logger.WithField("component", "catalog_refresher"),
	}

	if _, err := r.cron.AddFunc(schedule, r.Reload); err != nil {
		return nil, fmt.Errorf("invalid catalog refresh schedule %q: %w", schedule, err)
	}

	return r, nil
}

// Start begins running scheduled reloads in the background
func (r *Refresher) Start() {
	r.cron.Start()
	r.logger.WithField("path", r.path).Info("Catalog refresher started")
}

// Stop halts the scheduler and waits for a running reload to finish
func (r *Refresher) Stop() {
	<-r.cron.Stop().Done()
	r.logger.Info("Catalog refresher stopped")
}

// Reload reads the catalog file once
func (r *Refresher) Reload() {
	events, err := LoadFile(r.path)
	if err != nil {
		r.logger.WithError(err).Warn("Catalog reload failed, keeping previous events")
		return
	}

	r.catalog.Replace(events)
	r.logger.WithField("events", len(events)).Info("Catalog reloaded")
}
