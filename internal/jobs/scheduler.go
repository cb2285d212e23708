// Package jobs runs scheduled maintenance tasks.
package jobs

import (
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/MITHU9/forum-hub-backend/internal/config"
	"github.com/MITHU9/forum-hub-backend/internal/models"
)

// Scheduler owns the cron instance. The only recurring task today is
// pruning search terms that fell out of the retention window.
type Scheduler struct {
	cron *cron.Cron
	db   *gorm.DB
	cfg  *config.Config
}

func NewScheduler(db *gorm.DB, cfg *config.Config) *Scheduler {
	return &Scheduler{cron: cron.New(), db: db, cfg: cfg}
}

func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(s.cfg.SearchPruneSchedule, s.pruneSearchTerms)
	if err != nil {
		return err
	}
	s.cron.Start()
	log.WithField("schedule", s.cfg.SearchPruneSchedule).Info("scheduler started")
	return nil
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Scheduler) pruneSearchTerms() {
	cutoff := time.Now().UTC().Add(-s.cfg.SearchTermRetention)
	res := s.db.Where("last_searched_at < ?", cutoff).Delete(&models.SearchTerm{})
	if res.Error != nil {
		log.WithError(res.Error).Error("search term prune failed")
		return
	}
	if res.RowsAffected > 0 {
		log.WithField("pruned", res.RowsAffected).Info("stale search terms removed")
	}
}
