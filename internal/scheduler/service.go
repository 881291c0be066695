package scheduler

import (
	"context"

	"github.com/baselomar044-dev/qs-empire/internal/config"
	"github.com/baselomar044-dev/qs-empire/internal/pipeline"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Service triggers the daily discovery run on a cron schedule
type Service struct {
	config          *config.Config
	pipelineService *pipeline.Service
	cron            *cron.Cron
}

// NewService creates a new scheduler service
func NewService(cfg *config.Config, pipelineService *pipeline.Service) *Service {
	return &Service{
		config:          cfg,
		pipelineService: pipelineService,
		cron:            cron.New(cron.WithSeconds()),
	}
}

// Start begins the scheduled daily runs
func (s *Service) Start() error {
	_, err := s.cron.AddFunc(s.config.CronSchedule, func() {
		logrus.Info("Starting scheduled discovery run")
		_, _, err := s.pipelineService.Run(context.Background(), pipeline.Options{
			Recipient: s.config.OwnerEmail,
			Persist:   true,
			Notify:    true,
		})
		if err != nil {
			logrus.Errorf("Scheduled discovery run failed: %v", err)
		}
	})

	if err != nil {
		return err
	}

	s.cron.Start()
	logrus.Infof("Scheduler started with schedule %q", s.config.CronSchedule)
	return nil
}

// Stop stops the scheduler
func (s *Service) Stop() {
	if s.cron != nil {
		s.cron.Stop()
		logrus.Info("Scheduler stopped")
	}
}
