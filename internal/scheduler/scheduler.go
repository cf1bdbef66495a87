package scheduler

import (
	"log"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/lingo-app/backend/internal/config"
	"github.com/lingo-app/backend/internal/progression"
)

// Scheduler runs the periodic maintenance jobs: lives regeneration and the
// weekly leaderboard reset.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   *progression.Service
	cfg       *config.Config
}

func New(service *progression.Service, cfg *config.Config) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		service:   service,
		cfg:       cfg,
	}
}

// Start registers the jobs and runs them in the background.
func (s *Scheduler) Start() {
	regen := s.cfg.Lives.RegenMinutes
	if regen <= 0 {
		regen = 30
	}
	s.scheduler.Every(regen).Minutes().Do(s.service.RunLivesRegen)
	s.scheduler.Every(1).Monday().At("00:00").Do(s.service.RunWeeklyReset)

	s.scheduler.StartAsync()
	log.Printf("[scheduler] started (lives regen every %dm, weekly reset Mon 00:00 UTC)", regen)
}

func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}
