package scheduler

import (
	"fmt"
	"log"
	"sync"

	"FilingSentinel/internal/model"
	"FilingSentinel/internal/pipeline"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the report pipeline on a cron schedule in daemon mode.
type Scheduler struct {
	Cron     *cron.Cron
	Pipeline *pipeline.Pipeline

	mu      sync.Mutex
	lastRun *model.RunResult
}

// NewScheduler creates a new Scheduler.
func NewScheduler(p *pipeline.Pipeline) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Pipeline: p,
	}
}

// Register registers the daily report task.
func (s *Scheduler) Register(dailyCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, s.dailyTask); err != nil {
		return fmt.Errorf("register daily task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes the report task immediately (manual trigger).
func (s *Scheduler) RunNow() *model.RunResult {
	result := s.Pipeline.Run()
	s.mu.Lock()
	s.lastRun = result
	s.mu.Unlock()
	return result
}

func (s *Scheduler) dailyTask() {
	log.Println("[INFO] running scheduled daily report")
	s.RunNow()
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	switch command {
	case "/report":
		go s.dailyTask()
		return "Generating the 13D/13G report now."
	case "/status":
		s.mu.Lock()
		last := s.lastRun
		s.mu.Unlock()
		if last == nil {
			return "No report run yet."
		}
		return fmt.Sprintf("Last run: %s\nStatus: %s\nFilers fetched: %d/%d\nFilings: %d\nParts delivered: %d/%d",
			last.StartedAt.Format("2006-01-02 15:04:05"), last.Status,
			last.FilersTotal-last.FilersFailed, last.FilersTotal,
			last.FilingsTotal, last.ChunksTotal-last.ChunksFailed, last.ChunksTotal)
	default:
		return "Available commands:\n• /report — run the daily report now\n• /status — show the last run's summary"
	}
}
