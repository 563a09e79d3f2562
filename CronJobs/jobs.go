package CronJobs

import (
	"fmt"
	"log"
	"time"

	"Compass/Models"

	"github.com/robfig/cron/v3"
)

// LogPruner represents a scheduled route-history cleanup service
type LogPruner struct {
	cronScheduler  *cron.Cron
	retentionDays  int
	runImmediately bool
	jobID          cron.EntryID
}

// NewLogPruner creates a new pruner keeping the given number of days of
// route history
func NewLogPruner(retentionDays int, runImmediately bool) *LogPruner {
	return &LogPruner{
		cronScheduler:  cron.New(cron.WithSeconds()),
		retentionDays:  retentionDays,
		runImmediately: runImmediately,
	}
}

// Start initiates the pruner cron job
func (p *LogPruner) Start() error {
	var err error
	p.jobID, err = p.cronScheduler.AddFunc("0 0 3 * * *", func() {
		log.Println("Running scheduled route history cleanup")
		p.runPrune()
	})

	if err != nil {
		return fmt.Errorf("error scheduling cron job: %w", err)
	}

	p.cronScheduler.Start()
	fmt.Println("Route history pruner started - will run daily at 3:00 AM")

	if p.runImmediately {
		fmt.Println("Running initial route history cleanup")
		p.runPrune()
	}

	return nil
}

// Stop terminates the pruner
func (p *LogPruner) Stop() {
	if p.cronScheduler != nil {
		p.cronScheduler.Stop()
		log.Println("Route history pruner stopped")
	}
}

// UpdateSchedule changes the schedule of the pruner
// Format: "0 0 3 * * *" = At 03:00:00 AM every day
func (p *LogPruner) UpdateSchedule(schedule string) error {
	p.cronScheduler.Remove(p.jobID)

	var err error
	p.jobID, err = p.cronScheduler.AddFunc(schedule, func() {
		log.Println("Running scheduled route history cleanup")
		p.runPrune()
	})
	if err != nil {
		return fmt.Errorf("error rescheduling cron job: %w", err)
	}
	return nil
}

func (p *LogPruner) runPrune() {
	if Models.DB == nil {
		log.Println("Route history cleanup skipped: database not connected")
		return
	}
	if p.retentionDays <= 0 {
		return
	}

	cutoff := time.Now().AddDate(0, 0, -p.retentionDays)
	result := Models.DB.Where("created_at < ?", cutoff).Delete(&Models.RouteLog{})
	if result.Error != nil {
		log.Printf("Error pruning route history: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("Pruned %d route history rows older than %s", result.RowsAffected, cutoff.Format("2006-01-02"))
	}
}
