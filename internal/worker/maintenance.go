package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/pandey-solutions/saves/internal/pkg/logger"
)

// Task is a unit of periodic housekeeping
type Task struct {
	Name string
	Run  func(ctx context.Context) error
}

// Maintenance runs housekeeping tasks on a cron schedule
type Maintenance struct {
	schedule  string
	tasks     []Task
	logger    *logger.Logger
	scheduler *cron.Cron
	mu        sync.Mutex
}

// NewMaintenance creates a maintenance worker. schedule accepts standard
// cron expressions and descriptors such as "@every 5m".
func NewMaintenance(schedule string, log *logger.Logger, tasks ...Task) (*Maintenance, error) {
	if _, err := cron.ParseStandard(schedule); err != nil {
		return nil, fmt.Errorf("invalid cron schedule: %w", err)
	}

	return &Maintenance{
		schedule: schedule,
		tasks:    tasks,
		logger:   log,
	}, nil
}

// Start schedules the tasks. They run until Stop is called or ctx ends.
func (m *Maintenance) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.scheduler != nil {
		return fmt.Errorf("maintenance already started")
	}

	m.scheduler = cron.New()
	if _, err := m.scheduler.AddFunc(m.schedule, func() { m.RunOnce(ctx) }); err != nil {
		m.scheduler = nil
		return fmt.Errorf("failed to schedule maintenance: %w", err)
	}
	m.scheduler.Start()

	m.logger.WithFields(map[string]interface{}{
		"schedule": m.schedule,
		"tasks":    len(m.tasks),
	}).Info("Maintenance worker started")

	go func() {
		<-ctx.Done()
		m.Stop()
	}()

	return nil
}

// Stop stops scheduling and waits for a running pass to finish
func (m *Maintenance) Stop() {
	m.mu.Lock()
	scheduler := m.scheduler
	m.scheduler = nil
	m.mu.Unlock()

	if scheduler == nil {
		return
	}
	<-scheduler.Stop().Done()
	m.logger.Info("Maintenance worker stopped")
}

// RunOnce runs every task once. A failing task does not stop the others.
// It returns the number of failed tasks.
func (m *Maintenance) RunOnce(ctx context.Context) int {
	failed := 0
	for _, t := range m.tasks {
		start := time.Now()
		if err := t.Run(ctx); err != nil {
			failed++
			m.logger.WithFields(map[string]interface{}{
				"task": t.Name,
			}).ErrorWithErr(err, "Maintenance task failed")
			continue
		}
		m.logger.WithFields(map[string]interface{}{
			"task":        t.Name,
			"duration_ms": time.Since(start).Milliseconds(),
		}).Debug("Maintenance task completed")
	}
	return failed
}
