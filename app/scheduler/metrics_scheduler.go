// Package scheduler runs the periodic clip metrics refresh loop
package scheduler

import (
	"context"
	"io"
	"log"
	"os"
	"time"

	"github.com/cliphaus/cliphaus-platform/app/middleware"
	businessflow "github.com/cliphaus/cliphaus-platform/business_flow"
	"github.com/cliphaus/cliphaus-platform/config"
	"gopkg.in/natefinch/lumberjack.v2"
)

// MetricsScheduler periodically refreshes stale clip metrics for active campaigns
type MetricsScheduler struct {
	flow     businessflow.MetricsRefreshFlow
	logger   *log.Logger
	interval time.Duration
}

func NewMetricsScheduler(flow businessflow.MetricsRefreshFlow, cfg config.SchedulerConfig, logCfg config.LoggingConfig) *MetricsScheduler {
	interval := cfg.MetricsRefreshInterval
	if interval <= 0 {
		interval = 6 * time.Hour
	}

	// Scheduler log goes to stdout and a rotated file
	var out io.Writer = os.Stdout
	if cfg.LogFilePath != "" {
		out = io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   cfg.LogFilePath,
			MaxSize:    logCfg.MaxSize,
			MaxBackups: logCfg.MaxBackups,
			MaxAge:     logCfg.MaxAge,
			Compress:   logCfg.Compress,
		})
	}

	return &MetricsScheduler{
		flow:     flow,
		logger:   log.New(out, "scheduler ", log.LstdFlags|log.Lmicroseconds|log.LUTC),
		interval: interval,
	}
}

// Start launches the scheduler loop in a background goroutine and returns a stop function
func (s *MetricsScheduler) Start(parent context.Context) func() {
	ctx, cancel := context.WithCancel(parent)

	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.runOnce(ctx)

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.runOnce(ctx)
			}
		}
	}()

	return cancel
}

func (s *MetricsScheduler) runOnce(ctx context.Context) {
	start := time.Now()
	s.logger.Println("metrics refresh: starting run")

	metadata := businessflow.NewClientMetadata("", "metrics-scheduler")
	result, err := s.flow.RefreshStaleMetrics(ctx, metadata)
	if err != nil {
		s.logger.Printf("metrics refresh: run failed: %v", err)
		return
	}

	middleware.MetricsRefreshRuns.WithLabelValues("scheduler").Inc()
	s.logger.Printf("metrics refresh: done in %s, total=%d updated=%d errors=%d",
		time.Since(start).Round(time.Millisecond), result.Total, result.Updated, result.Errors)
}
