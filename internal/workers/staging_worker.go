package workers

import (
	"context"
	"time"

	"admin_console/internal/logger"
	"admin_console/internal/metrics"
)

// Sweeper - то, что умеет удалять просроченные файлы
type Sweeper interface {
	Sweep(ctx context.Context, ttl time.Duration) int
}

type StagingWorker struct {
	registry Sweeper
	ttl      time.Duration
	interval time.Duration
}

// NewStagingWorker создает воркер. Интервал проверки - четверть TTL, но не чаще раза в минуту.
func NewStagingWorker(registry Sweeper, ttl time.Duration) *StagingWorker {
	interval := ttl / 4
	if interval < time.Minute {
		interval = time.Minute
	}
	return &StagingWorker{registry: registry, ttl: ttl, interval: interval}
}

// Start запускает фоновую очистку брошенных видео
func (w *StagingWorker) Start(ctx context.Context) {
	go w.sweepAbandoned(ctx)
}

// sweepAbandoned удаляет видео, которые выбрали, но так и не загрузили
func (w *StagingWorker) sweepAbandoned(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Staging worker stopped")
			return
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}

// RunOnce - один проход очистки
func (w *StagingWorker) RunOnce(ctx context.Context) int {
	removed := w.registry.Sweep(ctx, w.ttl)
	if removed > 0 {
		metrics.StagingSweptTotal.Add(float64(removed))
		logger.Info("Removed abandoned staged videos", "count", removed)
	}
	logger.WorkerLog("staging", "sweep", nil)
	return removed
}
