package scheduler

import (
	"errors"
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"northshore/server/config"
	"northshore/server/internal/database"
	"northshore/server/internal/queue"
)

// Scheduler periodically scans the MLS mirror for listings whose cached
// hero image is missing and enqueues them for refresh.
type Scheduler struct {
	store    *database.Store
	queue    *queue.RefreshQueue
	config   *config.Config
	logger   *logrus.Logger
	stopChan chan struct{}
	wg       sync.WaitGroup
	jobMutex sync.Mutex // Ensures sequential scan execution
}

// NewScheduler creates a new scheduler.
func NewScheduler(store *database.Store, refreshQueue *queue.RefreshQueue, cfg *config.Config, logger *logrus.Logger) *Scheduler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
		logger.SetLevel(logrus.InfoLevel)
	}

	return &Scheduler{
		store:    store,
		queue:    refreshQueue,
		config:   cfg,
		logger:   logger,
		stopChan: make(chan struct{}),
	}
}

// Start begins the scheduled scans, running one immediately at startup.
func (s *Scheduler) Start() {
	s.wg.Add(1)
	go s.run()
}

func (s *Scheduler) run() {
	defer s.wg.Done()

	// Tracked by the WaitGroup so Stop does not return while the startup
	// scan is still pushing to the queue
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.logger.Info("Running startup hero cache scan")
		s.TriggerScan()
		s.logger.Info("Startup hero cache scan completed")
	}()

	interval := time.Duration(s.config.HeroCache.ScanInterval) * time.Minute
	if interval <= 0 {
		interval = time.Hour
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.TriggerScan()
		}
	}
}

// TriggerScan runs one scan-and-enqueue pass. Safe to call from the admin
// resync endpoint; overlapping calls run sequentially.
func (s *Scheduler) TriggerScan() {
	s.jobMutex.Lock()
	defer s.jobMutex.Unlock()

	batchSize := s.config.HeroCache.MaxBatchSize
	if batchSize <= 0 {
		batchSize = 100
	}

	keys, err := s.store.ListingsNeedingHeroRefresh(batchSize * s.config.HeroCache.QueueSize)
	if err != nil {
		s.logger.WithError(err).Error("Hero cache scan failed")
		return
	}
	if len(keys) == 0 {
		s.logger.Debug("No listings need a hero cache refresh")
		return
	}

	s.logger.WithField("listing_count", len(keys)).Info("Enqueueing hero cache refresh batches")

	for start := 0; start < len(keys); start += batchSize {
		end := start + batchSize
		if end > len(keys) {
			end = len(keys)
		}

		if err := s.queue.Push(keys[start:end]); err != nil {
			if errors.Is(err, queue.ErrQueueFull) {
				// Remaining keys are picked up on the next scan
				s.logger.Warn("Refresh queue full, deferring remaining batches")
				return
			}
			s.logger.WithError(err).Error("Failed to enqueue refresh batch")
			return
		}
	}
}

// Stop gracefully stops the scheduler.
func (s *Scheduler) Stop() {
	close(s.stopChan)
	s.wg.Wait()
}
