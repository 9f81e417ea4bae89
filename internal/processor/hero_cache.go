package processor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"northshore/server/config"
	"northshore/server/internal/database"
	"northshore/server/internal/media"
	"northshore/server/internal/queue"
)

// HeroCacheProcessor drains listing-key batches from the refresh queue and
// recomputes each listing's cached hero image URL from its media rows. Every
// write is a single-row update; there is no cross-row transaction.
type HeroCacheProcessor struct {
	store     *database.Store
	media     *media.Aggregator
	queue     *queue.RefreshQueue
	config    *config.Config
	logger    *logrus.Logger
	work      chan []string
	waitGroup sync.WaitGroup
	ctx       context.Context
	cancel    context.CancelFunc
}

// NewHeroCacheProcessor creates a new processor instance.
func NewHeroCacheProcessor(store *database.Store, aggregator *media.Aggregator, refreshQueue *queue.RefreshQueue, cfg *config.Config, logger *logrus.Logger) *HeroCacheProcessor {
	if logger == nil {
		logger = logrus.New()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &HeroCacheProcessor{
		store:  store,
		media:  aggregator,
		queue:  refreshQueue,
		config: cfg,
		logger: logger,
		work:   make(chan []string),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start subscribes to the queue once and fans batches out to a pool of
// ProcessorCount workers. A single subscription means each batch is
// refreshed exactly once, whatever the pool size.
func (p *HeroCacheProcessor) Start() {
	workers := p.config.HeroCache.ProcessorCount
	if workers <= 0 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		p.waitGroup.Add(1)
		go p.worker()
	}

	p.queue.Subscribe(func(batch []string) error {
		select {
		case p.work <- batch:
			return nil
		case <-p.ctx.Done():
			return p.ctx.Err()
		}
	})
}

// Stop gracefully shuts down the processor.
func (p *HeroCacheProcessor) Stop() {
	p.cancel()
	p.waitGroup.Wait()
}

func (p *HeroCacheProcessor) worker() {
	defer p.waitGroup.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case batch := <-p.work:
			if err := p.processBatch(batch); err != nil {
				p.logger.WithError(err).Error("Hero cache batch abandoned")
			}
		}
	}
}

// processBatch refreshes a batch of listings with retry.
func (p *HeroCacheProcessor) processBatch(batch []string) error {
	var err error
	for attempt := 0; attempt <= p.config.HeroCache.MaxRetries; attempt++ {
		if attempt > 0 {
			p.logger.Infof("Retrying hero cache batch, attempt %d of %d", attempt, p.config.HeroCache.MaxRetries)
			time.Sleep(time.Duration(p.config.HeroCache.RetryDelay) * time.Second)
		}

		err = p.refreshBatch(batch)
		if err == nil {
			p.logger.Infof("Refreshed hero cache for batch of %d listings", len(batch))
			return nil
		}

		p.logger.Errorf("Hero cache batch failed: %v", err)
	}

	return fmt.Errorf("failed to refresh batch after %d attempts: %w", p.config.HeroCache.MaxRetries, err)
}

// refreshBatch recomputes and writes the hero URL for each listing in the
// batch. Listings with no media rows are skipped; a listing deleted between
// scan and update is not an error.
func (p *HeroCacheProcessor) refreshBatch(batch []string) error {
	grouped, err := p.media.BatchMedia(batch)
	if err != nil {
		return fmt.Errorf("loading media for hero refresh: %w", err)
	}

	for _, listingKey := range batch {
		select {
		case <-p.ctx.Done():
			return p.ctx.Err()
		default:
		}

		url := media.PrimaryImageURL(grouped[listingKey])
		if url == nil {
			continue
		}

		if err := p.store.UpdateHeroImageCache(listingKey, url); err != nil {
			if errors.Is(err, database.ErrNotFound) {
				continue
			}
			return fmt.Errorf("updating hero cache for %s: %w", listingKey, err)
		}
	}
	return nil
}
