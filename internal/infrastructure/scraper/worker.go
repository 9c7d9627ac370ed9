package scraper

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/crmsuite/backend/internal/domain/scrape"
)

const defaultWorkerCount = 2

// errorPause throttles the dequeue loop after a queue failure so a dead
// Redis does not spin the workers at full speed.
const errorPause = time.Second

// Processor runs one attempt of a queued job. Satisfied by the scrape
// application service.
type Processor interface {
	Process(ctx context.Context, jobID uuid.UUID) error
}

// WorkerPool drains the scrape queue with a fixed set of workers
type WorkerPool struct {
	queue     scrape.Queue
	processor Processor
	workers   int
	logger    *zap.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewWorkerPool creates a scrape worker pool
func NewWorkerPool(queue scrape.Queue, processor Processor, workers int, logger *zap.Logger) *WorkerPool {
	if workers <= 0 {
		workers = defaultWorkerCount
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WorkerPool{
		queue:     queue,
		processor: processor,
		workers:   workers,
		logger:    logger,
	}
}

// Start launches the workers. They run until Stop is called or the
// parent context is cancelled.
func (p *WorkerPool) Start(ctx context.Context) {
	ctx, p.cancel = context.WithCancel(ctx)

	p.logger.Info("starting scrape worker pool", zap.Int("workers", p.workers))
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.run(ctx, i)
	}
}

// Stop cancels the workers and waits for in-flight jobs to finish
func (p *WorkerPool) Stop() {
	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()
	p.logger.Info("scrape worker pool stopped")
}

func (p *WorkerPool) run(ctx context.Context, worker int) {
	defer p.wg.Done()

	log := p.logger.With(zap.Int("worker", worker))
	for {
		if ctx.Err() != nil {
			return
		}

		jobID, err := p.queue.Dequeue(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Error("failed to dequeue scrape job", zap.Error(err))
			select {
			case <-ctx.Done():
				return
			case <-time.After(errorPause):
			}
			continue
		}
		if jobID == uuid.Nil {
			continue
		}

		if err := p.processor.Process(ctx, jobID); err != nil {
			log.Error("scrape job processing failed",
				zap.String("job_id", jobID.String()), zap.Error(err))
		}
	}
}
