package worker

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"campaign-plan-service/internal/domain/plan"
	"campaign-plan-service/internal/domain/task"
	"campaign-plan-service/internal/infrastructure/metrics"
	"campaign-plan-service/internal/infrastructure/queue"
)

// Pool manages multiple generation workers.
type Pool struct {
	workers      []*Worker
	queue        queue.PlanQueue
	planService  plan.Service
	taskService  task.Service
	generator    plan.Generator
	workerCount  int
	pollInterval time.Duration
	jobTimeout   time.Duration
	log          zerolog.Logger
	wg           sync.WaitGroup
	stopChan     chan struct{}
}

// Config contains worker pool configuration.
type Config struct {
	WorkerCount  int
	PollInterval time.Duration
	JobTimeout   time.Duration
}

// NewPool creates a new worker pool.
func NewPool(
	queue queue.PlanQueue,
	planService plan.Service,
	taskService task.Service,
	generator plan.Generator,
	cfg Config,
	log zerolog.Logger,
) *Pool {
	return &Pool{
		queue:        queue,
		planService:  planService,
		taskService:  taskService,
		generator:    generator,
		workerCount:  cfg.WorkerCount,
		pollInterval: cfg.PollInterval,
		jobTimeout:   cfg.JobTimeout,
		log:          log.With().Str("component", "worker-pool").Logger(),
		stopChan:     make(chan struct{}),
	}
}

// Start initializes and starts all workers.
func (p *Pool) Start(ctx context.Context) {
	p.log.Info().Int("worker_count", p.workerCount).Msg("starting worker pool")

	p.workers = make([]*Worker, p.workerCount)
	for i := 0; i < p.workerCount; i++ {
		worker := NewWorker(
			i+1,
			p.queue,
			p.planService,
			p.taskService,
			p.generator,
			p.pollInterval,
			p.jobTimeout,
			p.log,
		)
		p.workers[i] = worker

		p.wg.Add(1)
		go func(w *Worker) {
			defer p.wg.Done()
			w.Start(ctx)
		}(worker)
	}

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		p.reportQueueDepth(ctx)
	}()

	p.log.Info().Msg("worker pool started")
}

// Stop gracefully shuts down all workers.
func (p *Pool) Stop() {
	p.log.Info().Msg("stopping worker pool")

	// Signal all workers to stop
	close(p.stopChan)
	for _, worker := range p.workers {
		worker.Stop()
	}

	// Wait for all workers to finish
	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	// Wait with timeout
	select {
	case <-done:
		p.log.Info().Msg("all workers stopped gracefully")
	case <-time.After(30 * time.Second):
		p.log.Warn().Msg("worker pool shutdown timed out")
	}
}

// reportQueueDepth periodically exports the queue depth gauge.
func (p *Pool) reportQueueDepth(ctx context.Context) {
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-p.stopChan:
			return
		case <-ticker.C:
			depth, err := p.queue.QueueDepth(ctx)
			if err != nil {
				p.log.Error().Err(err).Msg("failed to read queue depth")
				continue
			}
			metrics.SetQueueDepth(depth)
		}
	}
}
