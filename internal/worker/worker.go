package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"campaign-plan-service/internal/domain/plan"
	"campaign-plan-service/internal/domain/task"
	"campaign-plan-service/internal/infrastructure/metrics"
	"campaign-plan-service/internal/infrastructure/observability"
	"campaign-plan-service/internal/infrastructure/queue"
)

// Worker processes queued plans: it pulls one plan at a time, calls the
// generation backend, and persists the produced content.
type Worker struct {
	id           int
	queue        queue.PlanQueue
	planService  plan.Service
	taskService  task.Service
	generator    plan.Generator
	pollInterval time.Duration
	jobTimeout   time.Duration
	log          zerolog.Logger
	stopChan     chan struct{}
}

// NewWorker creates a new generation worker.
func NewWorker(
	id int,
	queue queue.PlanQueue,
	planService plan.Service,
	taskService task.Service,
	generator plan.Generator,
	pollInterval time.Duration,
	jobTimeout time.Duration,
	log zerolog.Logger,
) *Worker {
	return &Worker{
		id:           id,
		queue:        queue,
		planService:  planService,
		taskService:  taskService,
		generator:    generator,
		pollInterval: pollInterval,
		jobTimeout:   jobTimeout,
		log:          log.With().Int("worker_id", id).Str("component", "worker").Logger(),
		stopChan:     make(chan struct{}),
	}
}

// Start begins processing plans from the queue.
func (w *Worker) Start(ctx context.Context) {
	w.log.Info().Msg("worker started")

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("worker stopped by context")
			return
		case <-w.stopChan:
			w.log.Info().Msg("worker stopped")
			return
		case <-ticker.C:
			w.processNextPlan(ctx)
		}
	}
}

// Stop gracefully stops the worker.
func (w *Worker) Stop() {
	close(w.stopChan)
}

func (w *Worker) processNextPlan(ctx context.Context) {
	job, err := w.queue.Dequeue(ctx)
	if err != nil {
		w.log.Error().Err(err).Msg("failed to dequeue plan")
		return
	}

	if job == nil {
		// No plans available
		return
	}

	// Dequeue already marked the plan IN_PROGRESS as part of the claim.
	w.log.Info().
		Str("plan_id", job.PlanID).
		Int64("campaign_id", job.CampaignID).
		Str("ai_model", job.AIModel).
		Msg("processing plan generation")

	jobCtx, cancel := context.WithTimeout(ctx, w.jobTimeout)
	defer cancel()

	start := time.Now()
	if err := w.generate(jobCtx, job); err != nil {
		w.log.Error().Err(err).Str("plan_id", job.PlanID).Msg("plan generation failed")
		metrics.RecordGeneration("failed", job.AIModel, time.Since(start).Seconds())
		if markErr := w.queue.MarkFailed(ctx, job.PlanID, err); markErr != nil {
			w.log.Error().Err(markErr).Str("plan_id", job.PlanID).Msg("failed to mark plan as failed")
		}
		return
	}

	if err := w.queue.MarkComplete(ctx, job.PlanID); err != nil {
		w.log.Error().Err(err).Str("plan_id", job.PlanID).Msg("failed to mark plan as complete")
		return
	}

	metrics.RecordGeneration("complete", job.AIModel, time.Since(start).Seconds())
	w.log.Info().Str("plan_id", job.PlanID).Msg("plan generation completed")
}

// generate calls the generation backend and persists its output. The cost
// is written last: once it lands, the database refuses further changes to
// it, so nothing partial may follow.
func (w *Worker) generate(ctx context.Context, job *queue.Job) (err error) {
	ctx, span := observability.StartGenerationSpan(ctx, job.PlanID, job.CampaignID, job.Version)
	defer func() {
		if err != nil {
			observability.RecordError(span, err)
			observability.AddStatusTransition(span, string(plan.StatusInProgress), string(plan.StatusFailed))
		} else {
			observability.AddStatusTransition(span, string(plan.StatusInProgress), string(plan.StatusComplete))
		}
		span.End()
	}()

	current, err := w.planService.GetByID(ctx, job.PlanID)
	if err != nil {
		return fmt.Errorf("load plan: %w", err)
	}

	result, err := w.generator.GeneratePlan(ctx, plan.GenerationRequest{
		PlanID:       job.PlanID,
		CampaignID:   job.CampaignID,
		Version:      job.Version,
		AIModel:      job.AIModel,
		SourceReason: current.SourceReason,
	})
	if err != nil {
		return fmt.Errorf("call generator: %w", err)
	}

	for _, section := range result.Sections {
		if _, err := w.planService.AddSection(ctx, job.PlanID, plan.SectionParams{
			Key:        section.Key,
			Title:      section.Title,
			Summary:    section.Summary,
			OrderIndex: section.OrderIndex,
		}); err != nil {
			return fmt.Errorf("persist section %q: %w", section.Key, err)
		}
	}

	for _, generated := range result.Tasks {
		params, err := taskParams(generated)
		if err != nil {
			return err
		}
		if _, err := w.taskService.Create(ctx, job.PlanID, params); err != nil {
			return fmt.Errorf("persist task %q: %w", generated.Title, err)
		}
	}

	if result.Cost != nil {
		if _, err := w.planService.Update(ctx, job.PlanID, plan.UpdateParams{Cost: result.Cost}); err != nil {
			return fmt.Errorf("persist cost: %w", err)
		}
	}

	return nil
}

func taskParams(generated plan.GeneratedTask) (task.CreateParams, error) {
	params := task.CreateParams{
		Type:        generated.Type,
		Title:       generated.Title,
		Description: generated.Description,
		WeekIndex:   generated.WeekIndex,
		ActionURL:   generated.ActionURL,
		Priority:    generated.Priority,
		Tags:        generated.Tags,
		Metadata:    generated.Metadata,
	}

	if generated.DueDate != nil {
		dueDate, err := time.Parse(time.RFC3339, *generated.DueDate)
		if err != nil {
			return task.CreateParams{}, fmt.Errorf("parse task due date %q: %w", *generated.DueDate, err)
		}
		params.DueDate = &dueDate
	}

	return params, nil
}
