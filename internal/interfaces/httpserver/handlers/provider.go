package handlers

import (
	"github.com/rs/zerolog"

	"campaign-plan-service/internal/domain/plan"
	"campaign-plan-service/internal/domain/task"
)

// Provider wires all HTTP handlers for dependency injection.
type Provider struct {
	Plan *PlanHandler
	Task *TaskHandler
}

// NewProvider constructs the handler provider with domain services.
func NewProvider(planService plan.Service, taskService task.Service, log zerolog.Logger) *Provider {
	return &Provider{
		Plan: NewPlanHandler(planService, log),
		Task: NewTaskHandler(taskService, log),
	}
}
