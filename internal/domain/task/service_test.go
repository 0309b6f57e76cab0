package task_test

import (
	"context"
	"testing"
	"time"

	"campaign-plan-service/internal/domain/plan"
	"campaign-plan-service/internal/domain/task"
	"campaign-plan-service/internal/utils/platformerrors"
)

// MockRepository is a func-field mock of task.Repository.
type MockRepository struct {
	PlanExistsFunc   func(ctx context.Context, planID string) (bool, error)
	CreateTaskFunc   func(ctx context.Context, t *plan.Task) error
	FindTaskFunc     func(ctx context.Context, planID, taskID string) (*plan.Task, error)
	ListTasksFunc    func(ctx context.Context, planID string) ([]*plan.Task, error)
	ReplaceTaskFunc  func(ctx context.Context, t *plan.Task) error
	PatchTaskFunc    func(ctx context.Context, planID, taskID string, params task.UpdateParams) error
	DeleteTaskFunc   func(ctx context.Context, planID, taskID string) error
}

func (m *MockRepository) PlanExists(ctx context.Context, planID string) (bool, error) {
	if m.PlanExistsFunc != nil {
		return m.PlanExistsFunc(ctx, planID)
	}
	return true, nil
}

func (m *MockRepository) CreateTask(ctx context.Context, t *plan.Task) error {
	if m.CreateTaskFunc != nil {
		return m.CreateTaskFunc(ctx, t)
	}
	return nil
}

func (m *MockRepository) FindTaskByID(ctx context.Context, planID, taskID string) (*plan.Task, error) {
	if m.FindTaskFunc != nil {
		return m.FindTaskFunc(ctx, planID, taskID)
	}
	return nil, nil
}

func (m *MockRepository) ListTasksByPlanID(ctx context.Context, planID string) ([]*plan.Task, error) {
	if m.ListTasksFunc != nil {
		return m.ListTasksFunc(ctx, planID)
	}
	return nil, nil
}

func (m *MockRepository) ReplaceTask(ctx context.Context, t *plan.Task) error {
	if m.ReplaceTaskFunc != nil {
		return m.ReplaceTaskFunc(ctx, t)
	}
	return nil
}

func (m *MockRepository) PatchTask(ctx context.Context, planID, taskID string, params task.UpdateParams) error {
	if m.PatchTaskFunc != nil {
		return m.PatchTaskFunc(ctx, planID, taskID, params)
	}
	return nil
}

func (m *MockRepository) DeleteTask(ctx context.Context, planID, taskID string) error {
	if m.DeleteTaskFunc != nil {
		return m.DeleteTaskFunc(ctx, planID, taskID)
	}
	return nil
}

func TestService_Create_DefaultsStatusAndTags(t *testing.T) {
	var created *plan.Task
	repo := &MockRepository{
		CreateTaskFunc: func(ctx context.Context, created2 *plan.Task) error {
			created = created2
			return nil
		},
	}

	service := task.NewService(repo)
	result, err := service.Create(context.Background(), "plan-1", task.CreateParams{
		Type:        plan.TaskTypeText,
		Title:       "Send reminder texts",
		Description: "First wave of GOTV reminders",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created == nil {
		t.Fatal("Expected the task to be persisted")
	}
	if result.Status != plan.TaskStatusNotStarted {
		t.Errorf("Expected default status NOT_STARTED, got %s", result.Status)
	}
	if result.Tags == nil || len(result.Tags) != 0 {
		t.Errorf("Expected empty tags slice, got %v", result.Tags)
	}
	if result.ID == "" {
		t.Error("Expected a generated task id")
	}
	if result.PlanID != "plan-1" {
		t.Errorf("Expected plan id plan-1, got %q", result.PlanID)
	}
}

func TestService_Create_RequiresPlan(t *testing.T) {
	repo := &MockRepository{
		PlanExistsFunc: func(ctx context.Context, planID string) (bool, error) {
			return false, nil
		},
		CreateTaskFunc: func(ctx context.Context, created *plan.Task) error {
			t.Error("CreateTask must not be called when the plan is missing")
			return nil
		},
	}

	service := task.NewService(repo)
	_, err := service.Create(context.Background(), "missing", task.CreateParams{
		Type:        plan.TaskTypeEvents,
		Title:       "Town hall",
		Description: "Organize the kickoff town hall",
	})
	if err == nil {
		t.Fatal("Expected a not found error")
	}
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
		t.Errorf("Expected NOT_FOUND error, got %v", err)
	}
}

func TestService_FindOne_ScopedToPlan(t *testing.T) {
	repo := &MockRepository{
		FindTaskFunc: func(ctx context.Context, planID, taskID string) (*plan.Task, error) {
			// The task exists, but under a different plan: the scoped
			// lookup comes back empty.
			if planID != "plan-owner" {
				return nil, nil
			}
			return &plan.Task{ID: taskID, PlanID: planID}, nil
		},
	}

	service := task.NewService(repo)

	if _, err := service.FindOne(context.Background(), "plan-owner", "task-1"); err != nil {
		t.Fatalf("Expected the owning plan's lookup to succeed: %v", err)
	}

	_, err := service.FindOne(context.Background(), "plan-other", "task-1")
	if err == nil {
		t.Fatal("Expected a not found error for the foreign plan")
	}
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
		t.Errorf("Expected NOT_FOUND error, got %v", err)
	}
}

func TestService_Replace_PreservesIdentity(t *testing.T) {
	createdAt := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	var replaced *plan.Task
	repo := &MockRepository{
		FindTaskFunc: func(ctx context.Context, planID, taskID string) (*plan.Task, error) {
			due := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
			return &plan.Task{
				ID:          taskID,
				PlanID:      planID,
				Type:        plan.TaskTypeText,
				Title:       "Old title",
				Description: "Old description",
				DueDate:     &due,
				Status:      plan.TaskStatusNotStarted,
				CreatedAt:   createdAt,
			}, nil
		},
		ReplaceTaskFunc: func(ctx context.Context, t2 *plan.Task) error {
			replaced = t2
			return nil
		},
	}

	service := task.NewService(repo)

	// Full replace without a due date clears the stored one.
	result, err := service.Replace(context.Background(), "plan-1", "task-1", task.ReplaceParams{
		Type:        plan.TaskTypePhoneBanking,
		Title:       "New title",
		Description: "New description",
		Status:      plan.TaskStatusComplete,
	})
	if err != nil {
		t.Fatalf("Replace failed: %v", err)
	}

	if replaced == nil {
		t.Fatal("Expected ReplaceTask to be called")
	}
	if result.ID != "task-1" || result.PlanID != "plan-1" {
		t.Errorf("Replace must keep identity, got id=%q plan=%q", result.ID, result.PlanID)
	}
	if !result.CreatedAt.Equal(createdAt) {
		t.Errorf("Replace must keep CreatedAt, got %v", result.CreatedAt)
	}
	if result.DueDate != nil {
		t.Error("Expected the omitted due date to be cleared")
	}
	if result.Status != plan.TaskStatusComplete {
		t.Errorf("Expected status COMPLETE, got %s", result.Status)
	}
}

func TestService_Patch_WritesOnlySuppliedFields(t *testing.T) {
	var patched *task.UpdateParams
	repo := &MockRepository{
		FindTaskFunc: func(ctx context.Context, planID, taskID string) (*plan.Task, error) {
			return &plan.Task{ID: taskID, PlanID: planID, Title: "Title"}, nil
		},
		PatchTaskFunc: func(ctx context.Context, planID, taskID string, params task.UpdateParams) error {
			patched = &params
			return nil
		},
	}

	service := task.NewService(repo)
	status := plan.TaskStatusComplete
	_, err := service.Patch(context.Background(), "plan-1", "task-1", task.UpdateParams{
		Status: &status,
	})
	if err != nil {
		t.Fatalf("Patch failed: %v", err)
	}

	if patched == nil {
		t.Fatal("Expected PatchTask to be called")
	}
	if patched.Status == nil || *patched.Status != plan.TaskStatusComplete {
		t.Errorf("Expected status in patch, got %+v", patched.Status)
	}
	if patched.Title != nil || patched.Description != nil || patched.DueDate != nil {
		t.Error("Patch must not carry fields that were not supplied")
	}
}

func TestService_Patch_EmptyUpdateSkipsRepository(t *testing.T) {
	repo := &MockRepository{
		FindTaskFunc: func(ctx context.Context, planID, taskID string) (*plan.Task, error) {
			return &plan.Task{ID: taskID, PlanID: planID}, nil
		},
		PatchTaskFunc: func(ctx context.Context, planID, taskID string, params task.UpdateParams) error {
			t.Error("PatchTask must not be called for an empty update")
			return nil
		},
	}

	service := task.NewService(repo)
	if _, err := service.Patch(context.Background(), "plan-1", "task-1", task.UpdateParams{}); err != nil {
		t.Fatalf("Patch failed: %v", err)
	}
}

func TestService_Remove_NotFound(t *testing.T) {
	repo := &MockRepository{
		FindTaskFunc: func(ctx context.Context, planID, taskID string) (*plan.Task, error) {
			return nil, nil
		},
		DeleteTaskFunc: func(ctx context.Context, planID, taskID string) error {
			t.Error("DeleteTask must not be called for a missing task")
			return nil
		},
	}

	service := task.NewService(repo)
	err := service.Remove(context.Background(), "plan-1", "missing")
	if err == nil {
		t.Fatal("Expected a not found error")
	}
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
		t.Errorf("Expected NOT_FOUND error, got %v", err)
	}
}

func TestService_FindAllByPlanID_RequiresPlan(t *testing.T) {
	repo := &MockRepository{
		PlanExistsFunc: func(ctx context.Context, planID string) (bool, error) {
			return false, nil
		},
	}

	service := task.NewService(repo)
	_, err := service.FindAllByPlanID(context.Background(), "missing")
	if err == nil {
		t.Fatal("Expected a not found error")
	}
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
		t.Errorf("Expected NOT_FOUND error, got %v", err)
	}
}
