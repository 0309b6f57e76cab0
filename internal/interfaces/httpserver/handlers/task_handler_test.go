package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"campaign-plan-service/internal/domain/plan"
	"campaign-plan-service/internal/domain/task"
	"campaign-plan-service/internal/interfaces/httpserver/handlers"
	"campaign-plan-service/internal/utils/platformerrors"
)

const validTaskID = "0190b5ad-7b7a-7c8e-a9b0-9e8d7c6b5a4f"

// MockTaskService is a func-field mock of task.Service.
type MockTaskService struct {
	FindAllFunc func(ctx context.Context, planID string) ([]*plan.Task, error)
	FindOneFunc func(ctx context.Context, planID, taskID string) (*plan.Task, error)
	CreateFunc  func(ctx context.Context, planID string, params task.CreateParams) (*plan.Task, error)
	ReplaceFunc func(ctx context.Context, planID, taskID string, params task.ReplaceParams) (*plan.Task, error)
	PatchFunc   func(ctx context.Context, planID, taskID string, params task.UpdateParams) (*plan.Task, error)
	RemoveFunc  func(ctx context.Context, planID, taskID string) error
}

func (m *MockTaskService) FindAllByPlanID(ctx context.Context, planID string) ([]*plan.Task, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx, planID)
	}
	return nil, nil
}

func (m *MockTaskService) FindOne(ctx context.Context, planID, taskID string) (*plan.Task, error) {
	if m.FindOneFunc != nil {
		return m.FindOneFunc(ctx, planID, taskID)
	}
	return nil, nil
}

func (m *MockTaskService) Create(ctx context.Context, planID string, params task.CreateParams) (*plan.Task, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, planID, params)
	}
	return nil, nil
}

func (m *MockTaskService) Replace(ctx context.Context, planID, taskID string, params task.ReplaceParams) (*plan.Task, error) {
	if m.ReplaceFunc != nil {
		return m.ReplaceFunc(ctx, planID, taskID, params)
	}
	return nil, nil
}

func (m *MockTaskService) Patch(ctx context.Context, planID, taskID string, params task.UpdateParams) (*plan.Task, error) {
	if m.PatchFunc != nil {
		return m.PatchFunc(ctx, planID, taskID, params)
	}
	return nil, nil
}

func (m *MockTaskService) Remove(ctx context.Context, planID, taskID string) error {
	if m.RemoveFunc != nil {
		return m.RemoveFunc(ctx, planID, taskID)
	}
	return nil
}

func setupTaskTestRouter(handler *handlers.TaskHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	v1 := r.Group("/v1")
	{
		v1.GET("/plans/:plan_id/tasks", handler.List)
		v1.POST("/plans/:plan_id/tasks", handler.Create)
		v1.GET("/plans/:plan_id/tasks/:task_id", handler.Get)
		v1.PUT("/plans/:plan_id/tasks/:task_id", handler.Replace)
		v1.PATCH("/plans/:plan_id/tasks/:task_id", handler.Patch)
		v1.DELETE("/plans/:plan_id/tasks/:task_id", handler.Remove)
	}
	return r
}

func TestTaskHandler_Create(t *testing.T) {
	mockService := &MockTaskService{
		CreateFunc: func(ctx context.Context, planID string, params task.CreateParams) (*plan.Task, error) {
			if params.Type != plan.TaskTypeDoorKnocking {
				t.Errorf("Expected type DOOR_KNOCKING, got %s", params.Type)
			}
			return &plan.Task{
				ID:          validTaskID,
				PlanID:      planID,
				Type:        params.Type,
				Title:       params.Title,
				Description: params.Description,
				Status:      plan.TaskStatusNotStarted,
				Tags:        []string{},
			}, nil
		},
	}

	handler := handlers.NewTaskHandler(mockService, zerolog.Nop())
	router := setupTaskTestRouter(handler)

	body := bytes.NewBufferString(`{"type": "DOOR_KNOCKING", "title": "Canvass ward 3", "description": "Weekend door knocking in ward 3"}`)
	req, _ := http.NewRequest("POST", "/v1/plans/"+validPlanID+"/tasks", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", w.Code)
	}

	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if response["status"] != "NOT_STARTED" {
		t.Errorf("Expected default status NOT_STARTED, got %v", response["status"])
	}
}

func TestTaskHandler_Create_UnknownType(t *testing.T) {
	mockService := &MockTaskService{
		CreateFunc: func(ctx context.Context, planID string, params task.CreateParams) (*plan.Task, error) {
			t.Error("Service must not be called for an unknown task type")
			return nil, nil
		},
	}

	handler := handlers.NewTaskHandler(mockService, zerolog.Nop())
	router := setupTaskTestRouter(handler)

	body := bytes.NewBufferString(`{"type": "CARRIER_PIGEON", "title": "x", "description": "y"}`)
	req, _ := http.NewRequest("POST", "/v1/plans/"+validPlanID+"/tasks", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

func TestTaskHandler_Get_ScopedNotFound(t *testing.T) {
	mockService := &MockTaskService{
		FindOneFunc: func(ctx context.Context, planID, taskID string) (*plan.Task, error) {
			// Existing task id, but under another plan.
			return nil, platformerrors.NewError(ctx,
				platformerrors.LayerDomain,
				platformerrors.ErrorTypeNotFound,
				"task not found for plan", nil, "task-not-found-001")
		},
	}

	handler := handlers.NewTaskHandler(mockService, zerolog.Nop())
	router := setupTaskTestRouter(handler)

	req, _ := http.NewRequest("GET", "/v1/plans/"+validPlanID+"/tasks/"+validTaskID, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

func TestTaskHandler_Replace(t *testing.T) {
	mockService := &MockTaskService{
		ReplaceFunc: func(ctx context.Context, planID, taskID string, params task.ReplaceParams) (*plan.Task, error) {
			if params.DueDate != nil {
				t.Error("Expected omitted due date to arrive as nil")
			}
			return &plan.Task{
				ID:     taskID,
				PlanID: planID,
				Type:   params.Type,
				Title:  params.Title,
				Status: params.Status,
				Tags:   params.Tags,
			}, nil
		},
	}

	handler := handlers.NewTaskHandler(mockService, zerolog.Nop())
	router := setupTaskTestRouter(handler)

	body := bytes.NewBufferString(`{"type": "TEXT", "title": "Rewritten", "description": "Full payload", "status": "COMPLETE", "tags": ["gotv"]}`)
	req, _ := http.NewRequest("PUT", "/v1/plans/"+validPlanID+"/tasks/"+validTaskID, body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if response["status"] != "COMPLETE" {
		t.Errorf("Expected status COMPLETE, got %v", response["status"])
	}
}

func TestTaskHandler_Replace_RequiresAllFields(t *testing.T) {
	mockService := &MockTaskService{
		ReplaceFunc: func(ctx context.Context, planID, taskID string, params task.ReplaceParams) (*plan.Task, error) {
			t.Error("Service must not be called for an incomplete replace payload")
			return nil, nil
		},
	}

	handler := handlers.NewTaskHandler(mockService, zerolog.Nop())
	router := setupTaskTestRouter(handler)

	body := bytes.NewBufferString(`{"title": "Only a title"}`)
	req, _ := http.NewRequest("PUT", "/v1/plans/"+validPlanID+"/tasks/"+validTaskID, body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

func TestTaskHandler_Patch_PartialPayload(t *testing.T) {
	mockService := &MockTaskService{
		PatchFunc: func(ctx context.Context, planID, taskID string, params task.UpdateParams) (*plan.Task, error) {
			if params.Status == nil || *params.Status != plan.TaskStatusComplete {
				t.Errorf("Expected status COMPLETE in patch, got %+v", params.Status)
			}
			if params.Title != nil {
				t.Error("Omitted title must stay nil")
			}
			return &plan.Task{
				ID:     taskID,
				PlanID: planID,
				Type:   plan.TaskTypeText,
				Title:  "Unchanged",
				Status: *params.Status,
				Tags:   []string{},
			}, nil
		},
	}

	handler := handlers.NewTaskHandler(mockService, zerolog.Nop())
	router := setupTaskTestRouter(handler)

	body := bytes.NewBufferString(`{"status": "COMPLETE"}`)
	req, _ := http.NewRequest("PATCH", "/v1/plans/"+validPlanID+"/tasks/"+validTaskID, body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
}

func TestTaskHandler_Remove(t *testing.T) {
	removed := false
	mockService := &MockTaskService{
		RemoveFunc: func(ctx context.Context, planID, taskID string) error {
			removed = true
			return nil
		},
	}

	handler := handlers.NewTaskHandler(mockService, zerolog.Nop())
	router := setupTaskTestRouter(handler)

	req, _ := http.NewRequest("DELETE", "/v1/plans/"+validPlanID+"/tasks/"+validTaskID, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("Expected status 204, got %d", w.Code)
	}
	if !removed {
		t.Error("Expected the delete to reach the service")
	}
}

func TestTaskHandler_List(t *testing.T) {
	mockService := &MockTaskService{
		FindAllFunc: func(ctx context.Context, planID string) ([]*plan.Task, error) {
			return []*plan.Task{
				{ID: "t1", PlanID: planID, Type: plan.TaskTypeText, Title: "A", Status: plan.TaskStatusNotStarted, Tags: []string{}},
				{ID: "t2", PlanID: planID, Type: plan.TaskTypeEvents, Title: "B", Status: plan.TaskStatusComplete, Tags: []string{}},
			}, nil
		},
	}

	handler := handlers.NewTaskHandler(mockService, zerolog.Nop())
	router := setupTaskTestRouter(handler)

	req, _ := http.NewRequest("GET", "/v1/plans/"+validPlanID+"/tasks", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var response struct {
		Data []map[string]interface{} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if len(response.Data) != 2 {
		t.Errorf("Expected 2 tasks, got %d", len(response.Data))
	}
}
