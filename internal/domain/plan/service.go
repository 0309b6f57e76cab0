package plan

import (
	"context"
	"fmt"
	"time"

	"campaign-plan-service/internal/utils/planid"
	"campaign-plan-service/internal/utils/platformerrors"
)

// Service defines the interface for plan lifecycle logic.
type Service interface {
	// Create queues a plan for generation. Only the request metadata is
	// persisted; sections, tasks and cost are filled in by the worker.
	// The call is idempotent on (campaignID, version).
	Create(ctx context.Context, params CreateParams) (*CreateResult, error)

	// GetByID returns the plan with its tasks and sections.
	GetByID(ctx context.Context, id string) (*Plan, error)

	// Update applies a partial update and returns the stored plan.
	Update(ctx context.Context, id string, params UpdateParams) (*Plan, error)

	// Delete removes the plan and everything it owns.
	Delete(ctx context.Context, id string) error

	// Section operations
	AddSection(ctx context.Context, planID string, params SectionParams) (*Section, error)
	ListSections(ctx context.Context, planID string) ([]*Section, error)
}

// CreateParams contains parameters for creating a new plan.
type CreateParams struct {
	CampaignID   int64
	Version      int
	AIModel      string
	SourceReason *string
}

// CreateResult is the accepted-creation payload: the work itself is not
// complete until the worker finishes. Created reports whether this call
// inserted the plan or replayed an existing one.
type CreateResult struct {
	PlanID  string `json:"plan_id"`
	Status  Status `json:"status"`
	Created bool   `json:"-"`
}

// SectionParams contains parameters for adding a section to a plan.
type SectionParams struct {
	Key        string
	Title      string
	Summary    *string
	OrderIndex int
}

// DefaultService implements the Service interface.
type DefaultService struct {
	repo Repository
}

// NewService creates a new plan service.
func NewService(repo Repository) *DefaultService {
	return &DefaultService{repo: repo}
}

// Create implements the at-most-once creation protocol: look up by the
// derived idempotency key, return the existing row untouched if present,
// otherwise insert. A unique-constraint race on insert is resolved by one
// re-fetch of the winning row.
func (s *DefaultService) Create(ctx context.Context, params CreateParams) (*CreateResult, error) {
	key := IdempotencyKeyFor(params.CampaignID, params.Version)

	existing, err := s.repo.FindByIdempotencyKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return &CreateResult{PlanID: existing.ID, Status: existing.Status, Created: false}, nil
	}

	now := time.Now().UTC()
	p := &Plan{
		ID:             planid.New(),
		CampaignID:     params.CampaignID,
		Version:        params.Version,
		IdempotencyKey: key,
		AIModel:        params.AIModel,
		Status:         StatusQueued,
		SourceReason:   params.SourceReason,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		if platformerrors.IsErrorType(err, platformerrors.ErrorTypeConflict) {
			// Concurrent identical request won the insert; resolve to its row.
			winner, ferr := s.repo.FindByIdempotencyKey(ctx, key)
			if ferr == nil && winner != nil {
				return &CreateResult{PlanID: winner.ID, Status: winner.Status, Created: false}, nil
			}
		}
		return nil, err
	}

	return &CreateResult{PlanID: p.ID, Status: p.Status, Created: true}, nil
}

// GetByID retrieves a plan with its owned children.
func (s *DefaultService) GetByID(ctx context.Context, id string) (*Plan, error) {
	return s.repo.FindByID(ctx, id)
}

// Update applies only the supplied fields. Cost is refused here when one is
// already stored; the database trigger backstops callers that write to the
// store directly.
func (s *DefaultService) Update(ctx context.Context, id string, params UpdateParams) (*Plan, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Status != nil && !params.Status.IsValid() {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation,
			fmt.Sprintf("unknown plan status %q", *params.Status),
			nil,
			"plan-update-status-001",
		)
	}

	if params.Cost != nil && current.Cost != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerDomain,
			platformerrors.ErrorTypeImmutable,
			"cost is immutable once set",
			nil,
			"plan-update-cost-001",
		)
	}

	if params.Status != nil && params.Status.IsTerminal() && params.CompletedAt == nil {
		now := time.Now().UTC()
		params.CompletedAt = &now
	}

	if !params.IsEmpty() {
		if err := s.repo.Update(ctx, id, params); err != nil {
			return nil, err
		}
	}

	return s.repo.FindByID(ctx, id)
}

// Delete verifies existence, then removes the plan. Tasks and sections are
// removed by the cascading foreign keys in the same operation.
func (s *DefaultService) Delete(ctx context.Context, id string) error {
	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return notFound(ctx, id)
	}
	return s.repo.Delete(ctx, id)
}

// AddSection creates a section under an existing plan.
func (s *DefaultService) AddSection(ctx context.Context, planID string, params SectionParams) (*Section, error) {
	exists, err := s.repo.Exists(ctx, planID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, notFound(ctx, planID)
	}

	now := time.Now().UTC()
	section := &Section{
		ID:         planid.New(),
		PlanID:     planID,
		Key:        params.Key,
		Title:      params.Title,
		Summary:    params.Summary,
		OrderIndex: params.OrderIndex,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.CreateSection(ctx, section); err != nil {
		return nil, err
	}
	return section, nil
}

// ListSections returns the plan's sections ordered by orderIndex ascending.
func (s *DefaultService) ListSections(ctx context.Context, planID string) ([]*Section, error) {
	exists, err := s.repo.Exists(ctx, planID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, notFound(ctx, planID)
	}
	return s.repo.ListSectionsByPlanID(ctx, planID)
}

func notFound(ctx context.Context, planID string) *platformerrors.PlatformError {
	return platformerrors.NewError(
		ctx,
		platformerrors.LayerDomain,
		platformerrors.ErrorTypeNotFound,
		fmt.Sprintf("plan %s not found", planID),
		nil,
		"plan-not-found-001",
	)
}
