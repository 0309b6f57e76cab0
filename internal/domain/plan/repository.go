package plan

import (
	"context"
	"time"
)

// Repository defines the interface for plan persistence.
type Repository interface {
	// Create inserts a new plan row. A duplicate idempotency key surfaces
	// as a CONFLICT typed error so the service can re-resolve the race.
	Create(ctx context.Context, p *Plan) error

	// FindByID loads a plan with its tasks and sections, or a NOT_FOUND
	// typed error when no row exists.
	FindByID(ctx context.Context, id string) (*Plan, error)

	// FindByIdempotencyKey returns (nil, nil) when no plan has the key.
	FindByIdempotencyKey(ctx context.Context, key string) (*Plan, error)

	// Exists reports whether a plan row with the id is present.
	Exists(ctx context.Context, id string) (bool, error)

	// Update writes only the fields carried by params. Setting Cost on a
	// plan whose cost is already stored fails with an IMMUTABLE_FIELD
	// typed error (enforced by a database trigger, translated here).
	Update(ctx context.Context, id string, params UpdateParams) error

	// Delete removes the plan; owned tasks and sections go with it via
	// ON DELETE CASCADE in the same statement.
	Delete(ctx context.Context, id string) error

	// Section operations
	CreateSection(ctx context.Context, s *Section) error
	ListSectionsByPlanID(ctx context.Context, planID string) ([]*Section, error)
}

// UpdateParams carries a partial plan update. Nil fields are left untouched.
type UpdateParams struct {
	Status       *Status
	Cost         *Cost
	SourceReason *string
	ErrorMessage *string
	CompletedAt  *time.Time
}

// IsEmpty reports whether the update carries no fields at all.
func (p UpdateParams) IsEmpty() bool {
	return p.Status == nil && p.Cost == nil && p.SourceReason == nil &&
		p.ErrorMessage == nil && p.CompletedAt == nil
}
