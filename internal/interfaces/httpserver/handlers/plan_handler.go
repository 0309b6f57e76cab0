package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"campaign-plan-service/internal/domain/plan"
	"campaign-plan-service/internal/infrastructure/metrics"
	"campaign-plan-service/internal/interfaces/httpserver/requests"
	"campaign-plan-service/internal/interfaces/httpserver/responses"
	"campaign-plan-service/internal/utils/planid"
	"campaign-plan-service/internal/utils/platformerrors"
)

// PlanHandler exposes HTTP entrypoints for the Plans API.
type PlanHandler struct {
	service plan.Service
	log     zerolog.Logger
}

// NewPlanHandler constructs the handler.
func NewPlanHandler(service plan.Service, log zerolog.Logger) *PlanHandler {
	return &PlanHandler{
		service: service,
		log:     log.With().Str("handler", "plan").Logger(),
	}
}

// Create handles POST /v1/plans
// @Summary Queue a campaign plan for generation
// @Description Creates a plan record and queues it for generation. Repeated requests for the same campaign and version return the original plan.
// @Tags Plans
// @Accept json
// @Produce json
// @Param request body requests.CreatePlanRequest true "Plan request"
// @Success 202 {object} responses.CreatePlanResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 500 {object} responses.ErrorResponse
// @Router /v1/plans [post]
func (h *PlanHandler) Create(c *gin.Context) {
	var req requests.CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, err.Error(), "plan-create-bind-001")
		return
	}

	result, err := h.service.Create(c.Request.Context(), plan.CreateParams{
		CampaignID:   req.CampaignID,
		Version:      req.Version,
		AIModel:      req.AIModel,
		SourceReason: req.SourceReason,
	})
	if err != nil {
		responses.HandleError(c, err, "failed to create plan")
		return
	}

	outcome := "replayed"
	if result.Created {
		outcome = "created"
	}
	metrics.RecordPlanCreated(outcome)

	c.JSON(http.StatusAccepted, responses.MapCreateResultToResponse(result))
}

// Get handles GET /v1/plans/:plan_id
// @Summary Get a plan
// @Description Retrieves a plan with its sections and tasks
// @Tags Plans
// @Produce json
// @Param plan_id path string true "Plan ID"
// @Success 200 {object} responses.PlanResponse
// @Failure 404 {object} responses.ErrorResponse
// @Failure 500 {object} responses.ErrorResponse
// @Router /v1/plans/{plan_id} [get]
func (h *PlanHandler) Get(c *gin.Context) {
	planID, ok := h.planID(c)
	if !ok {
		return
	}

	p, err := h.service.GetByID(c.Request.Context(), planID)
	if err != nil {
		responses.HandleError(c, err, "failed to get plan")
		return
	}

	c.JSON(http.StatusOK, responses.MapPlanToResponse(p))
}

// Delete handles DELETE /v1/plans/:plan_id
// @Summary Delete a plan
// @Description Removes a plan together with its sections and tasks
// @Tags Plans
// @Produce json
// @Param plan_id path string true "Plan ID"
// @Success 204 "No Content"
// @Failure 404 {object} responses.ErrorResponse
// @Failure 500 {object} responses.ErrorResponse
// @Router /v1/plans/{plan_id} [delete]
func (h *PlanHandler) Delete(c *gin.Context) {
	planID, ok := h.planID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), planID); err != nil {
		responses.HandleError(c, err, "failed to delete plan")
		return
	}

	c.Status(http.StatusNoContent)
}

// ListSections handles GET /v1/plans/:plan_id/sections
// @Summary List plan sections
// @Description Retrieves a plan's sections ordered by their position
// @Tags Sections
// @Produce json
// @Param plan_id path string true "Plan ID"
// @Success 200 {object} responses.SectionListResponse
// @Failure 404 {object} responses.ErrorResponse
// @Failure 500 {object} responses.ErrorResponse
// @Router /v1/plans/{plan_id}/sections [get]
func (h *PlanHandler) ListSections(c *gin.Context) {
	planID, ok := h.planID(c)
	if !ok {
		return
	}

	sections, err := h.service.ListSections(c.Request.Context(), planID)
	if err != nil {
		responses.HandleError(c, err, "failed to list sections")
		return
	}

	c.JSON(http.StatusOK, responses.MapSectionsToResponse(sections))
}

// AddSection handles POST /v1/plans/:plan_id/sections
// @Summary Add a plan section
// @Description Adds a section to an existing plan
// @Tags Sections
// @Accept json
// @Produce json
// @Param plan_id path string true "Plan ID"
// @Param request body requests.CreateSectionRequest true "Section request"
// @Success 201 {object} responses.SectionResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Failure 500 {object} responses.ErrorResponse
// @Router /v1/plans/{plan_id}/sections [post]
func (h *PlanHandler) AddSection(c *gin.Context) {
	planID, ok := h.planID(c)
	if !ok {
		return
	}

	var req requests.CreateSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, err.Error(), "section-create-bind-001")
		return
	}

	section, err := h.service.AddSection(c.Request.Context(), planID, plan.SectionParams{
		Key:        req.Key,
		Title:      req.Title,
		Summary:    req.Summary,
		OrderIndex: req.OrderIndex,
	})
	if err != nil {
		responses.HandleError(c, err, "failed to add section")
		return
	}

	c.JSON(http.StatusCreated, responses.MapSectionToResponse(section))
}

// planID extracts and validates the plan id path parameter.
func (h *PlanHandler) planID(c *gin.Context) (string, bool) {
	id := c.Param("plan_id")
	if !planid.IsValid(id) {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "plan_id must be a valid UUID", "plan-id-invalid-001")
		return "", false
	}
	return id, true
}
