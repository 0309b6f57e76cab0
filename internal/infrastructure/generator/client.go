package generator

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"campaign-plan-service/internal/domain/plan"
)

// Client implements the plan.Generator interface against the generation
// backend's HTTP API.
type Client struct {
	httpClient *resty.Client
}

// NewClient creates a Resty-backed generator client.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		httpClient: resty.New().
			SetBaseURL(baseURL).
			SetHeader("Content-Type", "application/json").
			SetTimeout(timeout),
	}
}

// GeneratePlan calls the generation backend and returns the produced
// sections, tasks, and cost accounting.
func (c *Client) GeneratePlan(ctx context.Context, req plan.GenerationRequest) (*plan.GenerationResult, error) {
	var result plan.GenerationResult
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&result).
		Post("/v1/generate")
	if err != nil {
		return nil, err
	}

	if resp.IsError() {
		return nil, fmt.Errorf("generator api error: %s", resp.String())
	}
	return &result, nil
}

// Ensure interface compliance.
var _ plan.Generator = (*Client)(nil)
