// Package client implements the backend boundary over JSON/HTTP.
package client

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"shiftroster/internal/models"
	"shiftroster/internal/roster"
)

// Client talks to the roster backend. It satisfies roster.Boundary.
type Client struct {
	httpClient *resty.Client
	logger     *zap.Logger
}

type Options struct {
	BaseURL    string
	Timeout    time.Duration
	RetryCount int
}

func New(opts Options, logger *zap.Logger) *Client {
	if opts.Timeout == 0 {
		opts.Timeout = 10 * time.Second
	}
	httpClient := resty.New().
		SetBaseURL(opts.BaseURL).
		SetTimeout(opts.Timeout).
		SetRetryCount(opts.RetryCount).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(3 * time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{httpClient: httpClient, logger: logger}
}

func (c *Client) request(ctx context.Context) *resty.Request {
	return c.httpClient.R().
		SetContext(ctx).
		SetHeader("X-Request-ID", uuid.NewString())
}

func (c *Client) FetchSchedule(ctx context.Context, month string) (*models.Schedule, error) {
	var sched models.Schedule
	var apiErr models.APIError
	resp, err := c.request(ctx).
		SetQueryParam("month", month).
		SetResult(&sched).
		SetError(&apiErr).
		Get("/api/schedule")
	if err != nil {
		return nil, &roster.FetchError{Endpoint: "/api/schedule", Err: err}
	}
	if resp.IsError() {
		return nil, &roster.FetchError{
			Endpoint: "/api/schedule",
			Err:      fmt.Errorf("status %d: %s", resp.StatusCode(), apiErr.Detail),
		}
	}
	return &sched, nil
}

func (c *Client) FetchResidents(ctx context.Context, month string) ([]*models.Resident, error) {
	var shift models.ShiftFile
	var apiErr models.APIError
	resp, err := c.request(ctx).
		SetQueryParam("month", month).
		SetResult(&shift).
		SetError(&apiErr).
		Get("/api/residents")
	if err != nil {
		return nil, &roster.FetchError{Endpoint: "/api/residents", Err: err}
	}
	if resp.IsError() {
		return nil, &roster.FetchError{
			Endpoint: "/api/residents",
			Err:      fmt.Errorf("status %d: %s", resp.StatusCode(), apiErr.Detail),
		}
	}
	return shift.Residents, nil
}

func (c *Client) IsHoliday(ctx context.Context, date string) (bool, error) {
	var out struct {
		Date      string `json:"date"`
		IsHoliday bool   `json:"is_holiday"`
	}
	var apiErr models.APIError
	resp, err := c.request(ctx).
		SetQueryParam("date", date).
		SetResult(&out).
		SetError(&apiErr).
		Get("/api/is_holiday")
	if err != nil {
		return false, &roster.FetchError{Endpoint: "/api/is_holiday", Err: err}
	}
	if resp.IsError() {
		return false, &roster.FetchError{
			Endpoint: "/api/is_holiday",
			Err:      fmt.Errorf("status %d: %s", resp.StatusCode(), apiErr.Detail),
		}
	}
	return out.IsHoliday, nil
}

func (c *Client) GetConfig(ctx context.Context) (models.HospitalConfig, error) {
	var cfg models.HospitalConfig
	var apiErr models.APIError
	resp, err := c.request(ctx).
		SetResult(&cfg).
		SetError(&apiErr).
		Get("/api/config")
	if err != nil {
		return nil, &roster.FetchError{Endpoint: "/api/config", Err: err}
	}
	if resp.IsError() {
		return nil, &roster.FetchError{
			Endpoint: "/api/config",
			Err:      fmt.Errorf("status %d: %s", resp.StatusCode(), apiErr.Detail),
		}
	}
	return cfg, nil
}

func (c *Client) PutConfig(ctx context.Context, cfg models.HospitalConfig) error {
	var apiErr models.APIError
	resp, err := c.request(ctx).
		SetBody(cfg).
		SetError(&apiErr).
		Put("/api/config")
	if err != nil {
		return &roster.FetchError{Endpoint: "/api/config", Err: err}
	}
	if resp.IsError() {
		return &roster.RejectedError{Op: "put_config", Message: apiErr.Detail}
	}
	return nil
}

func (c *Client) Assign(ctx context.Context, req models.AssignRequest) (*models.Schedule, error) {
	return c.mutate(ctx, "assign", "/api/manual_assign", req)
}

func (c *Client) Unassign(ctx context.Context, req models.UnassignRequest) (*models.Schedule, error) {
	return c.mutate(ctx, "unassign", "/api/manual_unassign", req)
}

func (c *Client) Move(ctx context.Context, req models.MoveRequest) (*models.Schedule, error) {
	return c.mutate(ctx, "move", "/api/manual_move", req)
}

// mutate posts one manual-edit request and unwraps the whole-snapshot
// envelope. A 4xx/5xx with a detail body is an authoritative rejection;
// anything below HTTP is a FetchError.
func (c *Client) mutate(ctx context.Context, op, path string, body any) (*models.Schedule, error) {
	var result models.MutationResult
	var apiErr models.APIError
	resp, err := c.request(ctx).
		SetBody(body).
		SetResult(&result).
		SetError(&apiErr).
		Post(path)
	if err != nil {
		c.logger.Error("mutation transport failure", zap.String("op", op), zap.Error(err))
		return nil, &roster.FetchError{Endpoint: path, Err: err}
	}
	if resp.IsError() {
		c.logger.Warn("mutation rejected",
			zap.String("op", op),
			zap.Int("status", resp.StatusCode()),
			zap.String("detail", apiErr.Detail))
		return nil, &roster.RejectedError{Op: op, Message: apiErr.Detail}
	}
	if result.Result == nil {
		return nil, &roster.FetchError{Endpoint: path, Err: fmt.Errorf("response missing schedule snapshot")}
	}
	return result.Result, nil
}
