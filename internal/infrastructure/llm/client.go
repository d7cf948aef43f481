// Package llm is a client for OpenAI-compatible chat completion endpoints
// with function calling.
package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"hotelops/internal/shared/config"
	"hotelops/internal/shared/logger"
)

// Error is a non-2xx answer from the completion endpoint. Status is zero
// for transport failures.
type Error struct {
	Status  int
	Type    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("llm: %v", e.Err)
	}
	return fmt.Sprintf("llm: status %d: %s", e.Status, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

type Client struct {
	client      *resty.Client
	model       string
	temperature float64
	logger      logger.Interface
}

// NewClient configures a client for cfg.BaseURL. Rate-limit and server
// errors are retried twice; completions are idempotent from our side.
func NewClient(cfg *config.AgentConfig, log logger.Interface) *Client {
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout()).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(4 * time.Second).
		AddRetryCondition(func(resp *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			return resp.StatusCode() == http.StatusTooManyRequests || resp.StatusCode() >= http.StatusInternalServerError
		}).
		SetHeader("Content-Type", "application/json")
	if cfg.APIKey != "" {
		client.SetAuthToken(cfg.APIKey)
	}

	return &Client{
		client:      client,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		logger:      log.Named("llm"),
	}
}

// Complete sends one chat completion request. Model and temperature default
// to the configured values when req leaves them empty.
func (c *Client) Complete(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	if req.Model == "" {
		req.Model = c.model
		req.Temperature = c.temperature
	}
	if len(req.Tools) > 0 && req.ToolChoice == "" {
		req.ToolChoice = "auto"
	}

	var (
		out    ChatResponse
		apiErr apiError
	)
	start := time.Now()
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&out).
		SetError(&apiErr).
		Post("/chat/completions")
	if err != nil {
		c.logger.Errorw("chat completion transport failure", "model", req.Model, "error", err)
		return nil, &Error{Err: err}
	}
	if resp.IsError() {
		msg := apiErr.Error.Message
		if msg == "" {
			msg = strings.TrimSpace(resp.String())
		}
		c.logger.Warnw("chat completion rejected",
			"model", req.Model,
			"status", resp.StatusCode(),
			"message", msg,
		)
		return nil, &Error{Status: resp.StatusCode(), Type: apiErr.Error.Type, Message: msg}
	}
	if len(out.Choices) == 0 {
		return nil, &Error{Status: resp.StatusCode(), Message: "response has no choices"}
	}

	c.logger.Debugw("chat completion",
		"model", out.Model,
		"finish_reason", out.Choices[0].FinishReason,
		"tool_calls", len(out.Choices[0].Message.ToolCalls),
		"total_tokens", out.Usage.TotalTokens,
		"duration", time.Since(start),
	)
	return &out, nil
}
