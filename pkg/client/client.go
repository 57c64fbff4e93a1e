// Package client is a small Go client for the interview API, including the
// polling loop a frontend runs while feedback is being produced.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"jobsforce/api/internal/models"
)

const (
	// DefaultPollInterval is how often WaitForReview re-fetches the interview.
	DefaultPollInterval = 2 * time.Second
	// DefaultPollTimeout bounds the whole wait.
	DefaultPollTimeout = 120 * time.Second
)

// APIError carries the server's error payload alongside the status code.
type APIError struct {
	StatusCode  int
	Code        string
	Message     string
	RemainingMs int64
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s: %s", e.StatusCode, e.Code, e.Message)
}

// ErrReviewTimeout is returned when WaitForReview gives up.
var ErrReviewTimeout = fmt.Errorf("client: review took too long")

// ErrFeedbackUnavailable is returned when an interview is reviewed but has
// no feedback attached. The interview is returned alongside it so the caller
// can render a "not available" placeholder.
var ErrFeedbackUnavailable = fmt.Errorf("client: feedback not available")

// Client calls the interview API with a bearer token.
type Client struct {
	baseURL      string
	token        string
	httpClient   *http.Client
	pollInterval time.Duration
	pollTimeout  time.Duration
}

type Option func(*Client)

// WithHTTPClient replaces the transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithPolling overrides the review polling cadence.
func WithPolling(interval, timeout time.Duration) Option {
	return func(c *Client) {
		c.pollInterval = interval
		c.pollTimeout = timeout
	}
}

func New(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		token:        token,
		httpClient:   &http.Client{Timeout: 65 * time.Second},
		pollInterval: DefaultPollInterval,
		pollTimeout:  DefaultPollTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var payload models.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
			apiErr.Code = payload.Code
			apiErr.Message = payload.Message
			apiErr.RemainingMs = payload.RemainingMs
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) StartInterview(ctx context.Context, req *models.StartInterviewRequest) (*models.InterviewResponse, error) {
	var out models.InterviewResponse
	if err := c.do(ctx, http.MethodPost, "/api/interviews/", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetInterview(ctx context.Context, id string) (*models.InterviewResponse, error) {
	var out models.InterviewResponse
	if err := c.do(ctx, http.MethodGet, "/api/interviews/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SubmitInterview(ctx context.Context, id string, req *models.SubmitRequest) (*models.InterviewResponse, error) {
	var out models.InterviewResponse
	if err := c.do(ctx, http.MethodPost, "/api/interviews/"+id+"/submit", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) RequestFeedback(ctx context.Context, id string, req *models.FeedbackRequest) (*models.InterviewResponse, error) {
	var out models.InterviewResponse
	if err := c.do(ctx, http.MethodPost, "/api/interviews/"+id+"/feedback", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GenerateQuestion(ctx context.Context, req *models.GenerateQuestionRequest) (*models.QuestionResponse, error) {
	var out models.QuestionResponse
	if err := c.do(ctx, http.MethodPost, "/api/interviews/generate-question", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// WaitForReview polls the interview until it is reviewed or the timeout
// elapses. The first fetch happens immediately. Observing reviewed always
// ends the wait: with feedback attached the interview is returned, without
// it the interview comes back with ErrFeedbackUnavailable.
func (c *Client) WaitForReview(ctx context.Context, id string) (*models.Interview, error) {
	ctx, cancel := context.WithTimeout(ctx, c.pollTimeout)
	defer cancel()

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		resp, err := c.GetInterview(ctx, id)
		if err != nil {
			// a timeout mid-request counts as the overall deadline
			if ctx.Err() != nil {
				return nil, ErrReviewTimeout
			}
			return nil, err
		}
		iv := resp.Interview
		if iv != nil && iv.Status == models.StatusReviewed {
			if iv.AIFeedback != nil && !iv.AIFeedback.IsEmpty() {
				return iv, nil
			}
			// reviewed without feedback will not change; stop polling
			return iv, ErrFeedbackUnavailable
		}

		select {
		case <-ctx.Done():
			return nil, ErrReviewTimeout
		case <-ticker.C:
		}
	}
}
