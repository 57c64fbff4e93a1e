// Package execution proxies code runs to the Judge0 API.
package execution

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"jobsforce/api/internal/utils"
)

// Judge0 language ids for the languages the interview editor offers.
var languageIDs = map[string]int{
	"javascript": 63,
	"python":     71,
	"java":       62,
	"cpp":        54,
	"csharp":     51,
	"ruby":       72,
}

// ErrUnsupportedLanguage is returned before any network call is made.
var ErrUnsupportedLanguage = errors.New("execution: unsupported language")

const (
	defaultPollAttempts = 10
	defaultPollInterval = time.Second
)

// Status mirrors Judge0's status object. IDs 1 and 2 mean still queued or
// still running; everything above 2 is a terminal state.
type Status struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
}

// Result is the outcome of one submission. TimedOut reports that polling
// gave up before Judge0 reached a terminal state; Status then holds the
// last state seen.
type Result struct {
	Token         string  `json:"token"`
	Status        Status  `json:"status"`
	Stdout        string  `json:"stdout"`
	Stderr        string  `json:"stderr"`
	CompileOutput string  `json:"compile_output"`
	Time          string  `json:"time"`
	Memory        float64 `json:"memory"`
	ExitCode      *int    `json:"exit_code"`
	TimedOut      bool    `json:"-"`
}

// Accepted reports whether the run finished cleanly with status 3.
func (r *Result) Accepted() bool { return r.Status.ID == 3 }

// Client talks to a Judge0 deployment, commercial or self-hosted.
type Client struct {
	baseURL      string
	apiKey       string
	apiHost      string
	httpClient   *http.Client
	logger       *zap.Logger
	pollAttempts int
	pollInterval time.Duration
}

type Option func(*Client)

// WithHTTPClient replaces the transport (tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithPolling overrides the attempt budget and interval (tests).
func WithPolling(attempts int, interval time.Duration) Option {
	return func(c *Client) {
		c.pollAttempts = attempts
		c.pollInterval = interval
	}
}

func NewClient(baseURL, apiKey string, logger *zap.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		apiKey:       apiKey,
		httpClient:   &http.Client{Timeout: 15 * time.Second},
		logger:       logger,
		pollAttempts: defaultPollAttempts,
		pollInterval: defaultPollInterval,
	}
	if u, err := url.Parse(baseURL); err == nil {
		c.apiHost = u.Host
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// LanguageID maps an editor language to its Judge0 id.
func LanguageID(language string) (int, bool) {
	id, ok := languageIDs[utils.NormalizeLanguage(language)]
	return id, ok
}

type submitRequest struct {
	SourceCode     string `json:"source_code"`
	LanguageID     int    `json:"language_id"`
	Stdin          string `json:"stdin,omitempty"`
	ExpectedOutput string `json:"expected_output,omitempty"`
}

type submitResponse struct {
	Token string `json:"token"`
}

// Execute submits the code and polls until Judge0 reaches a terminal state
// or the attempt budget runs out.
func (c *Client) Execute(ctx context.Context, code, language, stdin, expectedOutput string) (*Result, error) {
	languageID, ok := LanguageID(language)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, language)
	}

	token, err := c.submit(ctx, submitRequest{
		SourceCode:     code,
		LanguageID:     languageID,
		Stdin:          stdin,
		ExpectedOutput: expectedOutput,
	})
	if err != nil {
		return nil, err
	}

	return c.poll(ctx, token)
}

func (c *Client) submit(ctx context.Context, body submitRequest) (string, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	endpoint := c.baseURL + "/submissions?base64_encoded=false&fields=*"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("execution: submit failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("execution: submit returned %d: %s", resp.StatusCode, string(snippet))
	}

	var out submitResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("execution: bad submit response: %w", err)
	}
	if out.Token == "" {
		return "", errors.New("execution: submit response had no token")
	}
	return out.Token, nil
}

func (c *Client) poll(ctx context.Context, token string) (*Result, error) {
	var last *Result
	for attempt := 0; attempt < c.pollAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.pollInterval):
			}
		}

		result, err := c.fetch(ctx, token)
		if err != nil {
			return nil, err
		}
		if result.Status.ID > 2 {
			return result, nil
		}
		last = result
	}

	// still queued or running after the budget; report what we saw
	c.logger.Warn("submission did not settle within the poll budget",
		zap.String("token", token),
		zap.Int("attempts", c.pollAttempts))
	if last == nil {
		last = &Result{Token: token}
	}
	last.TimedOut = true
	return last, nil
}

func (c *Client) fetch(ctx context.Context, token string) (*Result, error) {
	endpoint := c.baseURL + "/submissions/" + token + "?base64_encoded=false&fields=*"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execution: poll failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("execution: poll returned %d: %s", resp.StatusCode, string(snippet))
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("execution: bad poll response: %w", err)
	}
	result.Token = token
	return &result, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-RapidAPI-Key", c.apiKey)
		req.Header.Set("X-RapidAPI-Host", c.apiHost)
	}
}
