// Package kiosk is the visitor-side client for the feedback server.
package kiosk

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"expofeedback/pkg/fingerprint"
)

// ErrAlreadySubmitted is returned when the server says this device already rated the subject.
var ErrAlreadySubmitted = errors.New("already submitted feedback for this subject")

// APIError is any non-2xx answer from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("submission failed: status=%d %s", e.StatusCode, e.Message)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	gen        *fingerprint.Generator

	mu        sync.Mutex
	submitted map[string]struct{}
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		client.httpClient = c
	}
}

func WithTimeout(d time.Duration) Option {
	return func(client *Client) {
		client.httpClient.Timeout = d
	}
}

// NewClient creates a client for the server at baseURL (e.g. "https://expo.example.org").
func NewClient(baseURL string, gen *fingerprint.Generator, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
		gen:        gen,
		submitted:  make(map[string]struct{}),
	}
	for _, subject := range gen.SubmittedSubjects() {
		c.submitted[subject] = struct{}{}
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// PreCheck is the page-load check. The server never blocks it.
func (c *Client) PreCheck(ctx context.Context) (*CheckResult, error) {
	return c.check(ctx, "")
}

func (c *Client) Check(ctx context.Context, subject string) (*CheckResult, error) {
	return c.check(ctx, subject)
}

func (c *Client) check(ctx context.Context, subject string) (*CheckResult, error) {
	body := map[string]string{"fingerprint": c.gen.GetDeviceFingerprint(ctx)}
	if subject != "" {
		body["subject"] = subject
	}

	var result CheckResult
	if err := c.doRequest(ctx, http.MethodPost, "/api/protection/check", body, &result); err != nil {
		return nil, fmt.Errorf("protection check: %w", err)
	}
	return &result, nil
}

// Submit posts the form as-is.
func (c *Client) Submit(ctx context.Context, req FeedbackRequest) (*Feedback, error) {
	var fb Feedback
	if err := c.doRequest(ctx, http.MethodPost, "/api/feedback", req, &fb); err != nil {
		return nil, err
	}
	return &fb, nil
}

// SubmitFeedback runs the full visitor flow: check with subject, submit, and only after the
// server accepted it remember the fingerprint and the subject locally.
func (c *Client) SubmitFeedback(ctx context.Context, req FeedbackRequest) (*Feedback, error) {
	if c.HasSubmitted(req.Subject) {
		return nil, ErrAlreadySubmitted
	}

	req.Fingerprint = c.gen.GetDeviceFingerprint(ctx)

	check, err := c.Check(ctx, req.Subject)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			return nil, err
		}
		// the server fails open; so does an unreachable check
	} else if !check.Allowed {
		return nil, ErrAlreadySubmitted
	}

	fb, err := c.Submit(ctx, req)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusForbidden {
			return nil, fmt.Errorf("%w: %s", ErrAlreadySubmitted, apiErr.Message)
		}
		return nil, err
	}

	c.gen.StoreFingerprint(req.Fingerprint)
	c.gen.RememberSubject(req.Subject)
	c.mu.Lock()
	c.submitted[req.Subject] = struct{}{}
	c.mu.Unlock()
	return fb, nil
}

// HasSubmitted reports whether a submission for subject succeeded on this device, including
// before a restart.
func (c *Client) HasSubmitted(subject string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.submitted[subject]
	return ok
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (c *Client) doRequest(ctx context.Context, method, path string, body any, result any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var eb errorBody
		if json.Unmarshal(respBody, &eb) == nil {
			apiErr.Message = eb.Error
			if apiErr.Message == "" {
				apiErr.Message = eb.Message
			}
		}
		return apiErr
	}

	if result == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}
