package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobsforce/api/internal/models"
)

func TestStartInterviewSendsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "/api/interviews/", r.URL.Path)

		var req models.StartInterviewRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "mock1", req.JobID)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(models.InterviewResponse{
			Success:   true,
			Interview: &models.Interview{ID: "iv-1", Status: models.StatusPending},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")
	resp, err := c.StartInterview(context.Background(), &models.StartInterviewRequest{JobID: "mock1"})
	require.NoError(t, err)
	assert.Equal(t, "iv-1", resp.Interview.ID)
}

func TestErrorPayloadSurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(models.ErrorResponse{
			Code:        "rate_limited",
			Message:     "Please wait 4 seconds before trying again.",
			RemainingMs: 3700,
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")
	_, err := c.GenerateQuestion(context.Background(), &models.GenerateQuestionRequest{JobTitle: "x"})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
	assert.Equal(t, "rate_limited", apiErr.Code)
	assert.EqualValues(t, 3700, apiErr.RemainingMs)
}

func TestWaitForReviewPollsUntilFeedback(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := calls.Add(1)
		iv := &models.Interview{ID: "iv-1", Status: models.StatusSubmitted}
		if n >= 3 {
			iv.Status = models.StatusReviewed
			iv.AIFeedback = &models.AIFeedback{Correctness: "Good", OverallScore: 80}
		}
		json.NewEncoder(w).Encode(models.InterviewResponse{Success: true, Interview: iv})
	}))
	defer srv.Close()

	c := New(srv.URL, "tok", WithPolling(5*time.Millisecond, time.Second))
	iv, err := c.WaitForReview(context.Background(), "iv-1")
	require.NoError(t, err)

	assert.Equal(t, models.StatusReviewed, iv.Status)
	assert.Equal(t, 80, iv.AIFeedback.OverallScore)
	assert.GreaterOrEqual(t, calls.Load(), int32(3))
}

func TestWaitForReviewStopsWhenFeedbackMissing(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		json.NewEncoder(w).Encode(models.InterviewResponse{
			Success:   true,
			Interview: &models.Interview{ID: "iv-1", Status: models.StatusReviewed},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "tok", WithPolling(5*time.Millisecond, time.Second))
	iv, err := c.WaitForReview(context.Background(), "iv-1")

	// reviewed with no feedback ends the wait on the first observation
	assert.ErrorIs(t, err, ErrFeedbackUnavailable)
	require.NotNil(t, iv)
	assert.Equal(t, models.StatusReviewed, iv.Status)
	assert.EqualValues(t, 1, calls.Load())
}

func TestWaitForReviewStopsOnEmptyFeedbackObject(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.InterviewResponse{
			Success:   true,
			Interview: &models.Interview{ID: "iv-1", Status: models.StatusReviewed, AIFeedback: &models.AIFeedback{}},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "tok", WithPolling(5*time.Millisecond, time.Second))
	_, err := c.WaitForReview(context.Background(), "iv-1")
	assert.ErrorIs(t, err, ErrFeedbackUnavailable)
}

func TestWaitForReviewTimesOut(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.InterviewResponse{
			Success:   true,
			Interview: &models.Interview{ID: "iv-1", Status: models.StatusSubmitted},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "tok", WithPolling(5*time.Millisecond, 30*time.Millisecond))
	_, err := c.WaitForReview(context.Background(), "iv-1")
	assert.ErrorIs(t, err, ErrReviewTimeout)
}
