package execution

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
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := NewClient(srv.URL, "test-key", zap.NewNop(),
		WithHTTPClient(srv.Client()),
		WithPolling(3, time.Millisecond))
	return client, srv
}

func TestExecuteAcceptedRun(t *testing.T) {
	var polls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("POST /submissions", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("X-RapidAPI-Key"))
		assert.Equal(t, "false", r.URL.Query().Get("base64_encoded"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.EqualValues(t, 71, body["language_id"])
		assert.Equal(t, "print(1)", body["source_code"])

		json.NewEncoder(w).Encode(map[string]string{"token": "tok-1"})
	})
	mux.HandleFunc("GET /submissions/tok-1", func(w http.ResponseWriter, r *http.Request) {
		n := polls.Add(1)
		if n < 2 {
			json.NewEncoder(w).Encode(map[string]any{
				"status": map[string]any{"id": 2, "description": "Processing"},
			})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"status": map[string]any{"id": 3, "description": "Accepted"},
			"stdout": "1\n",
			"time":   "0.02",
			"memory": 3456.0,
		})
	})

	client, _ := newTestClient(t, mux)
	result, err := client.Execute(context.Background(), "print(1)", "python", "", "")
	require.NoError(t, err)

	assert.True(t, result.Accepted())
	assert.False(t, result.TimedOut)
	assert.Equal(t, "1\n", result.Stdout)
	assert.Equal(t, "tok-1", result.Token)
	assert.EqualValues(t, 2, polls.Load())
}

func TestExecutePollBudgetExhausted(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /submissions", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"token": "tok-2"})
	})
	mux.HandleFunc("GET /submissions/tok-2", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"status": map[string]any{"id": 2, "description": "Processing"},
		})
	})

	client, _ := newTestClient(t, mux)
	result, err := client.Execute(context.Background(), "while True: pass", "python", "", "")
	require.NoError(t, err)

	assert.True(t, result.TimedOut)
	assert.Equal(t, 2, result.Status.ID)
}

func TestExecuteUnsupportedLanguage(t *testing.T) {
	client := NewClient("http://judge0.invalid", "", zap.NewNop())
	_, err := client.Execute(context.Background(), "x", "cobol", "", "")
	assert.ErrorIs(t, err, ErrUnsupportedLanguage)
}

func TestExecuteSubmitError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /submissions", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	})

	client, _ := newTestClient(t, mux)
	_, err := client.Execute(context.Background(), "x", "javascript", "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestExecuteContextCancelledDuringPoll(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /submissions", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"token": "tok-3"})
	})
	mux.HandleFunc("GET /submissions/tok-3", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"status": map[string]any{"id": 1, "description": "In Queue"},
		})
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()
	client := NewClient(srv.URL, "", zap.NewNop(),
		WithHTTPClient(srv.Client()),
		WithPolling(10, 50*time.Millisecond))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.Execute(ctx, "x", "ruby", "", "")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestLanguageIDs(t *testing.T) {
	for language, want := range map[string]int{
		"javascript": 63, "python": 71, "java": 62, "cpp": 54, "csharp": 51, "ruby": 72,
	} {
		id, ok := LanguageID(language)
		require.True(t, ok, language)
		assert.Equal(t, want, id)
	}
	_, ok := LanguageID("brainfuck")
	assert.False(t, ok)
}
