package interviews

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"jobsforce/api/internal/cache"
	"jobsforce/api/internal/cooldown"
	"jobsforce/api/internal/models"
	"jobsforce/api/internal/prompts"
	"jobsforce/api/internal/repositories"
)

// ---- in-memory fakes ----

type memInterviewRepo struct {
	mu        sync.Mutex
	byID      map[string]*models.Interview
	seq       int
	updateErr error
}

func newMemInterviewRepo() *memInterviewRepo {
	return &memInterviewRepo{byID: map[string]*models.Interview{}}
}

func (r *memInterviewRepo) Create(_ context.Context, interview *models.Interview) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	if interview.ID == "" {
		interview.ID = fmt.Sprintf("interview-%d", r.seq)
	}
	now := time.Now().UTC()
	interview.CreatedAt, interview.UpdatedAt = now, now
	interview.StartedAt = now
	if interview.Status == "" {
		interview.Status = models.StatusPending
	}
	interview.Version = 1
	cp := *interview
	r.byID[interview.ID] = &cp
	return nil
}

func (r *memInterviewRepo) GetByID(_ context.Context, id string) (*models.Interview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.byID[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *stored
	return &cp, nil
}

func (r *memInterviewRepo) ListByOwner(_ context.Context, owner string) ([]models.Interview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Interview
	for _, stored := range r.byID {
		if stored.Owner == owner {
			out = append(out, *stored)
		}
	}
	return out, nil
}

func (r *memInterviewRepo) Update(_ context.Context, interview *models.Interview) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return r.updateErr
	}
	stored, ok := r.byID[interview.ID]
	if !ok {
		return repositories.ErrNotFound
	}
	if stored.Version != interview.Version {
		return repositories.ErrVersionConflict
	}
	interview.Version++
	interview.UpdatedAt = time.Now().UTC()
	cp := *interview
	r.byID[interview.ID] = &cp
	return nil
}

func (r *memInterviewRepo) SetQuestion(_ context.Context, id, questionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.byID[id]
	if !ok {
		return repositories.ErrNotFound
	}
	stored.QuestionID = questionID
	stored.Version++
	return nil
}

func (r *memInterviewRepo) Stats(_ context.Context, owner string) (*repositories.InterviewStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stats := &repositories.InterviewStats{}
	var sum, scored int64
	for _, stored := range r.byID {
		if stored.Owner != owner {
			continue
		}
		stats.Total++
		if stored.Status == models.StatusSubmitted || stored.Status == models.StatusReviewed {
			stats.Completed++
		}
		if stored.OverallScore != nil {
			sum += int64(*stored.OverallScore)
			scored++
		}
	}
	if scored > 0 {
		stats.AverageScore = float64(sum) / float64(scored)
	}
	return stats, nil
}

type memQuestionRepo struct {
	mu   sync.Mutex
	byID map[string]*models.Question
	seq  int
}

func newMemQuestionRepo() *memQuestionRepo {
	return &memQuestionRepo{byID: map[string]*models.Question{}}
}

func (r *memQuestionRepo) Create(_ context.Context, q *models.Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	if q.ID == "" {
		q.ID = fmt.Sprintf("question-%d", r.seq)
	}
	cp := *q
	r.byID[q.ID] = &cp
	return nil
}

func (r *memQuestionRepo) GetByID(_ context.Context, id string) (*models.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.byID[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *stored
	return &cp, nil
}

type memJobRepo struct {
	byID map[string]*models.Job
}

func (r *memJobRepo) Create(_ context.Context, job *models.Job) error {
	if r.byID == nil {
		r.byID = map[string]*models.Job{}
	}
	r.byID[job.ID] = job
	return nil
}

func (r *memJobRepo) GetByID(_ context.Context, id string) (*models.Job, error) {
	job, ok := r.byID[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return job, nil
}

func (r *memJobRepo) List(_ context.Context) ([]models.Job, error) { return nil, nil }
func (r *memJobRepo) Update(_ context.Context, _ *models.Job) error {
	return nil
}
func (r *memJobRepo) Delete(_ context.Context, _ string) error { return nil }

type fakeProvider struct {
	response string
	err      error
	calls    int
}

func (p *fakeProvider) Generate(_ context.Context, _ string) (string, error) {
	p.calls++
	if p.err != nil {
		return "", p.err
	}
	return p.response, nil
}

func (p *fakeProvider) GetProviderName() string { return "fake" }

// ---- fixture ----

type fixture struct {
	service    *Service
	interviews *memInterviewRepo
	questions  *memQuestionRepo
	jobs       *memJobRepo
	provider   *fakeProvider
	clock      *manualClock
}

type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newFixture(t *testing.T, provider *fakeProvider) *fixture {
	t.Helper()

	pm, err := prompts.NewPromptManager()
	require.NoError(t, err)

	clock := &manualClock{now: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)}
	guard := cooldown.New(
		cooldown.WithClock(clock.Now),
		cooldown.WithAfterFunc(func(time.Duration, func()) {}),
	)

	f := &fixture{
		interviews: newMemInterviewRepo(),
		questions:  newMemQuestionRepo(),
		jobs:       &memJobRepo{},
		provider:   provider,
		clock:      clock,
	}

	svc := NewService(
		f.interviews,
		f.questions,
		f.jobs,
		nil,
		pm,
		guard,
		zap.NewNop(),
		WithClock(clock.Now),
		WithRandInt(func(n int) int { return 0 }),
	)
	if provider != nil {
		svc.provider = provider
	}
	f.service = svc
	return f
}

func attachQuestionCache(t *testing.T, f *fixture) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	f.service.cache = cache.NewQuestionCache(rdb, time.Minute)
}

func startInterview(t *testing.T, f *fixture, owner, jobID string) *models.Interview {
	t.Helper()
	interview, _, err := f.service.Start(context.Background(), owner, &models.StartInterviewRequest{
		JobID:      jobID,
		Complexity: "medium",
	})
	require.NoError(t, err)
	return interview
}

func domainKind(t *testing.T, err error) ErrorKind {
	t.Helper()
	var de *DomainError
	require.ErrorAs(t, err, &de)
	return de.Kind
}

// ---- tests ----

func TestStartCopiesMockJobSnapshot(t *testing.T) {
	f := newFixture(t, nil)

	interview, job, err := f.service.Start(context.Background(), "user-1", &models.StartInterviewRequest{
		JobID:      "mock1",
		Complexity: "medium",
	})
	require.NoError(t, err)

	assert.Equal(t, "Senior Frontend Developer", interview.JobTitle)
	assert.Equal(t, "TechCorp", interview.Company)
	assert.Equal(t, models.StatusPending, interview.Status)
	assert.Equal(t, "javascript", interview.Language)
	assert.Equal(t, models.JobRefMock, interview.JobRef.Kind)
	assert.Equal(t, "Senior Frontend Developer", job.Title)
	assert.NotEmpty(t, interview.ID)
}

func TestStartUnknownJob(t *testing.T) {
	f := newFixture(t, nil)

	_, _, err := f.service.Start(context.Background(), "user-1", &models.StartInterviewRequest{
		JobID: "no-such-job",
	})
	assert.Equal(t, KindNotFound, domainKind(t, err))

	_, _, err = f.service.Start(context.Background(), "user-1", &models.StartInterviewRequest{
		JobID: "mock99",
	})
	assert.Equal(t, KindNotFound, domainKind(t, err))
}

func TestGetRejectsOtherOwner(t *testing.T) {
	f := newFixture(t, nil)
	interview := startInterview(t, f, "user-1", "mock1")

	_, _, _, err := f.service.Get(context.Background(), "user-2", interview.ID)
	assert.Equal(t, KindUnauthorized, domainKind(t, err))
}

func TestGenerateQuestionFromFencedResponse(t *testing.T) {
	provider := &fakeProvider{response: "Here you go:\n```json\n" +
		`{"title": "Rotate Array", "description": "Rotate an array k steps.",
		  "examples": [{"input": "[1,2,3], k=1", "output": "[3,1,2]"}],
		  "testCases": [{"input": "[1,2,3] 1", "expectedOutput": "[3,1,2]"},
		                {"input": "[1] 5", "expectedOutput": "[1]", "isHidden": true}],
		  "constraints": ["1 <= n <= 10^5"],
		  "difficulty": "Medium",
		  "category": "Algorithms"}` + "\n```\nGood luck!"}
	f := newFixture(t, provider)
	interview := startInterview(t, f, "user-1", "mock1")

	question, err := f.service.GenerateQuestion(context.Background(), "user-1", &models.GenerateQuestionRequest{
		JobTitle:       "Senior Frontend Developer",
		JobDescription: "Build UIs.",
		Difficulty:     "medium",
		InterviewID:    interview.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, "Rotate Array", question.Title)
	assert.Equal(t, "medium", question.Difficulty)
	assert.Equal(t, "algorithms", question.Category)
	assert.NotEmpty(t, question.ID)

	// persisted and linked
	stored, err := f.questions.GetByID(context.Background(), question.ID)
	require.NoError(t, err)
	assert.Equal(t, question.Title, stored.Title)

	reloaded, err := f.interviews.GetByID(context.Background(), interview.ID)
	require.NoError(t, err)
	assert.Equal(t, question.ID, reloaded.QuestionID)
}

func TestGenerateQuestionRateLimited(t *testing.T) {
	provider := &fakeProvider{response: `{"title": "T", "description": "D"}`}
	f := newFixture(t, provider)

	req := &models.GenerateQuestionRequest{JobTitle: "Backend Engineer", JobDescription: "APIs", Difficulty: "easy"}
	_, err := f.service.GenerateQuestion(context.Background(), "user-1", req)
	require.NoError(t, err)

	f.clock.Advance(2 * time.Second)
	_, err = f.service.GenerateQuestion(context.Background(), "user-1", req)
	var de *DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, KindRateLimited, de.Kind)
	assert.Greater(t, de.Remaining, time.Duration(0))
	assert.LessOrEqual(t, de.Remaining, cooldown.DefaultWindow)

	// a different caller is unaffected
	_, err = f.service.GenerateQuestion(context.Background(), "user-2", req)
	assert.NoError(t, err)

	// the window clears after it elapses
	f.clock.Advance(cooldown.DefaultWindow)
	_, err = f.service.GenerateQuestion(context.Background(), "user-1", req)
	assert.NoError(t, err)
}

func TestGenerateQuestionWithoutProvider(t *testing.T) {
	f := newFixture(t, nil)

	_, err := f.service.GenerateQuestion(context.Background(), "user-1", &models.GenerateQuestionRequest{
		JobTitle: "Backend Engineer", JobDescription: "APIs", Difficulty: "easy",
	})
	assert.Equal(t, KindUnavailable, domainKind(t, err))
}

func TestGenerateQuestionUnparseableResponse(t *testing.T) {
	provider := &fakeProvider{response: "I am sorry, I cannot produce a question right now."}
	f := newFixture(t, provider)

	_, err := f.service.GenerateQuestion(context.Background(), "user-1", &models.GenerateQuestionRequest{
		JobTitle: "Backend Engineer", JobDescription: "APIs", Difficulty: "easy",
	})
	assert.Equal(t, KindParseFailed, domainKind(t, err))
}

func TestGenerateQuestionFallsBackToCachedQuestion(t *testing.T) {
	provider := &fakeProvider{response: `{"title": "Rotate Array", "description": "Rotate an array k steps."}`}
	f := newFixture(t, provider)
	attachQuestionCache(t, f)
	interview := startInterview(t, f, "user-1", "mock1")

	req := &models.GenerateQuestionRequest{
		JobTitle: "Senior Frontend Developer", JobDescription: "Build UIs.",
		Difficulty: "medium", InterviewID: interview.ID,
	}
	first, err := f.service.GenerateQuestion(context.Background(), "user-1", req)
	require.NoError(t, err)

	// the provider is now broken but the interview already has a question cached
	provider.err = errors.New("model overloaded")
	f.clock.Advance(cooldown.DefaultWindow + time.Second)
	again, err := f.service.GenerateQuestion(context.Background(), "user-1", req)
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, "Rotate Array", again.Title)

	// garbage output falls back the same way
	provider.err = nil
	provider.response = "I cannot help with that."
	f.clock.Advance(cooldown.DefaultWindow + time.Second)
	again, err = f.service.GenerateQuestion(context.Background(), "user-1", req)
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)
}

func TestGenerateQuestionFailureWithoutCachedQuestion(t *testing.T) {
	provider := &fakeProvider{err: errors.New("model overloaded")}
	f := newFixture(t, provider)
	attachQuestionCache(t, f)
	interview := startInterview(t, f, "user-1", "mock1")

	_, err := f.service.GenerateQuestion(context.Background(), "user-1", &models.GenerateQuestionRequest{
		JobTitle: "Backend Engineer", JobDescription: "APIs",
		Difficulty: "easy", InterviewID: interview.ID,
	})
	assert.Equal(t, KindUnavailable, domainKind(t, err))
}

func TestSaveProgressUpdatesCodeAndStatus(t *testing.T) {
	f := newFixture(t, nil)
	interview := startInterview(t, f, "user-1", "mock1")

	updated, err := f.service.SaveProgress(context.Background(), "user-1", interview.ID, &models.UpdateInterviewRequest{
		Code:     "def solve(): pass",
		Language: "python",
		Status:   string(models.StatusInProgress),
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatusInProgress, updated.Status)
	assert.Equal(t, "def solve(): pass", updated.Code)
	assert.Equal(t, "python", updated.Language)

	stored, err := f.interviews.GetByID(context.Background(), interview.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, stored.Status)
	assert.Equal(t, "def solve(): pass", stored.Code)
}

func TestSaveProgressPartialUpdateKeepsRest(t *testing.T) {
	f := newFixture(t, nil)
	interview := startInterview(t, f, "user-1", "mock1")

	_, err := f.service.SaveProgress(context.Background(), "user-1", interview.ID, &models.UpdateInterviewRequest{
		Code: "v1",
	})
	require.NoError(t, err)

	stored, err := f.interviews.GetByID(context.Background(), interview.ID)
	require.NoError(t, err)
	assert.Equal(t, "v1", stored.Code)
	assert.Equal(t, "javascript", stored.Language)
	assert.Equal(t, models.StatusPending, stored.Status)
}

func TestSaveProgressRejectedAfterSubmit(t *testing.T) {
	f := newFixture(t, nil)
	interview := startInterview(t, f, "user-1", "mock1")

	_, err := f.service.Submit(context.Background(), "user-1", interview.ID, &models.SubmitRequest{
		Code: "x", Language: "javascript",
	})
	require.NoError(t, err)

	_, err = f.service.SaveProgress(context.Background(), "user-1", interview.ID, &models.UpdateInterviewRequest{
		Code: "y",
	})
	assert.Equal(t, KindValidation, domainKind(t, err))
}

func TestSaveProgressOwnerChecked(t *testing.T) {
	f := newFixture(t, nil)
	interview := startInterview(t, f, "user-1", "mock1")

	_, err := f.service.SaveProgress(context.Background(), "intruder", interview.ID, &models.UpdateInterviewRequest{
		Code: "stolen",
	})
	assert.Equal(t, KindUnauthorized, domainKind(t, err))
}

func TestSubmitWithoutProviderDegrades(t *testing.T) {
	f := newFixture(t, nil)
	interview := startInterview(t, f, "user-1", "mock1")

	updated, err := f.service.Submit(context.Background(), "user-1", interview.ID, &models.SubmitRequest{
		Code:     "function solve() {}",
		Language: "javascript",
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatusReviewed, updated.Status)
	require.NotNil(t, updated.AIFeedback)
	assert.Equal(t, "Could not assess correctness", updated.AIFeedback.Correctness)
	assert.Equal(t, "Could not determine", updated.AIFeedback.TimeComplexity)
	assert.Equal(t, "No specific improvements could be suggested", updated.AIFeedback.Improvements)
	assert.Equal(t, 60, updated.AIFeedback.OverallScore)
	require.NotNil(t, updated.OverallScore)
	assert.Equal(t, 60, *updated.OverallScore)
	require.NotNil(t, updated.SubmittedAt)
}

func TestSubmitWithProviderFeedback(t *testing.T) {
	provider := &fakeProvider{response: "```json\n" +
		`{"correctness": "Solid for the happy path",
		  "timeComplexity": "O(n)",
		  "spaceComplexity": "O(1)",
		  "codeQuality": "Readable",
		  "edgeCases": "Empty input unhandled",
		  "improvements": "Guard the empty case",
		  "betterSolution": "",
		  "overallScore": 82}` + "\n```"}
	f := newFixture(t, provider)
	interview := startInterview(t, f, "user-1", "mock1")

	question := &models.Question{Title: "Two Sum", Description: "Find the pair."}
	require.NoError(t, f.questions.Create(context.Background(), question))
	require.NoError(t, f.service.AttachQuestion(context.Background(), "user-1", interview.ID, question.ID))

	updated, err := f.service.Submit(context.Background(), "user-1", interview.ID, &models.SubmitRequest{
		Code:     "def solve(): pass",
		Language: "python",
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatusReviewed, updated.Status)
	require.NotNil(t, updated.AIFeedback)
	assert.Equal(t, "O(n)", updated.AIFeedback.TimeComplexity)
	assert.Equal(t, 82, updated.AIFeedback.OverallScore)
	assert.Equal(t, "python", updated.Language)
	assert.Equal(t, 1, provider.calls)
}

func TestSubmitFeedbackFillsMissingFields(t *testing.T) {
	provider := &fakeProvider{response: `{"correctness": "Looks right", "overallScore": 75}`}
	f := newFixture(t, provider)
	interview := startInterview(t, f, "user-1", "mock1")

	question := &models.Question{Title: "Two Sum", Description: "Find the pair."}
	require.NoError(t, f.questions.Create(context.Background(), question))
	require.NoError(t, f.service.AttachQuestion(context.Background(), "user-1", interview.ID, question.ID))

	updated, err := f.service.Submit(context.Background(), "user-1", interview.ID, &models.SubmitRequest{
		Code: "x", Language: "python",
	})
	require.NoError(t, err)

	assert.Equal(t, "Looks right", updated.AIFeedback.Correctness)
	assert.Equal(t, "Could not determine", updated.AIFeedback.TimeComplexity)
	assert.Equal(t, "Could not assess", updated.AIFeedback.CodeQuality)
	assert.Equal(t, 75, updated.AIFeedback.OverallScore)
}

func TestSubmitTwiceRejected(t *testing.T) {
	f := newFixture(t, nil)
	interview := startInterview(t, f, "user-1", "mock1")

	_, err := f.service.Submit(context.Background(), "user-1", interview.ID, &models.SubmitRequest{
		Code: "x", Language: "javascript",
	})
	require.NoError(t, err)

	_, err = f.service.Submit(context.Background(), "user-1", interview.ID, &models.SubmitRequest{
		Code: "y", Language: "javascript",
	})
	assert.Equal(t, KindValidation, domainKind(t, err))
}

func TestSubmitVersionConflict(t *testing.T) {
	f := newFixture(t, nil)
	interview := startInterview(t, f, "user-1", "mock1")
	f.interviews.updateErr = repositories.ErrVersionConflict

	_, err := f.service.Submit(context.Background(), "user-1", interview.ID, &models.SubmitRequest{
		Code: "x", Language: "javascript",
	})
	assert.Equal(t, KindConflict, domainKind(t, err))
}

func TestRequestFeedbackKeepsStatus(t *testing.T) {
	f := newFixture(t, nil)
	interview := startInterview(t, f, "user-1", "mock1")

	updated, err := f.service.RequestFeedback(context.Background(), "user-1", interview.ID, &models.FeedbackRequest{
		Code: "x", Language: "javascript",
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatusPending, updated.Status)
	require.NotNil(t, updated.AIFeedback)
	assert.Equal(t, 60, updated.AIFeedback.OverallScore)
}

func TestSubmitVersionConflictLeavesStoredUntouched(t *testing.T) {
	f := newFixture(t, nil)
	interview := startInterview(t, f, "user-1", "mock1")
	f.interviews.updateErr = repositories.ErrVersionConflict

	_, _ = f.service.Submit(context.Background(), "user-1", interview.ID, &models.SubmitRequest{
		Code: "x", Language: "javascript",
	})

	stored, err := f.interviews.GetByID(context.Background(), interview.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, stored.Status)
	assert.Empty(t, stored.Code)
}

func TestTestCasesFallbackDefaults(t *testing.T) {
	f := newFixture(t, nil)

	cases, fromQuestion, err := f.service.TestCases(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, fromQuestion)
	require.Len(t, cases, 2)
	assert.Equal(t, "Default input 1", cases[0].Input)
	assert.Equal(t, "Default output 2", cases[1].ExpectedOutput)
}

func TestTestCasesHidesHiddenOnes(t *testing.T) {
	f := newFixture(t, nil)
	question := &models.Question{
		Title: "T", Description: "D",
		TestCases: []models.TestCase{
			{Input: "a", ExpectedOutput: "1"},
			{Input: "b", ExpectedOutput: "2", IsHidden: true},
			{Input: "c", ExpectedOutput: "3"},
			{Input: "d", ExpectedOutput: "4"},
		},
	}
	require.NoError(t, f.questions.Create(context.Background(), question))

	cases, fromQuestion, err := f.service.TestCases(context.Background(), question.ID)
	require.NoError(t, err)
	assert.True(t, fromQuestion)
	require.Len(t, cases, 2)
	assert.Equal(t, "a", cases[0].Input)
	assert.Equal(t, "c", cases[1].Input)
}

func TestStatistics(t *testing.T) {
	f := newFixture(t, nil)
	first := startInterview(t, f, "user-1", "mock1")
	startInterview(t, f, "user-1", "mock2")
	startInterview(t, f, "someone-else", "mock1")

	_, err := f.service.Submit(context.Background(), "user-1", first.ID, &models.SubmitRequest{
		Code: "x", Language: "javascript",
	})
	require.NoError(t, err)

	stats, err := f.service.Statistics(context.Background(), "user-1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.Total)
	assert.EqualValues(t, 1, stats.Completed)
	assert.InDelta(t, 60, stats.AverageScore, 0.01)
}

func TestFeedbackCooldownDegradesSecondSubmit(t *testing.T) {
	provider := &fakeProvider{response: `{"correctness": "ok", "overallScore": 90}`}
	f := newFixture(t, provider)

	first := startInterview(t, f, "user-1", "mock1")
	second := startInterview(t, f, "user-1", "mock1")

	question := &models.Question{Title: "T", Description: "D"}
	require.NoError(t, f.questions.Create(context.Background(), question))
	require.NoError(t, f.service.AttachQuestion(context.Background(), "user-1", first.ID, question.ID))
	require.NoError(t, f.service.AttachQuestion(context.Background(), "user-1", second.ID, question.ID))

	updatedFirst, err := f.service.Submit(context.Background(), "user-1", first.ID, &models.SubmitRequest{
		Code: "x", Language: "javascript",
	})
	require.NoError(t, err)
	assert.Equal(t, 90, updatedFirst.AIFeedback.OverallScore)

	// within the window the model is skipped but the submission still lands
	f.clock.Advance(time.Second)
	updatedSecond, err := f.service.Submit(context.Background(), "user-1", second.ID, &models.SubmitRequest{
		Code: "y", Language: "javascript",
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusReviewed, updatedSecond.Status)
	assert.Equal(t, 60, updatedSecond.AIFeedback.OverallScore)
	assert.Equal(t, 1, provider.calls)
}
