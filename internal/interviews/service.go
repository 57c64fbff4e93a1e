// Package interviews owns the mock-interview lifecycle: creation, question
// association, submission and feedback resolution.
package interviews

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"jobsforce/api/internal/cache"
	"jobsforce/api/internal/cooldown"
	"jobsforce/api/internal/llm"
	"jobsforce/api/internal/models"
	"jobsforce/api/internal/prompts"
	"jobsforce/api/internal/repositories"
)

// Service drives the interview state machine. The text-generation provider
// may be nil, which every workflow treats as "service unavailable".
type Service struct {
	interviews repositories.InterviewRepository
	questions  repositories.QuestionRepository
	jobs       repositories.JobRepository
	provider   llm.Provider
	prompts    prompts.PromptProvider
	guard      *cooldown.Guard
	cache      *cache.QuestionCache
	logger     *zap.Logger

	now     func() time.Time
	randInt func(n int) int
}

// Option configures a Service.
type Option func(*Service)

// WithClock injects the time source (tests).
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithRandInt injects the topic picker's source of randomness (tests).
func WithRandInt(f func(n int) int) Option {
	return func(s *Service) { s.randInt = f }
}

// WithQuestionCache attaches a best-effort question cache.
func WithQuestionCache(c *cache.QuestionCache) Option {
	return func(s *Service) { s.cache = c }
}

func NewService(
	interviewRepo repositories.InterviewRepository,
	questionRepo repositories.QuestionRepository,
	jobRepo repositories.JobRepository,
	provider llm.Provider,
	promptManager prompts.PromptProvider,
	guard *cooldown.Guard,
	logger *zap.Logger,
	opts ...Option,
) *Service {
	s := &Service{
		interviews: interviewRepo,
		questions:  questionRepo,
		jobs:       jobRepo,
		provider:   provider,
		prompts:    promptManager,
		guard:      guard,
		logger:     logger,
		now:        time.Now,
		randInt:    rand.Intn,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// resolveJobRef classifies a job id once, at interview creation, and returns
// the snapshot source. Mock ids are served from fixtures and never persisted.
func (s *Service) resolveJobRef(ctx context.Context, jobID string) (models.JobRef, *models.Job, error) {
	if models.IsMockJobID(jobID) {
		job, ok := models.FindMockJob(jobID)
		if !ok {
			return models.JobRef{}, nil, notFound("Mock job not found")
		}
		return models.JobRef{Kind: models.JobRefMock, ID: jobID}, job, nil
	}

	job, err := s.jobs.GetByID(ctx, jobID)
	if errors.Is(err, repositories.ErrNotFound) {
		return models.JobRef{}, nil, notFound("Job not found")
	}
	if err != nil {
		return models.JobRef{}, nil, internal("Failed to load job", err)
	}
	return models.JobRef{Kind: models.JobRefPersisted, ID: jobID}, job, nil
}

// jobForRef re-resolves the stored reference for read paths.
func (s *Service) jobForRef(ctx context.Context, ref models.JobRef) (*models.Job, error) {
	switch ref.Kind {
	case models.JobRefMock:
		job, ok := models.FindMockJob(ref.ID)
		if !ok {
			return nil, notFound("Associated mock job not found")
		}
		return job, nil
	case models.JobRefPersisted:
		job, err := s.jobs.GetByID(ctx, ref.ID)
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, notFound("Associated job not found")
		}
		if err != nil {
			return nil, internal("Failed to load job", err)
		}
		return job, nil
	default:
		return nil, validation("Interview has no associated job")
	}
}

// Start creates a new interview in pending with the job snapshot copied in.
func (s *Service) Start(ctx context.Context, owner string, req *models.StartInterviewRequest) (*models.Interview, *models.Job, error) {
	ref, job, err := s.resolveJobRef(ctx, req.JobID)
	if err != nil {
		return nil, nil, err
	}

	interview := &models.Interview{
		Owner:      owner,
		JobRef:     ref,
		JobTitle:   job.Title,
		Company:    job.Company,
		Status:     models.StatusPending,
		Complexity: req.Complexity,
		Language:   "javascript",
	}
	if err := s.interviews.Create(ctx, interview); err != nil {
		return nil, nil, internal("Failed to create interview", err)
	}

	s.logger.Info("interview started",
		zap.String("interview_id", interview.ID),
		zap.String("owner", owner),
		zap.String("job_kind", string(ref.Kind)),
		zap.String("job_id", ref.ID))

	return interview, job, nil
}

// Get fetches an interview the caller owns, with its job and question.
func (s *Service) Get(ctx context.Context, owner, id string) (*models.Interview, *models.Job, *models.Question, error) {
	interview, err := s.getOwned(ctx, owner, id)
	if err != nil {
		return nil, nil, nil, err
	}

	job, err := s.jobForRef(ctx, interview.JobRef)
	if err != nil {
		return nil, nil, nil, err
	}

	var question *models.Question
	if interview.QuestionID != "" {
		question, err = s.questionByID(ctx, interview.ID, interview.QuestionID)
		if err != nil {
			// a missing question is a degraded read, not a failed one
			s.logger.Warn("linked question could not be loaded",
				zap.String("interview_id", id),
				zap.String("question_id", interview.QuestionID),
				zap.Error(err))
			question = nil
		}
	}

	return interview, job, question, nil
}

// questionByID consults the cache before the repository.
func (s *Service) questionByID(ctx context.Context, interviewID, questionID string) (*models.Question, error) {
	if q, err := s.cache.Get(ctx, interviewID); err == nil && q.ID == questionID {
		return q, nil
	}
	q, err := s.questions.GetByID(ctx, questionID)
	if err != nil {
		return nil, err
	}
	s.cache.Put(ctx, interviewID, q)
	return q, nil
}

// List returns every interview owned by the caller, newest first.
func (s *Service) List(ctx context.Context, owner string) ([]models.Interview, error) {
	out, err := s.interviews.ListByOwner(ctx, owner)
	if err != nil {
		return nil, internal("Failed to list interviews", err)
	}
	return out, nil
}

// AttachQuestion links a question to an interview that has not been
// submitted yet. Re-attaching overwrites the previous link.
func (s *Service) AttachQuestion(ctx context.Context, owner, interviewID, questionID string) error {
	interview, err := s.getOwned(ctx, owner, interviewID)
	if err != nil {
		return err
	}
	if !interview.Status.AcceptsQuestion() {
		return validation("Interview no longer accepts a question")
	}
	if _, err := s.questions.GetByID(ctx, questionID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return notFound("Question not found")
		}
		return internal("Failed to load question", err)
	}
	if err := s.interviews.SetQuestion(ctx, interviewID, questionID); err != nil {
		return internal("Failed to attach question", err)
	}
	return nil
}

// SaveProgress stores in-flight work on an interview the caller owns: code,
// a language switch, or the move into active/in_progress as the candidate
// opens the editor. Submitted and reviewed interviews are frozen.
func (s *Service) SaveProgress(ctx context.Context, owner, id string, req *models.UpdateInterviewRequest) (*models.Interview, error) {
	interview, err := s.getOwned(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	if !interview.Status.AcceptsQuestion() {
		return nil, validation("Interview can no longer be updated")
	}

	if req.Code != "" {
		interview.Code = req.Code
	}
	if req.Language != "" {
		interview.Language = req.Language
	}
	if req.Status != "" {
		interview.Status = models.InterviewStatus(req.Status)
	}

	if err := s.interviews.Update(ctx, interview); err != nil {
		if errors.Is(err, repositories.ErrVersionConflict) {
			return nil, conflict("Interview was modified concurrently; reload and retry")
		}
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, notFound("Interview not found")
		}
		return nil, internal("Failed to save progress", err)
	}
	return interview, nil
}

// Submit records the final solution, resolves feedback and advances the
// interview to reviewed. Feedback resolution never fails the submission.
func (s *Service) Submit(ctx context.Context, owner, id string, req *models.SubmitRequest) (*models.Interview, error) {
	interview, err := s.getOwned(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	if interview.Status == models.StatusReviewed || interview.Status == models.StatusCompleted {
		return nil, validation("Interview has already been submitted")
	}

	now := s.now().UTC()
	interview.Code = req.Code
	interview.Language = req.Language
	interview.Status = models.StatusSubmitted
	if interview.SubmittedAt == nil {
		interview.SubmittedAt = &now
	}

	feedback := s.GenerateFeedback(ctx, interviewQuestion(s, ctx, interview), req.Code, req.Language, owner)
	score := feedback.OverallScore
	interview.AIFeedback = feedback
	interview.OverallScore = &score
	interview.Status = models.StatusReviewed

	if err := s.interviews.Update(ctx, interview); err != nil {
		if errors.Is(err, repositories.ErrVersionConflict) {
			return nil, conflict("Interview was modified concurrently; reload and retry")
		}
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, notFound("Interview not found")
		}
		return nil, internal("Failed to save submission", err)
	}

	s.logger.Info("interview submitted and reviewed",
		zap.String("interview_id", id),
		zap.Int("overall_score", score))

	return interview, nil
}

// RequestFeedback runs the feedback computation without the submission
// status transition; the caller keeps iterating on their code.
func (s *Service) RequestFeedback(ctx context.Context, owner, id string, req *models.FeedbackRequest) (*models.Interview, error) {
	interview, err := s.getOwned(ctx, owner, id)
	if err != nil {
		return nil, err
	}

	interview.Code = req.Code
	interview.Language = req.Language

	feedback := s.GenerateFeedback(ctx, interviewQuestion(s, ctx, interview), req.Code, req.Language, owner)
	score := feedback.OverallScore
	interview.AIFeedback = feedback
	interview.OverallScore = &score

	if err := s.interviews.Update(ctx, interview); err != nil {
		if errors.Is(err, repositories.ErrVersionConflict) {
			return nil, conflict("Interview was modified concurrently; reload and retry")
		}
		return nil, internal("Failed to save feedback", err)
	}

	return interview, nil
}

// Statistics summarizes the caller's interview history.
func (s *Service) Statistics(ctx context.Context, owner string) (*repositories.InterviewStats, error) {
	stats, err := s.interviews.Stats(ctx, owner)
	if err != nil {
		return nil, internal("Failed to compute statistics", err)
	}
	return stats, nil
}

// TestCases returns the client-visible cases for a question, falling back
// to defaults when the question has none.
func (s *Service) TestCases(ctx context.Context, questionID string) ([]models.TestCase, bool, error) {
	question, err := s.questions.GetByID(ctx, questionID)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, false, internal("Failed to load question", err)
	}
	if question != nil {
		if visible := question.PublicTestCases(); len(visible) > 0 {
			return visible, true, nil
		}
	}
	return []models.TestCase{
		{Input: "Default input 1", ExpectedOutput: "Default output 1"},
		{Input: "Default input 2", ExpectedOutput: "Default output 2"},
	}, false, nil
}

func (s *Service) getOwned(ctx context.Context, owner, id string) (*models.Interview, error) {
	interview, err := s.interviews.GetByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, notFound("Interview not found")
	}
	if err != nil {
		return nil, internal("Failed to load interview", err)
	}
	if interview.Owner != owner {
		return nil, unauthorized("Not authorized to access this interview")
	}
	return interview, nil
}

// interviewQuestion loads the linked question for feedback generation; a
// missing link or failed load yields nil, which degrades feedback.
func interviewQuestion(s *Service, ctx context.Context, interview *models.Interview) *models.Question {
	if interview.QuestionID == "" {
		return nil
	}
	q, err := s.questionByID(ctx, interview.ID, interview.QuestionID)
	if err != nil {
		s.logger.Warn("question unavailable for feedback",
			zap.String("interview_id", interview.ID),
			zap.Error(err))
		return nil
	}
	return q
}
