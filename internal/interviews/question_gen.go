package interviews

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"jobsforce/api/internal/jsonx"
	"jobsforce/api/internal/metrics"
	"jobsforce/api/internal/models"
)

// questionPayload mirrors the JSON shape the model is instructed to emit.
type questionPayload struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Examples    []models.Example  `json:"examples"`
	TestCases   []models.TestCase `json:"testCases"`
	Constraints []string          `json:"constraints"`
	Difficulty  string            `json:"difficulty"`
	Category    string            `json:"category"`
	Tags        []string          `json:"tags"`
}

// GenerateQuestion asks the model for a fresh coding question tailored to a
// job posting, persists it and, when an interview id is supplied, links it to
// that interview. The prompt is salted with a random topic and a timestamp so
// repeated requests for the same posting do not converge on one question.
func (s *Service) GenerateQuestion(ctx context.Context, actor string, req *models.GenerateQuestionRequest) (*models.Question, error) {
	if remaining, ok := s.guard.CheckAndArm("generate-question", actor); !ok {
		metrics.CooldownRejections.WithLabelValues("generate-question").Inc()
		return nil, rateLimited(remaining)
	}

	if s.provider == nil {
		metrics.QuestionGenFailures.WithLabelValues("unavailable").Inc()
		return nil, unavailable("Question generation service is not configured")
	}

	topic := models.QuestionTopics[s.randInt(len(models.QuestionTopics))]
	prompt, err := s.prompts.BuildPrompt("question", "default", map[string]string{
		"Topic":          topic,
		"Difficulty":     req.Difficulty,
		"JobTitle":       req.JobTitle,
		"JobDescription": req.JobDescription,
		"Timestamp":      s.now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		metrics.QuestionGenFailures.WithLabelValues("prompt").Inc()
		return nil, internal("Failed to build question prompt", err)
	}

	raw, err := s.provider.Generate(ctx, prompt)
	if err != nil {
		metrics.QuestionGenFailures.WithLabelValues("provider").Inc()
		if cached := s.cachedQuestion(ctx, req.InterviewID); cached != nil {
			return cached, nil
		}
		return nil, unavailable("Question generation service failed")
	}

	payload, err := parseQuestionPayload(raw)
	if err != nil {
		metrics.QuestionGenFailures.WithLabelValues("parse").Inc()
		s.logger.Warn("question response was not parseable",
			zap.String("actor", actor),
			zap.Int("response_len", len(raw)),
			zap.Error(err))
		if cached := s.cachedQuestion(ctx, req.InterviewID); cached != nil {
			return cached, nil
		}
		return nil, parseFailed("Model response did not contain a usable question", err)
	}

	question := &models.Question{
		Title:       payload.Title,
		Description: payload.Description,
		Examples:    payload.Examples,
		TestCases:   payload.TestCases,
		Constraints: payload.Constraints,
		Difficulty:  models.NormalizeComplexity(payload.Difficulty),
		Category:    models.NormalizeCategory(payload.Category),
		Tags:        payload.Tags,
		CreatedBy:   actor,
	}
	if question.Title == "" || question.Description == "" {
		metrics.QuestionGenFailures.WithLabelValues("parse").Inc()
		return nil, parseFailed("Model response was missing the question title or description", nil)
	}

	if err := s.questions.Create(ctx, question); err != nil {
		metrics.QuestionGenFailures.WithLabelValues("persist").Inc()
		return nil, internal("Failed to save generated question", err)
	}
	metrics.QuestionsGenerated.Inc()

	// Linking is best effort: the question is already persisted and
	// returned, so a failed link must not fail the request.
	if req.InterviewID != "" {
		if err := s.interviews.SetQuestion(ctx, req.InterviewID, question.ID); err != nil {
			s.logger.Warn("generated question could not be linked",
				zap.String("interview_id", req.InterviewID),
				zap.String("question_id", question.ID),
				zap.Error(err))
		} else {
			s.cache.Put(ctx, req.InterviewID, question)
		}
	}

	s.logger.Info("question generated",
		zap.String("question_id", question.ID),
		zap.String("topic", topic),
		zap.String("difficulty", question.Difficulty))

	return question, nil
}

// cachedQuestion serves the interview's last generated question when a fresh
// generation attempt fails. A stale question beats an error mid-interview.
func (s *Service) cachedQuestion(ctx context.Context, interviewID string) *models.Question {
	if interviewID == "" {
		return nil
	}
	q, err := s.cache.Get(ctx, interviewID)
	if err != nil {
		return nil
	}
	s.logger.Info("serving cached question after failed generation",
		zap.String("interview_id", interviewID),
		zap.String("question_id", q.ID))
	return q
}

// parseQuestionPayload runs the tolerant parser first and falls back to the
// widest brace span for responses where prose leaks into the JSON body.
func parseQuestionPayload(raw string) (*questionPayload, error) {
	var payload questionPayload
	if err := jsonx.ParseInto(raw, &payload); err == nil {
		return &payload, nil
	}
	span, ok := jsonx.ExtractBraceSpan(raw)
	if !ok {
		return nil, jsonx.ErrNoJSON
	}
	if err := json.Unmarshal([]byte(span), &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}
