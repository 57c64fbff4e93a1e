package interviews

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"jobsforce/api/internal/jsonx"
	"jobsforce/api/internal/metrics"
	"jobsforce/api/internal/models"
)

// Per-field placeholders used whenever genuine feedback cannot be produced.
const (
	placeholderCorrectness  = "Could not assess correctness"
	placeholderComplexity   = "Could not determine"
	placeholderQuality      = "Could not assess"
	placeholderEdgeCases    = "Could not assess"
	placeholderImprovements = "No specific improvements could be suggested"
	degradedScore           = 60
)

func degradedFeedback() *models.AIFeedback {
	return &models.AIFeedback{
		Correctness:     placeholderCorrectness,
		TimeComplexity:  placeholderComplexity,
		SpaceComplexity: placeholderComplexity,
		CodeQuality:     placeholderQuality,
		EdgeCases:       placeholderEdgeCases,
		Improvements:    placeholderImprovements,
		BetterSolution:  "",
		OverallScore:    degradedScore,
	}
}

// GenerateFeedback never fails outward: a submission must always end up
// reviewed with something in aiFeedback. All failure modes of the inner
// computation collapse into the degraded placeholder here, in one place.
func (s *Service) GenerateFeedback(ctx context.Context, question *models.Question, code, language, actor string) *models.AIFeedback {
	feedback, err := s.computeFeedback(ctx, question, code, language, actor)
	if err != nil {
		metrics.FeedbackDegraded.Inc()
		s.logger.Warn("feedback degraded to placeholder", zap.String("actor", actor), zap.Error(err))
		return degradedFeedback()
	}
	metrics.FeedbackGenerated.Inc()
	return feedback
}

// computeFeedback is the fallible inner path: cooldown, provider call,
// tolerant parse, per-field fill.
func (s *Service) computeFeedback(ctx context.Context, question *models.Question, code, language, actor string) (*models.AIFeedback, error) {
	if s.provider == nil {
		return nil, errors.New("text-generation service not configured")
	}
	if question == nil {
		return nil, errors.New("interview has no linked question")
	}

	// A blocked cooldown degrades instead of failing: submission must
	// complete either way, so we just skip the model call.
	if remaining, ok := s.guard.CheckAndArm("generate-feedback", actor); !ok {
		metrics.CooldownRejections.WithLabelValues("generate-feedback").Inc()
		s.logger.Warn("feedback generation rate limited",
			zap.String("actor", actor),
			zap.Duration("remaining", remaining))
		return nil, errors.New("feedback generation in cooldown")
	}

	prompt, err := s.prompts.BuildPrompt("feedback", "default", map[string]string{
		"Title":       question.Title,
		"Description": question.Description,
		"Language":    language,
		"Code":        code,
	})
	if err != nil {
		return nil, err
	}

	raw, err := s.provider.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Correctness     string  `json:"correctness"`
		TimeComplexity  string  `json:"timeComplexity"`
		SpaceComplexity string  `json:"spaceComplexity"`
		CodeQuality     string  `json:"codeQuality"`
		EdgeCases       string  `json:"edgeCases"`
		Improvements    string  `json:"improvements"`
		BetterSolution  string  `json:"betterSolution"`
		OverallScore    float64 `json:"overallScore"`
	}
	if err := jsonx.ParseInto(raw, &parsed); err != nil {
		return nil, err
	}

	// fields the model skipped get their placeholders; one missing field
	// does not void the rest of the assessment
	feedback := &models.AIFeedback{
		Correctness:     orPlaceholder(parsed.Correctness, placeholderCorrectness),
		TimeComplexity:  orPlaceholder(parsed.TimeComplexity, placeholderComplexity),
		SpaceComplexity: orPlaceholder(parsed.SpaceComplexity, placeholderComplexity),
		CodeQuality:     orPlaceholder(parsed.CodeQuality, placeholderQuality),
		EdgeCases:       orPlaceholder(parsed.EdgeCases, placeholderEdgeCases),
		Improvements:    orPlaceholder(parsed.Improvements, placeholderImprovements),
		BetterSolution:  parsed.BetterSolution,
		OverallScore:    clampScore(int(parsed.OverallScore)),
	}
	return feedback, nil
}

func orPlaceholder(value, placeholder string) string {
	if value == "" {
		return placeholder
	}
	return value
}

func clampScore(score int) int {
	if score <= 0 {
		return degradedScore
	}
	if score > 100 {
		return 100
	}
	return score
}
