// Package jobs holds the scheduled background work.
package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"jobsforce/api/internal/models"
)

// ReviewSource lists interviews that reached reviewed since a cutoff.
type ReviewSource interface {
	ReviewedSince(ctx context.Context, since time.Time) ([]models.Interview, error)
}

// ExporterConfig configures the nightly review export.
type ExporterConfig struct {
	Schedule  string // cron expression
	ExportDir string
	Enabled   bool
}

// ReviewExporterJob periodically dumps reviewed interviews with their
// feedback to JSONL files for offline analysis.
type ReviewExporterJob struct {
	source ReviewSource
	config *ExporterConfig
	cron   *cron.Cron
	logger *zap.Logger

	lastRun time.Time
}

func NewReviewExporterJob(source ReviewSource, config *ExporterConfig, logger *zap.Logger) *ReviewExporterJob {
	return &ReviewExporterJob{
		source: source,
		config: config,
		cron:   cron.New(),
		logger: logger,
	}
}

// Start schedules the export. Disabled config is a no-op.
func (j *ReviewExporterJob) Start() error {
	if !j.config.Enabled {
		j.logger.Info("review export is disabled, skipping scheduler")
		return nil
	}

	_, err := j.cron.AddFunc(j.config.Schedule, func() {
		if err := j.RunExport(context.Background()); err != nil {
			j.logger.Error("review export run failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule review export: %w", err)
	}

	j.cron.Start()
	j.logger.Info("review exporter started", zap.String("schedule", j.config.Schedule))
	return nil
}

func (j *ReviewExporterJob) Stop() {
	if j.cron != nil {
		j.cron.Stop()
		j.logger.Info("review exporter stopped")
	}
}

// exportRecord is one JSONL line: enough to study scoring drift without
// dragging the whole interview document along.
type exportRecord struct {
	InterviewID  string             `json:"interviewId"`
	JobTitle     string             `json:"jobTitle"`
	Company      string             `json:"company"`
	Language     string             `json:"language"`
	Complexity   string             `json:"complexity"`
	OverallScore *int               `json:"overallScore"`
	Feedback     *models.AIFeedback `json:"feedback"`
	SubmittedAt  *time.Time         `json:"submittedAt"`
}

// RunExport writes every interview reviewed since the previous run into a
// timestamped JSONL file.
func (j *ReviewExporterJob) RunExport(ctx context.Context) error {
	since := j.lastRun
	now := time.Now().UTC()

	reviewed, err := j.source.ReviewedSince(ctx, since)
	if err != nil {
		return fmt.Errorf("failed to list reviewed interviews: %w", err)
	}
	if len(reviewed) == 0 {
		j.logger.Info("no reviewed interviews to export")
		j.lastRun = now
		return nil
	}

	if err := os.MkdirAll(j.config.ExportDir, 0o755); err != nil {
		return fmt.Errorf("failed to create export dir: %w", err)
	}

	path := filepath.Join(j.config.ExportDir, fmt.Sprintf("reviews_%s.jsonl", now.Format("20060102_150405")))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	for i := range reviewed {
		iv := &reviewed[i]
		record := exportRecord{
			InterviewID:  iv.ID,
			JobTitle:     iv.JobTitle,
			Company:      iv.Company,
			Language:     iv.Language,
			Complexity:   iv.Complexity,
			OverallScore: iv.OverallScore,
			Feedback:     iv.AIFeedback,
			SubmittedAt:  iv.SubmittedAt,
		}
		if err := enc.Encode(record); err != nil {
			return fmt.Errorf("failed to write export record: %w", err)
		}
	}

	j.logger.Info("review export complete",
		zap.String("file", path),
		zap.Int("records", len(reviewed)))
	j.lastRun = now
	return nil
}
