package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"jobsforce/api/internal/middleware"
	"jobsforce/api/internal/models"
	"jobsforce/api/internal/repositories"
	"jobsforce/api/internal/utils"
)

// JobHandler serves the job-posting catalogue. Reads are public, writes
// require an admin token.
type JobHandler struct {
	jobs   repositories.JobRepository
	logger *zap.Logger
}

func NewJobHandler(jobs repositories.JobRepository, logger *zap.Logger) *JobHandler {
	return &JobHandler{jobs: jobs, logger: logger}
}

// List returns persisted postings. With an empty catalogue the mock fixtures
// are returned so a fresh deployment still has something to interview against.
func (h *JobHandler) List(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.jobs.List(r.Context())
	if err != nil {
		h.logger.Error("job listing failed", zap.Error(err))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "internal_error",
			Message: "Failed to list jobs",
		})
		return
	}
	if len(jobs) == 0 {
		jobs = models.MockJobs
	}
	utils.JSON(w, http.StatusOK, map[string]any{"success": true, "jobs": jobs})
}

func (h *JobHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if models.IsMockJobID(id) {
		if job, ok := models.FindMockJob(id); ok {
			utils.JSON(w, http.StatusOK, map[string]any{"success": true, "job": job})
			return
		}
		utils.JSON(w, http.StatusNotFound, models.ErrorResponse{
			Code:    "not_found",
			Message: "Job not found",
		})
		return
	}

	job, err := h.jobs.GetByID(r.Context(), id)
	if errors.Is(err, repositories.ErrNotFound) {
		utils.JSON(w, http.StatusNotFound, models.ErrorResponse{
			Code:    "not_found",
			Message: "Job not found",
		})
		return
	}
	if err != nil {
		h.logger.Error("job lookup failed", zap.String("job_id", id), zap.Error(err))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "internal_error",
			Message: "Failed to load job",
		})
		return
	}
	utils.JSON(w, http.StatusOK, map[string]any{"success": true, "job": job})
}

func (h *JobHandler) Create(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.CreateJobRequest](r)

	job := &models.Job{
		Title:          req.Title,
		Company:        req.Company,
		Location:       req.Location,
		Description:    req.Description,
		Requirements:   req.Requirements,
		Salary:         req.Salary,
		JobType:        req.JobType,
		Skills:         req.Skills,
		ApplicationURL: req.ApplicationURL,
		PostedDate:     time.Now().UTC(),
	}
	if err := h.jobs.Create(r.Context(), job); err != nil {
		h.logger.Error("job creation failed", zap.Error(err))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "internal_error",
			Message: "Failed to create job",
		})
		return
	}
	utils.JSON(w, http.StatusCreated, map[string]any{"success": true, "job": job})
}

func (h *JobHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	req := middleware.GetValidatedRequest[*models.CreateJobRequest](r)

	job, err := h.jobs.GetByID(r.Context(), id)
	if errors.Is(err, repositories.ErrNotFound) {
		utils.JSON(w, http.StatusNotFound, models.ErrorResponse{
			Code:    "not_found",
			Message: "Job not found",
		})
		return
	}
	if err != nil {
		h.logger.Error("job lookup failed", zap.String("job_id", id), zap.Error(err))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "internal_error",
			Message: "Failed to load job",
		})
		return
	}

	job.Title = req.Title
	job.Company = req.Company
	job.Location = req.Location
	job.Description = req.Description
	job.Requirements = req.Requirements
	job.Salary = req.Salary
	job.JobType = req.JobType
	job.Skills = req.Skills
	job.ApplicationURL = req.ApplicationURL

	if err := h.jobs.Update(r.Context(), job); err != nil {
		h.logger.Error("job update failed", zap.String("job_id", id), zap.Error(err))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "internal_error",
			Message: "Failed to update job",
		})
		return
	}
	utils.JSON(w, http.StatusOK, map[string]any{"success": true, "job": job})
}

func (h *JobHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.jobs.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.JSON(w, http.StatusNotFound, models.ErrorResponse{
				Code:    "not_found",
				Message: "Job not found",
			})
			return
		}
		h.logger.Error("job deletion failed", zap.String("job_id", id), zap.Error(err))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "internal_error",
			Message: "Failed to delete job",
		})
		return
	}
	utils.JSON(w, http.StatusOK, map[string]any{"success": true})
}
