package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"jobsforce/api/internal/interviews"
	"jobsforce/api/internal/middleware"
	"jobsforce/api/internal/models"
	"jobsforce/api/internal/utils"
)

// InterviewHandler exposes the interview lifecycle over HTTP.
type InterviewHandler struct {
	service *interviews.Service
	logger  *zap.Logger
	env     string
}

func NewInterviewHandler(service *interviews.Service, logger *zap.Logger, env string) *InterviewHandler {
	return &InterviewHandler{service: service, logger: logger, env: env}
}

func (h *InterviewHandler) Start(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.StartInterviewRequest](r)

	interview, job, err := h.service.Start(r.Context(), middleware.UserID(r), req)
	if err != nil {
		writeDomainError(w, h.logger, h.env, err)
		return
	}

	utils.JSON(w, http.StatusCreated, models.InterviewResponse{
		Success:   true,
		Interview: interview,
		Job:       job,
	})
}

func (h *InterviewHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	interview, job, question, err := h.service.Get(r.Context(), middleware.UserID(r), id)
	if err != nil {
		writeDomainError(w, h.logger, h.env, err)
		return
	}

	utils.JSON(w, http.StatusOK, models.InterviewResponse{
		Success:   true,
		Interview: interview,
		Job:       job,
		Question:  question.Redacted(),
	})
}

// Update saves mid-interview progress without touching submission semantics.
func (h *InterviewHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	req := middleware.GetValidatedRequest[*models.UpdateInterviewRequest](r)

	interview, err := h.service.SaveProgress(r.Context(), middleware.UserID(r), id, req)
	if err != nil {
		writeDomainError(w, h.logger, h.env, err)
		return
	}

	utils.JSON(w, http.StatusOK, models.InterviewResponse{
		Success:   true,
		Interview: interview,
	})
}

func (h *InterviewHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context(), middleware.UserID(r))
	if err != nil {
		writeDomainError(w, h.logger, h.env, err)
		return
	}
	if list == nil {
		list = []models.Interview{}
	}
	utils.JSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"interviews": list,
	})
}

func (h *InterviewHandler) Submit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	req := middleware.GetValidatedRequest[*models.SubmitRequest](r)

	interview, err := h.service.Submit(r.Context(), middleware.UserID(r), id, req)
	if err != nil {
		writeDomainError(w, h.logger, h.env, err)
		return
	}

	utils.JSON(w, http.StatusOK, models.InterviewResponse{
		Success:   true,
		Interview: interview,
	})
}

func (h *InterviewHandler) Feedback(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	req := middleware.GetValidatedRequest[*models.FeedbackRequest](r)

	interview, err := h.service.RequestFeedback(r.Context(), middleware.UserID(r), id, req)
	if err != nil {
		writeDomainError(w, h.logger, h.env, err)
		return
	}

	utils.JSON(w, http.StatusOK, models.InterviewResponse{
		Success:   true,
		Interview: interview,
	})
}

func (h *InterviewHandler) GenerateQuestion(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.GenerateQuestionRequest](r)

	question, err := h.service.GenerateQuestion(r.Context(), middleware.UserID(r), req)
	if err != nil {
		writeDomainError(w, h.logger, h.env, err)
		return
	}

	utils.JSON(w, http.StatusOK, models.QuestionResponse{
		Success:  true,
		Question: question.Redacted(),
	})
}

func (h *InterviewHandler) GetTestCases(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.GetTestCasesRequest](r)

	cases, fromQuestion, err := h.service.TestCases(r.Context(), req.QuestionID)
	if err != nil {
		writeDomainError(w, h.logger, h.env, err)
		return
	}

	resp := models.TestCasesResponse{Success: true, TestCases: cases}
	if !fromQuestion {
		resp.Message = "Using default test cases"
	}
	utils.JSON(w, http.StatusOK, resp)
}

func (h *InterviewHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Statistics(r.Context(), middleware.UserID(r))
	if err != nil {
		writeDomainError(w, h.logger, h.env, err)
		return
	}

	utils.JSON(w, http.StatusOK, models.StatisticsResponse{
		TotalInterviews:     stats.Total,
		CompletedInterviews: stats.Completed,
		AverageScore:        stats.AverageScore,
	})
}
