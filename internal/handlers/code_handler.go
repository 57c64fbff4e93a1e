package handlers

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"jobsforce/api/internal/execution"
	"jobsforce/api/internal/middleware"
	"jobsforce/api/internal/models"
	"jobsforce/api/internal/utils"
)

// CodeHandler proxies editor code runs to the execution backend. A nil
// client means no backend is configured and every run returns 503.
type CodeHandler struct {
	exec   *execution.Client
	logger *zap.Logger
}

func NewCodeHandler(exec *execution.Client, logger *zap.Logger) *CodeHandler {
	return &CodeHandler{exec: exec, logger: logger}
}

func (h *CodeHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.ExecuteRequest](r)

	if h.exec == nil {
		utils.JSON(w, http.StatusServiceUnavailable, models.ErrorResponse{
			Code:    "execution_unavailable",
			Message: "Code execution service is not configured",
		})
		return
	}

	result, err := h.exec.Execute(r.Context(), req.Code, req.Language, req.Input, req.ExpectedOutput)
	if err != nil {
		h.logger.Error("code execution failed", zap.String("language", req.Language), zap.Error(err))
		utils.JSON(w, http.StatusBadGateway, models.ErrorResponse{
			Code:    "execution_failed",
			Message: "Code execution failed",
		})
		return
	}

	utils.JSON(w, http.StatusOK, map[string]any{
		"success": true,
		"result":  result,
	})
}

type testCaseResult struct {
	Input          string `json:"input"`
	ExpectedOutput string `json:"expectedOutput"`
	ActualOutput   string `json:"actualOutput"`
	Passed         bool   `json:"passed"`
	Status         string `json:"status"`
}

// RunTests executes the solution once per test case and compares trimmed
// stdout against the expected output.
func (h *CodeHandler) RunTests(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.TestRunRequest](r)

	if h.exec == nil {
		utils.JSON(w, http.StatusServiceUnavailable, models.ErrorResponse{
			Code:    "execution_unavailable",
			Message: "Code execution service is not configured",
		})
		return
	}

	results := make([]testCaseResult, 0, len(req.TestCases))
	passed := 0
	for _, tc := range req.TestCases {
		run, err := h.exec.Execute(r.Context(), req.Code, req.Language, tc.Input, tc.ExpectedOutput)
		if err != nil {
			h.logger.Error("test case execution failed", zap.Error(err))
			utils.JSON(w, http.StatusBadGateway, models.ErrorResponse{
				Code:    "execution_failed",
				Message: "Test execution failed",
			})
			return
		}

		actual := strings.TrimSpace(run.Stdout)
		ok := run.Accepted() && actual == strings.TrimSpace(tc.ExpectedOutput)
		if ok {
			passed++
		}
		results = append(results, testCaseResult{
			Input:          tc.Input,
			ExpectedOutput: tc.ExpectedOutput,
			ActualOutput:   actual,
			Passed:         ok,
			Status:         run.Status.Description,
		})
	}

	utils.JSON(w, http.StatusOK, map[string]any{
		"success": true,
		"passed":  passed,
		"total":   len(req.TestCases),
		"results": results,
	})
}
