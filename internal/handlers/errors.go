package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"jobsforce/api/internal/interviews"
	"jobsforce/api/internal/models"
	"jobsforce/api/internal/utils"
)

// writeDomainError maps a service error to its HTTP shape. Detail is only
// ever populated outside production.
func writeDomainError(w http.ResponseWriter, logger *zap.Logger, env string, err error) {
	var de *interviews.DomainError
	if !errors.As(err, &de) {
		logger.Error("unclassified error reached the transport layer", zap.Error(err))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "internal_error",
			Message: "Something went wrong",
		})
		return
	}

	resp := models.ErrorResponse{
		Code:    string(de.Kind),
		Message: de.Message,
	}
	if env != "production" && de.Err != nil {
		resp.Detail = de.Err.Error()
	}

	switch de.Kind {
	case interviews.KindNotFound:
		utils.JSON(w, http.StatusNotFound, resp)
	case interviews.KindUnauthorized:
		utils.JSON(w, http.StatusForbidden, resp)
	case interviews.KindValidation:
		utils.JSON(w, http.StatusBadRequest, resp)
	case interviews.KindRateLimited:
		resp.RemainingMs = de.Remaining.Milliseconds()
		utils.JSON(w, http.StatusTooManyRequests, resp)
	case interviews.KindUnavailable:
		utils.JSON(w, http.StatusServiceUnavailable, resp)
	case interviews.KindConflict:
		utils.JSON(w, http.StatusConflict, resp)
	default:
		logger.Error("request failed", zap.String("kind", string(de.Kind)), zap.Error(de))
		utils.JSON(w, http.StatusInternalServerError, resp)
	}
}
