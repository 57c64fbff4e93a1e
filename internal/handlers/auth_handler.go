package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"jobsforce/api/internal/middleware"
	"jobsforce/api/internal/models"
	"jobsforce/api/internal/repositories"
	"jobsforce/api/internal/utils"
)

const tokenLifetime = 24 * time.Hour

// AuthHandler issues and honours the bearer tokens the rest of the API
// authenticates with.
type AuthHandler struct {
	users     repositories.UserRepository
	jwtSecret string
	logger    *zap.Logger
}

func NewAuthHandler(users repositories.UserRepository, jwtSecret string, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{users: users, jwtSecret: jwtSecret, logger: logger}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.RegisterRequest](r)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := h.users.GetByEmail(r.Context(), email); err == nil {
		utils.JSON(w, http.StatusBadRequest, models.ErrorResponse{
			Code:    "user_exists",
			Message: "User already exists",
		})
		return
	} else if !errors.Is(err, repositories.ErrNotFound) {
		h.logger.Error("user lookup failed", zap.Error(err))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "internal_error",
			Message: "Registration failed",
		})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.logger.Error("password hashing failed", zap.Error(err))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "internal_error",
			Message: "Registration failed",
		})
		return
	}

	user := &models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleUser,
	}
	if err := h.users.Create(r.Context(), user); err != nil {
		h.logger.Error("user creation failed", zap.Error(err))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "internal_error",
			Message: "Registration failed",
		})
		return
	}

	token, err := utils.SignToken(h.jwtSecret, user.ID, user.Role, tokenLifetime)
	if err != nil {
		h.logger.Error("token signing failed", zap.Error(err))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "internal_error",
			Message: "Registration failed",
		})
		return
	}

	utils.JSON(w, http.StatusCreated, models.AuthResponse{Success: true, Token: token, User: user})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.LoginRequest](r)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := h.users.GetByEmail(r.Context(), email)
	if errors.Is(err, repositories.ErrNotFound) {
		utils.JSON(w, http.StatusUnauthorized, models.ErrorResponse{
			Code:    "invalid_credentials",
			Message: "Invalid credentials",
		})
		return
	}
	if err != nil {
		h.logger.Error("user lookup failed", zap.Error(err))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "internal_error",
			Message: "Login failed",
		})
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		utils.JSON(w, http.StatusUnauthorized, models.ErrorResponse{
			Code:    "invalid_credentials",
			Message: "Invalid credentials",
		})
		return
	}

	token, err := utils.SignToken(h.jwtSecret, user.ID, user.Role, tokenLifetime)
	if err != nil {
		h.logger.Error("token signing failed", zap.Error(err))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "internal_error",
			Message: "Login failed",
		})
		return
	}

	utils.JSON(w, http.StatusOK, models.AuthResponse{Success: true, Token: token, User: user})
}

// Me returns the authenticated caller's account.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetByID(r.Context(), middleware.UserID(r))
	if errors.Is(err, repositories.ErrNotFound) {
		utils.JSON(w, http.StatusNotFound, models.ErrorResponse{
			Code:    "not_found",
			Message: "User not found",
		})
		return
	}
	if err != nil {
		h.logger.Error("user lookup failed", zap.Error(err))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "internal_error",
			Message: "Failed to load user",
		})
		return
	}
	utils.JSON(w, http.StatusOK, map[string]any{"success": true, "user": user})
}
