package middleware

import (
	"context"
	"net/http"

	"jobsforce/api/internal/models"
	"jobsforce/api/internal/utils"
)

const (
	userIDKey contextKey = "user_id"
	roleKey   contextKey = "user_role"
)

// RequireAuth rejects requests without a valid bearer token and stores the
// caller's id and role in the request context.
func RequireAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := utils.VerifyToken(r, secret)
			if err != nil {
				utils.JSON(w, http.StatusUnauthorized, models.ErrorResponse{
					Code:    "unauthorized",
					Message: "Authentication required",
				})
				return
			}

			userID, err := utils.GetUserIDFromClaims(claims)
			if err != nil {
				utils.JSON(w, http.StatusUnauthorized, models.ErrorResponse{
					Code:    "unauthorized",
					Message: "Authentication required",
				})
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			ctx = context.WithValue(ctx, roleKey, utils.GetRoleFromClaims(claims))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin sits behind RequireAuth and rejects non-admin callers.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if UserRole(r) != models.RoleAdmin {
			utils.JSON(w, http.StatusForbidden, models.ErrorResponse{
				Code:    "forbidden",
				Message: "Admin access required",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// UserID returns the authenticated caller's id, or "" outside RequireAuth.
func UserID(r *http.Request) string {
	id, _ := r.Context().Value(userIDKey).(string)
	return id
}

// UserRole returns the authenticated caller's role.
func UserRole(r *http.Request) string {
	role, _ := r.Context().Value(roleKey).(string)
	return role
}
