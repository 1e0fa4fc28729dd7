package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/foodbridge-app/foodbridge-backend/internal/middleware"
	"github.com/foodbridge-app/foodbridge-backend/internal/services"
	"github.com/foodbridge-app/foodbridge-backend/internal/store"
)

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email"`
	Code        string `json:"code"`
	NewPassword string `json:"newPassword"`
}

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// ForgotPassword issues a reset code. The response shape is the same
// whether or not the account exists.
func ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, "A valid email is required")
		return
	}

	if err := recoveryService.RequestReset(r.Context(), req.Email); err != nil {
		log.Printf("ERROR: failed to send reset code: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to send reset code")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "If an account exists with this email, you will receive a reset code.",
	})
}

// ResetPassword consumes a reset code and sets the new password.
func ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err := recoveryService.VerifyAndReset(r.Context(), req.Email, req.Code, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidInput):
			respondError(w, http.StatusBadRequest, "Email, code and new password are required")
		case errors.Is(err, services.ErrWeakPassword):
			respondError(w, http.StatusBadRequest, "Password must be at least 8 characters")
		case errors.Is(err, services.ErrCodeNotIssued), errors.Is(err, services.ErrCodeExpired), errors.Is(err, services.ErrCodeInvalid):
			respondError(w, http.StatusForbidden, "Invalid or expired reset code")
		case errors.Is(err, store.ErrNotFound):
			respondError(w, http.StatusNotFound, "User not found")
		default:
			log.Printf("ERROR: failed to reset password: %v", err)
			respondError(w, http.StatusInternalServerError, "Server error. Please try again.")
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Password reset successfully!",
	})
}

// UpdatePassword is the in-session change. The acting identity comes from
// the verified session principal, never the request body.
func UpdatePassword(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.Principal(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req UpdatePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err := accountService.UpdatePassword(r.Context(), user.Email, req.CurrentPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidInput):
			respondError(w, http.StatusBadRequest, "Both passwords are required")
		case errors.Is(err, services.ErrWeakPassword):
			respondError(w, http.StatusBadRequest, "New password must be at least 6 characters")
		case errors.Is(err, services.ErrSamePassword):
			respondError(w, http.StatusBadRequest, "New password must be different from the current one")
		case errors.Is(err, services.ErrWrongPassword):
			respondError(w, http.StatusUnauthorized, "Current password is incorrect")
		case errors.Is(err, store.ErrNotFound):
			respondError(w, http.StatusNotFound, "User not found")
		default:
			log.Printf("ERROR: failed to update password: %v", err)
			respondError(w, http.StatusInternalServerError, "Server error. Please try again.")
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Password updated successfully!",
	})
}
