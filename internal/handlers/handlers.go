package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/foodbridge-app/foodbridge-backend/internal/media"
	"github.com/foodbridge-app/foodbridge-backend/internal/services"
)

var (
	accountService  *services.AccountService
	recoveryService *services.RecoveryService
	donationService *services.DonationService
	mediaStore      media.Store

	jwtSecret  []byte
	production bool

	validate = validator.New()
)

// Init wires the constructed services into the handler package. Called once
// at startup, before any route is served.
func Init(accounts *services.AccountService, recovery *services.RecoveryService, donations *services.DonationService, m media.Store, secret []byte, isProduction bool) {
	accountService = accounts
	recoveryService = recovery
	donationService = donations
	mediaStore = m
	jwtSecret = secret
	production = isProduction
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]interface{}{
		"success": false,
		"message": message,
	})
}
