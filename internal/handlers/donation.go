package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/foodbridge-app/foodbridge-backend/internal/services"
	"github.com/foodbridge-app/foodbridge-backend/internal/store"
)

type DonationResponse struct {
	Success  bool        `json:"success"`
	Message  string      `json:"message"`
	Donation interface{} `json:"donation,omitempty"`
}

// CreateDonation handles the multipart listing submission (up to 5 images
// under the "images" field).
func CreateDonation(w http.ResponseWriter, r *http.Request) {
	// 20MB: up to 5 images plus form fields
	if err := r.ParseMultipartForm(20 << 20); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	title := r.FormValue("title")
	description := r.FormValue("description")
	foodType := r.FormValue("foodType")
	preparationTime := r.FormValue("preparationTime")
	quantityStr := r.FormValue("quantity")
	latStr := r.FormValue("lat")
	lngStr := r.FormValue("lng")
	donorEmail := r.FormValue("donoremail")

	if title == "" || description == "" || foodType == "" || preparationTime == "" ||
		quantityStr == "" || latStr == "" || lngStr == "" {
		respondError(w, http.StatusBadRequest, "All fields are required")
		return
	}

	quantity, err := strconv.Atoi(quantityStr)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Quantity must be a number")
		return
	}
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid coordinates")
		return
	}
	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid coordinates")
		return
	}

	files := r.MultipartForm.File["images"]
	if len(files) == 0 {
		respondError(w, http.StatusBadRequest, "At least one image is required.")
		return
	}

	donation, err := donationService.Create(r.Context(), services.CreateDonationInput{
		Title:           title,
		Description:     description,
		FoodType:        foodType,
		PreparationTime: preparationTime,
		Quantity:        quantity,
		Lat:             lat,
		Lng:             lng,
		DonorEmail:      donorEmail,
		Images:          files,
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("ERROR: failed to create donation: %v", err)
		respondError(w, http.StatusInternalServerError, "Server error. Please try again later.")
		return
	}

	respondJSON(w, http.StatusCreated, DonationResponse{
		Success:  true,
		Message:  "Donation posted successfully",
		Donation: donation,
	})
}

// FetchDonations returns all listings; filtering is client-side.
func FetchDonations(w http.ResponseWriter, r *http.Request) {
	donations, err := donationService.FetchAll(r.Context())
	if err != nil {
		log.Printf("ERROR: failed to fetch donations: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch donations")
		return
	}
	respondJSON(w, http.StatusOK, donations)
}

// FetchDonation returns one listing by id.
func FetchDonation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	donation, err := donationService.FetchOne(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Donation not found")
			return
		}
		log.Printf("ERROR: failed to fetch donation %s: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch donation")
		return
	}
	respondJSON(w, http.StatusOK, donation)
}
