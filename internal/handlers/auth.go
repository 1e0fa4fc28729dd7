package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/foodbridge-app/foodbridge-backend/internal/auth"
	"github.com/foodbridge-app/foodbridge-backend/internal/middleware"
	"github.com/foodbridge-app/foodbridge-backend/internal/services"
	"github.com/foodbridge-app/foodbridge-backend/internal/store"
)

// cookieMaxAge is the cookie lifetime. It deliberately outlives the 1h
// token; an expired-but-present cookie is rejected by the middleware.
const cookieMaxAge = 24 * 60 * 60

type RegisterRequest struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	Phone       string `json:"phone"`
	UserType    string `json:"userType" validate:"required,oneof=seeker donor kitchen"`
	Address     string `json:"address"`
	City        string `json:"city"`
	Zip         string `json:"zip"`
	KitchenName string `json:"kitchenName"`
}

type LoginRequest struct {
	Email    string `json:"username" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message"`
	User    map[string]interface{} `json:"user,omitempty"`
	Token   string                 `json:"token,omitempty"`
}

// Register handles user registration
func Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, "Name, valid email, user type and a password of at least 8 characters are required")
		return
	}

	user, err := accountService.Register(r.Context(), services.RegisterInput{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		Phone:       req.Phone,
		UserType:    req.UserType,
		Address:     req.Address,
		City:        req.City,
		Zip:         req.Zip,
		KitchenName: req.KitchenName,
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrDuplicateEmail):
			respondError(w, http.StatusConflict, "User with this email already exists")
		case errors.Is(err, services.ErrInvalidInput), errors.Is(err, services.ErrWeakPassword):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			log.Printf("ERROR: failed to register user: %v", err)
			respondError(w, http.StatusInternalServerError, "Error registering user")
		}
		return
	}

	respondJSON(w, http.StatusCreated, AuthResponse{
		Success: true,
		Message: "User registered successfully",
		User:    user.Public(),
	})
}

// Login handles authentication and issues the session cookie
func Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, err := accountService.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			respondError(w, http.StatusUnauthorized, "Invalid email or password")
		case errors.Is(err, services.ErrUserSuspended):
			respondError(w, http.StatusForbidden, "User is Suspended, please contact the admin")
		default:
			log.Printf("ERROR: login failed: %v", err)
			respondError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	token, err := auth.GenerateToken(user.ID.Hex(), jwtSecret, auth.TokenTTL)
	if err != nil {
		log.Printf("ERROR: failed to sign token: %v", err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	setTokenCookie(w, token)

	respondJSON(w, http.StatusOK, AuthResponse{
		Success: true,
		Message: "Login Successful!",
		Token:   token,
	})
}

// Logout clears the session cookie. Idempotent: there is no server-side
// session state to invalidate.
func Logout(w http.ResponseWriter, r *http.Request) {
	clearTokenCookie(w)
	respondJSON(w, http.StatusOK, AuthResponse{
		Success: true,
		Message: "Logout successful!",
	})
}

// CheckAuth returns the freshly loaded principal for a valid session.
func CheckAuth(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.Principal(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"user": user.Public()})
}

// UpdateProfile handles the multipart profile update, including the avatar
// upload.
func UpdateProfile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	email := r.FormValue("email")
	if email == "" {
		respondError(w, http.StatusBadRequest, "Email is required")
		return
	}

	_, header, err := r.FormFile("profileImage")
	if err != nil {
		respondError(w, http.StatusBadRequest, "No file uploaded!")
		return
	}

	imageURL, err := mediaStore.Save(r.Context(), header)
	if err != nil {
		log.Printf("ERROR: profile image upload failed: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to upload profile image")
		return
	}

	user, err := accountService.UpdateProfile(r.Context(), email, store.ProfileUpdate{
		Name:         r.FormValue("name"),
		Phone:        r.FormValue("phone"),
		Address:      r.FormValue("location"),
		City:         r.FormValue("city"),
		Zip:          r.FormValue("zip"),
		KitchenName:  r.FormValue("kitchenName"),
		ProfileImage: imageURL,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusNotFound, "User not found")
			return
		}
		log.Printf("ERROR: failed to update profile: %v", err)
		respondError(w, http.StatusInternalServerError, "Server error. Please try again.")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"message":  "Profile updated successfully!",
		"imageUrl": imageURL,
		"user":     user.Public(),
	})
}

// GetProfileImage redirects to the stored avatar for an email.
func GetProfileImage(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	user, err := accountService.GetByEmail(r.Context(), email)
	if err != nil || user.ProfileImage == "" {
		http.Error(w, "Image not found", http.StatusNotFound)
		return
	}

	http.Redirect(w, r, user.ProfileImage, http.StatusFound)
}

func setTokenCookie(w http.ResponseWriter, token string) {
	sameSite := http.SameSiteLaxMode
	if production {
		sameSite = http.SameSiteNoneMode
	}
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   cookieMaxAge,
		HttpOnly: true,
		Secure:   production,
		SameSite: sameSite,
		Expires:  time.Now().Add(cookieMaxAge * time.Second),
	})
}

func clearTokenCookie(w http.ResponseWriter) {
	sameSite := http.SameSiteLaxMode
	if production {
		sameSite = http.SameSiteNoneMode
	}
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   production,
		SameSite: sameSite,
	})
}
