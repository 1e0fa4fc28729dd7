package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/foodbridge-app/foodbridge-backend/internal/models"
	"github.com/foodbridge-app/foodbridge-backend/internal/store"
	"github.com/foodbridge-app/foodbridge-backend/pkg/utils"
)

// Password length floors. Registration and OTP reset share the stricter
// one; the in-session change keeps the looser historical rule.
const (
	MinPasswordLen       = 8
	MinUpdatePasswordLen = 6
)

// AccountService owns registration, authentication and profile mutation
// against the credential store.
type AccountService struct {
	users store.UserStore
}

func NewAccountService(users store.UserStore) *AccountService {
	return &AccountService{users: users}
}

// RegisterInput is the validated registration payload.
type RegisterInput struct {
	Name        string
	Email       string
	Password    string
	Phone       string
	UserType    string
	Address     string
	City        string
	Zip         string
	KitchenName string
}

// Register creates a new account with a hashed password and Pending status.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", ErrInvalidInput)
	}
	if len(in.Password) < MinPasswordLen {
		return nil, ErrWeakPassword
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:        in.Name,
		Email:       NormalizeEmail(in.Email),
		Password:    hash,
		Phone:       in.Phone,
		UserType:    in.UserType,
		Address:     in.Address,
		City:        in.City,
		Zip:         in.Zip,
		KitchenName: in.KitchenName,
		Status:      models.StatusPending,
	}

	if err := s.users.Insert(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate checks credentials and account status. Suspended accounts
// are rejected distinctly from bad credentials.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.FindByEmail(ctx, NormalizeEmail(email))
	if err == store.ErrNotFound {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if user.Status == models.StatusSuspended {
		return nil, ErrUserSuspended
	}

	ok, err := utils.VerifyPassword(password, user.Password)
	if err != nil || !ok {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GetByID loads a user for the authorization middleware's re-resolution of
// the principal.
func (s *AccountService) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.users.FindByID(ctx, id)
}

// GetByEmail loads a user by normalized email.
func (s *AccountService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.users.FindByEmail(ctx, NormalizeEmail(email))
}

// UpdateProfile mutates the profile fields of the given account.
func (s *AccountService) UpdateProfile(ctx context.Context, email string, upd store.ProfileUpdate) (*models.User, error) {
	return s.users.UpdateProfile(ctx, NormalizeEmail(email), upd)
}

// UpdatePassword is the authenticated in-session change: the caller's
// identity comes from the verified session token, never the request body.
func (s *AccountService) UpdatePassword(ctx context.Context, email, currentPassword, newPassword string) error {
	if currentPassword == "" || newPassword == "" {
		return fmt.Errorf("%w: both passwords are required", ErrInvalidInput)
	}
	if len(newPassword) < MinUpdatePasswordLen {
		return ErrWeakPassword
	}
	if newPassword == currentPassword {
		return ErrSamePassword
	}

	user, err := s.users.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return err
	}

	ok, err := utils.VerifyPassword(currentPassword, user.Password)
	if err != nil || !ok {
		return ErrWrongPassword
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, user.Email, hash)
}

// NormalizeEmail lower-cases and trims an email so lookups are
// case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
