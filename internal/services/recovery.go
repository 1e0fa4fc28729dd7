package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"log"
	"math/big"
	"time"

	"github.com/foodbridge-app/foodbridge-backend/internal/notify"
	"github.com/foodbridge-app/foodbridge-backend/internal/store"
	"github.com/foodbridge-app/foodbridge-backend/pkg/utils"
)

// CodeTTL bounds how long a reset code stays valid.
const CodeTTL = 15 * time.Minute

// RecoveryService drives the OTP password-reset flow: issue a code, verify
// it, mutate the credential. Codes live in the ledger keyed by email; a new
// request overwrites the previous code.
type RecoveryService struct {
	users  store.UserStore
	ledger store.OTPLedger
	mailer notify.Mailer

	now func() time.Time
}

func NewRecoveryService(users store.UserStore, ledger store.OTPLedger, mailer notify.Mailer) *RecoveryService {
	return &RecoveryService{users: users, ledger: ledger, mailer: mailer, now: time.Now}
}

// RequestReset issues a reset code for the email. When no account matches,
// it returns nil without sending anything so callers cannot probe for
// account existence. An actual dispatch failure still surfaces.
func (s *RecoveryService) RequestReset(ctx context.Context, email string) error {
	email = NormalizeEmail(email)

	if _, err := s.users.FindByEmail(ctx, email); err != nil {
		if err == store.ErrNotFound {
			return nil
		}
		return err
	}

	code, err := GenerateResetCode()
	if err != nil {
		return err
	}

	entry := store.OTPEntry{Code: code, ExpiresAt: s.now().Add(CodeTTL)}
	if err := s.ledger.Put(ctx, email, entry, CodeTTL); err != nil {
		return err
	}

	subject := "Your password reset code"
	text := fmt.Sprintf("Your password reset code is %s. It expires in 15 minutes.", code)
	html := fmt.Sprintf("<p>Your password reset code is <b>%s</b>.</p><p>It expires in 15 minutes.</p>", code)
	return s.mailer.Send(ctx, email, subject, text, html)
}

// VerifyAndReset consumes a valid code and overwrites the stored password.
// A mismatched code leaves the entry in place so the user can retry until
// expiry; an expired entry is removed on sight.
func (s *RecoveryService) VerifyAndReset(ctx context.Context, email, code, newPassword string) error {
	email = NormalizeEmail(email)

	if email == "" || code == "" || newPassword == "" {
		return fmt.Errorf("%w: email, code and new password are required", ErrInvalidInput)
	}
	if len(newPassword) < MinPasswordLen {
		return ErrWeakPassword
	}

	entry, ok, err := s.ledger.Get(ctx, email)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCodeNotIssued
	}

	if s.now().After(entry.ExpiresAt) {
		if err := s.ledger.Delete(ctx, email); err != nil {
			log.Printf("failed to purge expired reset code for %s: %v", email, err)
		}
		return ErrCodeExpired
	}

	if entry.Code != code {
		return ErrCodeInvalid
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		// Should not happen while an entry exists, but checked anyway.
		return err
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, user.Email, hash); err != nil {
		return err
	}

	if err := s.ledger.Delete(ctx, email); err != nil {
		log.Printf("failed to delete consumed reset code for %s: %v", email, err)
	}

	// Confirmation is best-effort; the password is already changed.
	subject := "Your password was changed"
	text := "Your password was reset successfully. If this wasn't you, contact support immediately."
	if err := s.mailer.Send(ctx, email, subject, text, ""); err != nil {
		log.Printf("failed to send reset confirmation to %s: %v", email, err)
	}

	return nil
}

// GenerateResetCode draws a 4-digit code (1000-9999) from crypto/rand.
func GenerateResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%04d", n.Int64()+1000), nil
}
