package handlers_test

import (
	"net/http"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForgotPassword_UnknownEmailIsGenericSuccess(t *testing.T) {
	f := newFixture()

	rec := doJSON(t, f, http.MethodPost, "/api/auth/forgot-password", map[string]string{
		"email": "a@b.com",
	})
	assert.Equal(t, http.StatusOK, rec.Code, "must not reveal account non-existence")
	assert.Empty(t, f.mailer.sent, "no email for unknown account")
}

func TestForgotPassword_KnownEmail(t *testing.T) {
	f := newFixture()
	registerDonor(t, f, "a@b.com", "pw123456")

	rec := doJSON(t, f, http.MethodPost, "/api/auth/forgot-password", map[string]string{
		"email": "a@b.com",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	entry, ok := f.ledger.entries["a@b.com"]
	require.True(t, ok, "a code must be stored")
	assert.Regexp(t, regexp.MustCompile(`^\d{4}$`), entry.Code)
	require.Len(t, f.mailer.sent, 1)
	assert.Contains(t, f.mailer.sent[0].Text, entry.Code)
}

func TestForgotPassword_MalformedEmail(t *testing.T) {
	f := newFixture()

	rec := doJSON(t, f, http.MethodPost, "/api/auth/forgot-password", map[string]string{
		"email": "not-an-email",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestForgotPassword_DispatchFailure(t *testing.T) {
	f := newFixture()
	registerDonor(t, f, "a@b.com", "pw123456")
	f.mailer.fail = true

	rec := doJSON(t, f, http.MethodPost, "/api/auth/forgot-password", map[string]string{
		"email": "a@b.com",
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestResetPassword_RoundTrip(t *testing.T) {
	f := newFixture()
	registerDonor(t, f, "a@b.com", "pw123456")

	rec := doJSON(t, f, http.MethodPost, "/api/auth/forgot-password", map[string]string{"email": "a@b.com"})
	require.Equal(t, http.StatusOK, rec.Code)
	code := f.ledger.entries["a@b.com"].Code

	t.Run("wrong code is rejected, entry retained", func(t *testing.T) {
		wrong := "0000"
		if code == wrong {
			wrong = "0001"
		}
		rec := doJSON(t, f, http.MethodPost, "/api/auth/reset-password", map[string]string{
			"email":       "a@b.com",
			"code":        wrong,
			"newPassword": "new-password-1",
		})
		assert.Equal(t, http.StatusForbidden, rec.Code)
		_, ok := f.ledger.entries["a@b.com"]
		assert.True(t, ok)
	})

	t.Run("weak password is rejected", func(t *testing.T) {
		rec := doJSON(t, f, http.MethodPost, "/api/auth/reset-password", map[string]string{
			"email":       "a@b.com",
			"code":        code,
			"newPassword": "short",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("correct code succeeds exactly once", func(t *testing.T) {
		rec := doJSON(t, f, http.MethodPost, "/api/auth/reset-password", map[string]string{
			"email":       "a@b.com",
			"code":        code,
			"newPassword": "new-password-1",
		})
		require.Equal(t, http.StatusOK, rec.Code)

		// Old password dead, new one works.
		loginCookie(t, f, "a@b.com", "new-password-1")
		bad := doJSON(t, f, http.MethodPost, "/api/auth/login", map[string]string{
			"username": "a@b.com", "password": "pw123456",
		})
		assert.Equal(t, http.StatusUnauthorized, bad.Code)

		// Replay of the consumed code fails.
		again := doJSON(t, f, http.MethodPost, "/api/auth/reset-password", map[string]string{
			"email":       "a@b.com",
			"code":        code,
			"newPassword": "another-password-1",
		})
		assert.Equal(t, http.StatusForbidden, again.Code)
	})
}

func TestUpdatePassword_RequiresSession(t *testing.T) {
	f := newFixture()

	rec := doJSON(t, f, http.MethodPut, "/api/auth/update-password", map[string]string{
		"currentPassword": "pw123456",
		"newPassword":     "new-password",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUpdatePassword_InSession(t *testing.T) {
	f := newFixture()
	registerDonor(t, f, "donor@example.com", "pw123456")
	cookie := loginCookie(t, f, "donor@example.com", "pw123456")

	t.Run("wrong current password", func(t *testing.T) {
		rec := doJSON(t, f, http.MethodPut, "/api/auth/update-password", map[string]string{
			"currentPassword": "not-it",
			"newPassword":     "new-password",
		}, cookie)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("same password", func(t *testing.T) {
		rec := doJSON(t, f, http.MethodPut, "/api/auth/update-password", map[string]string{
			"currentPassword": "pw123456",
			"newPassword":     "pw123456",
		}, cookie)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("success", func(t *testing.T) {
		rec := doJSON(t, f, http.MethodPut, "/api/auth/update-password", map[string]string{
			"currentPassword": "pw123456",
			"newPassword":     "fresh-pw",
		}, cookie)
		require.Equal(t, http.StatusOK, rec.Code)

		loginCookie(t, f, "donor@example.com", "fresh-pw")
	})
}
