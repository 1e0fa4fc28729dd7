package handlers_test

import (
	"context"
	"errors"
	"mime/multipart"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/foodbridge-app/foodbridge-backend/internal/handlers"
	"github.com/foodbridge-app/foodbridge-backend/internal/middleware"
	"github.com/foodbridge-app/foodbridge-backend/internal/models"
	"github.com/foodbridge-app/foodbridge-backend/internal/routes"
	"github.com/foodbridge-app/foodbridge-backend/internal/services"
	"github.com/foodbridge-app/foodbridge-backend/internal/store"
)

const testSecret = "handler-test-secret"

type memUserStore struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: map[string]*models.User{}}
}

func (s *memUserStore) Insert(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.Email]; ok {
		return store.ErrDuplicateEmail
	}
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
	cp := *u
	s.users[u.Email] = &cp
	return nil
}

func (s *memUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[email]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *memUserStore) FindByID(_ context.Context, id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID.Hex() == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *memUserStore) UpdateProfile(_ context.Context, email string, upd store.ProfileUpdate) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[email]
	if !ok {
		return nil, store.ErrNotFound
	}
	if upd.Name != "" {
		u.Name = upd.Name
	}
	if upd.Phone != "" {
		u.Phone = upd.Phone
	}
	if upd.Address != "" {
		u.Address = upd.Address
	}
	if upd.ProfileImage != "" {
		u.ProfileImage = upd.ProfileImage
	}
	cp := *u
	return &cp, nil
}

func (s *memUserStore) UpdatePassword(_ context.Context, email, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[email]
	if !ok {
		return store.ErrNotFound
	}
	u.Password = passwordHash
	return nil
}

type memDonationStore struct {
	mu        sync.Mutex
	donations []models.Donation
}

func (s *memDonationStore) Insert(_ context.Context, d *models.Donation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d.ID.IsZero() {
		d.ID = primitive.NewObjectID()
	}
	s.donations = append(s.donations, *d)
	return nil
}

func (s *memDonationStore) FindAll(_ context.Context) ([]models.Donation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Donation, len(s.donations))
	copy(out, s.donations)
	return out, nil
}

func (s *memDonationStore) FindByID(_ context.Context, id string) (*models.Donation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range s.donations {
		if d.ID.Hex() == id {
			cp := d
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

type memOTPLedger struct {
	mu      sync.Mutex
	entries map[string]store.OTPEntry
}

func newMemOTPLedger() *memOTPLedger {
	return &memOTPLedger{entries: map[string]store.OTPEntry{}}
}

func (l *memOTPLedger) Put(_ context.Context, email string, entry store.OTPEntry, _ time.Duration) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries[email] = entry
	return nil
}

func (l *memOTPLedger) Get(_ context.Context, email string) (store.OTPEntry, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	entry, ok := l.entries[email]
	return entry, ok, nil
}

func (l *memOTPLedger) Delete(_ context.Context, email string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.entries, email)
	return nil
}

type sentMail struct {
	To      string
	Subject string
	Text    string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	fail bool
}

func (m *fakeMailer) Send(_ context.Context, to, subject, text, _ string) error {
	if m.fail {
		return errors.New("smtp unreachable")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, Text: text})
	return nil
}

type fakeSMS struct {
	mu   sync.Mutex
	sent []string
}

func (s *fakeSMS) Send(body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, body)
	return nil
}

type fakeMedia struct{}

func (fakeMedia) Save(_ context.Context, header *multipart.FileHeader) (string, error) {
	return "https://media.test/" + header.Filename, nil
}

// fixture bundles the fakes behind a routed test mux.
type fixture struct {
	mux       *chi.Mux
	users     *memUserStore
	donations *memDonationStore
	ledger    *memOTPLedger
	mailer    *fakeMailer
	sms       *fakeSMS
}

func newFixture() *fixture {
	f := &fixture{
		users:     newMemUserStore(),
		donations: &memDonationStore{},
		ledger:    newMemOTPLedger(),
		mailer:    &fakeMailer{},
		sms:       &fakeSMS{},
	}

	accounts := services.NewAccountService(f.users)
	recovery := services.NewRecoveryService(f.users, f.ledger, f.mailer)
	donations := services.NewDonationService(f.donations, fakeMedia{}, f.sms)

	handlers.Init(accounts, recovery, donations, fakeMedia{}, []byte(testSecret), false)

	f.mux = chi.NewRouter()
	authn := middleware.Authenticator(accounts, []byte(testSecret))
	routes.SetupRoutes(f.mux, authn, "")
	return f
}
