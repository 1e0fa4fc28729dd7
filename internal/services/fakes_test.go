package services

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"sync"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/foodbridge-app/foodbridge-backend/internal/models"
	"github.com/foodbridge-app/foodbridge-backend/internal/store"
)

// In-memory fakes behind the store/notify/media interfaces.

type memUserStore struct {
	mu    sync.Mutex
	users map[string]*models.User // keyed by email
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
	if upd.City != "" {
		u.City = upd.City
	}
	if upd.Zip != "" {
		u.Zip = upd.Zip
	}
	if upd.KitchenName != "" {
		u.KitchenName = upd.KitchenName
	}
	if upd.ProfileImage != "" {
		u.ProfileImage = upd.ProfileImage
	}
	u.UpdatedAt = time.Now()
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
	u.UpdatedAt = time.Now()
	return nil
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
	fail bool
}

func (s *fakeSMS) Send(body string) error {
	if s.fail {
		return errors.New("twilio unreachable")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, body)
	return nil
}

type fakeMedia struct {
	mu    sync.Mutex
	saved []string
	fail  bool
}

func (m *fakeMedia) Save(_ context.Context, header *multipart.FileHeader) (string, error) {
	if m.fail {
		return "", errors.New("storage unavailable")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	url := "https://media.test/" + header.Filename
	m.saved = append(m.saved, url)
	return url, nil
}

// imageFileHeaders builds real multipart file headers for the given
// filenames by round-tripping a form through the multipart reader.
func imageFileHeaders(t *testing.T, names ...string) []*multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, name := range names {
		fw, err := mw.CreateFormFile("images", name)
		if err != nil {
			t.Fatalf("CreateFormFile error: %v", err)
		}
		if _, err := fw.Write([]byte("fake-image-bytes")); err != nil {
			t.Fatalf("write error: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close error: %v", err)
	}

	form, err := multipart.NewReader(&buf, mw.Boundary()).ReadForm(32 << 20)
	if err != nil {
		t.Fatalf("ReadForm error: %v", err)
	}
	return form.File["images"]
}
