package homebase

import (
	"errors"
	"strings"
	"sync"
	"testing"
)

type MockAuthStorage struct {
	mu     sync.RWMutex
	users  map[string]*User
	tokens map[string]*VerificationToken
}

func NewMockAuthStorage() *MockAuthStorage {
	return &MockAuthStorage{
		users:  make(map[string]*User),
		tokens: make(map[string]*VerificationToken),
	}
}

// UserStorage methods
func (m *MockAuthStorage) CreateUser(u *User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.Email] = u
	return nil
}

func (m *MockAuthStorage) GetUserByID(id string) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (m *MockAuthStorage) GetUserByEmail(email string) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (m *MockAuthStorage) GetUserByAccount(provider, providerAccountID string) (*User, error) {
	return nil, ErrUserNotFound
}

func (m *MockAuthStorage) UpdateUser(u *User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.Email] = u
	return nil
}

func (m *MockAuthStorage) DeleteUser(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, u := range m.users {
		if u.ID == id {
			delete(m.users, k)
		}
	}
	return nil
}

// AccountStorage methods (minimal stubs)
func (m *MockAuthStorage) LinkAccount(a *Account) error                           { return nil }
func (m *MockAuthStorage) UnlinkAccount(provider, providerAccountID string) error { return nil }

// SessionStorage methods (minimal stubs)
func (m *MockAuthStorage) CreateSession(s *Session) error { return nil }
func (m *MockAuthStorage) GetSessionAndUser(sessionToken string) (*Session, *User, error) {
	return nil, nil, nil
}
func (m *MockAuthStorage) UpdateSession(s *Session) (*Session, error) { return s, nil }
func (m *MockAuthStorage) DeleteSession(sessionToken string) error    { return nil }

// TokenStorage methods
func (m *MockAuthStorage) CreateVerificationToken(t *VerificationToken) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[t.Identifier+"\x00"+t.Token] = t
	return nil
}

func (m *MockAuthStorage) UseVerificationToken(identifier, token string) (*VerificationToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := identifier + "\x00" + token
	v, ok := m.tokens[key]
	if !ok {
		return nil, ErrTokenNotFound
	}
	delete(m.tokens, key)
	return v, nil
}

type mockMailer struct {
	sent []string
}

func (m *mockMailer) LoginEmail(to, loginURL string) error {
	m.sent = append(m.sent, loginURL)
	return nil
}

// dummy HTTP Adapter
type dummyHTTP struct {
	registered bool
}

func (d *dummyHTTP) RegisterRoutes(h *Homebase) error {
	d.registered = true
	return nil
}

func TestNewShouldReturnErrSecretRequired(t *testing.T) {
	cfg := Config{
		Storage: NewMockAuthStorage(),
		Mailer:  &mockMailer{},
	}

	_, err := New(cfg)
	if !errors.Is(err, ErrSecretRequired) {
		t.Fatalf("expected ErrSecretRequired sentinel (errors.Is), got %v", err)
	}
}

func TestNewShouldReturnErrSecretTooShort(t *testing.T) {
	cfg := Config{
		Secret:  "short-secret",
		Storage: NewMockAuthStorage(),
		Mailer:  &mockMailer{},
	}

	_, err := New(cfg)
	if !errors.Is(err, ErrSecretTooShort) {
		t.Fatalf("expected ErrSecretTooShort sentinel (errors.Is), got %v", err)
	}
	// Message should include the minimum length
	if !strings.Contains(err.Error(), "32") {
		t.Fatalf("expected error message to include minimum length, got %v", err)
	}
}

func TestNewShouldReturnErrStorageRequired(t *testing.T) {
	cfg := Config{
		Secret: "01234567890123456789012345678901",
		Mailer: &mockMailer{},
	}

	_, err := New(cfg)
	if !errors.Is(err, ErrStorageRequired) {
		t.Fatalf("expected ErrStorageRequired sentinel (errors.Is), got %v", err)
	}
}

func TestNewShouldReturnErrMailerRequired(t *testing.T) {
	cfg := Config{
		Secret:  "01234567890123456789012345678901",
		Storage: NewMockAuthStorage(),
	}

	_, err := New(cfg)
	if !errors.Is(err, ErrMailerRequired) {
		t.Fatalf("expected ErrMailerRequired sentinel (errors.Is), got %v", err)
	}
}

func TestNewRegistersRoutesWhenHTTPConfigured(t *testing.T) {
	adapter := &dummyHTTP{}

	cfg := Config{
		Secret:  "01234567890123456789012345678901",
		Storage: NewMockAuthStorage(),
		Mailer:  &mockMailer{},
		HTTP:    adapter,
	}

	h, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if !adapter.registered {
		t.Fatal("expected RegisterRoutes to be called")
	}
	if h.Links == nil || h.Signer == nil {
		t.Fatal("expected Links and Signer to be wired")
	}
}

func TestNewWiresAdminAllowListIntoSigner(t *testing.T) {
	cfg := Config{
		Secret:      "01234567890123456789012345678901",
		Storage:     NewMockAuthStorage(),
		Mailer:      &mockMailer{},
		AdminEmails: "Owner@Example.com",
	}

	h, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	signed, err := h.Signer.Issue("owner@example.com")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	claims, err := h.Signer.Verify(signed)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if claims.Role != "admin" {
		t.Fatalf("expected admin role for allow-listed email, got %q", claims.Role)
	}
}
