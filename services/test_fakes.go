package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/dhalverson/homebase/core"
)

// FakeStorage is a test-only in-memory core.AuthStorage. It holds
// entities in maps and exposes error fields for behavior injection.
type FakeStorage struct {
	mu sync.Mutex

	users    map[string]*core.User // by id
	accounts map[string]*core.Account
	sessions map[string]*core.Session
	tokens   map[string]*core.VerificationToken

	nextID int

	createUserErr  error
	createTokenErr error
	useTokenErr    error
}

func NewFakeStorage() *FakeStorage {
	return &FakeStorage{
		users:    make(map[string]*core.User),
		accounts: make(map[string]*core.Account),
		sessions: make(map[string]*core.Session),
		tokens:   make(map[string]*core.VerificationToken),
	}
}

func accountKey(provider, providerAccountID string) string {
	return provider + "\x00" + providerAccountID
}

func tokenKey(identifier, token string) string {
	return identifier + "\x00" + token
}

func (f *FakeStorage) newID() string {
	f.nextID++
	return fmt.Sprintf("id-%d", f.nextID)
}

func (f *FakeStorage) CreateUser(u *core.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createUserErr != nil {
		return f.createUserErr
	}
	if u.Email == "" {
		return core.ErrEmailRequired
	}
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return core.ErrEmailExists
		}
	}
	u.ID = f.newID()
	f.users[u.ID] = u
	return nil
}

func (f *FakeStorage) GetUserByID(id string) (*core.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, core.ErrUserNotFound
}

func (f *FakeStorage) GetUserByEmail(email string) (*core.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, core.ErrUserNotFound
}

func (f *FakeStorage) GetUserByAccount(provider, providerAccountID string) (*core.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	a, ok := f.accounts[accountKey(provider, providerAccountID)]
	if !ok {
		return nil, core.ErrUserNotFound
	}
	if u, ok := f.users[a.UserID]; ok {
		return u, nil
	}
	return nil, core.ErrUserNotFound
}

func (f *FakeStorage) UpdateUser(u *core.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.users[u.ID]; !ok {
		return core.ErrUserNotFound
	}
	f.users[u.ID] = u
	return nil
}

func (f *FakeStorage) DeleteUser(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.users, id)
	for k, a := range f.accounts {
		if a.UserID == id {
			delete(f.accounts, k)
		}
	}
	for k, s := range f.sessions {
		if s.UserID == id {
			delete(f.sessions, k)
		}
	}
	return nil
}

func (f *FakeStorage) LinkAccount(a *core.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := accountKey(a.Provider, a.ProviderAccountID)
	if _, ok := f.accounts[key]; ok {
		return core.ErrAccountExists
	}
	if a.ID == "" {
		a.ID = f.newID()
	}
	f.accounts[key] = a
	return nil
}

func (f *FakeStorage) UnlinkAccount(provider, providerAccountID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.accounts, accountKey(provider, providerAccountID))
	return nil
}

func (f *FakeStorage) CreateSession(s *core.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.sessions[s.SessionToken]; ok {
		return core.ErrSessionExists
	}
	f.sessions[s.SessionToken] = s
	return nil
}

func (f *FakeStorage) GetSessionAndUser(sessionToken string) (*core.Session, *core.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	s, ok := f.sessions[sessionToken]
	if !ok {
		return nil, nil, core.ErrSessionNotFound
	}
	u, ok := f.users[s.UserID]
	if !ok {
		return nil, nil, core.ErrUserNotFound
	}
	return s, u, nil
}

func (f *FakeStorage) UpdateSession(s *core.Session) (*core.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	existing, ok := f.sessions[s.SessionToken]
	if !ok {
		return nil, core.ErrSessionNotFound
	}
	if !s.Expires.IsZero() {
		existing.Expires = s.Expires
	}
	if s.UserID != "" {
		existing.UserID = s.UserID
	}
	return existing, nil
}

func (f *FakeStorage) DeleteSession(sessionToken string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.sessions, sessionToken)
	return nil
}

func (f *FakeStorage) CreateVerificationToken(t *core.VerificationToken) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createTokenErr != nil {
		return f.createTokenErr
	}
	key := tokenKey(t.Identifier, t.Token)
	if _, ok := f.tokens[key]; ok {
		return core.ErrTokenExists
	}
	f.tokens[key] = t
	return nil
}

func (f *FakeStorage) UseVerificationToken(identifier, token string) (*core.VerificationToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.useTokenErr != nil {
		return nil, f.useTokenErr
	}
	key := tokenKey(identifier, token)
	t, ok := f.tokens[key]
	if !ok {
		return nil, core.ErrTokenNotFound
	}
	delete(f.tokens, key)
	if time.Now().After(t.Expires) {
		return nil, core.ErrTokenNotFound
	}
	return t, nil
}

// FakeMailer records deliveries and can be told to fail.
type FakeMailer struct {
	mu      sync.Mutex
	sent    []sentMail
	sendErr error
}

type sentMail struct {
	to  string
	url string
}

func (m *FakeMailer) LoginEmail(to, loginURL string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, sentMail{to: to, url: loginURL})
	return nil
}

func (m *FakeMailer) lastSent() (sentMail, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.sent) == 0 {
		return sentMail{}, false
	}
	return m.sent[len(m.sent)-1], true
}
