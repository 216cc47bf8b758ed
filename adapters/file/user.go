package file

import (
	"github.com/google/uuid"

	"github.com/dhalverson/homebase/core"
)

func (a *Adapter) CreateUser(user *core.User) error {
	if user.Email == "" {
		return core.ErrEmailRequired
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	doc, err := a.load()
	if err != nil {
		return err
	}
	for _, existing := range doc.Users {
		if existing.Email == user.Email {
			return core.ErrEmailExists
		}
	}

	user.ID = uuid.New().String()
	doc.Users = append(doc.Users, user)
	return a.save(doc)
}

func (a *Adapter) GetUserByID(id string) (*core.User, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	doc, err := a.load()
	if err != nil {
		return nil, err
	}
	for _, user := range doc.Users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, core.ErrUserNotFound
}

func (a *Adapter) GetUserByEmail(email string) (*core.User, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	doc, err := a.load()
	if err != nil {
		return nil, err
	}
	for _, user := range doc.Users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, core.ErrUserNotFound
}

func (a *Adapter) GetUserByAccount(provider, providerAccountID string) (*core.User, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	doc, err := a.load()
	if err != nil {
		return nil, err
	}
	for _, account := range doc.Accounts {
		if account.Provider != provider || account.ProviderAccountID != providerAccountID {
			continue
		}
		for _, user := range doc.Users {
			if user.ID == account.UserID {
				return user, nil
			}
		}
	}
	return nil, core.ErrUserNotFound
}

func (a *Adapter) UpdateUser(user *core.User) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	doc, err := a.load()
	if err != nil {
		return err
	}
	for i, existing := range doc.Users {
		if existing.ID == user.ID {
			doc.Users[i] = user
			return a.save(doc)
		}
	}
	return core.ErrUserNotFound
}

// DeleteUser cascades to the user's accounts and sessions. Deleting an
// absent user is a no-op.
func (a *Adapter) DeleteUser(id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	doc, err := a.load()
	if err != nil {
		return err
	}

	users := doc.Users[:0]
	found := false
	for _, user := range doc.Users {
		if user.ID == id {
			found = true
			continue
		}
		users = append(users, user)
	}
	if !found {
		return nil
	}
	doc.Users = users

	accounts := doc.Accounts[:0]
	for _, account := range doc.Accounts {
		if account.UserID != id {
			accounts = append(accounts, account)
		}
	}
	doc.Accounts = accounts

	sessions := doc.Sessions[:0]
	for _, session := range doc.Sessions {
		if session.UserID != id {
			sessions = append(sessions, session)
		}
	}
	doc.Sessions = sessions

	return a.save(doc)
}
