package file

import (
	"time"

	"github.com/dhalverson/homebase/core"
	"github.com/dhalverson/homebase/pkg/crypto"
)

func (a *Adapter) CreateSession(session *core.Session) error {
	if !session.Expires.After(time.Now()) {
		return core.ErrSessionExpiresPast
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	doc, err := a.load()
	if err != nil {
		return err
	}
	for _, existing := range doc.Sessions {
		if existing.SessionToken == session.SessionToken {
			return core.ErrSessionExists
		}
	}

	if session.ID == "" {
		id, err := crypto.NewID()
		if err != nil {
			return err
		}
		session.ID = id
	}
	doc.Sessions = append(doc.Sessions, session)
	return a.save(doc)
}

func (a *Adapter) GetSessionAndUser(sessionToken string) (*core.Session, *core.User, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	doc, err := a.load()
	if err != nil {
		return nil, nil, err
	}
	for _, session := range doc.Sessions {
		if session.SessionToken != sessionToken {
			continue
		}
		for _, user := range doc.Users {
			if user.ID == session.UserID {
				return session, user, nil
			}
		}
		return nil, nil, core.ErrUserNotFound
	}
	return nil, nil, core.ErrSessionNotFound
}

func (a *Adapter) UpdateSession(session *core.Session) (*core.Session, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	doc, err := a.load()
	if err != nil {
		return nil, err
	}
	for i, existing := range doc.Sessions {
		if existing.SessionToken == session.SessionToken {
			updated := *existing
			if !session.Expires.IsZero() {
				updated.Expires = session.Expires
			}
			if session.UserID != "" {
				updated.UserID = session.UserID
			}
			doc.Sessions[i] = &updated
			if err := a.save(doc); err != nil {
				return nil, err
			}
			return &updated, nil
		}
	}
	return nil, core.ErrSessionNotFound
}

func (a *Adapter) DeleteSession(sessionToken string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	doc, err := a.load()
	if err != nil {
		return err
	}
	sessions := doc.Sessions[:0]
	found := false
	for _, session := range doc.Sessions {
		if session.SessionToken == sessionToken {
			found = true
			continue
		}
		sessions = append(sessions, session)
	}
	if !found {
		return nil
	}

	doc.Sessions = sessions
	return a.save(doc)
}
