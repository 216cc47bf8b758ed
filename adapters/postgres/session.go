package postgres

import (
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/dhalverson/homebase/core"
	"github.com/dhalverson/homebase/pkg/crypto"
)

func (a *Adapter) CreateSession(session *core.Session) error {
	a.ensureSchema()

	if !session.Expires.After(time.Now()) {
		return core.ErrSessionExpiresPast
	}

	ctx, cancel := opContext()
	defer cancel()

	if session.ID == "" {
		id, err := crypto.NewID()
		if err != nil {
			return err
		}
		session.ID = id
	}

	query := `INSERT INTO sessions (id, "sessionToken", "userId", expires) VALUES ($1, $2, $3, $4)`
	_, err := a.pool.Exec(ctx, query, session.ID, session.SessionToken, session.UserID, session.Expires)
	if err != nil {
		if isUniqueViolation(err) {
			return core.ErrSessionExists
		}
		return storageErr(err)
	}
	return nil
}

func (a *Adapter) GetSessionAndUser(sessionToken string) (*core.Session, *core.User, error) {
	a.ensureSchema()

	ctx, cancel := opContext()
	defer cancel()

	query := `SELECT s.id, s."sessionToken", s."userId", s.expires,
	                 u.id, u.name, u.email, u."emailVerified", u.image
	          FROM sessions s
	          JOIN users u ON u.id = s."userId"
	          WHERE s."sessionToken" = $1`

	session := &core.Session{}
	user := &core.User{}
	var name *string
	err := a.pool.QueryRow(ctx, query, sessionToken).Scan(
		&session.ID, &session.SessionToken, &session.UserID, &session.Expires,
		&user.ID, &name, &user.Email, &user.EmailVerified, &user.Image,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, core.ErrSessionNotFound
		}
		return nil, nil, storageErr(err)
	}
	if name != nil {
		user.Name = *name
	}
	return session, user, nil
}

func (a *Adapter) UpdateSession(session *core.Session) (*core.Session, error) {
	a.ensureSchema()

	ctx, cancel := opContext()
	defer cancel()

	var expires *time.Time
	if !session.Expires.IsZero() {
		expires = &session.Expires
	}

	query := `UPDATE sessions
	          SET expires = COALESCE($2, expires),
	              "userId" = COALESCE(NULLIF($3, ''), "userId")
	          WHERE "sessionToken" = $1
	          RETURNING id, "sessionToken", "userId", expires`

	updated := &core.Session{}
	err := a.pool.QueryRow(ctx, query, session.SessionToken, expires, session.UserID).Scan(
		&updated.ID, &updated.SessionToken, &updated.UserID, &updated.Expires,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, core.ErrSessionNotFound
		}
		return nil, storageErr(err)
	}
	return updated, nil
}

func (a *Adapter) DeleteSession(sessionToken string) error {
	a.ensureSchema()

	ctx, cancel := opContext()
	defer cancel()

	if _, err := a.pool.Exec(ctx, `DELETE FROM sessions WHERE "sessionToken" = $1`, sessionToken); err != nil {
		return storageErr(err)
	}
	return nil
}
