package postgres

import (
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/dhalverson/homebase/core"
)

func (a *Adapter) CreateVerificationToken(token *core.VerificationToken) error {
	a.ensureSchema()

	ctx, cancel := opContext()
	defer cancel()

	query := `INSERT INTO verification_token (identifier, token, expires) VALUES ($1, $2, $3)`
	_, err := a.pool.Exec(ctx, query, token.Identifier, token.Token, token.Expires)
	if err != nil {
		if isUniqueViolation(err) {
			return core.ErrTokenExists
		}
		return storageErr(err)
	}
	return nil
}

// UseVerificationToken deletes and returns the token in one statement.
// The database serializes the two deletes a link-prefetching mail client
// can produce: exactly one caller gets the row back, the other sees no
// rows and reports not found.
func (a *Adapter) UseVerificationToken(identifier, tokenValue string) (*core.VerificationToken, error) {
	a.ensureSchema()

	ctx, cancel := opContext()
	defer cancel()

	query := `DELETE FROM verification_token
	          WHERE identifier = $1 AND token = $2
	          RETURNING identifier, token, expires`

	used := &core.VerificationToken{}
	err := a.pool.QueryRow(ctx, query, identifier, tokenValue).Scan(&used.Identifier, &used.Token, &used.Expires)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, core.ErrTokenNotFound
		}
		return nil, storageErr(err)
	}

	if time.Now().After(used.Expires) {
		return nil, core.ErrTokenNotFound
	}
	return used, nil
}
