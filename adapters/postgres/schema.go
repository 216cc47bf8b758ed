package postgres

import (
	"context"
	"time"
)

// Schema holds the four relations with the column-name contract
// ("emailVerified", "userId", "providerAccountId", "sessionToken") held
// fixed, so a different adapter implementation can be swapped in against
// the same database. Every statement is create-if-not-exists, which is
// what makes the bootstrap safe to run from concurrent callers.
const Schema = `
CREATE TABLE IF NOT EXISTS users (
    id text PRIMARY KEY,
    name text,
    email text NOT NULL UNIQUE,
    "emailVerified" timestamptz,
    image text
);

CREATE TABLE IF NOT EXISTS accounts (
    id text PRIMARY KEY,
    "userId" text NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    type text NOT NULL,
    provider text NOT NULL,
    "providerAccountId" text NOT NULL,
    access_token text,
    refresh_token text,
    scope text,
    expires_at timestamptz,
    CONSTRAINT accounts_provider_unique UNIQUE (provider, "providerAccountId")
);

CREATE TABLE IF NOT EXISTS sessions (
    id text PRIMARY KEY,
    "sessionToken" text NOT NULL UNIQUE,
    "userId" text NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    expires timestamptz NOT NULL
);

CREATE TABLE IF NOT EXISTS verification_token (
    identifier text NOT NULL,
    token text NOT NULL,
    expires timestamptz NOT NULL,
    PRIMARY KEY (identifier, token)
);
`

// schemaVerified is process-wide and reset only by restart. Plain bool,
// no mutex: a racing check-then-act at worst runs the DDL twice, and the
// DDL is idempotent.
var schemaVerified bool

// ensureSchema lazily runs the DDL on first use. There is no existence
// pre-check: probing one relation would mistake a partially created
// schema (say, an interrupted first bootstrap that got only the users
// table in) for a complete one, while the create-if-not-exists
// statements already make a full run against an existing schema a
// no-op. Failure is logged and swallowed: a degraded-but-running
// process is preferred over a crash loop, and any operation that
// actually needs the missing schema fails individually with a storage
// error.
func (a *Adapter) ensureSchema() {
	if schemaVerified {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout+queryTimeout)
	defer cancel()

	start := time.Now()
	if _, err := a.pool.Exec(ctx, Schema); err != nil {
		a.log.Warn().Err(err).Msg("schema bootstrap failed; continuing")
		return
	}
	a.log.Info().Dur("took", time.Since(start)).Msg("auth schema verified")

	schemaVerified = true
}
