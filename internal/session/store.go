// Package session implements the server-side session store backing the
// authentication cookie. Sessions are opaque random identifiers mapped to
// user ids; all identity state lives server-side.
package session

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// CookieName is the client-held session identifier cookie.
const CookieName = "recipebook_session"

// ErrNotFound is returned when a session id is unknown or expired.
var ErrNotFound = errors.New("session not found")

// Store persists sessions across requests.
type Store interface {
	// Create opens a session for userID and returns its opaque id.
	Create(ctx context.Context, userID uuid.UUID) (string, error)
	// Get resolves a session id to the user it belongs to.
	Get(ctx context.Context, id string) (uuid.UUID, error)
	// Destroy invalidates a session. Destroying an unknown session is
	// not an error.
	Destroy(ctx context.Context, id string) error
}
