// Package session provides the server-side session store. A session binds an
// opaque token, carried in a client cookie, to an authenticated identity.
// The store is injected into the middleware and handlers that need it; there
// is no ambient global session state.
package session

// Identity is the payload bound to a session token.
type Identity struct {
	UserID   uint
	Username string
}

// Store is the contract for session lifecycle management. Create issues a
// new token for an identity, Get resolves a token (expired or unknown tokens
// resolve to nothing), and Destroy invalidates a token. Destroy is
// idempotent: destroying an absent token is a no-op.
type Store interface {
	Create(identity Identity) (string, error)
	Get(token string) (Identity, bool)
	Destroy(token string)
}
