package session

import "context"

// Store persists session state by id. Implementations must be safe for
// concurrent use across different ids.
type Store interface {
	// Load returns the state for id, or ErrSessionNotFound.
	Load(ctx context.Context, id string) (*State, error)

	// Save replaces the state for id and refreshes its expiry.
	Save(ctx context.Context, id string, state *State) error

	// Delete removes the state for id. Deleting a missing id is not an error.
	Delete(ctx context.Context, id string) error

	// Ping reports whether the backing storage is reachable.
	Ping(ctx context.Context) error
}
