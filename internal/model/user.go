package model

import "time"

// User represents an application user record as stored in the
// `users` table. Each field corresponds to a column in the
// database. The json tags are omitted here because these structs
// are primarily used internally by the repository layer; handlers
// define separate response types with appropriate JSON tags so the
// password hash never crosses the API boundary by accident.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password.
//  Name         – optional display name (empty when NULL).
//  Role         – informal role string ("user" or "admin").  Stored but
//                 not enforced by any operation; every valid session may
//                 perform admin actions.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    // users.id
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	Name         string    // users.name (NULL maps to "")
	Role         string    // users.role
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}

// Session models an entry in the `sessions` table. A session proves
// that a user authenticated within a validity window. The token is
// an opaque random value; the row itself is the source of truth for
// validity. A user may hold multiple concurrent sessions. Rows are
// removed on explicit logout or transitively when the owning user is
// deleted; expired rows simply stop matching validation queries.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the session.
//  Token     – opaque, unguessable token handed to the client.
//  ExpiresAt – expiration timestamp of the session.
//  CreatedAt – timestamp of creation.
type Session struct {
	ID        uint64    // sessions.id
	UserID    uint64    // sessions.user_id
	Token     string    // sessions.token
	ExpiresAt time.Time // sessions.expires_at
	CreatedAt time.Time // sessions.created_at
}
