package model

import "time"

// Role is the closed set of account roles.  Values are stored
// verbatim in the users.role column and carried on access tokens.
type Role string

const (
    RoleUser  Role = "USER"  // regular passenger account
    RoleAdmin Role = "ADMIN" // administrative account
)

// ValidRole reports whether s names a known role.  Handlers use it
// to reject role updates outside the closed enumeration.
func ValidRole(s string) bool {
    switch Role(s) {
    case RoleUser, RoleAdmin:
        return true
    }
    return false
}

// User represents an application user record as stored in the
// `users` table.  Each field corresponds to a column in the
// database.  The json tags are omitted here because these structs
// are primarily used internally by the repository layer; handlers
// define separate response types with appropriate JSON tags.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Name         – display name shown on bookings.
//  Email        – unique email address.
//  Phone        – optional contact number (empty when absent).
//  PasswordHash – bcrypt hashed password.
//  Role         – account role (USER or ADMIN).
//  CreatedAt    – timestamp of creation.
type User struct {
    ID           uint64    // users.id
    Name         string    // users.name
    Email        string    // users.email
    Phone        string    // users.phone (nullable, empty when unset)
    PasswordHash string    // users.password_hash
    Role         Role      // users.role
    CreatedAt    time.Time // users.created_at
}

// RefreshToken models an entry in the `refresh_tokens` table.  Each
// refresh token belongs to a user and carries an absolute expiry.
// The plain token value is never stored; only its SHA‑256 hash.
// A row is consumed (revoked) exactly once on rotation and deleted
// on logout.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the token.
//  TokenHash – SHA‑256 hex digest of the token value.
//  ExpiresAt – expiration timestamp of the token.
//  RevokedAt – when the token was consumed by a rotation (null while active).
//  CreatedAt – timestamp of creation.
type RefreshToken struct {
    ID        uint64     // refresh_tokens.id
    UserID    uint64     // refresh_tokens.user_id
    TokenHash string     // refresh_tokens.token_hash
    ExpiresAt time.Time  // refresh_tokens.expires_at
    RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
    CreatedAt time.Time  // refresh_tokens.created_at
}
