package model

import "time"

// User represents an application account as stored in the `users`
// table. Usernames are stored lowercased so that logins are
// case-insensitive, and only a bcrypt hash of the password is kept.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Username     – unique username, lowercase.
//  PasswordHash – bcrypt hashed password.
//  Created      – timestamp of creation.
//  Updated      – timestamp of last update.
type User struct {
	ID           uint64    // users.id
	Username     string    // users.username
	PasswordHash string    // users.password_hash
	Created      time.Time // users.created
	Updated      time.Time // users.updated
}

// RefreshToken models an entry in the `refresh_tokens` table. Each
// refresh token belongs to a user and carries metadata for expiry
// and revocation. The plain token is never stored; only its SHA-256
// hash.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the token.
//  TokenHash – SHA-256 hex digest of the token value.
//  ExpiresAt – expiration timestamp of the token.
//  RevokedAt – when the token was revoked (null if still active).
//  Created   – timestamp of creation.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	Created   time.Time  // refresh_tokens.created
}
