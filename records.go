package doorkeep

import (
	"context"
	"errors"
	"time"
)

// ErrRecordNotFound is returned by IdentityRecordStore.GetRecord when no
// record exists for the requested member id.
var ErrRecordNotFound = errors.New("record not found")

// VerificationRecord is the persisted outcome of a completed handshake. A
// record exists for a member id if and only if a callback run for that
// member passed every validation step; there is no partial or pending state.
//
// Verified reflects Discord's own email-verification flag, not handshake
// success. Email is nil when the account has no verified email or the email
// scope was not granted.
type VerificationRecord struct {
	DiscordID  string    `json:"discord_id"`
	Email      *string   `json:"email"`
	Verified   bool      `json:"verified"`
	Username   string    `json:"username"`
	GlobalName string    `json:"global_name"`
	Avatar     string    `json:"avatar"`
	CreatedAt  time.Time `json:"created_at"`
}

// IdentityRecordStore is durable key-value persistence of verification
// results, keyed by Discord member id. Writes are wholesale overwrites:
// re-verifying a member replaces the prior record entirely, no merge.
// Concurrent writes for the same member are last-write-wins.
type IdentityRecordStore interface {
	// PutRecord stores rec under rec.DiscordID, overwriting any prior record.
	PutRecord(ctx context.Context, rec *VerificationRecord) error

	// GetRecord returns the record for memberID, or ErrRecordNotFound.
	GetRecord(ctx context.Context, memberID string) (*VerificationRecord, error)
}
