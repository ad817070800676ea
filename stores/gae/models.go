//go:build !wasm
// +build !wasm

package gae

import (
	"time"

	"cloud.google.com/go/datastore"

	dk "github.com/doorkeep/doorkeep"
)

// VerificationEntity is the Datastore entity for verification records.
// Key name is the member id.
type VerificationEntity struct {
	Key        *datastore.Key `datastore:"__key__"`
	Email      *string        `datastore:"email,noindex"`
	Verified   bool           `datastore:"verified"`
	Username   string         `datastore:"username"`
	GlobalName string         `datastore:"global_name,noindex"`
	Avatar     string         `datastore:"avatar,noindex"`
	CreatedAt  time.Time      `datastore:"created_at"`
}

func (e *VerificationEntity) ToRecord(memberID string) *dk.VerificationRecord {
	return &dk.VerificationRecord{
		DiscordID:  memberID,
		Email:      e.Email,
		Verified:   e.Verified,
		Username:   e.Username,
		GlobalName: e.GlobalName,
		Avatar:     e.Avatar,
		CreatedAt:  e.CreatedAt,
	}
}

func RecordToEntity(r *dk.VerificationRecord, key *datastore.Key) *VerificationEntity {
	return &VerificationEntity{
		Key:        key,
		Email:      r.Email,
		Verified:   r.Verified,
		Username:   r.Username,
		GlobalName: r.GlobalName,
		Avatar:     r.Avatar,
		CreatedAt:  r.CreatedAt,
	}
}
