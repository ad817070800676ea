//go:build !wasm
// +build !wasm

package gorm

import (
	"time"

	dk "github.com/doorkeep/doorkeep"
)

// VerificationModel is the GORM model for verification records
type VerificationModel struct {
	DiscordID  string  `gorm:"primaryKey;size:32"`
	Email      *string `gorm:"size:255"`
	Verified   bool    `gorm:"default:false"`
	Username   string  `gorm:"size:64"`
	GlobalName string  `gorm:"size:64"`
	Avatar     string  `gorm:"size:64"`
	// Set by the verifier at persistence time, not by the database; a
	// re-verification overwrites it along with every other column.
	CreatedAt time.Time
}

func (VerificationModel) TableName() string {
	return "verifications"
}

func (m *VerificationModel) ToRecord() *dk.VerificationRecord {
	return &dk.VerificationRecord{
		DiscordID:  m.DiscordID,
		Email:      m.Email,
		Verified:   m.Verified,
		Username:   m.Username,
		GlobalName: m.GlobalName,
		Avatar:     m.Avatar,
		CreatedAt:  m.CreatedAt,
	}
}

func RecordToModel(r *dk.VerificationRecord) *VerificationModel {
	return &VerificationModel{
		DiscordID:  r.DiscordID,
		Email:      r.Email,
		Verified:   r.Verified,
		Username:   r.Username,
		GlobalName: r.GlobalName,
		Avatar:     r.Avatar,
		CreatedAt:  r.CreatedAt,
	}
}
