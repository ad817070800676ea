//go:build !wasm
// +build !wasm

package gorm

import (
	"context"
	"errors"

	"gorm.io/gorm"

	dk "github.com/doorkeep/doorkeep"
)

// AutoMigrate runs database migrations for the verification table
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&VerificationModel{})
}

// RecordStore implements dk.IdentityRecordStore using GORM. The caller
// supplies the *gorm.DB, so any dialect works.
type RecordStore struct {
	db *gorm.DB
}

func NewRecordStore(db *gorm.DB) *RecordStore {
	return &RecordStore{db: db}
}

// PutRecord upserts by primary key. Save replaces every column, which is
// exactly the wholesale-overwrite contract of the store.
func (s *RecordStore) PutRecord(ctx context.Context, rec *dk.VerificationRecord) error {
	return s.db.WithContext(ctx).Save(RecordToModel(rec)).Error
}

func (s *RecordStore) GetRecord(ctx context.Context, memberID string) (*dk.VerificationRecord, error) {
	var model VerificationModel
	if err := s.db.WithContext(ctx).First(&model, "discord_id = ?", memberID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, dk.ErrRecordNotFound
		}
		return nil, err
	}
	return model.ToRecord(), nil
}
