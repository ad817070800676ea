//go:build !wasm
// +build !wasm

package gae

import (
	"context"
	"errors"

	"cloud.google.com/go/datastore"

	dk "github.com/doorkeep/doorkeep"
)

// KindVerification is the Datastore kind for verification records
const KindVerification = "VerificationRecord"

// RecordStore implements dk.IdentityRecordStore using Google Cloud
// Datastore. A non-empty namespace isolates records, e.g. per guild.
type RecordStore struct {
	client    *datastore.Client
	namespace string
}

// NewRecordStore creates a new Datastore-backed RecordStore
func NewRecordStore(client *datastore.Client, namespace string) *RecordStore {
	return &RecordStore{client: client, namespace: namespace}
}

func (s *RecordStore) namespacedKey(memberID string) *datastore.Key {
	key := datastore.NameKey(KindVerification, memberID, nil)
	key.Namespace = s.namespace
	return key
}

// PutRecord overwrites the entity wholesale; a Put with the same name key
// replaces every property.
func (s *RecordStore) PutRecord(ctx context.Context, rec *dk.VerificationRecord) error {
	key := s.namespacedKey(rec.DiscordID)
	_, err := s.client.Put(ctx, key, RecordToEntity(rec, key))
	return err
}

func (s *RecordStore) GetRecord(ctx context.Context, memberID string) (*dk.VerificationRecord, error) {
	var entity VerificationEntity
	if err := s.client.Get(ctx, s.namespacedKey(memberID), &entity); err != nil {
		if errors.Is(err, datastore.ErrNoSuchEntity) {
			return nil, dk.ErrRecordNotFound
		}
		return nil, err
	}
	return entity.ToRecord(memberID), nil
}
