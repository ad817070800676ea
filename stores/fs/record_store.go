package fs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	dk "github.com/doorkeep/doorkeep"
)

// RecordStore stores verification records as JSON files, one per member id,
// under <StoragePath>/users. Suitable for development and small deployments;
// writes are atomic (write temp file, rename) so a concurrent reader never
// sees a partial record and concurrent writers are last-write-wins.
type RecordStore struct {
	StoragePath string
}

func NewRecordStore(storagePath string) *RecordStore {
	return &RecordStore{StoragePath: storagePath}
}

func (s *RecordStore) recordPath(memberID string) string {
	safeKey := filepath.Base(memberID) // prevents path traversal
	return filepath.Join(s.StoragePath, "users", safeKey+".json")
}

func (s *RecordStore) PutRecord(_ context.Context, rec *dk.VerificationRecord) error {
	path := s.recordPath(rec.DiscordID)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}

	return writeAtomicFile(path, data)
}

func (s *RecordStore) GetRecord(_ context.Context, memberID string) (*dk.VerificationRecord, error) {
	data, err := os.ReadFile(s.recordPath(memberID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, dk.ErrRecordNotFound
		}
		return nil, err
	}

	var rec dk.VerificationRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}
