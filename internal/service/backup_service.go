package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"learnmate/internal/logger"
	"learnmate/internal/repository"
)

// BackupVersion is written into every export
const BackupVersion = "1.0"

// BackupData is the portable snapshot of every stored key
type BackupData struct {
	Version    string            `json:"version"`
	ExportedAt time.Time         `json:"exported_at"`
	Backend    string            `json:"backend"`
	Entries    map[string]string `json:"entries"`
}

// BackupService copies the key-value store to and from JSON snapshots
type BackupService struct {
	kv      repository.KV
	backend string
	log     *logger.Logger
	now     func() time.Time
}

// NewBackupService creates a backup service over kv. backend only labels exports.
func NewBackupService(kv repository.KV, backend string, log *logger.Logger) *BackupService {
	return &BackupService{
		kv:      kv,
		backend: backend,
		log:     log.With("service", "backup"),
		now:     time.Now,
	}
}

// Export writes a snapshot of the store to w
func (s *BackupService) Export(ctx context.Context, w io.Writer) (*BackupData, error) {
	entries, err := s.kv.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read store: %w", err)
	}

	backup := &BackupData{
		Version:    BackupVersion,
		ExportedAt: s.now(),
		Backend:    s.backend,
		Entries:    entries,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return nil, fmt.Errorf("failed to encode backup: %w", err)
	}

	s.log.Info("store exported", "entries", len(entries))
	return backup, nil
}

// ExportFile writes a snapshot to path
func (s *BackupService) ExportFile(ctx context.Context, path string) (*BackupData, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	backup, err := s.Export(ctx, file)
	if err != nil {
		return nil, err
	}
	return backup, file.Sync()
}

// Import loads a snapshot from r. With replace every existing key is removed
// first; otherwise snapshot entries overwrite matching keys only.
func (s *BackupService) Import(ctx context.Context, r io.Reader, replace bool) (*BackupData, error) {
	var backup BackupData
	if err := json.NewDecoder(r).Decode(&backup); err != nil {
		return nil, fmt.Errorf("%w: failed to decode backup: %v", ErrInvalidInput, err)
	}
	if backup.Version != BackupVersion {
		return nil, fmt.Errorf("%w: unsupported backup version %q", ErrInvalidInput, backup.Version)
	}

	s.log.Info("importing backup", "version", backup.Version, "exported_at", backup.ExportedAt, "entries", len(backup.Entries), "replace", replace)

	if replace {
		if err := s.kv.ReplaceAll(ctx, backup.Entries); err != nil {
			return nil, fmt.Errorf("failed to replace store: %w", err)
		}
		return &backup, nil
	}

	for key, value := range backup.Entries {
		if err := s.kv.Set(ctx, key, value); err != nil {
			return nil, fmt.Errorf("failed to import %s: %w", key, err)
		}
	}
	return &backup, nil
}

// ImportFile loads a snapshot from path
func (s *BackupService) ImportFile(ctx context.Context, path string, replace bool) (*BackupData, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()
	return s.Import(ctx, file, replace)
}
