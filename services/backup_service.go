package services

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/pdv-restaurante/pdv-api/utils"
	"go.uber.org/zap"
)

// BackupResult describes a finished backup
type BackupResult struct {
	Path         string
	Key          string
	PresignedURL string
}

// BackupService copies the SQLite database file and optionally ships the copy
// to remote storage
type BackupService struct {
	storage BackupStorage
	log     *zap.Logger
	now     func() time.Time
}

// NewBackupService creates a BackupService. storage may be nil for local-only backups.
func NewBackupService(storage BackupStorage, log *zap.Logger) *BackupService {
	return &BackupService{
		storage: storage,
		log:     log.Named("backup"),
		now:     time.Now,
	}
}

// Backup copies dbPath into dir as backup_YYYY-MM-DD_HH-MM-SS.db
func (s *BackupService) Backup(ctx context.Context, dbPath, dir string) (*BackupResult, error) {
	target := filepath.Join(dir, utils.BackupFileName(s.now()))
	if err := utils.CopyFile(dbPath, target); err != nil {
		return nil, fmt.Errorf("backup of %s failed: %w", dbPath, err)
	}
	s.log.Info("backup written", zap.String("source", dbPath), zap.String("path", target))

	result := &BackupResult{Path: target}
	if s.storage == nil {
		return result, nil
	}

	key, err := s.storage.UploadFile(ctx, target)
	if err != nil {
		return result, fmt.Errorf("backup upload failed: %w", err)
	}
	result.Key = key

	url, err := s.storage.GetPresignedURL(ctx, key)
	if err != nil {
		return result, fmt.Errorf("failed to presign backup: %w", err)
	}
	result.PresignedURL = url

	return result, nil
}
