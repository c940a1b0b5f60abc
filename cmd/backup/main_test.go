package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdv-restaurante/pdv-api/config"
	"github.com/pdv-restaurante/pdv-api/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// backupEnvKeys are cleared for each test so .env files and the caller's
// environment do not leak between cases
var backupEnvKeys = []string{
	"GO_ENV", "DATABASE_URL", "PDV_DB_PATH", "BACKUP_DIR", "BACKUP_S3_BUCKET",
	"AWS_REGION", "AWS_ACCESS_KEY_ID", "AWS_SECRET_ACCESS_KEY", "LOG_LEVEL",
}

// isolate runs the test from an empty working directory with a clean environment
func isolate(t *testing.T) string {
	t.Helper()
	for _, key := range backupEnvKeys {
		key := key
		if value, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { os.Setenv(key, value) })
		} else {
			t.Cleanup(func() { os.Unsetenv(key) })
		}
		os.Unsetenv(key)
	}
	os.Setenv("GO_ENV", "test")

	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })
	return dir
}

// stubStorage swaps the S3 factory for the in-memory mock and records the config it got
func stubStorage(t *testing.T) (*services.MockS3Service, **config.Config) {
	t.Helper()
	mock := services.NewMockS3Service()
	var got *config.Config

	original := newStorage
	newStorage = func(_ context.Context, cfg *config.Config) (services.BackupStorage, error) {
		got = cfg
		return mock, nil
	}
	t.Cleanup(func() { newStorage = original })
	return mock, &got
}

func writeDB(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("SQLite format 3\x00"), 0644))
}

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &bytes.Buffer{}
	err := app.Run(append([]string{"backup"}, args...))
	return out.String(), err
}

func TestBackupCommand(t *testing.T) {
	dir := isolate(t)
	dbPath := filepath.Join(dir, "pdv.db")
	writeDB(t, dbPath)
	backupDir := filepath.Join(dir, "backups")

	out, err := runApp(t, "--db", "sqlite:///"+dbPath, "--dir", backupDir)
	require.NoError(t, err)

	entries, err := os.ReadDir(backupDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasPrefix(entries[0].Name(), "backup_"))
	assert.True(t, strings.HasSuffix(entries[0].Name(), ".db"))
	assert.Contains(t, out, "Backup saved to")
}

func TestBackupCommandReadsDotEnv(t *testing.T) {
	dir := isolate(t)
	writeDB(t, filepath.Join(dir, "store.db"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(
		"DATABASE_URL=store.db\n"+
			"BACKUP_DIR=nightly\n"+
			"BACKUP_S3_BUCKET=pdv-backups\n"+
			"AWS_REGION=sa-east-1\n",
	), 0644))
	mock, got := stubStorage(t)

	out, err := runApp(t)
	require.NoError(t, err)

	require.NotNil(t, *got, "a bucket from .env enables the upload")
	assert.Equal(t, "pdv-backups", (*got).BackupS3Bucket)
	assert.Equal(t, "sa-east-1", (*got).AWSRegion)

	entries, err := os.ReadDir(filepath.Join(dir, "nightly"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, mock.FileExists("backups/"+entries[0].Name()))
	assert.Contains(t, out, "Download (valid 1h)")
}

func TestBackupCommandFlagsOverrideConfig(t *testing.T) {
	dir := isolate(t)
	writeDB(t, filepath.Join(dir, "store.db"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(
		"DATABASE_URL=missing.db\nBACKUP_S3_BUCKET=pdv-backups\n",
	), 0644))
	_, got := stubStorage(t)

	_, err := runApp(t, "--db", "store.db", "--dir", "manual", "--s3-bucket", "")
	require.NoError(t, err)
	assert.Nil(t, *got, "an empty bucket flag turns the upload off")

	entries, err := os.ReadDir(filepath.Join(dir, "manual"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestBackupCommandRejectsPostgres(t *testing.T) {
	isolate(t)
	_, err := runApp(t, "--db", "postgres://localhost/pdv")
	assert.Error(t, err)
}

func TestBackupCommandMissingDatabase(t *testing.T) {
	dir := isolate(t)
	_, err := runApp(t, "--db", filepath.Join(dir, "missing.db"), "--dir", dir)
	assert.Error(t, err)
}

func TestBackupCommandRejectsUnknownEnvironment(t *testing.T) {
	dir := isolate(t)
	writeDB(t, filepath.Join(dir, "pdv.db"))
	os.Setenv("GO_ENV", "staging")

	_, err := runApp(t, "--db", "pdv.db")
	assert.Error(t, err)
}
