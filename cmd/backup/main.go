// Command backup copies the SQLite database to a timestamped file and can
// upload the copy to S3.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/pdv-restaurante/pdv-api/config"
	"github.com/pdv-restaurante/pdv-api/logger"
	"github.com/pdv-restaurante/pdv-api/services"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

// newStorage builds the remote storage for a bucket; replaced in tests
var newStorage = func(ctx context.Context, cfg *config.Config) (services.BackupStorage, error) {
	return services.NewS3Service(ctx, services.S3Options{
		Region:          cfg.AWSRegion,
		Bucket:          cfg.BackupS3Bucket,
		AccessKeyID:     cfg.AWSAccessKeyID,
		SecretAccessKey: cfg.AWSSecretAccessKey,
	}, logger.Log)
}

func main() {
	defer logger.Sync()

	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "backup failed: %v\n", err)
		os.Exit(1)
	}
}

// newApp reads settings through config.Load (environment and .env files).
// Flags given on the command line override them.
func newApp() *cli.App {
	return &cli.App{
		Name:  "backup",
		Usage: "copy the PDV SQLite database to a timestamped backup",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "db",
				Usage: "database file or sqlite DATABASE_URL (default: DATABASE_URL or PDV_DB_PATH)",
			},
			&cli.StringFlag{
				Name:  "dir",
				Usage: "directory the backup is written to (default: BACKUP_DIR)",
			},
			&cli.StringFlag{
				Name:  "s3-bucket",
				Usage: "upload the backup to this bucket (default: BACKUP_S3_BUCKET)",
			},
			&cli.StringFlag{
				Name:  "aws-region",
				Usage: "region of the bucket (default: AWS_REGION)",
			},
		},
		Action: run,
	}
}

// applyFlags overrides cfg with the flags that were set explicitly
func applyFlags(c *cli.Context, cfg *config.Config) {
	if c.IsSet("db") {
		cfg.DatabaseURL = c.String("db")
	}
	if c.IsSet("dir") {
		cfg.BackupDir = c.String("dir")
	}
	if c.IsSet("s3-bucket") {
		cfg.BackupS3Bucket = c.String("s3-bucket")
	}
	if c.IsSet("aws-region") {
		cfg.AWSRegion = c.String("aws-region")
	}
}

func run(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	applyFlags(c, cfg)

	logger.Initialize(cfg.GoEnv, cfg.LogLevel)

	dbPath, err := config.SQLitePath(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("only sqlite databases can be backed up by file copy: %w", err)
	}

	var storage services.BackupStorage
	if cfg.BackupEnabled() {
		if storage, err = newStorage(c.Context, cfg); err != nil {
			return err
		}
	}

	result, err := services.NewBackupService(storage, logger.Log).Backup(c.Context, dbPath, cfg.BackupDir)
	if err != nil {
		logger.Log.Error("backup failed", zap.String("db", dbPath), zap.Error(err))
		return err
	}

	fmt.Fprintf(c.App.Writer, "Backup saved to %s\n", result.Path)
	if result.PresignedURL != "" {
		fmt.Fprintf(c.App.Writer, "Download (valid 1h): %s\n", result.PresignedURL)
	}
	return nil
}
