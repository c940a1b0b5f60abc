package services

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

// BackupStorage stores database backups off the machine
type BackupStorage interface {
	UploadFile(ctx context.Context, localPath string) (string, error)
	GetPresignedURL(ctx context.Context, key string) (string, error)
}

// S3Options configures the S3 backup storage
type S3Options struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
}

// S3Service handles all S3-related operations
type S3Service struct {
	client *s3.Client
	bucket string
	log    *zap.Logger
}

// backupKeyPrefix is the folder backups are uploaded to
const backupKeyPrefix = "backups"

// NewS3Service builds an S3 client. Static credentials are used when both keys
// are set; otherwise the default AWS credential chain applies.
func NewS3Service(ctx context.Context, opts S3Options, log *zap.Logger) (*S3Service, error) {
	if opts.Bucket == "" {
		return nil, fmt.Errorf("an S3 bucket is required")
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(opts.Region)}
	if opts.AccessKeyID != "" && opts.SecretAccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, ""),
		))
	}

	awsConfig, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &S3Service{
		client: s3.NewFromConfig(awsConfig),
		bucket: opts.Bucket,
		log:    log.Named("s3"),
	}, nil
}

// BackupKey is the object key a local backup file is stored under
func BackupKey(localPath string) string {
	return path.Join(backupKeyPrefix, filepath.Base(localPath))
}

// UploadFile uploads a local file and returns its S3 key
func (s *S3Service) UploadFile(ctx context.Context, localPath string) (string, error) {
	file, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			s.log.Warn("failed to close file", zap.String("path", localPath), zap.Error(closeErr))
		}
	}()

	key := BackupKey(localPath)
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String("application/vnd.sqlite3"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	s.log.Info("backup uploaded", zap.String("bucket", s.bucket), zap.String("key", key))
	return key, nil
}

// GetPresignedURL generates a presigned URL for downloading an object.
// The URL expires after 1 hour.
func (s *S3Service) GetPresignedURL(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", nil
	}

	presignClient := s3.NewPresignClient(s.client)
	request, err := presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = time.Hour
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	return request.URL, nil
}
