package storage

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// PutObjectAPI is the subset of the s3 client used for backups.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// BackupStorage uploads store snapshots to an S3 bucket.
type BackupStorage struct {
	client PutObjectAPI
	bucket string
	prefix string
}

func NewBackupStorage(client PutObjectAPI, bucket, prefix string) *BackupStorage {
	return &BackupStorage{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}
}

// Key builds the object key for a snapshot file taken at the given time.
func (s *BackupStorage) Key(file string, at time.Time) string {
	name := fmt.Sprintf("%s-%s", at.UTC().Format("20060102T150405Z"), filepath.Base(file))
	return path.Join(s.prefix, name)
}

// UploadFile uploads the file at localPath under key.
// Returns the bucket key on success
func (s *BackupStorage) UploadFile(ctx context.Context, key, localPath string) (string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to stat file: %w", err)
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          f,
		ContentLength: aws.Int64(info.Size()),
		ContentType:   aws.String("application/vnd.sqlite3"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	return key, nil
}
