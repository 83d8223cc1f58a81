package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type fakeS3 struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakeS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.input = params
	body, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	f.body = body
	return &s3.PutObjectOutput{}, nil
}

func TestKey(t *testing.T) {
	s := NewBackupStorage(&fakeS3{}, "bucket", "backups")
	at := time.Date(2025, 5, 8, 13, 4, 5, 0, time.UTC)

	got := s.Key("/var/data/food_waste.db", at)
	if got != "backups/20250508T130405Z-food_waste.db" {
		t.Fatalf("expected prefixed key, got %q", got)
	}
}

func TestUploadFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "snapshot.db")
	if err := os.WriteFile(file, []byte("snapshot"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	client := &fakeS3{}
	s := NewBackupStorage(client, "bucket", "backups")

	key, err := s.UploadFile(context.Background(), "backups/a.db", file)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if key != "backups/a.db" {
		t.Fatalf("expected key backups/a.db, got %q", key)
	}
	if aws.ToString(client.input.Bucket) != "bucket" {
		t.Fatalf("expected bucket %q, got %q", "bucket", aws.ToString(client.input.Bucket))
	}
	if aws.ToInt64(client.input.ContentLength) != int64(len("snapshot")) {
		t.Fatalf("expected content length %d, got %d", len("snapshot"), aws.ToInt64(client.input.ContentLength))
	}
	if string(client.body) != "snapshot" {
		t.Fatalf("expected body %q, got %q", "snapshot", client.body)
	}
}

func TestUploadFileErrors(t *testing.T) {
	s := NewBackupStorage(&fakeS3{}, "bucket", "")
	if _, err := s.UploadFile(context.Background(), "k", filepath.Join(t.TempDir(), "missing.db")); err == nil {
		t.Fatalf("expected error for missing file")
	}

	file := filepath.Join(t.TempDir(), "snapshot.db")
	if err := os.WriteFile(file, []byte("x"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	boom := errors.New("boom")
	s = NewBackupStorage(&fakeS3{err: boom}, "bucket", "")
	if _, err := s.UploadFile(context.Background(), "k", file); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped client error, got %v", err)
	}
}
