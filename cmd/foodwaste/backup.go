package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"foodwaste/internal/storage"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var backupCommand = &cli.Command{
	Name:  "backup",
	Usage: "Snapshot the sqlite store and upload it to the backup bucket",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "keep",
			Usage: "Keep the local snapshot after upload",
		},
	},
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig(c)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if cfg.BackupBucket == "" {
			return fmt.Errorf("set BACKUP_BUCKET")
		}

		logger := newLogger(cfg)
		ctx := context.Background()

		handle, err := openStore(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer handle.Close()

		dir := filepath.Join(cfg.DataDir, "backups")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create backup directory: %w", err)
		}

		now := time.Now()
		snapshot := filepath.Join(dir, fmt.Sprintf("%s-%s", now.UTC().Format("20060102T150405Z"), filepath.Base(cfg.StorePath)))
		if err := handle.Snapshot(ctx, snapshot); err != nil {
			return err
		}

		awsConfig, err := loadAWSConfig(ctx)
		if err != nil {
			return err
		}

		backups := storage.NewBackupStorage(s3.NewFromConfig(awsConfig), cfg.BackupBucket, cfg.BackupPrefix)
		key, err := backups.UploadFile(ctx, backups.Key(cfg.StorePath, now), snapshot)
		if err != nil {
			return err
		}

		logger.WithFields(logrus.Fields{
			"bucket": cfg.BackupBucket,
			"key":    key,
		}).Info("backup uploaded")

		if !c.Bool("keep") {
			if err := os.Remove(snapshot); err != nil {
				logger.WithError(err).WithField("path", snapshot).Warn("failed to remove local snapshot")
			}
		}

		return nil
	},
}
