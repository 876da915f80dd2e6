package checks

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"catalog-sync/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// ReportFolders returns the archive folder of every family.
func ReportFolders(prefix string, families []string) []string {
	folders := make([]string, 0, len(families))
	for _, f := range families {
		folders = append(folders, path.Join(strings.Trim(prefix, "/"), f))
	}
	return folders
}

// BucketMissingError means the archive bucket does not exist.
type BucketMissingError struct {
	Bucket string
}

func (e *BucketMissingError) Error() string {
	return fmt.Sprintf("bucket %s does not exist", e.Bucket)
}

// CheckStructure returns the report folders missing from the bucket.
func CheckStructure(ctx context.Context, client storage.Client, bucket string, folders []string) ([]string, error) {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return nil, &BucketMissingError{Bucket: bucket}
	}

	missing := []string{}
	for _, folder := range folders {
		opts := minio.ListObjectsOptions{
			Prefix:    folder + "/",
			Recursive: false,
			MaxKeys:   1,
		}

		found := false
		for obj := range client.ListObjects(ctx, bucket, opts) {
			if obj.Err != nil {
				return nil, fmt.Errorf("failed to list %s: %w", folder, obj.Err)
			}
			found = true
			break
		}

		if !found {
			missing = append(missing, folder)
		}
	}

	return missing, nil
}

// FixStructure creates the bucket when needed and a marker object for every
// missing folder.
func FixStructure(ctx context.Context, client storage.Client, bucket, region string, logger *zap.Logger, missing []string) error {
	created, err := storage.EnsureBucket(ctx, client, bucket, region)
	if err != nil {
		return err
	}
	if created {
		logger.Info("Created report bucket", zap.String("bucket", bucket))
	}

	for _, folder := range missing {
		_, err := client.PutObject(ctx, bucket, folder+"/", bytes.NewReader([]byte{}), 0, minio.PutObjectOptions{})
		if err != nil {
			logger.Error("Failed to create folder", zap.String("folder", folder), zap.Error(err))
			return err
		}
		logger.Info("Created missing folder", zap.String("folder", folder))
	}
	return nil
}
