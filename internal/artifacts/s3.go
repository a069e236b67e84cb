// Package artifacts pulls the serialized model files from S3-compatible
// object storage to local disk before the registry is loaded.
package artifacts

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type Syncer struct {
	client *minio.Client
	bucket string
}

func NewSyncer(endpoint, accessKeyID, secretKey, bucket string, secure bool) (*Syncer, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKeyID, secretKey, ""),
		Secure: secure,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object storage client: %w", err)
	}

	return &Syncer{
		client: client,
		bucket: bucket,
	}, nil
}

// Sync downloads every object in the bucket into localDir, preserving the
// object key as the relative path. Runs once at process startup; the model
// registry loads from localDir afterwards.
func (s *Syncer) Sync(ctx context.Context, localDir string) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %q: %w", s.bucket, err)
	}
	if !exists {
		return fmt.Errorf("bucket %q does not exist", s.bucket)
	}

	count := 0
	objects := s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Recursive: true})
	for object := range objects {
		if object.Err != nil {
			return fmt.Errorf("failed to list bucket %q: %w", s.bucket, object.Err)
		}

		localPath := filepath.Join(localDir, filepath.FromSlash(object.Key))
		if err := os.MkdirAll(filepath.Dir(localPath), 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", filepath.Dir(localPath), err)
		}
		if err := s.client.FGetObject(ctx, s.bucket, object.Key, localPath, minio.GetObjectOptions{}); err != nil {
			return fmt.Errorf("failed to download %s: %w", object.Key, err)
		}
		count++
	}

	if count == 0 {
		return fmt.Errorf("bucket %q contains no model artifacts", s.bucket)
	}

	log.Printf("Synced %d model artifacts from bucket %s to %s", count, s.bucket, localDir)
	return nil
}
