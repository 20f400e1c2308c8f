package bucket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/minio/minio-go/v7"
)

// toRemoveCh converts a string slice to a <-chan minio.ObjectInfo
func toRemoveCh(keys []string) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, len(keys))
	for _, key := range keys {
		ch <- minio.ObjectInfo{Key: key}
	}
	close(ch)
	return ch
}

// DeleteObjects removes objects by key. Every failed key is logged and the
// failures are joined in the returned error.
func (b *Bucket) DeleteObjects(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	var errs []error
	for dErr := range b.client.RemoveObjects(ctx, b.S3BucketName, toRemoveCh(keys), minio.RemoveObjectsOptions{}) {
		slog.Default().ErrorContext(ctx, "failed to delete object from s3 bucket",
			slog.String("object_key", dErr.ObjectName),
			slog.String("err", dErr.Err.Error()),
		)
		errs = append(errs, fmt.Errorf("%s: %w", dErr.ObjectName, dErr.Err))
	}
	if len(errs) > 0 {
		return fmt.Errorf("errors during deletion: %w", errors.Join(errs...))
	}
	return nil
}
