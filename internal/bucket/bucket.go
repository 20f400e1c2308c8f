package bucket

import (
	"context"
	"fmt"
	"io"

	"github.com/jekabolt/edupath/internal/dependency"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const defaultMaxUploadBytes = 10 << 20

type Config struct {
	S3AccessKey       string `mapstructure:"s3_access_key"`
	S3SecretAccessKey string `mapstructure:"s3_secret_access_key"`
	S3Endpoint        string `mapstructure:"s3_endpoint"`
	S3BucketName      string `mapstructure:"s3_bucket_name"`
	S3BucketLocation  string `mapstructure:"s3_bucket_location"`
	BaseFolder        string `mapstructure:"base_folder"`
	// SubdomainEndpoint is a CDN host serving the bucket, e.g. files.example.org.
	SubdomainEndpoint string `mapstructure:"subdomain_endpoint"`
	Insecure          bool   `mapstructure:"insecure"`
	MaxUploadBytes    int64  `mapstructure:"max_upload_bytes"`
}

// objectAPI is the part of the minio client the bucket uses.
type objectAPI interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObjects(ctx context.Context, bucketName string, objectsCh <-chan minio.ObjectInfo, opts minio.RemoveObjectsOptions) <-chan minio.RemoveObjectError
}

var _ dependency.FileStore = (*Bucket)(nil)

type Bucket struct {
	client objectAPI
	*Config
}

// New connects to the S3 compatible endpoint described by c.
func (c *Config) New() (*Bucket, error) {
	if c.S3Endpoint == "" || c.S3BucketName == "" {
		return nil, fmt.Errorf("bucket: endpoint and bucket name are required")
	}
	cli, err := minio.New(c.S3Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(c.S3AccessKey, c.S3SecretAccessKey, ""),
		Secure: !c.Insecure,
		Region: c.S3BucketLocation,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize minio client: %w", err)
	}
	return &Bucket{
		client: cli,
		Config: c,
	}, nil
}

func (b *Bucket) maxUploadBytes() int64 {
	if b.MaxUploadBytes > 0 {
		return b.MaxUploadBytes
	}
	return defaultMaxUploadBytes
}
