package bucket

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jekabolt/edupath/internal/entity"
	gerr "github.com/jekabolt/edupath/internal/errors"
	"github.com/minio/minio-go/v7"
)

const cacheControl = "max-age=31536000"

func invalidImage(msg string) error {
	return &gerr.ValidationError{Fields: map[string]string{"image": msg}}
}

// UploadImage checks that up is a supported image, reads its dimensions and
// blurhash and stores it public-read under folder/name.<ext>.
func (b *Bucket) UploadImage(ctx context.Context, up *entity.Upload, folder, name string) (*entity.StoredObject, error) {
	if up == nil || len(up.Content) == 0 {
		return nil, invalidImage("File is required.")
	}
	if int64(len(up.Content)) > b.maxUploadBytes() {
		return nil, invalidImage(fmt.Sprintf("File is larger than %d bytes.", b.maxUploadBytes()))
	}

	// the declared type is not trusted, the content decides
	contentType := http.DetectContentType(up.Content)
	ext, err := fileExtensionFromContentType(contentType)
	if err != nil {
		return nil, invalidImage("Unsupported image type.")
	}

	img, err := decodeImage(up.Content, contentType)
	if err != nil {
		return nil, invalidImage("Image can't be decoded.")
	}
	obj := &entity.StoredObject{
		Key:         b.constructFullPath(folder, name, ext),
		ContentType: contentType,
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
	}
	if hash, err := blurHash(img); err != nil {
		slog.Default().WarnContext(ctx, "can't compute blurhash",
			slog.String("key", obj.Key),
			slog.String("err", err.Error()),
		)
	} else {
		obj.BlurHash = hash
	}

	r := bytes.NewReader(up.Content)
	_, err = b.client.PutObject(ctx, b.S3BucketName, obj.Key, r, int64(r.Len()),
		minio.PutObjectOptions{
			ContentType:  contentType,
			CacheControl: cacheControl,
			UserMetadata: map[string]string{"x-amz-acl": "public-read"},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("error putting object %s: %w", obj.Key, err)
	}
	obj.URL = b.getCDNURL(obj.Key)
	return obj, nil
}
