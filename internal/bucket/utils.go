package bucket

import (
	"fmt"
	"net/url"
	"path"
	"strings"
)

const (
	contentTypeJPEG = "image/jpeg"
	contentTypePNG  = "image/png"
	contentTypeWEBP = "image/webp"
	contentTypeGIF  = "image/gif"
)

// imageExtensions are the accepted image content types.
var imageExtensions = map[string]string{
	contentTypeJPEG: "jpg",
	contentTypePNG:  "png",
	contentTypeWEBP: "webp",
	contentTypeGIF:  "gif",
}

func fileExtensionFromContentType(contentType string) (string, error) {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	if ct == "image/jpg" {
		ct = contentTypeJPEG
	}
	ext, ok := imageExtensions[ct]
	if !ok {
		return "", fmt.Errorf("unsupported content type %q", contentType)
	}
	return ext, nil
}

func (b *Bucket) constructFullPath(folder, fileName, ext string) string {
	return strings.TrimPrefix(path.Clean(path.Join(b.BaseFolder, folder, fileName)+"."+ext), "/")
}

// publicBase is the URL prefix every object is served under.
func (b *Bucket) publicBase() string {
	if b.SubdomainEndpoint != "" {
		return fmt.Sprintf("https://%s/", b.SubdomainEndpoint)
	}
	return fmt.Sprintf("https://%s.%s/", b.S3BucketName, b.S3Endpoint)
}

func (b *Bucket) getCDNURL(filePath string) string {
	return b.publicBase() + filePath
}

// PublicURL returns the public URL of an object key.
func (b *Bucket) PublicURL(key string) string {
	return b.getCDNURL(strings.TrimPrefix(key, "/"))
}

// ObjectKeyFromURL recovers the object key from a URL returned by
// UploadImage. ok is false for URLs pointing elsewhere.
func (b *Bucket) ObjectKeyFromURL(rawURL string) (string, bool) {
	base := b.publicBase()
	if !strings.HasPrefix(rawURL, base) {
		return "", false
	}
	key := strings.TrimPrefix(rawURL, base)
	if i := strings.IndexAny(key, "?#"); i >= 0 {
		key = key[:i]
	}
	key, err := url.PathUnescape(key)
	if err != nil || key == "" {
		return "", false
	}
	return key, true
}
