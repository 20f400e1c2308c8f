// Package gallery manages the institution images shown on the landing page
// and in the gallery: upload, listing, activation, removal and the hero
// lookup.
package gallery

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/jekabolt/edupath/internal/dependency"
	"github.com/jekabolt/edupath/internal/entity"
	gerr "github.com/jekabolt/edupath/internal/errors"
	"github.com/jekabolt/edupath/internal/form"
)

const cleanupTimeout = 30 * time.Second

type Config struct {
	// HeroFallbackURL is served when no active hero image exists.
	HeroFallbackURL string `mapstructure:"hero_fallback_url"`
}

// UploadRequest is an image with its metadata as submitted by staff.
type UploadRequest struct {
	Title        string
	Description  string
	ImageType    string
	DisplayOrder int
	File         *entity.Upload
}

// Hero is the landing page hero picture.
type Hero struct {
	URL      string `json:"url"`
	Title    string `json:"title,omitempty"`
	BlurHash string `json:"blurhash,omitempty"`
	Fallback bool   `json:"fallback"`
}

type Gallery struct {
	images dependency.InstitutionImages
	files  dependency.FileStore
	c      *Config
	now    func() time.Time
}

func New(c *Config, images dependency.InstitutionImages, files dependency.FileStore) *Gallery {
	if c == nil {
		c = &Config{}
	}
	return &Gallery{
		images: images,
		files:  files,
		c:      c,
		now:    time.Now,
	}
}

// Upload stores the file under <uploader>/<unix-nanos>.<ext> and inserts the
// image record. The stored object is removed again if the insert fails.
func (g *Gallery) Upload(ctx context.Context, uploaderId string, req *UploadRequest) (*entity.InstitutionImage, error) {
	if req == nil {
		return nil, fmt.Errorf("upload institution image: %w", gerr.ErrValidation)
	}
	f := &form.UploadInstitutionImageRequest{
		Title:        req.Title,
		Description:  req.Description,
		ImageType:    req.ImageType,
		DisplayOrder: req.DisplayOrder,
		HasFile:      req.File != nil && len(req.File.Content) > 0,
	}
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("upload institution image: %w", err)
	}
	if uploaderId == "" {
		return nil, fmt.Errorf("upload institution image: %w", gerr.ErrUnauthenticated)
	}

	obj, err := g.files.UploadImage(ctx, req.File, uploaderId, strconv.FormatInt(g.now().UnixNano(), 10))
	if err != nil {
		if errors.Is(err, gerr.ErrValidation) {
			return nil, fmt.Errorf("upload institution image: %w", err)
		}
		return nil, fmt.Errorf("upload institution image: %w: %w", gerr.ErrUploadFailed, err)
	}

	desc := strings.TrimSpace(req.Description)
	insert := &entity.InstitutionImageInsert{
		Title:        strings.TrimSpace(req.Title),
		Description:  sql.NullString{String: desc, Valid: desc != ""},
		ImageURL:     obj.URL,
		ObjectKey:    obj.Key,
		ImageType:    entity.ImageType(req.ImageType),
		DisplayOrder: req.DisplayOrder,
		IsActive:     true,
		UploadedBy:   uploaderId,
		BlurHash:     sql.NullString{String: obj.BlurHash, Valid: obj.BlurHash != ""},
		Width:        obj.Width,
		Height:       obj.Height,
	}
	img, err := g.images.AddImage(ctx, insert)
	if err != nil {
		g.removeObject(ctx, obj.Key)
		return nil, fmt.Errorf("upload institution image: %w", err)
	}
	slog.Default().InfoContext(ctx, "institution image uploaded",
		slog.String("id", img.Id),
		slog.String("type", string(img.ImageType)),
		slog.String("key", img.ObjectKey),
	)
	return img, nil
}

// List returns every image for management views. Public views pass
// onlyActive and optionally narrow by type.
func (g *Gallery) List(ctx context.Context, onlyActive bool, imageType string) ([]entity.InstitutionImage, error) {
	it := entity.ImageType(imageType)
	if imageType != "" && !it.Valid() {
		return nil, &gerr.ValidationError{Fields: map[string]string{"image_type": "Must be one of hero, gallery, activity, facility."}}
	}
	imgs, err := g.images.ListImages(ctx, onlyActive, it)
	if err != nil {
		return nil, fmt.Errorf("list institution images: %w", err)
	}
	return imgs, nil
}

func (g *Gallery) SetActive(ctx context.Context, id string, active bool) error {
	if err := (&form.ImageIdRequest{Id: id}).Validate(); err != nil {
		return fmt.Errorf("set institution image active: %w", err)
	}
	if err := g.images.SetImageActive(ctx, id, active); err != nil {
		return fmt.Errorf("set institution image active: %w", err)
	}
	return nil
}

// Delete removes the stored object first and then the record. A failed
// object removal keeps the record so the delete can be retried.
func (g *Gallery) Delete(ctx context.Context, id string) error {
	if err := (&form.ImageIdRequest{Id: id}).Validate(); err != nil {
		return fmt.Errorf("delete institution image: %w", err)
	}
	img, err := g.images.GetImageById(ctx, id)
	if err != nil {
		return fmt.Errorf("delete institution image: %w", err)
	}

	key := img.ObjectKey
	if key == "" {
		key, _ = g.files.ObjectKeyFromURL(img.ImageURL)
	}
	if key != "" {
		if err := g.files.DeleteObjects(ctx, key); err != nil {
			return fmt.Errorf("delete institution image object: %w: %w", gerr.ErrStorage, err)
		}
	} else {
		slog.Default().WarnContext(ctx, "institution image has no object key",
			slog.String("id", id),
			slog.String("url", img.ImageURL),
		)
	}

	if err := g.images.DeleteImageById(ctx, id); err != nil {
		return fmt.Errorf("delete institution image: %w", err)
	}
	return nil
}

// Hero returns the active hero image with the lowest display order, or the
// configured fallback.
func (g *Gallery) Hero(ctx context.Context) (*Hero, error) {
	img, err := g.images.HeroImage(ctx)
	switch {
	case err == nil:
		return &Hero{
			URL:      img.ImageURL,
			Title:    img.Title,
			BlurHash: img.BlurHash.String,
		}, nil
	case errors.Is(err, sql.ErrNoRows):
		return &Hero{URL: g.c.HeroFallbackURL, Fallback: true}, nil
	default:
		return nil, fmt.Errorf("hero image: %w", err)
	}
}

func (g *Gallery) removeObject(ctx context.Context, key string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cleanupTimeout)
	defer cancel()
	if err := g.files.DeleteObjects(ctx, key); err != nil {
		slog.Default().ErrorContext(ctx, "can't remove orphaned institution image",
			slog.String("key", key),
			slog.String("err", err.Error()),
		)
	}
}
