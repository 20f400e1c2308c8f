package feed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jekabolt/edupath/internal/dependency"
	"github.com/jekabolt/edupath/internal/entity"
	gerr "github.com/jekabolt/edupath/internal/errors"
	"github.com/jekabolt/edupath/internal/form"
)

// ImageFolder is the bucket folder of announcement images.
const ImageFolder = "announcements"

const cleanupTimeout = 30 * time.Second

// PublishRequest is a new announcement with an optional image.
type PublishRequest struct {
	Title    string
	Content  string
	AuthorId string
	Image    *entity.Upload
}

// Publisher uploads an announcement's image and inserts the announcement,
// failing as a whole when either step fails.
type Publisher struct {
	announcements dependency.Announcements
	files         dependency.FileStore
}

func NewPublisher(announcements dependency.Announcements, files dependency.FileStore) *Publisher {
	return &Publisher{
		announcements: announcements,
		files:         files,
	}
}

// Publish validates before touching storage, uploads the image if any and
// only then inserts the record. An upload failure inserts nothing. An insert
// failure removes the uploaded image.
func (p *Publisher) Publish(ctx context.Context, req *PublishRequest) (*entity.Announcement, error) {
	if req == nil {
		return nil, fmt.Errorf("publish announcement: %w", gerr.ErrValidation)
	}
	f := &form.PublishAnnouncementRequest{
		Title:   req.Title,
		Content: req.Content,
	}
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("publish announcement: %w", err)
	}
	if req.AuthorId == "" {
		return nil, fmt.Errorf("publish announcement: %w", gerr.ErrUnauthenticated)
	}

	insert := &entity.AnnouncementInsert{
		Title:    strings.TrimSpace(req.Title),
		Content:  strings.TrimSpace(req.Content),
		AuthorId: req.AuthorId,
	}

	if req.Image != nil && len(req.Image.Content) == 0 {
		return nil, fmt.Errorf("publish announcement: %w", &gerr.ValidationError{
			Fields: map[string]string{"image": "cannot be empty"},
		})
	}

	var obj *entity.StoredObject
	if req.Image != nil {
		if p.files == nil {
			return nil, fmt.Errorf("publish announcement: %w: no file store configured", gerr.ErrUploadFailed)
		}
		var err error
		obj, err = p.files.UploadImage(ctx, req.Image, ImageFolder, uuid.NewString())
		if err != nil {
			if errors.Is(err, gerr.ErrValidation) {
				return nil, fmt.Errorf("publish announcement: %w", err)
			}
			return nil, fmt.Errorf("publish announcement: %w: %w", gerr.ErrUploadFailed, err)
		}
		insert.WithImage(obj)
	}

	ann, err := p.announcements.AddAnnouncement(ctx, insert)
	if err != nil {
		if obj != nil {
			p.removeObject(ctx, obj.Key)
		}
		return nil, fmt.Errorf("publish announcement: %w", err)
	}

	slog.Default().InfoContext(ctx, "announcement published",
		slog.String("id", ann.Id),
		slog.String("author_id", ann.AuthorId),
		slog.Bool("with_image", obj != nil),
	)
	return ann, nil
}

func (p *Publisher) removeObject(ctx context.Context, key string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cleanupTimeout)
	defer cancel()
	if err := p.files.DeleteObjects(ctx, key); err != nil {
		slog.Default().ErrorContext(ctx, "can't remove orphaned announcement image",
			slog.String("key", key),
			slog.String("err", err.Error()),
		)
	}
}

// Delete removes an announcement and then its image. A failed image removal
// is logged only, the announcement is gone either way.
func (p *Publisher) Delete(ctx context.Context, id string) error {
	ann, err := p.announcements.GetAnnouncementById(ctx, id)
	if err != nil {
		return fmt.Errorf("delete announcement: %w", err)
	}
	if err := p.announcements.DeleteAnnouncementById(ctx, id); err != nil {
		return fmt.Errorf("delete announcement: %w", err)
	}
	if ann.ImageURL.Valid && p.files != nil {
		if key, ok := p.files.ObjectKeyFromURL(ann.ImageURL.String); ok {
			p.removeObject(ctx, key)
		}
	}
	return nil
}
