package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jekabolt/edupath/internal/dependency"
	"github.com/jekabolt/edupath/internal/entity"
)

type announcementStore struct {
	*SQLStore
}

// Announcements returns an object implementing dependency.Announcements interface
func (ms *SQLStore) Announcements() dependency.Announcements {
	return &announcementStore{
		SQLStore: ms,
	}
}

const announcementColumns = `id, title, content, author_id, image_url, image_blurhash, image_width, image_height, created_at`

func (as *announcementStore) AddAnnouncement(ctx context.Context, a *entity.AnnouncementInsert) (*entity.Announcement, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("can't generate announcement id: %w", err)
	}
	ann := &entity.Announcement{
		Id:                 id.String(),
		CreatedAt:          as.timestamp(),
		AnnouncementInsert: *a,
	}

	query := `
	INSERT INTO announcements (` + announcementColumns + `)
	VALUES (:id, :title, :content, :authorId, :imageUrl, :imageBlurHash, :imageWidth, :imageHeight, :createdAt)`
	err = ExecNamed(ctx, as.db, query, map[string]any{
		"id":            ann.Id,
		"title":         ann.Title,
		"content":       ann.Content,
		"authorId":      ann.AuthorId,
		"imageUrl":      ann.ImageURL,
		"imageBlurHash": ann.ImageBlurHash,
		"imageWidth":    ann.ImageWidth,
		"imageHeight":   ann.ImageHeight,
		"createdAt":     ann.CreatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("can't add announcement: %w", err)
	}
	as.emit(entity.TableAnnouncements, entity.ChangeInsert, ann.Id)
	return ann, nil
}

func (as *announcementStore) ListAnnouncements(ctx context.Context, limit int) ([]entity.Announcement, error) {
	query := `SELECT ` + announcementColumns + ` FROM announcements ORDER BY created_at DESC, id DESC`
	params := map[string]any{}
	if limit > 0 {
		query += ` LIMIT :limit`
		params["limit"] = limit
	}
	anns, err := QueryListNamed[entity.Announcement](ctx, as.db, query, params)
	if err != nil {
		return nil, fmt.Errorf("can't list announcements: %w", err)
	}
	return anns, nil
}

func (as *announcementStore) GetAnnouncementById(ctx context.Context, id string) (*entity.Announcement, error) {
	query := `SELECT ` + announcementColumns + ` FROM announcements WHERE id = :id`
	ann, err := QueryNamedOne[entity.Announcement](ctx, as.db, query, map[string]any{
		"id": id,
	})
	if err != nil {
		return nil, fmt.Errorf("can't get announcement by id %s: %w", id, err)
	}
	return &ann, nil
}

func (as *announcementStore) DeleteAnnouncementById(ctx context.Context, id string) error {
	ra, err := ExecNamedAffected(ctx, as.db, `DELETE FROM announcements WHERE id = :id`, map[string]any{
		"id": id,
	})
	if err != nil {
		return fmt.Errorf("can't delete announcement: %w", err)
	}
	if ra == 0 {
		return fmt.Errorf("can't delete announcement %s: %w", id, errNoRows)
	}
	as.emit(entity.TableAnnouncements, entity.ChangeDelete, id)
	return nil
}
