package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jekabolt/edupath/internal/dependency"
	"github.com/jekabolt/edupath/internal/entity"
)

type institutionImageStore struct {
	*SQLStore
}

// InstitutionImages returns an object implementing dependency.InstitutionImages interface
func (ms *SQLStore) InstitutionImages() dependency.InstitutionImages {
	return &institutionImageStore{
		SQLStore: ms,
	}
}

const institutionImageColumns = `id, title, description, image_url, object_key, image_type, display_order, is_active, uploaded_by, blurhash, width, height, created_at`

func (is *institutionImageStore) AddImage(ctx context.Context, img *entity.InstitutionImageInsert) (*entity.InstitutionImage, error) {
	ii := &entity.InstitutionImage{
		Id:                     uuid.NewString(),
		CreatedAt:              is.timestamp(),
		InstitutionImageInsert: *img,
	}
	query := `
	INSERT INTO institution_images (` + institutionImageColumns + `)
	VALUES (:id, :title, :description, :imageUrl, :objectKey, :imageType, :displayOrder, :isActive, :uploadedBy, :blurhash, :width, :height, :createdAt)`
	err := ExecNamed(ctx, is.db, query, map[string]any{
		"id":           ii.Id,
		"title":        ii.Title,
		"description":  ii.Description,
		"imageUrl":     ii.ImageURL,
		"objectKey":    ii.ObjectKey,
		"imageType":    string(ii.ImageType),
		"displayOrder": ii.DisplayOrder,
		"isActive":     ii.IsActive,
		"uploadedBy":   ii.UploadedBy,
		"blurhash":     ii.BlurHash,
		"width":        ii.Width,
		"height":       ii.Height,
		"createdAt":    ii.CreatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("can't add institution image: %w", err)
	}
	is.emit(entity.TableInstitutionImages, entity.ChangeInsert, ii.Id)
	return ii, nil
}

func (is *institutionImageStore) ListImages(ctx context.Context, onlyActive bool, imageType entity.ImageType) ([]entity.InstitutionImage, error) {
	query := `SELECT ` + institutionImageColumns + ` FROM institution_images WHERE 1 = 1`
	params := map[string]any{}
	if onlyActive {
		query += ` AND is_active = :isActive`
		params["isActive"] = true
	}
	if imageType != "" {
		query += ` AND image_type = :imageType`
		params["imageType"] = string(imageType)
	}
	query += ` ORDER BY display_order ASC, created_at DESC`

	imgs, err := QueryListNamed[entity.InstitutionImage](ctx, is.db, query, params)
	if err != nil {
		return nil, fmt.Errorf("can't list institution images: %w", err)
	}
	return imgs, nil
}

func (is *institutionImageStore) GetImageById(ctx context.Context, id string) (*entity.InstitutionImage, error) {
	query := `SELECT ` + institutionImageColumns + ` FROM institution_images WHERE id = :id`
	img, err := QueryNamedOne[entity.InstitutionImage](ctx, is.db, query, map[string]any{
		"id": id,
	})
	if err != nil {
		return nil, fmt.Errorf("can't get institution image by id %s: %w", id, err)
	}
	return &img, nil
}

func (is *institutionImageStore) SetImageActive(ctx context.Context, id string, active bool) error {
	ra, err := ExecNamedAffected(ctx, is.db, `UPDATE institution_images SET is_active = :isActive WHERE id = :id`, map[string]any{
		"id":       id,
		"isActive": active,
	})
	if err != nil {
		return fmt.Errorf("can't set institution image active: %w", err)
	}
	if ra == 0 {
		return fmt.Errorf("can't set institution image %s active: %w", id, errNoRows)
	}
	is.emit(entity.TableInstitutionImages, entity.ChangeUpdate, id)
	return nil
}

func (is *institutionImageStore) DeleteImageById(ctx context.Context, id string) error {
	ra, err := ExecNamedAffected(ctx, is.db, `DELETE FROM institution_images WHERE id = :id`, map[string]any{
		"id": id,
	})
	if err != nil {
		return fmt.Errorf("can't delete institution image: %w", err)
	}
	if ra == 0 {
		return fmt.Errorf("can't delete institution image %s: %w", id, errNoRows)
	}
	is.emit(entity.TableInstitutionImages, entity.ChangeDelete, id)
	return nil
}

func (is *institutionImageStore) HeroImage(ctx context.Context) (*entity.InstitutionImage, error) {
	query := `SELECT ` + institutionImageColumns + ` FROM institution_images
	WHERE is_active = :isActive AND image_type = :imageType
	ORDER BY display_order ASC, created_at DESC
	LIMIT 1`
	img, err := QueryNamedOne[entity.InstitutionImage](ctx, is.db, query, map[string]any{
		"isActive":  true,
		"imageType": string(entity.ImageTypeHero),
	})
	if err != nil {
		return nil, fmt.Errorf("can't get hero image: %w", err)
	}
	return &img, nil
}
