package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jekabolt/edupath/internal/dependency"
	"github.com/jekabolt/edupath/internal/entity"
)

type profileStore struct {
	*SQLStore
}

// Profiles returns an object implementing dependency.Profiles interface
func (ms *SQLStore) Profiles() dependency.Profiles {
	return &profileStore{
		SQLStore: ms,
	}
}

const profileColumns = `user_id, full_name, training_field, preferred_locale, updated_at`

func (ps *profileStore) GetProfile(ctx context.Context, userId string) (*entity.Profile, error) {
	p, err := QueryNamedOne[entity.Profile](ctx, ps.db, `SELECT `+profileColumns+` FROM profiles WHERE user_id = :userId`, map[string]any{
		"userId": userId,
	})
	if err != nil {
		return nil, fmt.Errorf("can't get profile of %s: %w", userId, err)
	}
	return &p, nil
}

// UpsertProfile writes every profile field, creating the row when missing.
func (ps *profileStore) UpsertProfile(ctx context.Context, userId string, p *entity.ProfileUpsert) error {
	return ps.Tx(ctx, func(ctx context.Context, rep dependency.Repository) error {
		params := map[string]any{
			"userId":          userId,
			"fullName":        p.FullName,
			"trainingField":   p.TrainingField,
			"preferredLocale": p.PreferredLocale,
			"updatedAt":       rep.Now().UTC().Truncate(timePrecision),
		}
		n, err := QueryCountNamed(ctx, rep.DB(), `SELECT COUNT(*) FROM profiles WHERE user_id = :userId`, params)
		if err != nil {
			return fmt.Errorf("can't check profile: %w", err)
		}
		kind := entity.ChangeUpdate
		if n > 0 {
			err = ExecNamed(ctx, rep.DB(), `
			UPDATE profiles SET
				full_name = :fullName,
				training_field = :trainingField,
				preferred_locale = :preferredLocale,
				updated_at = :updatedAt
			WHERE user_id = :userId`, params)
		} else {
			kind = entity.ChangeInsert
			err = ExecNamed(ctx, rep.DB(), `
			INSERT INTO profiles (`+profileColumns+`)
			VALUES (:userId, :fullName, :trainingField, :preferredLocale, :updatedAt)`, params)
		}
		if err != nil {
			return fmt.Errorf("can't write profile: %w", err)
		}
		emitFrom(rep, entity.TableProfiles, kind, userId)
		return nil
	})
}

// SetPreferredLocale stores the locale code only, the caller validates it.
func (ps *profileStore) SetPreferredLocale(ctx context.Context, userId string, code string) error {
	return ps.Tx(ctx, func(ctx context.Context, rep dependency.Repository) error {
		p, err := rep.Profiles().GetProfile(ctx, userId)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return err
		}
		upd := entity.ProfileUpsert{}
		if p != nil {
			upd = p.ProfileUpsert
		}
		upd.PreferredLocale = sql.NullString{String: code, Valid: code != ""}
		return rep.Profiles().UpsertProfile(ctx, userId, &upd)
	})
}
