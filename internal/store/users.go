package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jekabolt/edupath/internal/dependency"
	"github.com/jekabolt/edupath/internal/entity"
	gerr "github.com/jekabolt/edupath/internal/errors"
)

type userStore struct {
	*SQLStore
}

// Users returns an object implementing dependency.Users interface
func (ms *SQLStore) Users() dependency.Users {
	return &userStore{
		SQLStore: ms,
	}
}

const userColumns = `id, email, password_hash, role, created_at`

// AddUser creates a user with an empty profile.
func (us *userStore) AddUser(ctx context.Context, u *entity.UserInsert) (*entity.User, error) {
	user := &entity.User{
		Id:         uuid.NewString(),
		UserInsert: *u,
	}
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))

	err := us.Tx(ctx, func(ctx context.Context, rep dependency.Repository) error {
		user.CreatedAt = rep.Now().UTC().Truncate(timePrecision)
		err := ExecNamed(ctx, rep.DB(), `
		INSERT INTO app_users (`+userColumns+`)
		VALUES (:id, :email, :passwordHash, :role, :createdAt)`, map[string]any{
			"id":           user.Id,
			"email":        user.Email,
			"passwordHash": user.PasswordHash,
			"role":         string(user.Role),
			"createdAt":    user.CreatedAt,
		})
		if err != nil {
			if rep.IsErrUniqueViolation(err) {
				return fmt.Errorf("user %s: %w", user.Email, gerr.ErrAlreadyExists)
			}
			return fmt.Errorf("can't add user: %w", err)
		}
		return rep.Profiles().UpsertProfile(ctx, user.Id, &entity.ProfileUpsert{})
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (us *userStore) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	u, err := QueryNamedOne[entity.User](ctx, us.db, `SELECT `+userColumns+` FROM app_users WHERE email = :email`, map[string]any{
		"email": strings.ToLower(strings.TrimSpace(email)),
	})
	if err != nil {
		return nil, fmt.Errorf("can't get user by email: %w", err)
	}
	return &u, nil
}

func (us *userStore) GetUserById(ctx context.Context, id string) (*entity.User, error) {
	u, err := QueryNamedOne[entity.User](ctx, us.db, `SELECT `+userColumns+` FROM app_users WHERE id = :id`, map[string]any{
		"id": id,
	})
	if err != nil {
		return nil, fmt.Errorf("can't get user by id %s: %w", id, err)
	}
	return &u, nil
}
