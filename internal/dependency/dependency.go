package dependency

import (
	"context"
	"database/sql"
	"time"

	"github.com/jekabolt/edupath/internal/entity"
	"github.com/jmoiron/sqlx"
)

//go:generate mockery --case underscore --name "Announcements|InstitutionImages|Users|Profiles|FileStore|ChangeFeed|Subscription" --output=./mocks
type (
	ContextStore interface {
		Tx(ctx context.Context, fn func(ctx context.Context, store Repository) error) error
	}

	Announcements interface {
		// AddAnnouncement inserts an announcement, created_at is assigned by the store.
		AddAnnouncement(ctx context.Context, a *entity.AnnouncementInsert) (*entity.Announcement, error)
		// ListAnnouncements returns announcements newest first, limit <= 0 returns all of them.
		ListAnnouncements(ctx context.Context, limit int) ([]entity.Announcement, error)
		GetAnnouncementById(ctx context.Context, id string) (*entity.Announcement, error)
		DeleteAnnouncementById(ctx context.Context, id string) error
	}

	InstitutionImages interface {
		AddImage(ctx context.Context, img *entity.InstitutionImageInsert) (*entity.InstitutionImage, error)
		// ListImages returns images ordered by display order, an empty image type matches every type.
		ListImages(ctx context.Context, onlyActive bool, imageType entity.ImageType) ([]entity.InstitutionImage, error)
		GetImageById(ctx context.Context, id string) (*entity.InstitutionImage, error)
		SetImageActive(ctx context.Context, id string, active bool) error
		DeleteImageById(ctx context.Context, id string) error
		// HeroImage returns the active hero image with the lowest display order.
		HeroImage(ctx context.Context) (*entity.InstitutionImage, error)
	}

	Users interface {
		AddUser(ctx context.Context, u *entity.UserInsert) (*entity.User, error)
		GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
		GetUserById(ctx context.Context, id string) (*entity.User, error)
	}

	Profiles interface {
		GetProfile(ctx context.Context, userId string) (*entity.Profile, error)
		UpsertProfile(ctx context.Context, userId string, p *entity.ProfileUpsert) error
		SetPreferredLocale(ctx context.Context, userId string, code string) error
	}

	Repository interface {
		Announcements() Announcements
		InstitutionImages() InstitutionImages
		Users() Users
		Profiles() Profiles
		Tx(ctx context.Context, f func(context.Context, Repository) error) error
		TxBegin(ctx context.Context) (Repository, error)
		TxCommit(ctx context.Context) error
		TxRollback(ctx context.Context) error
		Now() time.Time
		InTx() bool
		Close()
		Ping(ctx context.Context) error
		IsErrUniqueViolation(err error) bool
		IsErrorRepeat(err error) bool
		DB() DB
	}

	// DB represents database interface.
	DB interface {
		BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
		ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)

		// sqlx methods
		GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
		NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
		QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
		QueryxContext(ctx context.Context, query string, args ...interface{}) (*sqlx.Rows, error)
		SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
		Rebind(query string) string
	}

	FileStore interface {
		// UploadImage stores an image under folder/name and returns where it lives.
		UploadImage(ctx context.Context, up *entity.Upload, folder, name string) (*entity.StoredObject, error)
		// DeleteObjects removes objects by key.
		DeleteObjects(ctx context.Context, keys ...string) error
		// ObjectKeyFromURL maps a public URL produced by UploadImage back to its key.
		ObjectKeyFromURL(url string) (string, bool)
	}

	// ChangeNotifier receives committed row changes.
	ChangeNotifier interface {
		Publish(ev entity.ChangeEvent)
	}

	Subscription interface {
		Events() <-chan entity.ChangeEvent
		// Unsubscribe is safe to call more than once.
		Unsubscribe()
	}

	ChangeFeed interface {
		Subscribe(table string) Subscription
	}
)
