package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jphacks/hs-2501/internal/config"
	"github.com/jphacks/hs-2501/internal/models"
)

// ErrDuplicateUsername is returned by CreateUser when the username is
// already taken. Uniqueness is enforced inside the store, under its own
// lock or constraint, so concurrent signups cannot both succeed.
var ErrDuplicateUsername = errors.New("username already taken")

// Repository interface defines the methods that any store implementation
// must satisfy. Lookups that miss return (nil, nil) rather than an error.
type Repository interface {
	// User operations
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// Session operations
	CreateSession(ctx context.Context, session *models.Session) error
	GetSession(ctx context.Context, token string) (*models.Session, error)

	// Diary operations
	CreateDiary(ctx context.Context, diary *models.Diary) error
	GetUserDiaries(ctx context.Context, userID string) ([]models.Diary, error)
	GetDiaryByDate(ctx context.Context, userID, date string) (*models.Diary, error)

	// Work day operations
	UpsertWorkDay(ctx context.Context, day *models.WorkDay) error
	DeleteWorkDay(ctx context.Context, userID, date string) (bool, error)
	GetUserWorkDays(ctx context.Context, userID string) ([]models.WorkDay, error)

	// Settings operations
	GetSettings(ctx context.Context, userID string) (*models.Settings, error)
	SaveSettings(ctx context.Context, settings *models.Settings) error
}

// New creates the repository selected by the configuration and returns it
// together with a cleanup function.
func New(cfg *config.Config) (Repository, func(), error) {
	switch cfg.Store.Backend {
	case config.BackendFile:
		repo, err := NewFileRepository(cfg.Store.DataDir)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize file store: %w", err)
		}
		return repo, func() {}, nil
	case config.BackendSQL:
		db, err := config.SetupDatabase(cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to set up database: %w", err)
		}
		return NewSQLRepository(db), func() { db.Close() }, nil
	case config.BackendMemory:
		return NewMemoryRepository(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unsupported store backend: %s", cfg.Store.Backend)
	}
}
