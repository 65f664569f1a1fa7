package repository

import (
	"context"
	"sync"

	"github.com/jphacks/hs-2501/internal/models"
)

// MemoryRepository implements the Repository interface with in-process
// maps and slices. It is used by tests and as a throwaway backend; data
// does not survive a restart.
type MemoryRepository struct {
	mu       sync.Mutex
	users    []models.User
	sessions map[string]models.Session
	diaries  []models.Diary
	workDays []models.WorkDay
	settings map[string]models.Settings
}

// NewMemoryRepository creates an empty in-memory repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		sessions: make(map[string]models.Session),
		settings: make(map[string]models.Settings),
	}
}

// User repository methods
func (r *MemoryRepository) CreateUser(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.users {
		if r.users[i].Username == user.Username {
			return ErrDuplicateUsername
		}
	}
	r.users = append(r.users, *user)
	return nil
}

// UserCount reports how many users are stored. Test helper.
func (r *MemoryRepository) UserCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users)
}

func (r *MemoryRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.users {
		if r.users[i].Username == username {
			u := r.users[i]
			return &u, nil
		}
	}
	return nil, nil
}

func (r *MemoryRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.users {
		if r.users[i].ID == id {
			u := r.users[i]
			return &u, nil
		}
	}
	return nil, nil
}

// Session repository methods
func (r *MemoryRepository) CreateSession(ctx context.Context, session *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.Token] = *session
	return nil
}

func (r *MemoryRepository) GetSession(ctx context.Context, token string) (*models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[token]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

// SessionCount reports how many sessions are stored. Test helper.
func (r *MemoryRepository) SessionCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Diary repository methods
func (r *MemoryRepository) CreateDiary(ctx context.Context, diary *models.Diary) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.diaries = append(r.diaries, *diary)
	return nil
}

func (r *MemoryRepository) GetUserDiaries(ctx context.Context, userID string) ([]models.Diary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []models.Diary
	for _, d := range r.diaries {
		if d.UserID == userID {
			result = append(result, d)
		}
	}
	return result, nil
}

func (r *MemoryRepository) GetDiaryByDate(ctx context.Context, userID, date string) (*models.Diary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.diaries {
		if d.UserID == userID && d.Date == date {
			diary := d
			return &diary, nil
		}
	}
	return nil, nil
}

// Work day repository methods
func (r *MemoryRepository) UpsertWorkDay(ctx context.Context, day *models.WorkDay) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.workDays {
		if r.workDays[i].UserID == day.UserID && r.workDays[i].Date == day.Date {
			r.workDays[i] = *day
			return nil
		}
	}
	r.workDays = append(r.workDays, *day)
	return nil
}

func (r *MemoryRepository) DeleteWorkDay(ctx context.Context, userID, date string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.workDays {
		if r.workDays[i].UserID == userID && r.workDays[i].Date == date {
			r.workDays = append(r.workDays[:i], r.workDays[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *MemoryRepository) GetUserWorkDays(ctx context.Context, userID string) ([]models.WorkDay, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []models.WorkDay
	for _, d := range r.workDays {
		if d.UserID == userID {
			result = append(result, d)
		}
	}
	return result, nil
}

// Settings repository methods
func (r *MemoryRepository) GetSettings(ctx context.Context, userID string) (*models.Settings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.settings[userID]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *MemoryRepository) SaveSettings(ctx context.Context, settings *models.Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.settings[settings.UserID] = *settings
	return nil
}
