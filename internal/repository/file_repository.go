package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/jphacks/hs-2501/internal/models"
)

// Collection file names inside the data directory.
const (
	usersFile    = "users.json"
	sessionsFile = "sessions.json"
	diariesFile  = "diaries.json"
	workDaysFile = "workdays.json"
	settingsFile = "settings.json"
)

// FileRepository implements the Repository interface with one JSON file
// per collection. Every operation reads the whole collection and, for
// writes, writes the whole collection back; the mutex keeps that
// read-modify-write span atomic with respect to other callers. Files are
// replaced via temp-file-and-rename so readers never observe a partial
// write.
type FileRepository struct {
	dir string
	mu  sync.Mutex
}

// On-disk record shapes. The API models hide credentials and ownership
// fields from JSON responses, so the collections use explicit records
// that keep every column.
type userRecord struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"password"`
	Salt      string    `json:"salt"`
	CreatedAt time.Time `json:"createdAt"`
}

// sessionRecord is the on-disk value of the token-keyed sessions map.
type sessionRecord struct {
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

type workDayRecord struct {
	UserID string  `json:"userId"`
	Date   string  `json:"date"`
	Hours  float64 `json:"hours"`
	Wage   float64 `json:"wage"`
	Memo   string  `json:"memo,omitempty"`
}

func (rec userRecord) toModel() *models.User {
	return &models.User{
		ID:        rec.ID,
		Username:  rec.Username,
		Password:  rec.Password,
		Salt:      rec.Salt,
		CreatedAt: rec.CreatedAt,
	}
}

func (rec workDayRecord) toModel() models.WorkDay {
	return models.WorkDay(rec)
}

// NewFileRepository creates a file-backed repository rooted at dir,
// creating the directory if needed.
func NewFileRepository(dir string) (*FileRepository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &FileRepository{dir: dir}, nil
}

// readJSON loads a collection file into v. A missing file is normal
// first-run state and leaves v at its zero value; an unreadable or
// corrupt file is an error and fails the calling operation.
func (r *FileRepository) readJSON(name string, v interface{}) error {
	data, err := os.ReadFile(filepath.Join(r.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}

// writeJSON atomically replaces a collection file.
func (r *FileRepository) writeJSON(name string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}

	path := filepath.Join(r.dir, name)
	tmp, err := os.CreateTemp(r.dir, name+".tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", name, err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace %s: %w", name, err)
	}
	return nil
}

// User repository methods
func (r *FileRepository) CreateUser(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var users []userRecord
	if err := r.readJSON(usersFile, &users); err != nil {
		return err
	}

	// Uniqueness is checked here, inside the same lock as the write, so
	// two concurrent signups for the same name cannot both get in.
	for _, u := range users {
		if u.Username == user.Username {
			return ErrDuplicateUsername
		}
	}

	users = append(users, userRecord{
		ID:        user.ID,
		Username:  user.Username,
		Password:  user.Password,
		Salt:      user.Salt,
		CreatedAt: user.CreatedAt,
	})
	return r.writeJSON(usersFile, users)
}

func (r *FileRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var users []userRecord
	if err := r.readJSON(usersFile, &users); err != nil {
		return nil, err
	}

	for _, u := range users {
		if u.Username == username {
			return u.toModel(), nil
		}
	}
	return nil, nil
}

func (r *FileRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var users []userRecord
	if err := r.readJSON(usersFile, &users); err != nil {
		return nil, err
	}

	for _, u := range users {
		if u.ID == id {
			return u.toModel(), nil
		}
	}
	return nil, nil
}

// Session repository methods
func (r *FileRepository) CreateSession(ctx context.Context, session *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sessions := make(map[string]sessionRecord)
	if err := r.readJSON(sessionsFile, &sessions); err != nil {
		return err
	}

	sessions[session.Token] = sessionRecord{
		UserID:    session.UserID,
		CreatedAt: session.CreatedAt,
	}
	return r.writeJSON(sessionsFile, sessions)
}

func (r *FileRepository) GetSession(ctx context.Context, token string) (*models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sessions := make(map[string]sessionRecord)
	if err := r.readJSON(sessionsFile, &sessions); err != nil {
		return nil, err
	}

	rec, ok := sessions[token]
	if !ok {
		return nil, nil
	}

	return &models.Session{
		Token:     token,
		UserID:    rec.UserID,
		CreatedAt: rec.CreatedAt,
	}, nil
}

// Diary repository methods
func (r *FileRepository) CreateDiary(ctx context.Context, diary *models.Diary) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var diaries []models.Diary
	if err := r.readJSON(diariesFile, &diaries); err != nil {
		return err
	}

	diaries = append(diaries, *diary)
	return r.writeJSON(diariesFile, diaries)
}

func (r *FileRepository) GetUserDiaries(ctx context.Context, userID string) ([]models.Diary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var diaries []models.Diary
	if err := r.readJSON(diariesFile, &diaries); err != nil {
		return nil, err
	}

	// Storage order is insertion order; no sorting.
	var result []models.Diary
	for _, d := range diaries {
		if d.UserID == userID {
			result = append(result, d)
		}
	}
	return result, nil
}

func (r *FileRepository) GetDiaryByDate(ctx context.Context, userID, date string) (*models.Diary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var diaries []models.Diary
	if err := r.readJSON(diariesFile, &diaries); err != nil {
		return nil, err
	}

	for _, d := range diaries {
		if d.UserID == userID && d.Date == date {
			diary := d
			return &diary, nil
		}
	}
	return nil, nil
}

// Work day repository methods
func (r *FileRepository) UpsertWorkDay(ctx context.Context, day *models.WorkDay) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var days []workDayRecord
	if err := r.readJSON(workDaysFile, &days); err != nil {
		return err
	}

	rec := workDayRecord(*day)
	replaced := false
	for i := range days {
		if days[i].UserID == day.UserID && days[i].Date == day.Date {
			days[i] = rec
			replaced = true
			break
		}
	}
	if !replaced {
		days = append(days, rec)
	}
	return r.writeJSON(workDaysFile, days)
}

func (r *FileRepository) DeleteWorkDay(ctx context.Context, userID, date string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var days []workDayRecord
	if err := r.readJSON(workDaysFile, &days); err != nil {
		return false, err
	}

	kept := days[:0]
	found := false
	for _, d := range days {
		if d.UserID == userID && d.Date == date {
			found = true
			continue
		}
		kept = append(kept, d)
	}
	if !found {
		return false, nil
	}
	return true, r.writeJSON(workDaysFile, kept)
}

func (r *FileRepository) GetUserWorkDays(ctx context.Context, userID string) ([]models.WorkDay, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var days []workDayRecord
	if err := r.readJSON(workDaysFile, &days); err != nil {
		return nil, err
	}

	var result []models.WorkDay
	for _, d := range days {
		if d.UserID == userID {
			result = append(result, d.toModel())
		}
	}
	return result, nil
}

// Settings repository methods
func (r *FileRepository) GetSettings(ctx context.Context, userID string) (*models.Settings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	settings := make(map[string]models.Settings)
	if err := r.readJSON(settingsFile, &settings); err != nil {
		return nil, err
	}

	s, ok := settings[userID]
	if !ok {
		return nil, nil
	}
	s.UserID = userID
	return &s, nil
}

func (r *FileRepository) SaveSettings(ctx context.Context, s *models.Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	settings := make(map[string]models.Settings)
	if err := r.readJSON(settingsFile, &settings); err != nil {
		return err
	}

	settings[s.UserID] = *s
	return r.writeJSON(settingsFile, settings)
}
