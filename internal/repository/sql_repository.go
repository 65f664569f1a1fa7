package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/jphacks/hs-2501/internal/models"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// SQLRepository implements the Repository interface over sqlx. Queries are
// written with ? placeholders and rebound for the active driver, so the
// same code serves both SQLite and PostgreSQL.
type SQLRepository struct {
	db *sqlx.DB
}

// NewSQLRepository creates a new SQL-backed repository
func NewSQLRepository(db *sqlx.DB) *SQLRepository {
	return &SQLRepository{
		db: db,
	}
}

// GetDB returns the underlying database connection
func (r *SQLRepository) GetDB() *sqlx.DB {
	return r.db
}

// isUniqueViolation reports whether err is the active driver's signal
// that a UNIQUE constraint fired.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	var sqErr *sqlite.Error
	if errors.As(err, &sqErr) {
		return sqErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
	}
	return false
}

// User repository methods
func (r *SQLRepository) CreateUser(ctx context.Context, user *models.User) error {
	query := r.db.Rebind(`
		INSERT INTO users (id, username, password, salt, created_at)
		VALUES (?, ?, ?, ?, ?)
	`)

	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Username, user.Password, user.Salt, user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateUsername
		}
		return err
	}

	return nil
}

func (r *SQLRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	query := r.db.Rebind(`SELECT * FROM users WHERE username = ?`)

	var user models.User
	err := r.db.GetContext(ctx, &user, query, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // User not found
		}
		return nil, err
	}

	return &user, nil
}

func (r *SQLRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	query := r.db.Rebind(`SELECT * FROM users WHERE id = ?`)

	var user models.User
	err := r.db.GetContext(ctx, &user, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // User not found
		}
		return nil, err
	}

	return &user, nil
}

// Session repository methods
func (r *SQLRepository) CreateSession(ctx context.Context, session *models.Session) error {
	query := r.db.Rebind(`
		INSERT INTO sessions (token, user_id, created_at)
		VALUES (?, ?, ?)
	`)

	_, err := r.db.ExecContext(ctx, query,
		session.Token, session.UserID, session.CreatedAt)

	return err
}

func (r *SQLRepository) GetSession(ctx context.Context, token string) (*models.Session, error) {
	query := r.db.Rebind(`SELECT * FROM sessions WHERE token = ?`)

	var session models.Session
	err := r.db.GetContext(ctx, &session, query, token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Session not found
		}
		return nil, err
	}

	return &session, nil
}

// Diary repository methods
func (r *SQLRepository) CreateDiary(ctx context.Context, diary *models.Diary) error {
	query := r.db.Rebind(`
		INSERT INTO diaries (id, user_id, date, title, content, image, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)

	_, err := r.db.ExecContext(ctx, query,
		diary.ID, diary.UserID, diary.Date, diary.Title, diary.Content, diary.Image, diary.CreatedAt)

	return err
}

func (r *SQLRepository) GetDiaryByDate(ctx context.Context, userID, date string) (*models.Diary, error) {
	query := r.db.Rebind(`
		SELECT * FROM diaries WHERE user_id = ? AND date = ?
		ORDER BY created_at ASC LIMIT 1
	`)

	var diary models.Diary
	err := r.db.GetContext(ctx, &diary, query, userID, date)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // No diary for that date
		}
		return nil, err
	}

	return &diary, nil
}

func (r *SQLRepository) GetUserDiaries(ctx context.Context, userID string) ([]models.Diary, error) {
	query := r.db.Rebind(`SELECT * FROM diaries WHERE user_id = ? ORDER BY created_at ASC`)

	var diaries []models.Diary
	err := r.db.SelectContext(ctx, &diaries, query, userID)
	if err != nil {
		return nil, err
	}

	return diaries, nil
}

// Work day repository methods
func (r *SQLRepository) UpsertWorkDay(ctx context.Context, day *models.WorkDay) error {
	update := r.db.Rebind(`
		UPDATE work_days SET hours = ?, wage = ?, memo = ?
		WHERE user_id = ? AND date = ?
	`)

	res, err := r.db.ExecContext(ctx, update,
		day.Hours, day.Wage, day.Memo, day.UserID, day.Date)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected > 0 {
		return nil
	}

	insert := r.db.Rebind(`
		INSERT INTO work_days (user_id, date, hours, wage, memo)
		VALUES (?, ?, ?, ?, ?)
	`)

	_, err = r.db.ExecContext(ctx, insert,
		day.UserID, day.Date, day.Hours, day.Wage, day.Memo)

	return err
}

func (r *SQLRepository) DeleteWorkDay(ctx context.Context, userID, date string) (bool, error) {
	query := r.db.Rebind(`DELETE FROM work_days WHERE user_id = ? AND date = ?`)

	res, err := r.db.ExecContext(ctx, query, userID, date)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

func (r *SQLRepository) GetUserWorkDays(ctx context.Context, userID string) ([]models.WorkDay, error) {
	query := r.db.Rebind(`SELECT * FROM work_days WHERE user_id = ? ORDER BY date ASC`)

	var days []models.WorkDay
	err := r.db.SelectContext(ctx, &days, query, userID)
	if err != nil {
		return nil, err
	}

	return days, nil
}

// Settings repository methods
func (r *SQLRepository) GetSettings(ctx context.Context, userID string) (*models.Settings, error) {
	query := r.db.Rebind(`SELECT * FROM settings WHERE user_id = ?`)

	var settings models.Settings
	err := r.db.GetContext(ctx, &settings, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // No settings saved yet
		}
		return nil, err
	}

	return &settings, nil
}

func (r *SQLRepository) SaveSettings(ctx context.Context, settings *models.Settings) error {
	update := r.db.Rebind(`
		UPDATE settings SET payment_type = ?, hourly_wage = ?, daily_wage = ?, default_hours = ?
		WHERE user_id = ?
	`)

	res, err := r.db.ExecContext(ctx, update,
		settings.PaymentType, settings.HourlyWage, settings.DailyWage,
		settings.DefaultHours, settings.UserID)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected > 0 {
		return nil
	}

	insert := r.db.Rebind(`
		INSERT INTO settings (user_id, payment_type, hourly_wage, daily_wage, default_hours)
		VALUES (?, ?, ?, ?, ?)
	`)

	_, err = r.db.ExecContext(ctx, insert,
		settings.UserID, settings.PaymentType, settings.HourlyWage,
		settings.DailyWage, settings.DefaultHours)

	return err
}
