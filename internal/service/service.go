package service

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jphacks/hs-2501/internal/core"
	"github.com/jphacks/hs-2501/internal/models"
	"github.com/jphacks/hs-2501/internal/repository"
)

// Service defines all the business logic operations
type Service interface {
	// Authentication
	SignUp(ctx context.Context, req models.SignUpRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	Authenticate(ctx context.Context, token string) (*models.User, error)

	// Diary operations
	CreateDiary(ctx context.Context, userID string, req models.CreateDiaryRequest) (*models.Diary, error)
	ListDiaries(ctx context.Context, userID string) ([]models.Diary, error)
	GetDiary(ctx context.Context, userID, date string) (*models.Diary, error)
	GenerateDiary(ctx context.Context, req models.GenerateDiaryRequest) (*models.GenerateDiaryResponse, error)

	// Work calendar operations
	UpsertWorkDay(ctx context.Context, userID, date string, req models.UpsertWorkDayRequest) (*models.WorkDay, error)
	RemoveWorkDay(ctx context.Context, userID, date string) error
	ListWorkDays(ctx context.Context, userID string) ([]models.WorkDay, error)
	GetSettings(ctx context.Context, userID string) (*models.Settings, error)
	SaveSettings(ctx context.Context, userID string, req models.SaveSettingsRequest) (*models.Settings, error)

	// Summaries
	MonthSummary(ctx context.Context, userID string, year, month int) (*core.MonthlySummary, error)
	YearSummary(ctx context.Context, userID string, year int) (*YearSummaryResult, error)
}

// YearSummaryResult bundles the yearly aggregate with its derived
// averages.
type YearSummaryResult struct {
	core.YearlySummary
	Averages core.YearlyAverages `json:"averages"`
}

// DefaultService implements the Service interface
type DefaultService struct {
	repo       repository.Repository
	sessionTTL time.Duration
	generator  DiaryGenerator
}

// NewDefaultService creates a new DefaultService. A sessionTTL of zero
// means issued tokens never expire.
func NewDefaultService(repo repository.Repository, sessionTTL time.Duration, generator DiaryGenerator) Service {
	if generator == nil {
		generator = &StubGenerator{}
	}
	return &DefaultService{
		repo:       repo,
		sessionTTL: sessionTTL,
		generator:  generator,
	}
}

// Authentication methods
func (s *DefaultService) SignUp(ctx context.Context, req models.SignUpRequest) (*models.AuthResponse, error) {
	if req.Username == "" || req.Password == "" {
		return nil, validationError("username and password required")
	}

	// Check if user already exists
	existingUser, err := s.repo.GetUserByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("error checking user existence: %w", err)
	}
	if existingUser != nil {
		return nil, conflictError("user already exists")
	}

	salt, err := newSalt()
	if err != nil {
		return nil, fmt.Errorf("error generating salt: %w", err)
	}

	user := &models.User{
		ID:        uuid.New().String(),
		Username:  req.Username,
		Password:  hashPassword(salt, req.Password),
		Salt:      salt,
		CreatedAt: time.Now().UTC(),
	}

	// The store enforces username uniqueness under its own lock; the
	// check above only covers the common case before doing crypto work.
	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return nil, conflictError("user already exists")
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	token, err := s.issueSession(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{
		Status: "success",
		Token:  token,
		User:   models.UserInfo{ID: user.ID, Username: user.Username},
	}, nil
}

func (s *DefaultService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	if req.Username == "" || req.Password == "" {
		return nil, validationError("username and password required")
	}

	user, err := s.repo.GetUserByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("error getting user: %w", err)
	}
	if user == nil {
		return nil, unauthorizedError("invalid username or password")
	}

	// Verify password against the stored keyed hash
	if !hmac.Equal([]byte(hashPassword(user.Salt, req.Password)), []byte(user.Password)) {
		return nil, unauthorizedError("invalid username or password")
	}

	// Each login issues a fresh session; earlier sessions stay valid.
	token, err := s.issueSession(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{
		Status: "success",
		Token:  token,
		User:   models.UserInfo{ID: user.ID, Username: user.Username},
	}, nil
}

func (s *DefaultService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, unauthorizedError("authentication required")
	}

	session, err := s.repo.GetSession(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("error getting session: %w", err)
	}
	if session == nil {
		return nil, unauthorizedError("invalid token")
	}

	if s.sessionTTL > 0 && time.Since(session.CreatedAt) > s.sessionTTL {
		return nil, unauthorizedError("session expired")
	}

	user, err := s.repo.GetUserByID(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("error getting user: %w", err)
	}
	if user == nil {
		return nil, unauthorizedError("user not found")
	}

	return user, nil
}

// Diary operations
func (s *DefaultService) CreateDiary(ctx context.Context, userID string, req models.CreateDiaryRequest) (*models.Diary, error) {
	if req.Content == "" {
		return nil, validationError("content required")
	}

	date := req.Date
	if date == "" {
		date = time.Now().UTC().Format("2006-01-02")
	} else if !validDate(date) {
		return nil, validationError("date must be YYYY-MM-DD")
	}

	diary := &models.Diary{
		ID:        uuid.New().String(),
		UserID:    userID,
		Date:      date,
		Title:     req.Title,
		Content:   req.Content,
		Image:     req.Image,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.CreateDiary(ctx, diary); err != nil {
		return nil, fmt.Errorf("error creating diary: %w", err)
	}

	return diary, nil
}

func (s *DefaultService) ListDiaries(ctx context.Context, userID string) ([]models.Diary, error) {
	diaries, err := s.repo.GetUserDiaries(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing diaries: %w", err)
	}
	return diaries, nil
}

func (s *DefaultService) GetDiary(ctx context.Context, userID, date string) (*models.Diary, error) {
	if !validDate(date) {
		return nil, validationError("date must be YYYY-MM-DD")
	}

	diary, err := s.repo.GetDiaryByDate(ctx, userID, date)
	if err != nil {
		return nil, fmt.Errorf("error getting diary: %w", err)
	}
	if diary == nil {
		return nil, notFoundError("no diary recorded for %s", date)
	}
	return diary, nil
}

func (s *DefaultService) GenerateDiary(ctx context.Context, req models.GenerateDiaryRequest) (*models.GenerateDiaryResponse, error) {
	if len(req.Schedule) == 0 {
		return nil, validationError("schedule must contain at least one item")
	}

	text, image, err := s.generator.Generate(ctx, req.Schedule)
	if err != nil {
		return nil, fmt.Errorf("error generating diary: %w", err)
	}

	return &models.GenerateDiaryResponse{
		DiaryText:  text,
		DiaryImage: image,
		Success:    true,
	}, nil
}

// Work calendar operations
func (s *DefaultService) UpsertWorkDay(ctx context.Context, userID, date string, req models.UpsertWorkDayRequest) (*models.WorkDay, error) {
	if !validDate(date) {
		return nil, validationError("date must be YYYY-MM-DD")
	}

	settings, err := s.settingsOrDefault(ctx, userID)
	if err != nil {
		return nil, err
	}

	hours := settings.DefaultHours
	if req.Hours != nil {
		hours = *req.Hours
	}
	if hours < 0 || hours > 24 {
		return nil, validationError("hours must be between 0 and 24")
	}

	day := &models.WorkDay{
		UserID: userID,
		Date:   date,
		Hours:  hours,
		Wage:   core.ComputeWage(*settings, hours),
		Memo:   req.Memo,
	}

	if err := s.repo.UpsertWorkDay(ctx, day); err != nil {
		return nil, fmt.Errorf("error saving work day: %w", err)
	}

	return day, nil
}

func (s *DefaultService) RemoveWorkDay(ctx context.Context, userID, date string) error {
	if !validDate(date) {
		return validationError("date must be YYYY-MM-DD")
	}

	found, err := s.repo.DeleteWorkDay(ctx, userID, date)
	if err != nil {
		return fmt.Errorf("error deleting work day: %w", err)
	}
	if !found {
		return notFoundError("no work day recorded for %s", date)
	}
	return nil
}

func (s *DefaultService) ListWorkDays(ctx context.Context, userID string) ([]models.WorkDay, error) {
	days, err := s.repo.GetUserWorkDays(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing work days: %w", err)
	}
	return days, nil
}

func (s *DefaultService) GetSettings(ctx context.Context, userID string) (*models.Settings, error) {
	return s.settingsOrDefault(ctx, userID)
}

func (s *DefaultService) SaveSettings(ctx context.Context, userID string, req models.SaveSettingsRequest) (*models.Settings, error) {
	if req.PaymentType != models.PaymentHourly && req.PaymentType != models.PaymentDaily {
		return nil, validationError("paymentType must be hourly or daily")
	}
	if req.HourlyWage < 0 || req.DailyWage < 0 {
		return nil, validationError("wages must be non-negative")
	}
	if req.DefaultHours < 0 || req.DefaultHours > 24 {
		return nil, validationError("defaultHours must be between 0 and 24")
	}

	settings := &models.Settings{
		UserID:       userID,
		PaymentType:  req.PaymentType,
		HourlyWage:   req.HourlyWage,
		DailyWage:    req.DailyWage,
		DefaultHours: req.DefaultHours,
	}

	if err := s.repo.SaveSettings(ctx, settings); err != nil {
		return nil, fmt.Errorf("error saving settings: %w", err)
	}

	return settings, nil
}

// Summaries
func (s *DefaultService) MonthSummary(ctx context.Context, userID string, year, month int) (*core.MonthlySummary, error) {
	if month < 1 || month > 12 {
		return nil, validationError("month must be between 1 and 12")
	}

	days, err := s.repo.GetUserWorkDays(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error loading work days: %w", err)
	}

	summary := core.SummarizeMonth(days, year, month)
	return &summary, nil
}

func (s *DefaultService) YearSummary(ctx context.Context, userID string, year int) (*YearSummaryResult, error) {
	days, err := s.repo.GetUserWorkDays(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error loading work days: %w", err)
	}

	summary := core.SummarizeYear(days, year)
	return &YearSummaryResult{
		YearlySummary: summary,
		Averages:      core.Averages(summary),
	}, nil
}

// Helper methods
func (s *DefaultService) issueSession(ctx context.Context, userID string) (string, error) {
	session := &models.Session{
		Token:     uuid.New().String(),
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.CreateSession(ctx, session); err != nil {
		return "", fmt.Errorf("error creating session: %w", err)
	}
	return session.Token, nil
}

func (s *DefaultService) settingsOrDefault(ctx context.Context, userID string) (*models.Settings, error) {
	settings, err := s.repo.GetSettings(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error loading settings: %w", err)
	}
	if settings == nil {
		return models.DefaultSettings(userID), nil
	}
	return settings, nil
}

// hashPassword computes hex(HMAC-SHA256(salt, password)). A single HMAC
// pass is weaker than a dedicated slow hash like bcrypt; the scheme is
// kept for compatibility with existing stored credentials.
func hashPassword(salt, password string) string {
	mac := hmac.New(sha256.New, []byte(salt))
	mac.Write([]byte(password))
	return hex.EncodeToString(mac.Sum(nil))
}

// newSalt returns 8 random bytes hex-encoded.
func newSalt() (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func validDate(date string) bool {
	_, err := time.Parse("2006-01-02", date)
	return err == nil
}
