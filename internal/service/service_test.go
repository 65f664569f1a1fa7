package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jphacks/hs-2501/internal/models"
	"github.com/jphacks/hs-2501/internal/repository"
	"github.com/stretchr/testify/assert"
)

func newTestService(t *testing.T) (Service, *repository.MemoryRepository) {
	repo := repository.NewMemoryRepository()
	return NewDefaultService(repo, 0, nil), repo
}

func TestSignUpThenLogin(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	signup, err := svc.SignUp(ctx, models.SignUpRequest{Username: "alice", Password: "pw123"})
	assert.NoError(t, err)
	assert.NotEmpty(t, signup.Token)

	login, err := svc.Login(ctx, models.LoginRequest{Username: "alice", Password: "pw123"})
	assert.NoError(t, err)
	assert.NotEmpty(t, login.Token)
	assert.NotEqual(t, signup.Token, login.Token)

	// Both tokens resolve to the same user
	userA, err := svc.Authenticate(ctx, signup.Token)
	assert.NoError(t, err)
	userB, err := svc.Authenticate(ctx, login.Token)
	assert.NoError(t, err)
	assert.Equal(t, userA.ID, userB.ID)
}

func TestSignUpValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for _, req := range []models.SignUpRequest{
		{Username: "", Password: "pw"},
		{Username: "alice", Password: ""},
	} {
		_, err := svc.SignUp(ctx, req)
		assertKind(t, err, KindValidation)
	}
}

func TestDuplicateSignUpPreservesStoredCredentials(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	_, err := svc.SignUp(ctx, models.SignUpRequest{Username: "alice", Password: "pw123"})
	assert.NoError(t, err)

	before, err := repo.GetUserByUsername(ctx, "alice")
	assert.NoError(t, err)

	_, err = svc.SignUp(ctx, models.SignUpRequest{Username: "alice", Password: "different"})
	assertKind(t, err, KindConflict)

	after, err := repo.GetUserByUsername(ctx, "alice")
	assert.NoError(t, err)
	assert.Equal(t, before.Password, after.Password)
	assert.Equal(t, before.Salt, after.Salt)
}

// slowLookupRepository widens the window between the signup pre-check and
// the user insert, like a store with real I/O latency.
type slowLookupRepository struct {
	*repository.MemoryRepository
}

func (r *slowLookupRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	time.Sleep(5 * time.Millisecond)
	return r.MemoryRepository.GetUserByUsername(ctx, username)
}

// Concurrent signups for one username must yield exactly one user row;
// the losers get a conflict, never a second row.
func TestConcurrentSignupsCreateOneUser(t *testing.T) {
	repo := &slowLookupRepository{repository.NewMemoryRepository()}
	svc := NewDefaultService(repo, 0, nil)
	ctx := context.Background()

	const attempts = 8
	errs := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.SignUp(ctx, models.SignUpRequest{Username: "alice", Password: "pw123"})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	succeeded, conflicts := 0, 0
	for err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assertKind(t, err, KindConflict)
		conflicts++
	}

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, conflicts)
	assert.Equal(t, 1, repo.UserCount())
}

func TestFailedLoginLeavesNoSession(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	_, err := svc.SignUp(ctx, models.SignUpRequest{Username: "alice", Password: "pw123"})
	assert.NoError(t, err)

	sessionsBefore := repo.SessionCount()

	_, err = svc.Login(ctx, models.LoginRequest{Username: "alice", Password: "wrong"})
	assertKind(t, err, KindUnauthorized)

	_, err = svc.Login(ctx, models.LoginRequest{Username: "nobody", Password: "pw123"})
	assertKind(t, err, KindUnauthorized)

	assert.Equal(t, sessionsBefore, repo.SessionCount())
}

func TestAuthenticate(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	signup, err := svc.SignUp(ctx, models.SignUpRequest{Username: "alice", Password: "pw123"})
	assert.NoError(t, err)

	user, err := svc.Authenticate(ctx, signup.Token)
	assert.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	_, err = svc.Authenticate(ctx, "")
	assertKind(t, err, KindUnauthorized)

	_, err = svc.Authenticate(ctx, "unknown-token")
	assertKind(t, err, KindUnauthorized)

	// A session whose user is gone is rejected
	orphan := &models.Session{Token: "orphan-token", UserID: "missing-user", CreatedAt: time.Now().UTC()}
	assert.NoError(t, repo.CreateSession(ctx, orphan))

	_, err = svc.Authenticate(ctx, orphan.Token)
	assertKind(t, err, KindUnauthorized)
}

func TestSessionExpiryWhenConfigured(t *testing.T) {
	repo := repository.NewMemoryRepository()
	ctx := context.Background()

	// Zero TTL: a session issued long ago stays valid
	unlimited := NewDefaultService(repo, 0, nil)
	signup, err := unlimited.SignUp(ctx, models.SignUpRequest{Username: "alice", Password: "pw123"})
	assert.NoError(t, err)

	stale := &models.Session{
		Token:     "stale-token",
		UserID:    signup.User.ID,
		CreatedAt: time.Now().UTC().Add(-365 * 24 * time.Hour),
	}
	assert.NoError(t, repo.CreateSession(ctx, stale))

	_, err = unlimited.Authenticate(ctx, stale.Token)
	assert.NoError(t, err)

	// With a TTL the same session is rejected
	limited := NewDefaultService(repo, time.Hour, nil)
	_, err = limited.Authenticate(ctx, stale.Token)
	assertKind(t, err, KindUnauthorized)

	_, err = limited.Authenticate(ctx, signup.Token)
	assert.NoError(t, err)
}

func TestUpsertWorkDayPricesAtCreationTime(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	signup, err := svc.SignUp(ctx, models.SignUpRequest{Username: "alice", Password: "pw123"})
	assert.NoError(t, err)
	userID := signup.User.ID

	first, err := svc.UpsertWorkDay(ctx, userID, "2024-03-05", models.UpsertWorkDayRequest{})
	assert.NoError(t, err)
	assert.Equal(t, 9600.0, first.Wage) // default 1200/h x 8h

	_, err = svc.SaveSettings(ctx, userID, models.SaveSettingsRequest{
		PaymentType:  models.PaymentHourly,
		HourlyWage:   2000,
		DailyWage:    10000,
		DefaultHours: 8,
	})
	assert.NoError(t, err)

	second, err := svc.UpsertWorkDay(ctx, userID, "2024-03-06", models.UpsertWorkDayRequest{})
	assert.NoError(t, err)
	assert.Equal(t, 16000.0, second.Wage)

	// The earlier record keeps its original wage
	summary, err := svc.MonthSummary(ctx, userID, 2024, 3)
	assert.NoError(t, err)
	assert.Equal(t, 2, summary.WorkDayCount)
	assert.Equal(t, 25600.0, summary.TotalWage)
}

func TestWorkDayValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	signup, err := svc.SignUp(ctx, models.SignUpRequest{Username: "alice", Password: "pw123"})
	assert.NoError(t, err)
	userID := signup.User.ID

	_, err = svc.UpsertWorkDay(ctx, userID, "05/03/2024", models.UpsertWorkDayRequest{})
	assertKind(t, err, KindValidation)

	tooMany := 25.0
	_, err = svc.UpsertWorkDay(ctx, userID, "2024-03-05", models.UpsertWorkDayRequest{Hours: &tooMany})
	assertKind(t, err, KindValidation)

	err = svc.RemoveWorkDay(ctx, userID, "2024-03-05")
	assertKind(t, err, KindNotFound)
}

func TestMonthSummaryValidatesMonth(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.MonthSummary(ctx, "any-user", 2024, 0)
	assertKind(t, err, KindValidation)

	_, err = svc.MonthSummary(ctx, "any-user", 2024, 13)
	assertKind(t, err, KindValidation)
}

func TestHashPasswordIsSaltKeyed(t *testing.T) {
	// Same password, different salt: different hashes
	assert.NotEqual(t, hashPassword("salt-a", "pw123"), hashPassword("salt-b", "pw123"))
	// Deterministic for a fixed salt
	assert.Equal(t, hashPassword("salt-a", "pw123"), hashPassword("salt-a", "pw123"))
}

func assertKind(t *testing.T, err error, kind string) {
	t.Helper()
	var svcErr *Error
	assert.ErrorAs(t, err, &svcErr)
	if svcErr != nil {
		assert.Equal(t, kind, svcErr.Kind)
	}
}
