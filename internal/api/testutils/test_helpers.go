package testutils

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jphacks/hs-2501/internal/api"
	"github.com/jphacks/hs-2501/internal/models"
	"github.com/jphacks/hs-2501/internal/repository"
	"github.com/jphacks/hs-2501/internal/service"
	"github.com/stretchr/testify/assert"
)

// TestContext holds all dependencies for tests
type TestContext struct {
	Router        *gin.Engine
	Repository    *repository.MemoryRepository
	Service       service.Service
	TestUserID    string
	TestUserToken string
}

// SetupTestContext creates a new test context backed by the in-memory
// store, with one pre-registered user ("testuser"/"testpassword").
func SetupTestContext(t *testing.T) *TestContext {
	repo := repository.NewMemoryRepository()
	svc := service.NewDefaultService(repo, 0, nil)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	api.NewHandler(svc, nil).SetupRoutes(router)

	resp, err := svc.SignUp(context.Background(), models.SignUpRequest{
		Username: "testuser",
		Password: "testpassword",
	})
	assert.NoError(t, err, "Failed to create test user")

	return &TestContext{
		Router:        router,
		Repository:    repo,
		Service:       svc,
		TestUserID:    resp.User.ID,
		TestUserToken: resp.Token,
	}
}

// PerformRequest executes an HTTP request against the router
func PerformRequest(r http.Handler, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer

	if body != nil {
		jsonBody, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBody)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// AuthHeaders returns headers carrying the session token
func AuthHeaders(token string) map[string]string {
	return map[string]string{
		"X-Auth-Token": token,
	}
}
