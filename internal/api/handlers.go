package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jphacks/hs-2501/internal/models"
	"github.com/jphacks/hs-2501/internal/service"
	"github.com/jphacks/hs-2501/internal/utils"
)

// Handler holds the dependencies for the API routes
type Handler struct {
	svc    service.Service
	logger *utils.Logger
}

// NewHandler creates a new API handler
func NewHandler(svc service.Service, logger *utils.Logger) *Handler {
	if logger == nil {
		logger = utils.NewLogger()
	}
	return &Handler{
		svc:    svc,
		logger: logger,
	}
}

// SetupRoutes registers all routes on the router
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.GET("/health", h.Health)

	auth := router.Group("/auth")
	{
		auth.POST("/signup", h.SignUp)
		auth.POST("/login", h.Login)
	}

	api := router.Group("/api")
	{
		// Diary generation does not require an account
		api.POST("/generate-diary", h.GenerateDiary)

		protected := api.Group("")
		protected.Use(AuthMiddleware(h.svc))
		{
			protected.GET("/diaries", h.ListDiaries)
			protected.GET("/diaries/:date", h.GetDiary)
			protected.POST("/diaries", h.CreateDiary)

			protected.GET("/workdays", h.ListWorkDays)
			protected.PUT("/workdays/:date", h.UpsertWorkDay)
			protected.DELETE("/workdays/:date", h.DeleteWorkDay)

			protected.GET("/settings", h.GetSettings)
			protected.PUT("/settings", h.SaveSettings)

			protected.GET("/summary", h.Summary)
		}
	}
}

// Health reports service liveness
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "OK",
		"message":   "Baito Diary API is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// SignUp registers a new account and issues a session token
func (h *Handler) SignUp(c *gin.Context) {
	var req models.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.svc.SignUp(c.Request.Context(), req)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Login verifies credentials and issues a fresh session token
func (h *Handler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListDiaries returns the caller's diary entries in insertion order
func (h *Handler) ListDiaries(c *gin.Context) {
	userID := c.GetString("userId")

	diaries, err := h.svc.ListDiaries(c.Request.Context(), userID)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	if diaries == nil {
		diaries = []models.Diary{}
	}

	c.JSON(http.StatusOK, models.DiaryListResponse{
		Status:  "success",
		Diaries: diaries,
	})
}

// CreateDiary appends a diary entry for the caller
func (h *Handler) CreateDiary(c *gin.Context) {
	var req models.CreateDiaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	diary, err := h.svc.CreateDiary(c.Request.Context(), c.GetString("userId"), req)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.DiaryResponse{
		Status: "success",
		Diary:  *diary,
	})
}

// GetDiary returns the caller's diary entry for one date
func (h *Handler) GetDiary(c *gin.Context) {
	diary, err := h.svc.GetDiary(c.Request.Context(), c.GetString("userId"), c.Param("date"))
	if err != nil {
		h.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.DiaryResponse{
		Status: "success",
		Diary:  *diary,
	})
}

// GenerateDiary produces diary prose from a day's schedule
func (h *Handler) GenerateDiary(c *gin.Context) {
	var req models.GenerateDiaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.svc.GenerateDiary(c.Request.Context(), req)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListWorkDays returns all of the caller's work records
func (h *Handler) ListWorkDays(c *gin.Context) {
	days, err := h.svc.ListWorkDays(c.Request.Context(), c.GetString("userId"))
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	if days == nil {
		days = []models.WorkDay{}
	}

	c.JSON(http.StatusOK, models.WorkDayListResponse{
		Status:   "success",
		WorkDays: days,
	})
}

// UpsertWorkDay marks a date as worked, pricing it from the caller's
// current pay settings
func (h *Handler) UpsertWorkDay(c *gin.Context) {
	var req models.UpsertWorkDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	day, err := h.svc.UpsertWorkDay(c.Request.Context(), c.GetString("userId"), c.Param("date"), req)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.WorkDayResponse{
		Status:  "success",
		WorkDay: *day,
	})
}

// DeleteWorkDay unmarks a worked date
func (h *Handler) DeleteWorkDay(c *gin.Context) {
	err := h.svc.RemoveWorkDay(c.Request.Context(), c.GetString("userId"), c.Param("date"))
	if err != nil {
		h.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// GetSettings returns the caller's pay configuration
func (h *Handler) GetSettings(c *gin.Context) {
	settings, err := h.svc.GetSettings(c.Request.Context(), c.GetString("userId"))
	if err != nil {
		h.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SettingsResponse{
		Status:   "success",
		Settings: *settings,
	})
}

// SaveSettings replaces the caller's pay configuration
func (h *Handler) SaveSettings(c *gin.Context) {
	var req models.SaveSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	settings, err := h.svc.SaveSettings(c.Request.Context(), c.GetString("userId"), req)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SettingsResponse{
		Status:   "success",
		Settings: *settings,
	})
}

// Summary returns the monthly aggregate when a month parameter is
// present, otherwise the yearly aggregate with derived averages
func (h *Handler) Summary(c *gin.Context) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Status:  "error",
			Code:    service.KindValidation,
			Message: "year query parameter required",
		})
		return
	}

	userID := c.GetString("userId")

	if monthStr := c.Query("month"); monthStr != "" {
		month, err := strconv.Atoi(monthStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Status:  "error",
				Code:    service.KindValidation,
				Message: "month must be a number",
			})
			return
		}

		summary, err := h.svc.MonthSummary(c.Request.Context(), userID, year, month)
		if err != nil {
			h.respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, summary)
		return
	}

	summary, err := h.svc.YearSummary(c.Request.Context(), userID, year)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// respondServiceError maps a service error to its HTTP representation
func (h *Handler) respondServiceError(c *gin.Context, err error) {
	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		c.JSON(statusForKind(svcErr.Kind), models.ErrorResponse{
			Status:  "error",
			Code:    svcErr.Kind,
			Message: svcErr.Message,
		})
		return
	}

	h.logger.Error("internal error handling %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Status:  "error",
		Code:    "INTERNAL_ERROR",
		Message: "internal server error",
	})
}

// respondError is the package-level variant for middleware without a
// handler receiver
func respondError(c *gin.Context, err error) {
	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		c.JSON(statusForKind(svcErr.Kind), models.ErrorResponse{
			Status:  "error",
			Code:    svcErr.Kind,
			Message: svcErr.Message,
		})
		return
	}

	c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Status:  "error",
		Code:    "INTERNAL_ERROR",
		Message: "internal server error",
	})
}

func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Status:  "error",
		Code:    service.KindValidation,
		Message: err.Error(),
	})
}

func statusForKind(kind string) int {
	switch kind {
	case service.KindValidation:
		return http.StatusBadRequest
	case service.KindConflict:
		return http.StatusConflict
	case service.KindUnauthorized:
		return http.StatusUnauthorized
	case service.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
