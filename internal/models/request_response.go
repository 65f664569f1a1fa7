package models

// Request models
type SignUpRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type CreateDiaryRequest struct {
	// Date defaults to the current day when omitted
	Date    string `json:"date"`
	Title   string `json:"title"`
	Content string `json:"content" binding:"required"`
	Image   string `json:"image"`
}

type UpsertWorkDayRequest struct {
	// Hours defaults to the user's configured default working hours
	Hours *float64 `json:"hours"`
	Memo  string   `json:"memo"`
}

type SaveSettingsRequest struct {
	PaymentType  string  `json:"paymentType" binding:"required,oneof=hourly daily"`
	HourlyWage   float64 `json:"hourlyWage"`
	DailyWage    float64 `json:"dailyWage"`
	DefaultHours float64 `json:"defaultHours"`
}

type GenerateDiaryRequest struct {
	Schedule []ScheduleItem `json:"schedule" binding:"required"`
}

// Response models
type UserInfo struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type AuthResponse struct {
	Status string   `json:"status"`
	Token  string   `json:"token"`
	User   UserInfo `json:"user"`
}

type DiaryResponse struct {
	Status string `json:"status"`
	Diary  Diary  `json:"diary"`
}

type DiaryListResponse struct {
	Status  string  `json:"status"`
	Diaries []Diary `json:"diaries"`
}

type WorkDayResponse struct {
	Status  string  `json:"status"`
	WorkDay WorkDay `json:"workDay"`
}

type WorkDayListResponse struct {
	Status   string    `json:"status"`
	WorkDays []WorkDay `json:"workDays"`
}

type SettingsResponse struct {
	Status   string   `json:"status"`
	Settings Settings `json:"settings"`
}

type GenerateDiaryResponse struct {
	DiaryText  string `json:"diaryText"`
	DiaryImage string `json:"diaryImage"`
	Success    bool   `json:"success"`
}

type ErrorResponse struct {
	Status  string `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}
