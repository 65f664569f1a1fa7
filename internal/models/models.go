package models

import (
	"time"
)

// Payment types for Settings.PaymentType
const (
	PaymentHourly = "hourly"
	PaymentDaily  = "daily"
)

// User represents a registered account in the system
type User struct {
	ID        string    `db:"id" json:"id"`
	Username  string    `db:"username" json:"username"`
	Password  string    `db:"password" json:"-"` // Keyed password hash, not returned in JSON
	Salt      string    `db:"salt" json:"-"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// Session represents one issued bearer token. A token is only valid while
// its session is present in the store.
type Session struct {
	Token     string    `db:"token" json:"-"`
	UserID    string    `db:"user_id" json:"userId"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// Diary represents a diary entry owned by a user. Date is the YYYY-MM-DD
// day the entry is about, which may differ from CreatedAt.
type Diary struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"userId"`
	Date      string    `db:"date" json:"date"`
	Title     string    `db:"title" json:"title"`
	Content   string    `db:"content" json:"content"`
	Image     string    `db:"image" json:"image,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// WorkDay is one calendar date marked as worked. Date is YYYY-MM-DD and
// unique per user. Wage is fixed at creation time from the user's settings
// and is never recomputed afterwards.
type WorkDay struct {
	UserID string  `db:"user_id" json:"-"`
	Date   string  `db:"date" json:"date"`
	Hours  float64 `db:"hours" json:"hours"`
	Wage   float64 `db:"wage" json:"wage"`
	Memo   string  `db:"memo" json:"memo,omitempty"`
}

// Settings is the pay configuration used to price newly created work days
type Settings struct {
	UserID       string  `db:"user_id" json:"-"`
	PaymentType  string  `db:"payment_type" json:"paymentType"` // "hourly" or "daily"
	HourlyWage   float64 `db:"hourly_wage" json:"hourlyWage"`
	DailyWage    float64 `db:"daily_wage" json:"dailyWage"`
	DefaultHours float64 `db:"default_hours" json:"defaultHours"`
}

// DefaultSettings returns the settings applied before a user has saved any
func DefaultSettings(userID string) *Settings {
	return &Settings{
		UserID:       userID,
		PaymentType:  PaymentHourly,
		HourlyWage:   1200,
		DailyWage:    10000,
		DefaultHours: 8,
	}
}

// ScheduleItem is one entry of a day's schedule submitted for diary generation
type ScheduleItem struct {
	Time     string `json:"time"`
	Activity string `json:"activity"`
}
