package salonservice

import "github.com/shopspring/decimal"

// Salon модель салона из SalonService
type Salon struct {
	ID                int64        `json:"id"`
	Name              string       `json:"name"`
	IsActive          bool         `json:"is_active"`
	AcceptingBookings bool         `json:"accepting_bookings"`
	OperatingHours    WeekSchedule `json:"operating_hours"`
}

// WeekSchedule расписание работы салона по дням недели
type WeekSchedule struct {
	Monday    DaySchedule `json:"monday"`
	Tuesday   DaySchedule `json:"tuesday"`
	Wednesday DaySchedule `json:"wednesday"`
	Thursday  DaySchedule `json:"thursday"`
	Friday    DaySchedule `json:"friday"`
	Saturday  DaySchedule `json:"saturday"`
	Sunday    DaySchedule `json:"sunday"`
}

// DaySchedule расписание работы на один день
type DaySchedule struct {
	IsOpen    bool   `json:"is_open"`
	OpenTime  string `json:"open_time"`  // "09:00"
	CloseTime string `json:"close_time"` // "21:00"
}

// Service модель услуги из SalonService
type Service struct {
	ID              int64           `json:"id"`
	SalonID         int64           `json:"salon_id"`
	Name            string          `json:"name"`
	Price           decimal.Decimal `json:"price"`
	DurationMinutes int             `json:"duration_minutes"`
	IsActive        bool            `json:"is_active"`
}

// ErrorResponse модель ошибки от SalonService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
