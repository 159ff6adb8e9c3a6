package domain

// Fee schedule configuration keys (platform_config table)
const (
	ConfigKeyBookingFeePercentage = "booking_fee_percentage"
	ConfigKeyGSTPercentage        = "gst_percentage"
	ConfigKeyMaxAdvanceDays       = "max_advance_booking_days"
)

// Default fee schedule values, applied only when a key is absent.
// A key that is present but malformed is a configuration error, never a default.
const (
	DefaultBookingFeePercentage = "10"
	DefaultGSTPercentage        = "18"
	DefaultMaxAdvanceDays       = 90
)

// Business validation constants
const (
	MinTimeSlots    = 1
	MaxTimeSlots    = 3
	MaxCartQuantity = 10
	MaxNotesLength  = 500

	MaxCancellationReasonLength = 500
)

// Currency is the only currency transacted through the platform rail
const Currency = "INR"

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses список статусов неактивных бронирований
// Используется для фильтрации списков по умолчанию
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
}
