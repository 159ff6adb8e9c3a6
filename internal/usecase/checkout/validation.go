package checkout

import (
	"fmt"
	"time"

	"github.com/salonbook/SBP-CheckoutService/internal/domain"
	"github.com/salonbook/SBP-CheckoutService/internal/integrations/salonservice"
	"github.com/salonbook/SBP-CheckoutService/pkg/types"
)

// validateRequest проверяет структурную корректность запроса
func validateRequest(req *Request) error {
	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customer id must be positive", ErrInvalidInput)
	}

	if req.GatewayOrderID == "" || req.GatewayPaymentID == "" || req.GatewaySignature == "" {
		return fmt.Errorf("%w: gateway order id, payment id and signature are required", ErrInvalidInput)
	}

	if req.BookingDate.IsZero() {
		return fmt.Errorf("%w: booking date is required", ErrInvalidBookingDate)
	}

	seen := make(map[string]struct{}, len(req.TimeSlots))
	for _, slot := range req.TimeSlots {
		if _, err := types.NewTimeStringFromString(slot); err != nil {
			return fmt.Errorf("%w: slot %q is not in HH:MM format", ErrInvalidTimeSlots, slot)
		}
		if _, ok := seen[slot]; ok {
			return fmt.Errorf("%w: duplicate slot %q", ErrInvalidTimeSlots, slot)
		}
		seen[slot] = struct{}{}
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// Платформа обслуживает индийские салоны: граница календарных суток для
// "дата в прошлом" и горизонта бронирования проходит по IST, а не по UTC
var platformLocation = time.FixedZone("IST", 5*3600+30*60)

// dateOnly приводит момент времени к началу его календарных суток в IST
func dateOnly(t time.Time) time.Time {
	year, month, day := t.In(platformLocation).Date()
	return time.Date(year, month, day, 0, 0, 0, 0, platformLocation)
}

// validateBookingDate проверяет, что дата не в прошлом и не дальше горизонта бронирования
func validateBookingDate(now, bookingDate time.Time, maxAdvanceDays int) error {
	today := dateOnly(now)
	date := dateOnly(bookingDate)

	if date.Before(today) {
		return fmt.Errorf("%w: date %s is in the past", ErrInvalidBookingDate, date.Format(domain.DateFormat))
	}

	horizon := today.AddDate(0, 0, maxAdvanceDays)
	if date.After(horizon) {
		return fmt.Errorf("%w: date %s is more than %d days ahead",
			ErrInvalidBookingDate, date.Format(domain.DateFormat), maxAdvanceDays)
	}

	return nil
}

// validateTimeSlots проверяет количество слотов и что все они попадают
// в часы работы салона в день бронирования. Запрошенный слот - это время
// начала визита, поэтому он должен быть строго раньше закрытия.
// Вызывается после проверок корзины и салона: пустая корзина и неактивный
// салон имеют приоритет над ошибкой слотов.
func validateTimeSlots(salon *salonservice.Salon, bookingDate time.Time, slots []string) error {
	if len(slots) < domain.MinTimeSlots || len(slots) > domain.MaxTimeSlots {
		return fmt.Errorf("%w: expected %d to %d time slots, got %d",
			ErrInvalidTimeSlots, domain.MinTimeSlots, domain.MaxTimeSlots, len(slots))
	}

	day := dayScheduleFor(salon.OperatingHours, bookingDate.Weekday())
	if !day.IsOpen {
		return fmt.Errorf("%w: salon is closed on %s", ErrInvalidTimeSlots, bookingDate.Weekday())
	}

	openTime, err := types.NewTimeStringFromString(day.OpenTime)
	if err != nil {
		return fmt.Errorf("%w: salon reported malformed opening time %q", ErrInternal, day.OpenTime)
	}
	closeTime, err := types.NewTimeStringFromString(day.CloseTime)
	if err != nil {
		return fmt.Errorf("%w: salon reported malformed closing time %q", ErrInternal, day.CloseTime)
	}

	for _, raw := range slots {
		slot, err := types.NewTimeStringFromString(raw)
		if err != nil {
			return fmt.Errorf("%w: slot %q is not in HH:MM format", ErrInvalidTimeSlots, raw)
		}
		if slot.IsBefore(openTime) || !slot.IsBefore(closeTime) {
			return fmt.Errorf("%w: slot %s is outside operating hours %s-%s",
				ErrInvalidTimeSlots, slot, openTime, closeTime)
		}
	}

	return nil
}

// dayScheduleFor возвращает расписание салона на день недели
func dayScheduleFor(week salonservice.WeekSchedule, weekday time.Weekday) salonservice.DaySchedule {
	switch weekday {
	case time.Monday:
		return week.Monday
	case time.Tuesday:
		return week.Tuesday
	case time.Wednesday:
		return week.Wednesday
	case time.Thursday:
		return week.Thursday
	case time.Friday:
		return week.Friday
	case time.Saturday:
		return week.Saturday
	default:
		return week.Sunday
	}
}
