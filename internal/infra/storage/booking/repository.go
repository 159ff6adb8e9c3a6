package booking

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/salonbook/SBP-CheckoutService/internal/domain"
	"github.com/salonbook/SBP-CheckoutService/pkg/dbmetrics"
	"github.com/salonbook/SBP-CheckoutService/pkg/psqlbuilder"
	"github.com/salonbook/SBP-CheckoutService/pkg/types"
)

var bookingColumns = []string{
	"id",
	"booking_number",
	"customer_id",
	"salon_id",
	"gateway_order_id",
	"booking_date",
	"time_slots",
	"status",
	"service_price",
	"convenience_fee",
	"tax_amount",
	"total_amount",
	"convenience_fee_paid",
	"service_paid",
	"notes",
	"cancelled_by",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает бронирование вместе с позициями услуг.
// Вызывается только внутри транзакции checkout: вставка бронирования,
// позиции, платёжной записи и очистка корзины фиксируются как единое целое.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	slots := make([]string, len(booking.TimeSlots))
	for i, s := range booking.TimeSlots {
		slots[i] = s.String()
	}

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"booking_number",
			"customer_id",
			"salon_id",
			"gateway_order_id",
			"booking_date",
			"time_slots",
			"status",
			"service_price",
			"convenience_fee",
			"tax_amount",
			"total_amount",
			"convenience_fee_paid",
			"service_paid",
			"notes",
		).
		Values(
			booking.BookingNumber,
			booking.CustomerID,
			booking.SalonID,
			booking.GatewayOrderID,
			booking.BookingDate,
			pq.Array(slots),
			booking.Status,
			booking.ServicePrice,
			booking.ConvenienceFee,
			booking.TaxAmount,
			booking.TotalAmount,
			booking.ConvenienceFeePaid,
			booking.ServicePaid,
			booking.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	// Позиции услуг (snapshot корзины на момент checkout)
	for i := range booking.Items {
		item := &booking.Items[i]
		item.BookingID = booking.ID

		itemQuery, itemArgs, err := psqlbuilder.Insert("booking_items").
			Columns(
				"booking_id",
				"service_id",
				"service_name",
				"unit_price",
				"quantity",
			).
			Values(
				item.BookingID,
				item.ServiceID,
				item.ServiceName,
				item.UnitPrice,
				item.Quantity,
			).
			Suffix("RETURNING id").
			ToSql()

		if err != nil {
			return nil, fmt.Errorf("%w: Create - build item insert query: %v", ErrBuildQuery, err)
		}

		if err := executor.QueryRowContext(ctx, itemQuery, itemArgs...).Scan(&item.ID); err != nil {
			return nil, fmt.Errorf("%w: Create - execute item insert: %v", ErrExecQuery, err)
		}
	}

	return booking, nil
}

// GetByID получает бронирование по ID вместе с позициями
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByGatewayOrderID получает бронирование по ID заказа платёжного шлюза.
// Используется checkout-ом как идемпотентная проверка: повторный запрос с тем
// же заказом возвращает уже созданное бронирование вместо ошибки.
func (r *Repository) GetByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*domain.Booking, error) {
	return r.getOne(ctx, squirrel.Eq{"gateway_order_id": gatewayOrderID})
}

func (r *Repository) getOne(ctx context.Context, where squirrel.Eq) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getOne - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := r.scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, err
	}

	items, err := r.getItems(ctx, booking.ID)
	if err != nil {
		return nil, err
	}
	booking.Items = items

	return booking, nil
}

// GetByCustomerID получает список бронирований покупателя
// Опционально фильтрует по статусу
func (r *Repository) GetByCustomerID(ctx context.Context, customerID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"customer_id": customerID}).
		OrderBy("booking_date DESC, created_at DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomerID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomerID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// GetBySalonWithFilter получает бронирования салона с гибкой фильтрацией
// по периоду, статусу и включению отменённых
func (r *Repository) GetBySalonWithFilter(ctx context.Context, filter domain.SalonBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"salon_id": filter.SalonID})

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"booking_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"booking_date": *filter.EndDate})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		inactiveStatusStrings := make([]string, len(domain.InactiveStatuses))
		for i, s := range domain.InactiveStatuses {
			inactiveStatusStrings[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": inactiveStatusStrings})
	}

	selectBuilder = selectBuilder.OrderBy("booking_date DESC, created_at DESC")

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySalonWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySalonWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// Cancel отменяет бронирование с указанием стороны и причины
func (r *Repository) Cancel(ctx context.Context, id int64, by domain.CancelledBy, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("cancelled_by", by).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// MarkServicePaid помечает, что услуга оплачена в салоне
func (r *Repository) MarkServicePaid(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("service_paid", true).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkServicePaid - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkServicePaid - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkServicePaid - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// getItems получает позиции бронирования
func (r *Repository) getItems(ctx context.Context, bookingID int64) ([]domain.BookingItem, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"booking_id",
		"service_id",
		"service_name",
		"unit_price",
		"quantity",
	).
		From("booking_items").
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getItems - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getItems - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	items := make([]domain.BookingItem, 0)
	for rows.Next() {
		var item domain.BookingItem
		err := rows.Scan(
			&item.ID,
			&item.BookingID,
			&item.ServiceID,
			&item.ServiceName,
			&item.UnitPrice,
			&item.Quantity,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: getItems - scan row: %v", ErrScanRow, err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getItems - rows error: %v", ErrScanRow, err)
	}

	return items, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanBooking сканирует одну строку бронирования
func (r *Repository) scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var slots pq.StringArray
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.BookingNumber,
		&booking.CustomerID,
		&booking.SalonID,
		&booking.GatewayOrderID,
		&booking.BookingDate,
		&slots,
		&booking.Status,
		&booking.ServicePrice,
		&booking.ConvenienceFee,
		&booking.TaxAmount,
		&booking.TotalAmount,
		&booking.ConvenienceFeePaid,
		&booking.ServicePaid,
		&booking.Notes,
		&booking.CancelledBy,
		&booking.CancellationReason,
		&booking.CancelledAt,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scanBooking - scan row: %v", ErrScanRow, err)
	}

	booking.TimeSlots = make([]types.TimeString, len(slots))
	for i, s := range slots {
		booking.TimeSlots[i] = types.TimeString(s)
	}
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
// Позиции списочных выборок не загружаются - детали доступны через GetByID
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := r.scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
