package payment

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/salonbook/SBP-CheckoutService/internal/domain"
	"github.com/salonbook/SBP-CheckoutService/pkg/dbmetrics"
	"github.com/salonbook/SBP-CheckoutService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с платёжными записями
// Записи append-only: после вставки не изменяются и не удаляются
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория платёжных записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает платёжную запись
// Вызывается только внутри транзакции checkout вместе со вставкой бронирования
func (r *Repository) Create(ctx context.Context, record *domain.PaymentRecord) (*domain.PaymentRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("payment_records").
		Columns(
			"booking_id",
			"gateway_order_id",
			"gateway_payment_id",
			"gateway_signature",
			"amount",
			"status",
			"paid_at",
		).
		Values(
			record.BookingID,
			record.GatewayOrderID,
			record.GatewayPaymentID,
			record.GatewaySignature,
			record.Amount,
			record.Status,
			record.PaidAt,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&record.ID,
		&createdAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	record.CreatedAt = createdAt.Time

	return record, nil
}

// GetByBookingID получает платёжную запись бронирования (связь 1:1)
func (r *Repository) GetByBookingID(ctx context.Context, bookingID int64) (*domain.PaymentRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"booking_id",
		"gateway_order_id",
		"gateway_payment_id",
		"gateway_signature",
		"amount",
		"status",
		"paid_at",
		"created_at",
	).
		From("payment_records").
		Where(squirrel.Eq{"booking_id": bookingID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingID - build select query: %v", ErrBuildQuery, err)
	}

	var record domain.PaymentRecord
	var paidAt, createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&record.ID,
		&record.BookingID,
		&record.GatewayOrderID,
		&record.GatewayPaymentID,
		&record.GatewaySignature,
		&record.Amount,
		&record.Status,
		&paidAt,
		&createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingID - scan record: %v", ErrScanRow, err)
	}

	record.PaidAt = paidAt.Time
	record.CreatedAt = createdAt.Time

	return &record, nil
}
