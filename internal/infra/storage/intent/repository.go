package intent

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/salonbook/SBP-CheckoutService/internal/domain"
	"github.com/salonbook/SBP-CheckoutService/pkg/dbmetrics"
	"github.com/salonbook/SBP-CheckoutService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с платёжными намерениями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория платёжных намерений
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое платёжное намерение в статусе created
func (r *Repository) Create(ctx context.Context, intent *domain.PaymentIntent) (*domain.PaymentIntent, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("payment_intents").
		Columns(
			"gateway_order_id",
			"customer_id",
			"salon_id",
			"amount",
			"currency",
			"status",
		).
		Values(
			intent.GatewayOrderID,
			intent.CustomerID,
			intent.SalonID,
			intent.Amount,
			intent.Currency,
			intent.Status,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&intent.ID,
		&createdAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	intent.CreatedAt = createdAt.Time

	return intent, nil
}

// GetByGatewayOrderID получает платёжное намерение по ID заказа шлюза
func (r *Repository) GetByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*domain.PaymentIntent, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"gateway_order_id",
		"customer_id",
		"salon_id",
		"amount",
		"currency",
		"status",
		"created_at",
		"consumed_at",
	).
		From("payment_intents").
		Where(squirrel.Eq{"gateway_order_id": gatewayOrderID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByGatewayOrderID - build select query: %v", ErrBuildQuery, err)
	}

	var intent domain.PaymentIntent
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&intent.ID,
		&intent.GatewayOrderID,
		&intent.CustomerID,
		&intent.SalonID,
		&intent.Amount,
		&intent.Currency,
		&intent.Status,
		&createdAt,
		&intent.ConsumedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrIntentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByGatewayOrderID - scan intent: %v", ErrScanRow, err)
	}

	intent.CreatedAt = createdAt.Time

	return &intent, nil
}

// Consume помечает намерение потреблённым.
// Условный UPDATE по status='created' - это механизм at-most-once: из двух
// конкурентных checkout-ов один обновит строку, второй получит ноль затронутых
// строк и ErrAlreadyConsumed. Вызывается только внутри транзакции checkout,
// чтобы пометка и вставка бронирования фиксировались вместе.
func (r *Repository) Consume(ctx context.Context, gatewayOrderID string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("payment_intents").
		Set("status", domain.IntentStatusConsumed).
		Set("consumed_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"gateway_order_id": gatewayOrderID,
			"status":           domain.IntentStatusCreated,
		}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Consume - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Consume - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Consume - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		// Строка либо отсутствует, либо уже потреблена - различаем отдельным чтением
		existing, getErr := r.GetByGatewayOrderID(ctx, gatewayOrderID)
		if getErr != nil {
			return getErr
		}
		if existing.IsConsumed() {
			return ErrAlreadyConsumed
		}
		return fmt.Errorf("%w: Consume - intent %s in unexpected status %s", ErrExecQuery, gatewayOrderID, existing.Status)
	}

	return nil
}
