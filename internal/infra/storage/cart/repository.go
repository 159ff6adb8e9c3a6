package cart

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/salonbook/SBP-CheckoutService/internal/domain"
	"github.com/salonbook/SBP-CheckoutService/pkg/dbmetrics"
	"github.com/salonbook/SBP-CheckoutService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с корзиной
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория корзины
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByCustomer получает все позиции корзины покупателя
// Внутри транзакции строки блокируются (FOR UPDATE), чтобы конкурентный
// checkout и мутация корзины не пересекались
func (r *Repository) GetByCustomer(ctx context.Context, customerID int64) ([]*domain.CartItem, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"customer_id",
		"salon_id",
		"service_id",
		"quantity",
		"created_at",
		"updated_at",
	).
		From("cart_items").
		Where(squirrel.Eq{"customer_id": customerID}).
		OrderBy("created_at ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomer - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomer - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanItems(rows)
}

// GetByCustomerAndService получает позицию корзины по покупателю и услуге
// Используется для idempotent-additive добавления (увеличение количества)
func (r *Repository) GetByCustomerAndService(ctx context.Context, customerID, serviceID int64) (*domain.CartItem, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"customer_id",
		"salon_id",
		"service_id",
		"quantity",
		"created_at",
		"updated_at",
	).
		From("cart_items").
		Where(squirrel.Eq{"customer_id": customerID, "service_id": serviceID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomerAndService - build select query: %v", ErrBuildQuery, err)
	}

	var item domain.CartItem
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&item.ID,
		&item.CustomerID,
		&item.SalonID,
		&item.ServiceID,
		&item.Quantity,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomerAndService - scan item: %v", ErrScanRow, err)
	}

	item.CreatedAt = createdAt.Time
	item.UpdatedAt = updatedAt.Time

	return &item, nil
}

// Create создает новую позицию корзины
func (r *Repository) Create(ctx context.Context, item *domain.CartItem) (*domain.CartItem, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("cart_items").
		Columns(
			"customer_id",
			"salon_id",
			"service_id",
			"quantity",
		).
		Values(
			item.CustomerID,
			item.SalonID,
			item.ServiceID,
			item.Quantity,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&item.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	item.CreatedAt = createdAt.Time
	item.UpdatedAt = updatedAt.Time

	return item, nil
}

// UpdateQuantity обновляет количество позиции корзины
// customerID участвует в условии, чтобы нельзя было изменить чужую позицию
func (r *Repository) UpdateQuantity(ctx context.Context, customerID, itemID int64, quantity int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("cart_items").
		Set("quantity", quantity).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": itemID, "customer_id": customerID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateQuantity - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateQuantity - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateQuantity - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrItemNotFound
	}

	return nil
}

// Delete удаляет позицию корзины
func (r *Repository) Delete(ctx context.Context, customerID, itemID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("cart_items").
		Where(squirrel.Eq{"id": itemID, "customer_id": customerID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrItemNotFound
	}

	return nil
}

// ClearByCustomer удаляет все позиции корзины покупателя
// Пустая корзина не является ошибкой - удаление нуля строк допустимо
func (r *Repository) ClearByCustomer(ctx context.Context, customerID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("cart_items").
		Where(squirrel.Eq{"customer_id": customerID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ClearByCustomer - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ClearByCustomer - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

// scanItems сканирует результаты запроса в слайс позиций корзины
func (r *Repository) scanItems(rows *sql.Rows) ([]*domain.CartItem, error) {
	items := make([]*domain.CartItem, 0)

	for rows.Next() {
		var item domain.CartItem
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&item.ID,
			&item.CustomerID,
			&item.SalonID,
			&item.ServiceID,
			&item.Quantity,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanItems - scan row: %v", ErrScanRow, err)
		}

		item.CreatedAt = createdAt.Time
		item.UpdatedAt = updatedAt.Time

		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanItems - rows error: %v", ErrScanRow, err)
	}

	return items, nil
}
