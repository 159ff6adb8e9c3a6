package feeconfig

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/salonbook/SBP-CheckoutService/pkg/dbmetrics"
	"github.com/salonbook/SBP-CheckoutService/pkg/psqlbuilder"
)

// DBExecutor интерфейс исполнителя запросов
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий ключ-значение конфигурации платформы.
// Значения читаются при каждом расчёте цены (никакого кэширования между
// запросами): администратор может менять проценты в любой момент, и расчёт
// всегда обязан видеть текущее значение.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория конфигурации платформы
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get получает текущее значение ключа
func (r *Repository) Get(ctx context.Context, key string) (string, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("value").
		From("platform_config").
		Where(squirrel.Eq{"key": key}).
		ToSql()

	if err != nil {
		return "", fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var value string
	err = executor.QueryRowContext(ctx, query, args...).Scan(&value)

	if err == sql.ErrNoRows {
		return "", ErrKeyNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: Get - scan value: %v", ErrScanRow, err)
	}

	return value, nil
}

// GetAll получает все ключи конфигурации
func (r *Repository) GetAll(ctx context.Context) (map[string]string, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("key", "value").
		From("platform_config").
		OrderBy("key ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("%w: GetAll - scan row: %v", ErrScanRow, err)
		}
		values[key] = value
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAll - rows error: %v", ErrScanRow, err)
	}

	return values, nil
}

// Set создает или обновляет значение ключа (upsert)
func (r *Repository) Set(ctx context.Context, key, value string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("platform_config").
		Columns("key", "value").
		Values(key, value).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Set - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Set - execute upsert: %v", ErrExecQuery, err)
	}

	return nil
}
