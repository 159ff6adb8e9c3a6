package pricing

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonbook/SBP-CheckoutService/internal/domain"
	"github.com/salonbook/SBP-CheckoutService/internal/infra/storage/feeconfig"
)

type mockConfigRepo struct {
	values map[string]string
	err    error
}

func (m *mockConfigRepo) Get(_ context.Context, key string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	value, ok := m.values[key]
	if !ok {
		return "", feeconfig.ErrKeyNotFound
	}
	return value, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestResolve_StandardSchedule(t *testing.T) {
	repo := &mockConfigRepo{values: map[string]string{
		domain.ConfigKeyBookingFeePercentage: "10",
		domain.ConfigKeyGSTPercentage:        "18",
	}}
	svc := NewService(repo, nopLogger{})

	breakdown, err := svc.Resolve(context.Background(), decimal.NewFromInt(1000))

	require.NoError(t, err)
	assert.Equal(t, "1000.00", breakdown.ServiceSubtotal.StringFixed(2))
	assert.Equal(t, "100.00", breakdown.ConvenienceFee.StringFixed(2))
	assert.Equal(t, "18.00", breakdown.Tax.StringFixed(2))
	assert.Equal(t, "118.00", breakdown.AmountPayableOnline.StringFixed(2))
	assert.Equal(t, "1000.00", breakdown.AmountPayableSalon.StringFixed(2))
}

func TestResolve_DefaultsWhenKeysAbsent(t *testing.T) {
	svc := NewService(&mockConfigRepo{values: map[string]string{}}, nopLogger{})

	breakdown, err := svc.Resolve(context.Background(), decimal.NewFromInt(1000))

	require.NoError(t, err)
	// Дефолты 10% и 18% применяются только при отсутствии ключей
	assert.Equal(t, "100.00", breakdown.ConvenienceFee.StringFixed(2))
	assert.Equal(t, "18.00", breakdown.Tax.StringFixed(2))
}

func TestResolve_TaxOnFeeOnly(t *testing.T) {
	repo := &mockConfigRepo{values: map[string]string{
		domain.ConfigKeyBookingFeePercentage: "20",
		domain.ConfigKeyGSTPercentage:        "10",
	}}
	svc := NewService(repo, nopLogger{})

	breakdown, err := svc.Resolve(context.Background(), decimal.NewFromFloat(500.50))

	require.NoError(t, err)
	// Налог считается от сервисного сбора, не от суммы услуг
	assert.Equal(t, "100.10", breakdown.ConvenienceFee.StringFixed(2))
	assert.Equal(t, "10.01", breakdown.Tax.StringFixed(2))
}

func TestResolve_FeePlusTaxEqualsOnlineAmount(t *testing.T) {
	repo := &mockConfigRepo{values: map[string]string{
		domain.ConfigKeyBookingFeePercentage: "12.5",
		domain.ConfigKeyGSTPercentage:        "18",
	}}
	svc := NewService(repo, nopLogger{})

	subtotals := []string{"0.01", "1", "99.99", "1000", "123456.78"}
	for _, raw := range subtotals {
		subtotal := decimal.RequireFromString(raw)
		breakdown, err := svc.Resolve(context.Background(), subtotal)

		require.NoError(t, err)
		assert.True(t, breakdown.ConvenienceFee.Add(breakdown.Tax).Equal(breakdown.AmountPayableOnline),
			"subtotal %s: fee %s + tax %s != online %s",
			raw, breakdown.ConvenienceFee, breakdown.Tax, breakdown.AmountPayableOnline)
		assert.True(t, breakdown.AmountPayableSalon.Equal(subtotal))
	}
}

func TestResolve_Deterministic(t *testing.T) {
	repo := &mockConfigRepo{values: map[string]string{
		domain.ConfigKeyBookingFeePercentage: "7.25",
		domain.ConfigKeyGSTPercentage:        "18",
	}}
	svc := NewService(repo, nopLogger{})
	subtotal := decimal.RequireFromString("839.17")

	first, err := svc.Resolve(context.Background(), subtotal)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		next, err := svc.Resolve(context.Background(), subtotal)
		require.NoError(t, err)
		assert.True(t, first.Equal(next))
	}
}

func TestResolve_MalformedPercentage(t *testing.T) {
	repo := &mockConfigRepo{values: map[string]string{
		domain.ConfigKeyBookingFeePercentage: "ten percent",
	}}
	svc := NewService(repo, nopLogger{})

	_, err := svc.Resolve(context.Background(), decimal.NewFromInt(1000))

	// Присутствующее, но некорректное значение - фатальная ошибка
	// конфигурации, а не повод применить дефолт
	require.ErrorIs(t, err, ErrConfiguration)
}

func TestResolve_NegativePercentage(t *testing.T) {
	repo := &mockConfigRepo{values: map[string]string{
		domain.ConfigKeyBookingFeePercentage: "10",
		domain.ConfigKeyGSTPercentage:        "-5",
	}}
	svc := NewService(repo, nopLogger{})

	_, err := svc.Resolve(context.Background(), decimal.NewFromInt(1000))

	require.ErrorIs(t, err, ErrConfiguration)
}

func TestResolve_RepositoryError(t *testing.T) {
	svc := NewService(&mockConfigRepo{err: errors.New("connection reset")}, nopLogger{})

	_, err := svc.Resolve(context.Background(), decimal.NewFromInt(1000))

	require.ErrorIs(t, err, ErrInternal)
}

func TestResolve_ZeroSubtotal(t *testing.T) {
	svc := NewService(&mockConfigRepo{values: map[string]string{}}, nopLogger{})

	breakdown, err := svc.Resolve(context.Background(), decimal.Zero)

	require.NoError(t, err)
	assert.True(t, breakdown.AmountPayableOnline.IsZero())
	assert.Equal(t, int64(0), breakdown.OnlineAmountMinorUnits())
}
