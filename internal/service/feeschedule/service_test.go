package feeschedule

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonbook/SBP-CheckoutService/internal/domain"
	"github.com/salonbook/SBP-CheckoutService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type mockConfigRepo struct {
	values map[string]string
	err    error
}

func (m *mockConfigRepo) Get(_ context.Context, key string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.values[key], nil
}

func (m *mockConfigRepo) GetAll(_ context.Context) (map[string]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.values, nil
}

func (m *mockConfigRepo) Set(_ context.Context, key, value string) error {
	if m.err != nil {
		return m.err
	}
	m.values[key] = value
	return nil
}

func newService(repo *mockConfigRepo) *Service {
	if repo.values == nil {
		repo.values = map[string]string{}
	}
	return NewService(repo, nopLogger{})
}

func TestGet_Defaults(t *testing.T) {
	svc := newService(&mockConfigRepo{})

	schedule, err := svc.Get(context.Background())

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultBookingFeePercentage, schedule.BookingFeePercentage)
	assert.Equal(t, domain.DefaultGSTPercentage, schedule.GSTPercentage)
	assert.Equal(t, domain.DefaultMaxAdvanceDays, schedule.MaxAdvanceBookingDays)
}

func TestGet_ConfiguredValues(t *testing.T) {
	svc := newService(&mockConfigRepo{values: map[string]string{
		domain.ConfigKeyBookingFeePercentage: "12.5",
		domain.ConfigKeyGSTPercentage:        "18",
		domain.ConfigKeyMaxAdvanceDays:       "30",
	}})

	schedule, err := svc.Get(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "12.5", schedule.BookingFeePercentage)
	assert.Equal(t, "18", schedule.GSTPercentage)
	assert.Equal(t, 30, schedule.MaxAdvanceBookingDays)
}

func TestUpdate(t *testing.T) {
	repo := &mockConfigRepo{}
	svc := newService(repo)

	schedule, err := svc.Update(context.Background(), &UpdateRequest{
		BookingFeePercentage:  ptr.Ptr("15"),
		MaxAdvanceBookingDays: ptr.Ptr(45),
	})

	require.NoError(t, err)
	assert.Equal(t, "15", schedule.BookingFeePercentage)
	assert.Equal(t, 45, schedule.MaxAdvanceBookingDays)
	// Незатронутый ключ остаётся дефолтным
	assert.Equal(t, domain.DefaultGSTPercentage, schedule.GSTPercentage)
	assert.Equal(t, "15", repo.values[domain.ConfigKeyBookingFeePercentage])
}

func TestUpdate_RejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		req  *UpdateRequest
	}{
		{"NonNumericFee", &UpdateRequest{BookingFeePercentage: ptr.Ptr("abc")}},
		{"NegativeFee", &UpdateRequest{BookingFeePercentage: ptr.Ptr("-5")}},
		{"FeeAbove100", &UpdateRequest{GSTPercentage: ptr.Ptr("101")}},
		{"NegativeAdvanceDays", &UpdateRequest{MaxAdvanceBookingDays: ptr.Ptr(-1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockConfigRepo{}
			svc := newService(repo)

			_, err := svc.Update(context.Background(), tt.req)

			require.ErrorIs(t, err, ErrInvalidValue)
			assert.Empty(t, repo.values)
		})
	}
}
