package paymentgateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServerClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "key_id", "key_secret", 5*time.Second, nopLogger{}), srv
}

func TestCreateOrder(t *testing.T) {
	var gotAuthUser, gotAuthPass string
	var gotReq CreateOrderRequest

	client, _ := newServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/orders", r.URL.Path)
		gotAuthUser, gotAuthPass, _ = r.BasicAuth()
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(Order{
			GatewayOrderID: "order_xyz",
			Amount:         gotReq.Amount,
			Currency:       gotReq.Currency,
			Receipt:        gotReq.Receipt,
			Status:         "created",
		})
	})

	order, err := client.CreateOrder(context.Background(), &CreateOrderRequest{
		Amount:   11800,
		Currency: "INR",
		Receipt:  "rcpt_1",
	})

	require.NoError(t, err)
	assert.Equal(t, "order_xyz", order.GatewayOrderID)
	assert.Equal(t, int64(11800), order.Amount)
	assert.Equal(t, "key_id", gotAuthUser)
	assert.Equal(t, "key_secret", gotAuthPass)
	assert.Equal(t, int64(11800), gotReq.Amount)
}

func TestCreateOrder_ServerError(t *testing.T) {
	client, _ := newServerClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.CreateOrder(context.Background(), &CreateOrderRequest{Amount: 100, Currency: "INR"})

	require.ErrorIs(t, err, ErrGatewayUnavailable)
}

func TestCreateOrder_ConnectionRefused(t *testing.T) {
	client, srv := newServerClient(t, func(http.ResponseWriter, *http.Request) {})
	srv.Close()

	_, err := client.CreateOrder(context.Background(), &CreateOrderRequest{Amount: 100, Currency: "INR"})

	require.ErrorIs(t, err, ErrGatewayUnavailable)
}

func TestCreateOrder_Rejected(t *testing.T) {
	client, _ := newServerClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		var errResp ErrorResponse
		errResp.Error.Code = "BAD_REQUEST_ERROR"
		errResp.Error.Description = "amount must be at least 100"
		json.NewEncoder(w).Encode(errResp)
	})

	_, err := client.CreateOrder(context.Background(), &CreateOrderRequest{Amount: 1, Currency: "INR"})

	require.ErrorIs(t, err, ErrOrderRejected)
	assert.Contains(t, err.Error(), "BAD_REQUEST_ERROR")
}

func TestCreateOrder_EmptyOrderID(t *testing.T) {
	client, _ := newServerClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(Order{Status: "created"})
	})

	_, err := client.CreateOrder(context.Background(), &CreateOrderRequest{Amount: 100, Currency: "INR"})

	require.ErrorIs(t, err, ErrInvalidResponse)
}
