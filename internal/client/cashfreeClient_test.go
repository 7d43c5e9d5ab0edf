package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"gsinfo-directory/internal/apperror"
	"gsinfo-directory/internal/config"
	"gsinfo-directory/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCashfree(t *testing.T, handler http.HandlerFunc) (CashfreeClient, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	return NewCashfreeClient(&config.Cashfree{
		BaseApiURL:   srv.URL,
		AppID:        "app-id",
		SecretKey:    "secret",
		ApiVersion:   "2023-08-01",
		CustomerName: "GSINFO Customer",
	}), &calls
}

func sampleOrderRequest() *GatewayOrderRequest {
	return &GatewayOrderRequest{
		OrderID:  "ORDER_1700000000000_abc123xyz",
		Amount:   decimal.NewFromInt(999),
		Currency: "INR",
		Customer: Customer{
			ID:    "u1",
			Email: "a@b.com",
			Phone: "9999999999",
		},
		PaymentMethod: model.PaymentMethodUPI,
		ReturnURL:     "https://gsinfo.example/payment/success?order_id=ORDER_1700000000000_abc123xyz",
		NotifyURL:     "https://api.gsinfo.example/api/payments/webhooks/cashfree",
		Tags:          map[string]string{"business_name": "Mannava Groups"},
	}
}

func TestCashfreeCreateOrder_Success(t *testing.T) {
	var got map[string]any
	cf, _ := newTestCashfree(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/pg/orders", r.URL.Path)
		assert.Equal(t, "app-id", r.Header.Get("x-client-id"))
		assert.Equal(t, "secret", r.Header.Get("x-client-secret"))
		assert.Equal(t, "2023-08-01", r.Header.Get("x-api-version"))

		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"cf_order_id":"2149460581","order_id":"ORDER_1700000000000_abc123xyz","order_status":"ACTIVE","payment_session_id":"s1","payments":{"url":"https://pay.example/s1"}}`))
	})

	res, err := cf.CreateOrder(context.Background(), sampleOrderRequest())
	require.NoError(t, err)

	assert.Equal(t, "2149460581", res.GatewayOrderID)
	assert.Equal(t, "s1", res.PaymentSessionID)
	assert.Equal(t, "https://pay.example/s1", res.PaymentLink)

	assert.Equal(t, "ORDER_1700000000000_abc123xyz", got["order_id"])
	assert.Equal(t, 999.0, got["order_amount"])
	assert.Equal(t, "INR", got["order_currency"])
	customer := got["customer_details"].(map[string]any)
	assert.Equal(t, "u1", customer["customer_id"])
	assert.Equal(t, "GSINFO Customer", customer["customer_name"])
	meta := got["order_meta"].(map[string]any)
	assert.Equal(t, "upi", meta["payment_methods"])
	assert.Contains(t, meta["return_url"], "order_id=ORDER_1700000000000_abc123xyz")
	assert.Equal(t, "Mannava Groups", got["order_tags"].(map[string]any)["business_name"])
}

func TestCashfreeCreateOrder_NumericOrderIDAndLegacyLink(t *testing.T) {
	cf, _ := newTestCashfree(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"cf_order_id":2149460581,"payment_session_id":"s2","payment_link":"https://pay.example/legacy"}`))
	})

	res, err := cf.CreateOrder(context.Background(), sampleOrderRequest())
	require.NoError(t, err)
	assert.Equal(t, "2149460581", res.GatewayOrderID)
	assert.Equal(t, "https://pay.example/legacy", res.PaymentLink)
}

func TestCashfreeCreateOrder_RejectedPassesMessageThrough(t *testing.T) {
	cf, calls := newTestCashfree(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"order_amount : should be greater than or equal to 1.00","code":"order_amount_invalid","type":"invalid_request_error"}`))
	})

	_, err := cf.CreateOrder(context.Background(), sampleOrderRequest())
	require.Error(t, err)

	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.KindGateway, appErr.Kind)
	assert.Equal(t, "order_amount : should be greater than or equal to 1.00", appErr.Message)
	assert.EqualValues(t, 1, atomic.LoadInt32(calls), "payment calls are never retried")
}

func TestCashfreeCreateOrder_MalformedResponse(t *testing.T) {
	cf, _ := newTestCashfree(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"order_status":"ACTIVE"}`))
	})

	_, err := cf.CreateOrder(context.Background(), sampleOrderRequest())
	assert.True(t, apperror.Is(err, apperror.KindGateway))
}

func TestCashfreeCreateOrder_MissingCredentialsSkipsNetwork(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer srv.Close()

	cf := NewCashfreeClient(&config.Cashfree{BaseApiURL: srv.URL})
	_, err := cf.CreateOrder(context.Background(), sampleOrderRequest())

	assert.True(t, apperror.Is(err, apperror.KindConfiguration))
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestCashfreeFetchOrderStatus(t *testing.T) {
	cases := map[string]model.OrderStatus{
		"PAID":       model.OrderPaid,
		"EXPIRED":    model.OrderFailed,
		"TERMINATED": model.OrderFailed,
		"ACTIVE":     model.OrderPending,
	}
	for gatewayStatus, want := range cases {
		t.Run(gatewayStatus, func(t *testing.T) {
			cf, _ := newTestCashfree(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, "/pg/orders/ORDER_1", r.URL.Path)
				_, _ = w.Write([]byte(`{"order_id":"ORDER_1","order_status":"` + gatewayStatus + `"}`))
			})

			got, err := cf.FetchOrderStatus(context.Background(), "ORDER_1")
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestCashfreeVerifyWebhookSignature(t *testing.T) {
	cf := NewCashfreeClient(&config.Cashfree{AppID: "app-id", SecretKey: "secret"})
	body := []byte(`{"type":"PAYMENT_SUCCESS_WEBHOOK"}`)

	headers := http.Header{}
	headers.Set("x-webhook-timestamp", "1700000000")
	headers.Set("x-webhook-signature", SignCashfreeWebhook("secret", "1700000000", body))
	assert.NoError(t, cf.VerifyWebhookSignature(headers, body))

	headers.Set("x-webhook-signature", SignCashfreeWebhook("other", "1700000000", body))
	assert.True(t, apperror.Is(cf.VerifyWebhookSignature(headers, body), apperror.KindAuthorization))

	assert.True(t, apperror.Is(cf.VerifyWebhookSignature(http.Header{}, body), apperror.KindAuthorization))
}
