package client

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"gsinfo-directory/internal/apperror"
	"gsinfo-directory/internal/config"
	"gsinfo-directory/internal/model"
)

type CashfreeClient interface {
	PaymentGateway
	OrderStatusChecker
	VerifyWebhookSignature(headers http.Header, body []byte) error
}

type cashfreeClientImpl struct {
	httpClient   *http.Client
	baseApiURL   string
	appID        string
	secretKey    string
	apiVersion   string
	customerName string
}

type cashfreeCustomerDetails struct {
	CustomerID    string `json:"customer_id"`
	CustomerName  string `json:"customer_name,omitempty"`
	CustomerEmail string `json:"customer_email,omitempty"`
	CustomerPhone string `json:"customer_phone"`
}

type cashfreeOrderMeta struct {
	ReturnURL      string `json:"return_url,omitempty"`
	NotifyURL      string `json:"notify_url,omitempty"`
	PaymentMethods string `json:"payment_methods,omitempty"`
}

type cashfreeCreateOrderPayload struct {
	OrderID         string                  `json:"order_id"`
	OrderAmount     json.Number             `json:"order_amount"`
	OrderCurrency   string                  `json:"order_currency"`
	CustomerDetails cashfreeCustomerDetails `json:"customer_details"`
	OrderMeta       cashfreeOrderMeta       `json:"order_meta"`
	OrderNote       string                  `json:"order_note,omitempty"`
	OrderTags       map[string]string       `json:"order_tags,omitempty"`
}

type cashfreeOrderResult struct {
	CfOrderID        json.RawMessage `json:"cf_order_id"`
	OrderID          string          `json:"order_id"`
	OrderStatus      string          `json:"order_status"`
	PaymentSessionID string          `json:"payment_session_id"`
	PaymentLink      string          `json:"payment_link"`
	Payments         struct {
		URL string `json:"url"`
	} `json:"payments"`
}

type cashfreeErrorResult struct {
	Message string `json:"message"`
	Code    string `json:"code"`
	Type    string `json:"type"`
}

func NewCashfreeClient(cfg *config.Cashfree) CashfreeClient {
	return &cashfreeClientImpl{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseApiURL:   strings.TrimRight(cfg.BaseApiURL, "/"),
		appID:        cfg.AppID,
		secretKey:    cfg.SecretKey,
		apiVersion:   cfg.ApiVersion,
		customerName: cfg.CustomerName,
	}
}

func (c *cashfreeClientImpl) Provider() string {
	return ProviderCashfree
}

func (c *cashfreeClientImpl) checkCredentials() error {
	if c.appID == "" || c.secretKey == "" {
		return apperror.Configuration("Cashfree credentials not configured")
	}
	return nil
}

func (c *cashfreeClientImpl) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseApiURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-client-id", c.appID)
	req.Header.Set("x-client-secret", c.secretKey)
	req.Header.Set("x-api-version", c.apiVersion)
	return req, nil
}

func (c *cashfreeClientImpl) CreateOrder(ctx context.Context, in *GatewayOrderRequest) (*GatewayOrderResult, error) {
	if err := c.checkCredentials(); err != nil {
		return nil, err
	}

	customerName := in.Customer.Name
	if customerName == "" {
		customerName = c.customerName
	}

	payload := cashfreeCreateOrderPayload{
		OrderID:       in.OrderID,
		OrderAmount:   json.Number(in.Amount.StringFixed(2)),
		OrderCurrency: in.Currency,
		CustomerDetails: cashfreeCustomerDetails{
			CustomerID:    in.Customer.ID,
			CustomerName:  customerName,
			CustomerEmail: in.Customer.Email,
			CustomerPhone: in.Customer.Phone,
		},
		OrderMeta: cashfreeOrderMeta{
			ReturnURL:      in.ReturnURL,
			NotifyURL:      in.NotifyURL,
			PaymentMethods: cashfreePaymentMethods(in.PaymentMethod),
		},
		OrderNote: in.Note,
		OrderTags: in.Tags,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal req payload: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/pg/orders", bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperror.Gateway("payment gateway request failed", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperror.Gateway("payment gateway request failed", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, cashfreeError(resp.StatusCode, respBody)
	}

	var result cashfreeOrderResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, apperror.Gateway("malformed payment gateway response", fmt.Errorf("decode cashfree response: %w", err))
	}
	if result.PaymentSessionID == "" {
		return nil, apperror.Gateway("malformed payment gateway response", fmt.Errorf("cashfree response without payment_session_id"))
	}

	link := result.PaymentLink
	if link == "" {
		link = result.Payments.URL
	}

	return &GatewayOrderResult{
		GatewayOrderID:   rawID(result.CfOrderID),
		PaymentSessionID: result.PaymentSessionID,
		PaymentLink:      link,
	}, nil
}

func (c *cashfreeClientImpl) FetchOrderStatus(ctx context.Context, orderID string) (model.OrderStatus, error) {
	if err := c.checkCredentials(); err != nil {
		return "", err
	}

	req, err := c.newRequest(ctx, http.MethodGet, "/pg/orders/"+url.PathEscape(orderID), nil)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", apperror.Gateway("payment gateway request failed", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", cashfreeError(resp.StatusCode, body)
	}

	var result cashfreeOrderResult
	if err := json.Unmarshal(body, &result); err != nil {
		return "", apperror.Gateway("malformed payment gateway response", fmt.Errorf("decode cashfree response: %w", err))
	}

	switch result.OrderStatus {
	case "PAID":
		return model.OrderPaid, nil
	case "EXPIRED", "TERMINATED":
		return model.OrderFailed, nil
	default:
		return model.OrderPending, nil
	}
}

// VerifyWebhookSignature checks x-webhook-signature against
// base64(HMAC-SHA256(secret, x-webhook-timestamp + raw body)).
func (c *cashfreeClientImpl) VerifyWebhookSignature(headers http.Header, body []byte) error {
	if err := c.checkCredentials(); err != nil {
		return err
	}

	timestamp := headers.Get("x-webhook-timestamp")
	signature := headers.Get("x-webhook-signature")
	if timestamp == "" || signature == "" {
		return apperror.Authorization("missing webhook signature")
	}

	if !hmac.Equal([]byte(SignCashfreeWebhook(c.secretKey, timestamp, body)), []byte(signature)) {
		return apperror.Authorization("invalid webhook signature")
	}
	return nil
}

func SignCashfreeWebhook(secret, timestamp string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(timestamp))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func cashfreeError(status int, body []byte) error {
	var errResult cashfreeErrorResult
	_ = json.Unmarshal(body, &errResult)

	msg := errResult.Message
	if msg == "" {
		msg = fmt.Sprintf("payment gateway returned status %d", status)
	}
	return apperror.Gateway(msg, fmt.Errorf("cashfree error %d: %s", status, string(body)))
}

func cashfreePaymentMethods(method string) string {
	switch method {
	case model.PaymentMethodUPI:
		return "upi"
	case model.PaymentMethodCard:
		return "cc,dc"
	default:
		return ""
	}
}

// rawID accepts both numeric and string ids.
func rawID(raw json.RawMessage) string {
	id := strings.Trim(string(raw), `"`)
	if id == "null" {
		return ""
	}
	return id
}
