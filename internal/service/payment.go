package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"gsinfo-directory/internal/apperror"
	"gsinfo-directory/internal/auth"
	"gsinfo-directory/internal/client"
	"gsinfo-directory/internal/dto"
	"gsinfo-directory/internal/model"
	"gsinfo-directory/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const maxOrderList = 100

type PaymentService interface {
	CreateOrder(ctx context.Context, principal *auth.Principal, req *dto.CreateOrderRequest) (*dto.CreateOrderResponse, error)
	GetOrder(ctx context.Context, userID, orderID string) (*model.PaymentOrder, error)
	ListOrders(ctx context.Context, userID string, limit int) ([]*model.PaymentOrder, error)
	CreateUPILink(ctx context.Context, userID, orderID string) (*dto.UPILinkResponse, error)
	HandleCashfreeWebhook(ctx context.Context, headers http.Header, body []byte) error
	HandleMidtransNotification(ctx context.Context, body []byte) error
	BraintreeCheckout(ctx context.Context, userID, orderID, nonce string) (*dto.CheckoutResponse, error)
	Reconcile(ctx context.Context, olderThan time.Duration, limit int) (*ReconcileReport, error)
}

type PaymentSettings struct {
	BaseURL       string
	NotifyBaseURL string
	Currency      string
	OrderNote     string
	UPIPayeeVPA   string
	UPIPayeeName  string
}

type ReconcileReport struct {
	Checked   int `json:"checked"`
	Updated   int `json:"updated"`
	Unchanged int `json:"unchanged"`
	Skipped   int `json:"skipped"`
	Errors    int `json:"errors"`
}

type paymentServiceImpl struct {
	db               *gorm.DB
	gateway          client.PaymentGateway
	cashfreeClient   client.CashfreeClient
	midtransClient   client.MidtransClient
	braintreeClient  client.BraintreeClient
	statusCheckers   map[string]client.OrderStatusChecker
	orderRepo        repository.OrderRepository
	webhookEventRepo repository.WebhookEventRepository
	settings         PaymentSettings
	logger           *slog.Logger
	now              func() time.Time
}

func NewPaymentService(
	db *gorm.DB,
	gateway client.PaymentGateway,
	cashfreeClient client.CashfreeClient,
	midtransClient client.MidtransClient,
	braintreeClient client.BraintreeClient,
	orderRepo repository.OrderRepository,
	webhookEventRepo repository.WebhookEventRepository,
	settings PaymentSettings,
	logger *slog.Logger,
) PaymentService {
	if logger == nil {
		logger = slog.Default()
	}
	if settings.Currency == "" {
		settings.Currency = "INR"
	}

	checkers := make(map[string]client.OrderStatusChecker)
	if cashfreeClient != nil {
		checkers[cashfreeClient.Provider()] = cashfreeClient
	}
	if checker, ok := gateway.(client.OrderStatusChecker); ok {
		checkers[gateway.Provider()] = checker
	}

	return &paymentServiceImpl{
		db:               db,
		gateway:          gateway,
		cashfreeClient:   cashfreeClient,
		midtransClient:   midtransClient,
		braintreeClient:  braintreeClient,
		statusCheckers:   checkers,
		orderRepo:        orderRepo,
		webhookEventRepo: webhookEventRepo,
		settings:         settings,
		logger:           logger.With("component", "payments"),
		now:              time.Now,
	}
}

func (s *paymentServiceImpl) CreateOrder(ctx context.Context, principal *auth.Principal, req *dto.CreateOrderRequest) (*dto.CreateOrderResponse, error) {
	if principal == nil || principal.UserID == "" {
		return nil, apperror.Authorization("authentication required")
	}
	if req.CustomerDetails.CustomerID != principal.UserID {
		return nil, apperror.Authorization("customer does not match the signed-in user")
	}
	if err := validateOrderRequest(req); err != nil {
		return nil, err
	}

	if checker, ok := s.gateway.(client.AmountChecker); ok {
		if err := checker.CheckAmount(req.Amount); err != nil {
			return nil, err
		}
	}

	paymentMethod, err := paymentMethodFromMeta(req.OrderMeta)
	if err != nil {
		return nil, err
	}

	orderID := NewOrderID(s.now())
	gatewayReq := &client.GatewayOrderRequest{
		OrderID:  orderID,
		Amount:   req.Amount,
		Currency: s.settings.Currency,
		Customer: client.Customer{
			ID:    req.CustomerDetails.CustomerID,
			Email: req.CustomerDetails.CustomerEmail,
			Phone: req.CustomerDetails.CustomerPhone,
		},
		PaymentMethod: paymentMethod,
		ReturnURL:     s.returnURL(orderID),
		NotifyURL:     s.notifyURL(s.gateway.Provider()),
		Note:          s.settings.OrderNote,
		Tags:          stringTags(req.OrderMeta),
	}

	log := s.logger.With("order_id", orderID, "provider", s.gateway.Provider())

	// single attempt: a retry must come back with a new order id
	result, err := s.gateway.CreateOrder(ctx, gatewayReq)
	if err != nil {
		log.WarnContext(ctx, "gateway rejected order", "error", err)
		return nil, err
	}

	metadata := datatypes.JSONMap{}
	for k, v := range req.OrderMeta {
		metadata[k] = v
	}
	metadata["return_url"] = gatewayReq.ReturnURL
	if gatewayReq.NotifyURL != "" {
		metadata["notify_url"] = gatewayReq.NotifyURL
	}

	order := &model.PaymentOrder{
		ID:               uuid.NewString(),
		OrderID:          orderID,
		UserID:           principal.UserID,
		Amount:           req.Amount,
		Currency:         s.settings.Currency,
		Status:           model.OrderPending,
		Provider:         s.gateway.Provider(),
		PaymentMethod:    paymentMethod,
		GatewayOrderID:   result.GatewayOrderID,
		PaymentSessionID: result.PaymentSessionID,
		Metadata:         metadata,
	}
	if err := s.orderRepo.Create(ctx, nil, order); err != nil {
		// the gateway already holds this order; reconciliation needs these ids
		log.ErrorContext(ctx, "store order after gateway success", "gateway_order_id", result.GatewayOrderID, "error", err)
		return nil, fmt.Errorf("store order in db: %w", err)
	}

	log.InfoContext(ctx, "payment order created", "user_id", principal.UserID, "amount", req.Amount.String())

	return &dto.CreateOrderResponse{
		Success:          true,
		OrderID:          orderID,
		PaymentSessionID: result.PaymentSessionID,
		PaymentLink:      result.PaymentLink,
		Provider:         s.gateway.Provider(),
	}, nil
}

func (s *paymentServiceImpl) GetOrder(ctx context.Context, userID, orderID string) (*model.PaymentOrder, error) {
	order, err := s.orderRepo.FindByOrderID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("order not found")
		}
		return nil, fmt.Errorf("find order: %w", err)
	}
	if order.UserID != userID {
		return nil, apperror.NotFound("order not found")
	}

	return order, nil
}

func (s *paymentServiceImpl) ListOrders(ctx context.Context, userID string, limit int) ([]*model.PaymentOrder, error) {
	if limit <= 0 || limit > maxOrderList {
		limit = maxOrderList
	}

	orders, err := s.orderRepo.FindByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

func (s *paymentServiceImpl) CreateUPILink(ctx context.Context, userID, orderID string) (*dto.UPILinkResponse, error) {
	order, err := s.GetOrder(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != model.OrderPending {
		return nil, apperror.Conflict("order is no longer pending")
	}
	if s.settings.UPIPayeeVPA == "" {
		return nil, apperror.Configuration("UPI payee not configured")
	}

	link := UPILink(s.settings.UPIPayeeVPA, s.settings.UPIPayeeName, order.Amount, order.Currency, "Business Registration - "+order.OrderID)

	return &dto.UPILinkResponse{
		Success:   true,
		UPILink:   link,
		QRCodeURL: "https://api.qrserver.com/v1/create-qr-code/?size=300x300&data=" + url.QueryEscape(link),
		UPIID:     s.settings.UPIPayeeVPA,
		PayeeName: s.settings.UPIPayeeName,
		Amount:    order.Amount,
		OrderID:   order.OrderID,
	}, nil
}

// UPILink builds a upi://pay deep link understood by UPI wallet apps.
func UPILink(vpa, payeeName string, amount decimal.Decimal, currency, note string) string {
	return "upi://pay?pa=" + vpa +
		"&pn=" + uriComponent(payeeName) +
		"&am=" + amount.StringFixed(2) +
		"&cu=" + currency +
		"&tn=" + uriComponent(note)
}

func (s *paymentServiceImpl) HandleCashfreeWebhook(ctx context.Context, headers http.Header, body []byte) error {
	if s.cashfreeClient == nil {
		return apperror.Configuration("Cashfree is not configured")
	}
	if err := s.cashfreeClient.VerifyWebhookSignature(headers, body); err != nil {
		s.logger.WarnContext(ctx, "rejected cashfree webhook", "error", err)
		return err
	}

	var event model.CashfreeWebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return apperror.Wrap(apperror.KindValidation, "malformed webhook payload", err)
	}
	orderID := event.Data.Order.OrderID
	if orderID == "" {
		return apperror.Validation("webhook payload without order_id")
	}

	var status model.OrderStatus
	switch event.Data.Payment.PaymentStatus {
	case "SUCCESS":
		status = model.OrderPaid
	case "FAILED", "CANCELLED":
		status = model.OrderFailed
	default:
		// USER_DROPPED and friends: the session can still be paid
		s.logger.InfoContext(ctx, "ignoring cashfree webhook", "order_id", orderID, "payment_status", event.Data.Payment.PaymentStatus)
		return nil
	}

	eventID := headers.Get("x-idempotency-key")
	if eventID == "" {
		eventID = fmt.Sprintf("cashfree:%s:%v:%s", orderID, event.Data.Payment.CfPaymentID, event.Type)
	}

	var amount *decimal.Decimal
	if event.Data.Order.OrderAmount > 0 {
		a := decimal.NewFromFloat(event.Data.Order.OrderAmount)
		amount = &a
	}

	return s.applyNotification(ctx, &model.WebhookEvent{
		EventID:   eventID,
		Provider:  client.ProviderCashfree,
		EventType: event.Type,
		OrderID:   orderID,
	}, status, amount)
}

func (s *paymentServiceImpl) HandleMidtransNotification(ctx context.Context, body []byte) error {
	if s.midtransClient == nil {
		return apperror.Configuration("Midtrans is not configured")
	}

	var n model.MidtransNotification
	if err := json.Unmarshal(body, &n); err != nil {
		return apperror.Wrap(apperror.KindValidation, "malformed notification payload", err)
	}
	if n.OrderID == "" {
		return apperror.Validation("notification without order_id")
	}
	if !s.midtransClient.VerifySignature(n.OrderID, n.StatusCode, n.GrossAmount, n.SignatureKey) {
		s.logger.WarnContext(ctx, "rejected midtrans notification", "order_id", n.OrderID)
		return apperror.Authorization("invalid notification signature")
	}

	status, final := MidtransStatus(n.TransactionStatus, n.FraudStatus)
	if !final {
		s.logger.InfoContext(ctx, "ignoring midtrans notification", "order_id", n.OrderID, "transaction_status", n.TransactionStatus)
		return nil
	}

	var amount *decimal.Decimal
	if a, err := decimal.NewFromString(n.GrossAmount); err == nil {
		amount = &a
	}

	return s.applyNotification(ctx, &model.WebhookEvent{
		EventID:   fmt.Sprintf("midtrans:%s:%s:%s", n.OrderID, n.TransactionID, n.TransactionStatus),
		Provider:  client.ProviderMidtrans,
		EventType: n.TransactionStatus,
		OrderID:   n.OrderID,
	}, status, amount)
}

// MidtransStatus maps a Midtrans transaction to an order status. final is false
// while the transaction can still change.
func MidtransStatus(transactionStatus, fraudStatus string) (status model.OrderStatus, final bool) {
	switch transactionStatus {
	case "settlement":
		return model.OrderPaid, true
	case "capture":
		if fraudStatus == "accept" || fraudStatus == "" {
			return model.OrderPaid, true
		}
		return model.OrderPending, false
	case "expire", "cancel", "deny", "failure":
		return model.OrderFailed, true
	default:
		return model.OrderPending, false
	}
}

// applyNotification records the event and moves the order out of PENDING in
// one transaction. Redelivered events and orders already settled are no-ops.
func (s *paymentServiceImpl) applyNotification(ctx context.Context, event *model.WebhookEvent, status model.OrderStatus, amount *decimal.Decimal) error {
	log := s.logger.With("order_id", event.OrderID, "provider", event.Provider, "event_id", event.EventID)

	order, err := s.orderRepo.FindByOrderID(ctx, event.OrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.WarnContext(ctx, "notification for unknown order")
			return nil
		}
		return fmt.Errorf("find order: %w", err)
	}

	if status == model.OrderPaid && amount != nil && !amount.Equal(order.Amount) {
		log.ErrorContext(ctx, "notification amount does not match order", "expected", order.Amount.String(), "got", amount.String())
		return apperror.Validation("notification amount does not match order")
	}

	var moved bool
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		inserted, err := s.webhookEventRepo.MarkProcessed(ctx, tx, event)
		if err != nil {
			return fmt.Errorf("mark webhook processed: %w", err)
		}
		if !inserted {
			return nil
		}

		moved, err = s.orderRepo.Transition(ctx, tx, event.OrderID, status)
		if err != nil {
			return fmt.Errorf("update order status: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if moved {
		log.InfoContext(ctx, "order status updated", "status", status)
	} else {
		log.InfoContext(ctx, "notification had no effect", "status", status, "current", order.Status)
	}
	return nil
}

// BraintreeCheckout charges the drop-in nonce for a PENDING Braintree order and moves
// the order to PAID or FAILED. Transport failures leave the order PENDING.
func (s *paymentServiceImpl) BraintreeCheckout(ctx context.Context, userID, orderID, nonce string) (*dto.CheckoutResponse, error) {
	if s.braintreeClient == nil {
		return nil, apperror.Configuration("Braintree is not configured")
	}
	if strings.TrimSpace(nonce) == "" {
		return nil, apperror.Validation("payment_method_nonce is required")
	}

	order, err := s.GetOrder(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	if order.Provider != client.ProviderBraintree {
		return nil, apperror.Validation("order is not a Braintree order")
	}
	if order.Status != model.OrderPending {
		return nil, apperror.Conflict("order is no longer pending")
	}

	log := s.logger.With("order_id", order.OrderID, "provider", client.ProviderBraintree)

	result, err := s.braintreeClient.Sale(ctx, &client.SaleRequest{
		OrderID: order.OrderID,
		Amount:  order.Amount,
		Nonce:   nonce,
	})
	if err != nil {
		log.WarnContext(ctx, "braintree sale failed", "error", err)
		return nil, err
	}

	status := order.Status
	if result.Status != model.OrderPending {
		moved, err := s.orderRepo.Transition(ctx, nil, order.OrderID, result.Status)
		if err != nil {
			log.ErrorContext(ctx, "update order after braintree sale", "transaction_id", result.TransactionID, "error", err)
			return nil, fmt.Errorf("update order status: %w", err)
		}
		if moved {
			status = result.Status
		}
	}
	log.InfoContext(ctx, "braintree sale processed", "transaction_id", result.TransactionID, "status", status)

	if result.Status == model.OrderFailed {
		return nil, apperror.Gateway(result.Message, nil)
	}

	return &dto.CheckoutResponse{
		Success:       true,
		OrderID:       order.OrderID,
		Status:        string(status),
		TransactionID: result.TransactionID,
	}, nil
}

func (s *paymentServiceImpl) Reconcile(ctx context.Context, olderThan time.Duration, limit int) (*ReconcileReport, error) {
	if limit <= 0 {
		limit = 100
	}

	orders, err := s.orderRepo.ListPending(ctx, s.now().Add(-olderThan), limit)
	if err != nil {
		return nil, fmt.Errorf("list pending orders: %w", err)
	}

	report := &ReconcileReport{}
	for _, order := range orders {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		report.Checked++

		log := s.logger.With("order_id", order.OrderID, "provider", order.Provider)

		checker, ok := s.statusCheckers[order.Provider]
		if !ok {
			report.Skipped++
			continue
		}

		status, err := checker.FetchOrderStatus(ctx, order.OrderID)
		if err != nil {
			log.WarnContext(ctx, "fetch order status", "error", err)
			report.Errors++
			continue
		}
		if status == model.OrderPending {
			report.Unchanged++
			continue
		}

		moved, err := s.orderRepo.Transition(ctx, nil, order.OrderID, status)
		if err != nil {
			log.ErrorContext(ctx, "update order status", "error", err)
			report.Errors++
			continue
		}
		if moved {
			log.InfoContext(ctx, "order reconciled", "status", status)
			report.Updated++
		} else {
			report.Unchanged++
		}
	}

	return report, nil
}

func validateOrderRequest(req *dto.CreateOrderRequest) error {
	if !req.Amount.IsPositive() {
		return apperror.Validation("amount must be greater than zero")
	}
	if !req.Amount.Equal(req.Amount.Round(2)) {
		return apperror.Validation("amount must have at most two decimal places")
	}
	if strings.TrimSpace(req.CustomerDetails.CustomerEmail) == "" {
		return apperror.Validation("customer_email is required")
	}
	if strings.TrimSpace(req.CustomerDetails.CustomerPhone) == "" {
		return apperror.Validation("customer_phone is required")
	}
	return nil
}

func paymentMethodFromMeta(meta map[string]any) (string, error) {
	raw, ok := meta["payment_method"]
	if !ok || raw == nil {
		return model.PaymentMethodUPI, nil
	}

	method, _ := raw.(string)
	switch method {
	case model.PaymentMethodUPI, model.PaymentMethodCard:
		return method, nil
	default:
		return "", apperror.Validation("payment_method must be upi or card")
	}
}

// stringTags keeps the string-valued metadata entries the gateway can carry as tags.
func stringTags(meta map[string]any) map[string]string {
	tags := make(map[string]string)
	for k, v := range meta {
		if k == "payment_method" {
			continue
		}
		if s, ok := v.(string); ok {
			tags[k] = s
		}
	}
	if len(tags) == 0 {
		return nil
	}
	return tags
}

func (s *paymentServiceImpl) returnURL(orderID string) string {
	return strings.TrimRight(s.settings.BaseURL, "/") + "/payment/success?order_id=" + url.QueryEscape(orderID)
}

// notifyURL is empty for providers without a notification channel; Braintree
// orders settle through BraintreeCheckout instead.
func (s *paymentServiceImpl) notifyURL(provider string) string {
	if provider != client.ProviderCashfree && provider != client.ProviderMidtrans {
		return ""
	}
	return strings.TrimRight(s.settings.NotifyBaseURL, "/") + "/api/payments/webhooks/" + provider
}

func uriComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
