package client

import (
	"context"

	"gsinfo-directory/internal/model"

	"github.com/shopspring/decimal"
)

const (
	ProviderCashfree  = "cashfree"
	ProviderMidtrans  = "midtrans"
	ProviderBraintree = "braintree"
)

type Customer struct {
	ID    string
	Name  string
	Email string
	Phone string
}

type GatewayOrderRequest struct {
	OrderID       string
	Amount        decimal.Decimal
	Currency      string
	Customer      Customer
	PaymentMethod string
	ReturnURL     string
	NotifyURL     string
	Note          string
	Tags          map[string]string
}

type GatewayOrderResult struct {
	GatewayOrderID   string
	PaymentSessionID string
	PaymentLink      string
}

// PaymentGateway registers an order with an external payment provider. A single call
// is made per order; implementations never retry.
type PaymentGateway interface {
	Provider() string
	CreateOrder(ctx context.Context, req *GatewayOrderRequest) (*GatewayOrderResult, error)
}

// AmountChecker is implemented by gateways that accept only some amounts. Orders are
// checked against it before anything is sent.
type AmountChecker interface {
	CheckAmount(amount decimal.Decimal) error
}

// OrderStatusChecker is implemented by gateways that expose an order status lookup.
type OrderStatusChecker interface {
	FetchOrderStatus(ctx context.Context, orderID string) (model.OrderStatus, error)
}
