package client

import (
	"context"
	"errors"
	"fmt"

	"gsinfo-directory/internal/apperror"
	"gsinfo-directory/internal/config"
	"gsinfo-directory/internal/model"

	"github.com/braintree-go/braintree-go"
	"github.com/shopspring/decimal"
)

// --- INTERFACE ---

type BraintreeClient interface {
	PaymentGateway

	// Sale charges the drop-in nonce for an order and submits it for settlement
	Sale(ctx context.Context, in *SaleRequest) (*SaleResult, error)
}

type SaleRequest struct {
	OrderID string
	Amount  decimal.Decimal
	Nonce   string
}

// SaleResult carries the order status the transaction settles the order into.
// Declines are results, not errors: the order is final either way.
type SaleResult struct {
	TransactionID string
	Status        model.OrderStatus
	Message       string
}

// --- IMPLEMENTATION ---

type braintreeClientImpl struct {
	configured bool
	gateway    *braintree.Braintree
}

// NewBraintreeClient initializes the Braintree SDK gateway
func NewBraintreeClient(cfg *config.Braintree) BraintreeClient {
	env := braintree.Sandbox
	if cfg.Environment == "production" {
		env = braintree.Production
	}

	gateway := braintree.New(
		env,
		cfg.MerchantID,
		cfg.PublicKey,
		cfg.PrivateKey,
	)

	return &braintreeClientImpl{
		configured: cfg.MerchantID != "" && cfg.PublicKey != "" && cfg.PrivateKey != "",
		gateway:    gateway,
	}
}

// --- METHODS ---

func (c *braintreeClientImpl) Provider() string {
	return ProviderBraintree
}

// CreateOrder issues a client token for the drop-in UI; the order id travels with the
// nonce the browser submits, so Braintree keeps no order object of its own.
func (c *braintreeClientImpl) CreateOrder(ctx context.Context, in *GatewayOrderRequest) (*GatewayOrderResult, error) {
	if !c.configured {
		return nil, apperror.Configuration("Braintree credentials not configured")
	}

	token, err := c.gateway.ClientToken().Generate(ctx)
	if err != nil {
		return nil, apperror.Gateway("payment gateway request failed", fmt.Errorf("generate braintree client token: %w", err))
	}

	return &GatewayOrderResult{
		GatewayOrderID:   in.OrderID,
		PaymentSessionID: token,
	}, nil
}

func (c *braintreeClientImpl) Sale(ctx context.Context, in *SaleRequest) (*SaleResult, error) {
	if !c.configured {
		return nil, apperror.Configuration("Braintree credentials not configured")
	}

	// braintree.NewDecimal(unscaled, scale): 999.50 -> NewDecimal(99950, 2)
	cents := in.Amount.Mul(decimal.NewFromInt(100)).IntPart()

	req := &braintree.TransactionRequest{
		Type:               "sale",
		Amount:             braintree.NewDecimal(cents, 2),
		OrderId:            in.OrderID,
		PaymentMethodNonce: in.Nonce,
		Options: &braintree.TransactionOptions{
			SubmitForSettlement: true,
		},
	}

	tx, err := c.gateway.Transaction().Create(ctx, req)
	if err != nil {
		var btErr *braintree.BraintreeError
		if errors.As(err, &btErr) {
			// processor declines and gateway rejections come back with the transaction attached
			if btErr.Transaction != nil {
				return saleResult(btErr.Transaction), nil
			}
			return nil, apperror.Gateway(btErr.ErrorMessage, fmt.Errorf("braintree sale: %w", err))
		}
		return nil, apperror.Gateway("payment gateway request failed", fmt.Errorf("braintree sale: %w", err))
	}

	return saleResult(tx), nil
}

func saleResult(tx *braintree.Transaction) *SaleResult {
	result := &SaleResult{
		TransactionID: tx.Id,
		Status:        braintreeOrderStatus(tx.Status),
		Message:       tx.ProcessorResponseText,
	}
	if result.Message == "" {
		result.Message = string(tx.Status)
	}
	return result
}

func braintreeOrderStatus(status braintree.TransactionStatus) model.OrderStatus {
	switch status {
	case braintree.TransactionStatusAuthorized,
		braintree.TransactionStatusSubmittedForSettlement,
		braintree.TransactionStatusSettling,
		braintree.TransactionStatusSettlementPending,
		braintree.TransactionStatusSettlementConfirmed,
		braintree.TransactionStatusSettled:
		return model.OrderPaid
	case braintree.TransactionStatusProcessorDeclined,
		braintree.TransactionStatusGatewayRejected,
		braintree.TransactionStatusFailed,
		braintree.TransactionStatusSettlementDeclined,
		braintree.TransactionStatusVoided:
		return model.OrderFailed
	default:
		return model.OrderPending
	}
}
