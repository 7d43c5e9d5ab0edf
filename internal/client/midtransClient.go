package client

import (
	"context"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"gsinfo-directory/internal/apperror"
	"gsinfo-directory/internal/config"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"github.com/shopspring/decimal"
)

type MidtransClient interface {
	PaymentGateway
	AmountChecker
	VerifySignature(orderID, statusCode, grossAmount, signature string) bool
}

type midtransClientImpl struct {
	serverKey string
	snap      *snap.Client
}

func NewMidtransClient(cfg *config.Midtrans) MidtransClient {
	env := midtrans.Sandbox
	if cfg.Environment == "production" {
		env = midtrans.Production
	}

	var snapClient snap.Client
	snapClient.New(cfg.ServerKey, env)

	return &midtransClientImpl{
		serverKey: cfg.ServerKey,
		snap:      &snapClient,
	}
}

func (c *midtransClientImpl) Provider() string {
	return ProviderMidtrans
}

// CreateOrder opens a Snap transaction.
func (c *midtransClientImpl) CreateOrder(ctx context.Context, in *GatewayOrderRequest) (*GatewayOrderResult, error) {
	if c.serverKey == "" {
		return nil, apperror.Configuration("Midtrans credentials not configured")
	}
	if err := c.CheckAmount(in.Amount); err != nil {
		return nil, err
	}

	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  in.OrderID,
			GrossAmt: in.Amount.IntPart(),
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: in.Customer.Name,
			Email: in.Customer.Email,
			Phone: in.Customer.Phone,
		},
		Callbacks: &snap.Callbacks{
			Finish: in.ReturnURL,
		},
	}

	resp, mErr := c.snap.CreateTransaction(req)
	if mErr != nil {
		msg := mErr.Message
		if msg == "" {
			msg = "payment gateway request failed"
		}
		return nil, apperror.Gateway(msg, fmt.Errorf("midtrans error %d: %s", mErr.StatusCode, mErr.Message))
	}
	if resp == nil || resp.Token == "" {
		return nil, apperror.Gateway("malformed payment gateway response", fmt.Errorf("midtrans response without token"))
	}

	return &GatewayOrderResult{
		GatewayOrderID:   in.OrderID,
		PaymentSessionID: resp.Token,
		PaymentLink:      resp.RedirectURL,
	}, nil
}

func (c *midtransClientImpl) VerifySignature(orderID, statusCode, grossAmount, signature string) bool {
	if c.serverKey == "" {
		return false
	}
	expected := MidtransSignature(orderID, statusCode, grossAmount, c.serverKey)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(signature)) == 1
}

// CheckAmount rejects fractional amounts: Snap charges whole currency units only.
func (c *midtransClientImpl) CheckAmount(amount decimal.Decimal) error {
	if !amount.IsInteger() {
		return apperror.Validation("amount must be a whole number for Midtrans payments")
	}
	return nil
}

// MidtransSignature is hex(SHA-512(order_id + status_code + gross_amount + server_key)).
func MidtransSignature(orderID, statusCode, grossAmount, serverKey string) string {
	hash := sha512.Sum512([]byte(orderID + statusCode + grossAmount + serverKey))
	return hex.EncodeToString(hash[:])
}
