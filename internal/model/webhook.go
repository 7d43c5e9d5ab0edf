package model

import "time"

// WebhookEvent records every processed gateway notification so redeliveries are no-ops.
type WebhookEvent struct {
	EventID     string `gorm:"primaryKey;size:191;not null"`
	Provider    string `gorm:"size:32;index;not null"`
	EventType   string `gorm:"size:64;index"`
	OrderID     string `gorm:"size:64;index"`
	ProcessedAt time.Time
	CreatedAt   time.Time
}

type CashfreeWebhookOrder struct {
	OrderID       string  `json:"order_id"`
	OrderAmount   float64 `json:"order_amount"`
	OrderCurrency string  `json:"order_currency"`
}

type CashfreeWebhookPayment struct {
	CfPaymentID   any     `json:"cf_payment_id"`
	PaymentStatus string  `json:"payment_status"` // SUCCESS, FAILED, USER_DROPPED, ...
	PaymentAmount float64 `json:"payment_amount"`
	PaymentGroup  string  `json:"payment_group"` // upi, credit_card, ...
	PaymentMsg    string  `json:"payment_message"`
}

type CashfreeWebhookData struct {
	Order   CashfreeWebhookOrder   `json:"order"`
	Payment CashfreeWebhookPayment `json:"payment"`
}

type CashfreeWebhookEvent struct {
	Type      string              `json:"type"`
	EventTime string              `json:"event_time"`
	Data      CashfreeWebhookData `json:"data"`
}

type MidtransNotification struct {
	OrderID           string `json:"order_id"`
	TransactionID     string `json:"transaction_id"`
	TransactionStatus string `json:"transaction_status"`
	FraudStatus       string `json:"fraud_status"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
	PaymentType       string `json:"payment_type"`
}
