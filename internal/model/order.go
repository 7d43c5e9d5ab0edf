package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type OrderStatus string

const (
	OrderPending OrderStatus = "PENDING"
	OrderPaid    OrderStatus = "PAID"
	OrderFailed  OrderStatus = "FAILED"
)

const (
	PaymentMethodUPI  = "upi"
	PaymentMethodCard = "card"
)

// PaymentOrder is written once by order creation; afterwards only Status moves,
// driven by gateway notifications.
type PaymentOrder struct {
	ID               string            `gorm:"primaryKey;size:36;not null" json:"-"`
	OrderID          string            `gorm:"size:64;uniqueIndex;not null" json:"order_id"`
	UserID           string            `gorm:"size:36;index;not null" json:"user_id"`
	Amount           decimal.Decimal   `gorm:"type:decimal(12,2);not null" json:"amount"`
	Currency         string            `gorm:"size:8;not null" json:"currency"`
	Status           OrderStatus       `gorm:"size:16;index;not null" json:"status"`
	Provider         string            `gorm:"size:32;not null" json:"provider"`
	PaymentMethod    string            `gorm:"size:16" json:"payment_method"`
	GatewayOrderID   string            `gorm:"size:128" json:"gateway_order_id"`
	PaymentSessionID string            `gorm:"size:2048" json:"payment_session_id"`
	Metadata         datatypes.JSONMap `json:"metadata"`
	CreatedAt        time.Time         `gorm:"index" json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}
