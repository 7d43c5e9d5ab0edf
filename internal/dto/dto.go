package dto

import (
	"github.com/shopspring/decimal"
)

// -------- payments --------

type CustomerDetails struct {
	CustomerID    string `json:"customer_id" validate:"required"`
	CustomerEmail string `json:"customer_email" validate:"required,email"`
	CustomerPhone string `json:"customer_phone" validate:"required,min=8,max=15"`
}

type CreateOrderRequest struct {
	Amount          decimal.Decimal `json:"amount"`
	CustomerDetails CustomerDetails `json:"customer_details"`
	OrderMeta       map[string]any  `json:"order_meta"`
}

type CreateOrderResponse struct {
	Success          bool   `json:"success"`
	OrderID          string `json:"order_id,omitempty"`
	PaymentSessionID string `json:"payment_session_id,omitempty"`
	PaymentLink      string `json:"payment_link,omitempty"`
	Provider         string `json:"provider,omitempty"`
}

type OrderStatusResponse struct {
	Success  bool            `json:"success"`
	OrderID  string          `json:"order_id"`
	Status   string          `json:"status"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
	Provider string          `json:"provider"`
}

type UPILinkResponse struct {
	Success   bool            `json:"success"`
	UPILink   string          `json:"upi_link"`
	QRCodeURL string          `json:"qr_code_url"`
	UPIID     string          `json:"upi_id"`
	PayeeName string          `json:"payee_name"`
	Amount    decimal.Decimal `json:"amount"`
	OrderID   string          `json:"order_id"`
}

type BraintreeCheckoutRequest struct {
	PaymentMethodNonce string `json:"payment_method_nonce" validate:"required,max=4096"`
}

type CheckoutResponse struct {
	Success       bool   `json:"success"`
	OrderID       string `json:"order_id"`
	Status        string `json:"status"`
	TransactionID string `json:"transaction_id"`
}

// -------- claims --------

type SubmitClaimRequest struct {
	VerificationDocument *string `json:"verification_document" validate:"omitempty,max=1024"`
	Notes                *string `json:"notes" validate:"omitempty,max=4000"`
}

type ClaimDecisionRequest struct {
	ClaimID       string  `param:"id" json:"claim_id"`
	Status        string  `json:"status" validate:"required,oneof=approved rejected"`
	ReviewerNotes *string `json:"reviewer_notes" validate:"omitempty,max=4000"`
}

// -------- reviews / inquiries --------

type SubmitReviewRequest struct {
	Rating     int     `json:"rating" validate:"required,min=1,max=5"`
	ReviewText *string `json:"review_text" validate:"omitempty,max=4000"`
}

type SubmitInquiryRequest struct {
	Name    string  `json:"name" validate:"required,max=255"`
	Email   string  `json:"email" validate:"required,email"`
	Phone   *string `json:"phone" validate:"omitempty,max=32"`
	Message string  `json:"message" validate:"required,max=4000"`
}

type StatusUpdateRequest struct {
	Status string `json:"status" validate:"required"`
}

type VerifiedUpdateRequest struct {
	Verified *bool `json:"verified" validate:"required"`
}

// -------- profile --------

type UpdateProfileRequest struct {
	FullName  *string `json:"full_name" validate:"omitempty,max=255"`
	Phone     *string `json:"phone" validate:"omitempty,max=32"`
	AvatarURL *string `json:"avatar_url" validate:"omitempty,url,max=1024"`
}

// -------- admin --------

type ImportResponse struct {
	Success  bool  `json:"success"`
	Received int   `json:"received"`
	Affected int64 `json:"affected"`
}

type Stats struct {
	Users          int64 `json:"users"`
	Businesses     int64 `json:"businesses"`
	Listings       int   `json:"listings"`
	PendingClaims  int64 `json:"pending_claims"`
	PendingReviews int64 `json:"pending_reviews"`
	NewInquiries   int64 `json:"new_inquiries"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}
