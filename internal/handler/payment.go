package handler

import (
	"io"
	"net/http"
	"strconv"

	"gsinfo-directory/internal/apperror"
	"gsinfo-directory/internal/dto"
	"gsinfo-directory/internal/middleware"
	"gsinfo-directory/internal/service"

	"github.com/labstack/echo/v4"
)

const maxWebhookBody = 1 << 20

type PaymentHandler struct {
	paymentService service.PaymentService
}

func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

func (h *PaymentHandler) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreateOrderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.paymentService.CreateOrder(ctx, middleware.GetPrincipal(c), &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

func (h *PaymentHandler) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	principal := middleware.GetPrincipal(c)

	order, err := h.paymentService.GetOrder(ctx, principal.UserID, c.Param("orderID"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.OrderStatusResponse{
		Success:  true,
		OrderID:  order.OrderID,
		Status:   string(order.Status),
		Amount:   order.Amount,
		Currency: order.Currency,
		Provider: order.Provider,
	})
}

func (h *PaymentHandler) ListOrders(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	orders, err := h.paymentService.ListOrders(c.Request().Context(), middleware.GetPrincipal(c).UserID, limit)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "orders": orders})
}

func (h *PaymentHandler) BraintreeCheckout(c echo.Context) error {
	var req dto.BraintreeCheckoutRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.paymentService.BraintreeCheckout(c.Request().Context(), middleware.GetPrincipal(c).UserID, c.Param("orderID"), req.PaymentMethodNonce)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

func (h *PaymentHandler) CreateUPILink(c echo.Context) error {
	ctx := c.Request().Context()
	principal := middleware.GetPrincipal(c)

	result, err := h.paymentService.CreateUPILink(ctx, principal.UserID, c.Param("orderID"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

func (h *PaymentHandler) CashfreeWebhook(c echo.Context) error {
	body, err := readBody(c)
	if err != nil {
		return err
	}

	if err := h.paymentService.HandleCashfreeWebhook(c.Request().Context(), c.Request().Header, body); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

func (h *PaymentHandler) MidtransNotification(c echo.Context) error {
	body, err := readBody(c)
	if err != nil {
		return err
	}

	if err := h.paymentService.HandleMidtransNotification(c.Request().Context(), body); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// readBody keeps the raw bytes; signatures are computed over them.
func readBody(c echo.Context) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxWebhookBody))
	if err != nil {
		return nil, apperror.Wrap(apperror.KindValidation, "read request body", err)
	}
	return body, nil
}
