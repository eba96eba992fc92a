package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"marketplace-service/internal/models"
	"marketplace-service/internal/services"

	"github.com/gofiber/fiber/v3"
)

type OrderHandler struct {
	orderService *services.OrderService
}

func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

func (oh *OrderHandler) Register(app *fiber.App) {
	group := app.Group("marketplace/api/v1/orders")

	group.Post("/", oh.Checkout)
	group.Get("/:id", oh.GetOrder)
}

func (oh *OrderHandler) Checkout(c fiber.Ctx) error {
	var req models.CheckoutRequest
	if err := c.Bind().Body(&req); err != nil {
		slog.Error("error parsing request", "error", err)
		return c.Status(http.StatusBadRequest).JSON(models.CreateErrorResponse("INVALID_REQUEST", "Invalid request body"))
	}

	order, err := oh.orderService.Checkout(c.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrStockInsufficient):
			return c.Status(http.StatusConflict).JSON(models.CreateErrorResponse("INSUFFICIENT_STOCK", err.Error()))
		case errors.Is(err, services.ErrEmptyOrder), errors.Is(err, services.ErrInvalidQuantity):
			return c.Status(http.StatusBadRequest).JSON(models.CreateErrorResponse("INVALID_REQUEST", err.Error()))
		default:
			return c.Status(http.StatusBadRequest).JSON(models.CreateErrorResponse("CHECKOUT_FAILED", err.Error()))
		}
	}

	return c.Status(http.StatusCreated).JSON(models.CreateSuccessResponse(order))
}

func (oh *OrderHandler) GetOrder(c fiber.Ctx) error {
	order, err := oh.orderService.GetOrder(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(http.StatusNotFound).JSON(models.CreateErrorResponse("NOT_FOUND", err.Error()))
	}

	return c.Status(http.StatusOK).JSON(models.CreateSuccessResponse(order))
}
