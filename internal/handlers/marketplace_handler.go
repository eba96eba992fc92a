package handlers

import (
	"net/http"

	"marketplace-service/internal/models"
	"marketplace-service/internal/services"

	"github.com/gofiber/fiber/v3"
)

type MarketplaceHandler struct {
	inventoryService *services.InventoryService
}

func NewMarketplaceHandler(inventoryService *services.InventoryService) *MarketplaceHandler {
	return &MarketplaceHandler{
		inventoryService: inventoryService,
	}
}

func (mh *MarketplaceHandler) Register(app *fiber.App) {
	group := app.Group("marketplace/api/v1/products")

	group.Get("/", mh.ListProducts)
	group.Get("/:id", mh.GetProduct)
}

func (mh *MarketplaceHandler) ListProducts(c fiber.Ctx) error {
	products, err := mh.inventoryService.ListAvailableProducts(c.Context())
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(models.CreateErrorResponse("FETCH_FAILED", err.Error()))
	}

	return c.Status(http.StatusOK).JSON(models.CreateSuccessResponse(products))
}

func (mh *MarketplaceHandler) GetProduct(c fiber.Ctx) error {
	product, err := mh.inventoryService.GetProduct(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(http.StatusNotFound).JSON(models.CreateErrorResponse("NOT_FOUND", err.Error()))
	}

	return c.Status(http.StatusOK).JSON(models.CreateSuccessResponse(product))
}
