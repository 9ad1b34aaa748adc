package controller

import (
	"parts-assist-be/internal/dto"
	"parts-assist-be/internal/pkg/serverutils"
	"parts-assist-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ICatalogController interface {
	RegisterRoutes(r fiber.Router)
	UpsertProduct(ctx *fiber.Ctx) error
	UpsertOrder(ctx *fiber.Ctx) error
	ListProducts(ctx *fiber.Ctx) error
	ListOrders(ctx *fiber.Ctx) error
}

type catalogController struct {
	catalogService service.ICatalogService
}

func NewCatalogController(catalogService service.ICatalogService) ICatalogController {
	return &catalogController{
		catalogService: catalogService,
	}
}

func (c *catalogController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/catalog/v1")
	h.Use(serverutils.JwtMiddleware) // admin ingest only
	h.Post("product", c.UpsertProduct)
	h.Post("order", c.UpsertOrder)
	h.Get("product", c.ListProducts)
	h.Get("order", c.ListOrders)
}

func (c *catalogController) UpsertProduct(ctx *fiber.Ctx) error {
	var req dto.UpsertProductRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.catalogService.UpsertProduct(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success upsert product", res))
}

func (c *catalogController) UpsertOrder(ctx *fiber.Ctx) error {
	var req dto.UpsertOrderRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.catalogService.UpsertOrder(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success upsert order", res))
}

func (c *catalogController) ListProducts(ctx *fiber.Ctx) error {
	var req dto.ListProductsRequest
	if err := ctx.QueryParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	res, err := c.catalogService.ListProducts(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show products", res))
}

func (c *catalogController) ListOrders(ctx *fiber.Ctx) error {
	var req dto.ListOrdersRequest
	if err := ctx.QueryParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	res, err := c.catalogService.ListOrders(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show orders", res))
}
