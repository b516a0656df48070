package controller

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mrchongyl/zus-chatbot/internal/pkg/serverutils"
	"github.com/mrchongyl/zus-chatbot/internal/service"
)

type IProductController interface {
	RegisterRoutes(r fiber.Router)
	Query(ctx *fiber.Ctx) error
	Test(ctx *fiber.Ctx) error
}

type productController struct {
	productService service.IProductService
}

func NewProductController(productService service.IProductService) IProductController {
	return &productController{
		productService: productService,
	}
}

func (c *productController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/products")
	h.Get("", c.Query)
	h.Get("/test", c.Test)
}

// Test is a liveness probe for the product search surface.
func (c *productController) Test(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Product endpoint is working", nil))
}

func (c *productController) Query(ctx *fiber.Ctx) error {
	query := ctx.Query("query")
	topK := ctx.QueryInt("top_k", 5)
	includeSummary := ctx.QueryBool("include_summary", true)

	res, err := c.productService.Query(ctx.Context(), query, topK, includeSummary)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success query products", res))
}
