package controller

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mrchongyl/zus-chatbot/internal/pkg/serverutils"
	"github.com/mrchongyl/zus-chatbot/internal/service"
)

type IOutletController interface {
	RegisterRoutes(r fiber.Router)
	Query(ctx *fiber.Ctx) error
	Test(ctx *fiber.Ctx) error
}

type outletController struct {
	outletService service.IOutletService
}

func NewOutletController(outletService service.IOutletService) IOutletController {
	return &outletController{
		outletService: outletService,
	}
}

func (c *outletController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/outlets")
	h.Get("", c.Query)
	h.Get("/test", c.Test)
}

// Test is a liveness probe for the outlet query surface.
func (c *outletController) Test(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Outlet endpoint is working", nil))
}

func (c *outletController) Query(ctx *fiber.Ctx) error {
	query := ctx.Query("query")

	res, err := c.outletService.Query(ctx.Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success query outlets", res))
}
