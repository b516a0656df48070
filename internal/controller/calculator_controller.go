package controller

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mrchongyl/zus-chatbot/internal/pkg/serverutils"
	"github.com/mrchongyl/zus-chatbot/internal/service"
)

type ICalculatorController interface {
	RegisterRoutes(r fiber.Router)
	Calculate(ctx *fiber.Ctx) error
}

type calculatorController struct {
	calculatorService service.ICalculatorService
}

func NewCalculatorController(calculatorService service.ICalculatorService) ICalculatorController {
	return &calculatorController{
		calculatorService: calculatorService,
	}
}

func (c *calculatorController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/calculator")
	h.Get("", c.Calculate)
}

func (c *calculatorController) Calculate(ctx *fiber.Ctx) error {
	expr := ctx.Query("expression")
	if expr == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing expression query parameter")
	}

	res, err := c.calculatorService.Calculate(ctx.Context(), expr)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success evaluate expression", res))
}
