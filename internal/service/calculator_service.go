package service

import (
	"context"

	"github.com/mrchongyl/zus-chatbot/internal/dto"
	"github.com/mrchongyl/zus-chatbot/pkg/calculator"
)

type ICalculatorService interface {
	Calculate(ctx context.Context, expression string) (*dto.CalculateResponse, error)
}

type calculatorService struct{}

func NewCalculatorService() ICalculatorService {
	return &calculatorService{}
}

func (s *calculatorService) Calculate(ctx context.Context, expression string) (*dto.CalculateResponse, error) {
	result, err := calculator.Evaluate(expression)
	if err != nil {
		return nil, err
	}
	return &dto.CalculateResponse{
		Expression: expression,
		Result:     result,
	}, nil
}
