package service

import (
	"context"

	"github.com/mrchongyl/zus-chatbot/internal/dto"
	"github.com/mrchongyl/zus-chatbot/internal/pkg/logger"
	"github.com/mrchongyl/zus-chatbot/internal/repository/contract"
	"github.com/mrchongyl/zus-chatbot/pkg/text2sql"
)

type IOutletService interface {
	Query(ctx context.Context, query string) (*dto.OutletQueryResponse, error)
}

type outletService struct {
	translator *text2sql.Translator
	outletRepo contract.OutletRepository
	log        logger.ILogger
}

func NewOutletService(
	translator *text2sql.Translator,
	outletRepo contract.OutletRepository,
	log logger.ILogger,
) IOutletService {
	return &outletService{
		translator: translator,
		outletRepo: outletRepo,
		log:        log,
	}
}

func (s *outletService) Query(ctx context.Context, query string) (*dto.OutletQueryResponse, error) {
	// Translate validates the input and the generated statement; only a
	// statement that passed the allowlist reaches the database.
	sql, err := s.translator.Translate(ctx, query)
	if err != nil {
		return nil, err
	}

	s.log.Debug("outlet", "executing translated query", map[string]interface{}{"sql": sql})

	rows, err := s.outletRepo.ExecuteSelect(ctx, sql)
	if err != nil {
		return nil, err
	}

	return &dto.OutletQueryResponse{
		Query:        query,
		Sql:          sql,
		Results:      rows,
		TotalResults: len(rows),
	}, nil
}
