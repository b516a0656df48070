package contract

import (
	"context"

	"github.com/google/uuid"

	"github.com/mrchongyl/zus-chatbot/internal/entity"
)

type ProductRepository interface {
	CreateBulk(ctx context.Context, products []*entity.Product) error
	// FindById returns nil, nil when no product matches.
	FindById(ctx context.Context, id uuid.UUID) (*entity.Product, error)
}
