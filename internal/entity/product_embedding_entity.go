package entity

import (
	"time"

	"github.com/google/uuid"
)

type ProductEmbedding struct {
	Id             uuid.UUID
	Document       string
	EmbeddingValue []float32
	ProductId      uuid.UUID
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}
