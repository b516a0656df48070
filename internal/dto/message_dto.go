package dto

import "github.com/google/uuid"

// PublishEmbedProductMessage asks the consumer to (re)embed one product.
type PublishEmbedProductMessage struct {
	ProductId uuid.UUID `json:"product_id"`
}
