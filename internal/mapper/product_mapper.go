package mapper

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"

	"github.com/mrchongyl/zus-chatbot/internal/entity"
	"github.com/mrchongyl/zus-chatbot/internal/model"
)

type ProductMapper struct{}

func NewProductMapper() *ProductMapper {
	return &ProductMapper{}
}

func (m *ProductMapper) ToEntity(p *model.Product) *entity.Product {
	if p == nil {
		return nil
	}

	var colours []string
	if len(p.Colours) > 0 {
		// Malformed colour payloads degrade to an empty list.
		_ = json.Unmarshal(p.Colours, &colours)
	}

	var updatedAt *time.Time
	if !p.UpdatedAt.IsZero() {
		t := p.UpdatedAt
		updatedAt = &t
	}

	return &entity.Product{
		Id:          p.Id,
		Name:        p.Name,
		Category:    p.Category,
		Price:       p.Price,
		Description: p.Description,
		Promotion:   p.Promotion,
		Colours:     colours,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   updatedAt,
	}
}

func (m *ProductMapper) ToModel(p *entity.Product) *model.Product {
	if p == nil {
		return nil
	}

	colours := datatypes.JSON("[]")
	if len(p.Colours) > 0 {
		if raw, err := json.Marshal(p.Colours); err == nil {
			colours = datatypes.JSON(raw)
		}
	}

	var updatedAt time.Time
	if p.UpdatedAt != nil {
		updatedAt = *p.UpdatedAt
	}

	return &model.Product{
		Id:          p.Id,
		Name:        p.Name,
		Category:    p.Category,
		Price:       p.Price,
		Description: p.Description,
		Promotion:   p.Promotion,
		Colours:     colours,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   updatedAt,
	}
}
