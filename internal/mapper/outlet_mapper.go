package mapper

import (
	"github.com/mrchongyl/zus-chatbot/internal/entity"
	"github.com/mrchongyl/zus-chatbot/internal/model"
)

type OutletMapper struct{}

func NewOutletMapper() *OutletMapper {
	return &OutletMapper{}
}

func (m *OutletMapper) ToEntity(o *model.Outlet) *entity.Outlet {
	if o == nil {
		return nil
	}
	return &entity.Outlet{
		Id:           o.Id,
		Name:         o.Name,
		Address:      o.Address,
		Area:         o.Area,
		State:        o.State,
		OpeningTime:  o.OpeningTime,
		ClosingTime:  o.ClosingTime,
		DirectionUrl: o.DirectionUrl,
	}
}

func (m *OutletMapper) ToModel(o *entity.Outlet) *model.Outlet {
	if o == nil {
		return nil
	}
	return &model.Outlet{
		Id:           o.Id,
		Name:         o.Name,
		Address:      o.Address,
		Area:         o.Area,
		State:        o.State,
		OpeningTime:  o.OpeningTime,
		ClosingTime:  o.ClosingTime,
		DirectionUrl: o.DirectionUrl,
	}
}
