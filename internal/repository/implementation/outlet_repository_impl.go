package implementation

import (
	"context"

	"gorm.io/gorm"

	"github.com/mrchongyl/zus-chatbot/internal/entity"
	"github.com/mrchongyl/zus-chatbot/internal/mapper"
	"github.com/mrchongyl/zus-chatbot/internal/model"
	"github.com/mrchongyl/zus-chatbot/internal/repository/contract"
)

type OutletRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.OutletMapper
}

func NewOutletRepository(db *gorm.DB) contract.OutletRepository {
	return &OutletRepositoryImpl{
		db:     db,
		mapper: mapper.NewOutletMapper(),
	}
}

func (r *OutletRepositoryImpl) CreateBulk(ctx context.Context, outlets []*entity.Outlet) error {
	if len(outlets) == 0 {
		return nil
	}
	models := make([]*model.Outlet, len(outlets))
	for i, o := range outlets {
		models[i] = r.mapper.ToModel(o)
	}
	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return err
	}
	for i, m := range models {
		*outlets[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

// ExecuteSelect runs a validated SELECT verbatim. The statement arrives from
// the translator after its allowlist checks; this layer adds no fallback.
func (r *OutletRepositoryImpl) ExecuteSelect(ctx context.Context, sql string) ([]map[string]interface{}, error) {
	var rows []map[string]interface{}
	if err := r.db.WithContext(ctx).Raw(sql).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []map[string]interface{}{}
	}
	return rows, nil
}
