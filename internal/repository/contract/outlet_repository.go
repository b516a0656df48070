package contract

import (
	"context"

	"github.com/mrchongyl/zus-chatbot/internal/entity"
)

type OutletRepository interface {
	CreateBulk(ctx context.Context, outlets []*entity.Outlet) error
	// ExecuteSelect runs an already validated read-only statement and
	// returns the projected rows. Callers must validate before executing.
	ExecuteSelect(ctx context.Context, sql string) ([]map[string]interface{}, error)
}
