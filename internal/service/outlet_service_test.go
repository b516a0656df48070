package service

import (
	"context"
	"errors"
	"testing"

	"github.com/mrchongyl/zus-chatbot/internal/entity"
	"github.com/mrchongyl/zus-chatbot/internal/pkg/validation"
	"github.com/mrchongyl/zus-chatbot/pkg/text2sql"
)

type fakeOutletRepo struct {
	rows     []map[string]interface{}
	err      error
	executed []string
}

func (f *fakeOutletRepo) CreateBulk(ctx context.Context, outlets []*entity.Outlet) error { return nil }

func (f *fakeOutletRepo) ExecuteSelect(ctx context.Context, sql string) ([]map[string]interface{}, error) {
	f.executed = append(f.executed, sql)
	return f.rows, f.err
}

func TestOutletQueryHappyPath(t *testing.T) {
	provider := &replayLLM{responses: []string{"SELECT name FROM outlets WHERE area ILIKE '%Cheras%' LIMIT 5;"}}
	repo := &fakeOutletRepo{rows: []map[string]interface{}{
		{"name": "ZUS Coffee Cheras"},
		{"name": "ZUS Coffee Cheras Selatan"},
	}}
	svc := NewOutletService(text2sql.NewTranslator(provider, 100, 20), repo, nopLogger{})

	res, err := svc.Query(context.Background(), "outlets in Cheras")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if res.TotalResults != 2 {
		t.Errorf("TotalResults = %d, want 2", res.TotalResults)
	}
	if len(repo.executed) != 1 || repo.executed[0] != "SELECT name FROM outlets WHERE area ILIKE '%Cheras%' LIMIT 5;" {
		t.Errorf("executed = %v", repo.executed)
	}
}

func TestOutletQueryValidationSkipsExecution(t *testing.T) {
	provider := &replayLLM{}
	repo := &fakeOutletRepo{}
	svc := NewOutletService(text2sql.NewTranslator(provider, 100, 20), repo, nopLogger{})

	_, err := svc.Query(context.Background(), "")
	var valErr *validation.Error
	if !errors.As(err, &valErr) {
		t.Errorf("error = %v, want *validation.Error", err)
	}
	if provider.calls != 0 || len(repo.executed) != 0 {
		t.Errorf("invalid query must skip translation (%d calls) and execution (%d statements)", provider.calls, len(repo.executed))
	}
}

func TestOutletQueryUnsafeGenerationNeverExecutes(t *testing.T) {
	provider := &replayLLM{responses: []string{"SELECT * FROM outlets;"}}
	repo := &fakeOutletRepo{}
	svc := NewOutletService(text2sql.NewTranslator(provider, 100, 20), repo, nopLogger{})

	_, err := svc.Query(context.Background(), "outlets in Cheras")
	var unsafe *text2sql.UnsafeQueryError
	if !errors.As(err, &unsafe) {
		t.Errorf("error = %v, want *UnsafeQueryError", err)
	}
	if len(repo.executed) != 0 {
		t.Errorf("rejected statement must never execute, saw %v", repo.executed)
	}
}
