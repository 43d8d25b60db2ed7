package orgchart

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// QueryUseCase は組織図の参照ユースケースです。
type QueryUseCase interface {
	OrgChart(ctx context.Context) ([]*Employee, error)
	Employee(ctx context.Context, id string) (*Employee, error)
}

// QueryService は読み取り専用トランザクション内で組織図を参照します。
type QueryService struct {
	repo Repository
	tx   TransactionManager
}

// NewQueryService は QueryService を生成します。
func NewQueryService(repo Repository, tx TransactionManager) *QueryService {
	if tx == nil {
		tx = noopTransactionManager{}
	}
	return &QueryService{repo: repo, tx: tx}
}

// OrgChart はルート社員の一覧を返します。
func (s *QueryService) OrgChart(ctx context.Context) ([]*Employee, error) {
	var roots []*Employee
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		roots, err = s.repo.GetEmployeeOrgChart(txCtx)
		return err
	}); err != nil {
		return nil, fmt.Errorf("orgchart: load org chart: %w", err)
	}
	return roots, nil
}

// Employee は ID で社員を取得します。
func (s *QueryService) Employee(ctx context.Context, id string) (*Employee, error) {
	id = strings.TrimSpace(id)
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrInvalidID
	}

	var found *Employee
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		found, err = s.repo.FindByID(txCtx, id)
		return err
	}); err != nil {
		return nil, err
	}
	return found, nil
}
