package orgchart

import (
	"context"

	"github.com/ogurasousui/simple-orgchart/internal/core/appcontroller"
)

// Repository は社員永続化の抽象です。
type Repository interface {
	Save(ctx context.Context, employee *Employee) error
	GetEmployeeOrgChart(ctx context.Context) ([]*Employee, error)
	FindByID(ctx context.Context, id string) (*Employee, error)
}

// NewEmployeeInfoSource は新規社員の情報を収集します。
type NewEmployeeInfoSource interface {
	Get(ctx context.Context) (Result[EmployeeInfo], error)
}

// ManagerSource は新規社員の上長を選択します。nil はルート社員を表します。
type ManagerSource interface {
	Get(ctx context.Context) (*Employee, error)
}

// NewEmployeeInfoSourceFunc は関数を NewEmployeeInfoSource として扱います。
type NewEmployeeInfoSourceFunc func(ctx context.Context) (Result[EmployeeInfo], error)

func (f NewEmployeeInfoSourceFunc) Get(ctx context.Context) (Result[EmployeeInfo], error) {
	return f(ctx)
}

// ManagerSourceFunc は関数を ManagerSource として扱います。
type ManagerSourceFunc func(ctx context.Context) (*Employee, error)

func (f ManagerSourceFunc) Get(ctx context.Context) (*Employee, error) {
	return f(ctx)
}

// ApplicationController はコマンド実行とイベント発行の境界です。
type ApplicationController interface {
	Execute(ctx context.Context, data appcontroller.Message) error
	Raise(ctx context.Context, event appcontroller.Message) error
}

// TransactionManager はトランザクション制御の抽象化です。
type TransactionManager interface {
	WithinReadOnly(ctx context.Context, fn func(context.Context) error) error
	WithinReadWrite(ctx context.Context, fn func(context.Context) error) error
}

type noopTransactionManager struct{}

func (noopTransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

func (noopTransactionManager) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}
