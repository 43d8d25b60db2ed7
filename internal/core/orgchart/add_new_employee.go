package orgchart

import (
	"context"
	"fmt"

	"github.com/ogurasousui/simple-orgchart/internal/core/appcontroller"
	"github.com/rs/zerolog"
)

// AddNewEmployeeRunner は社員追加ワークフローを実行するサービスの公開インターフェースです。
type AddNewEmployeeRunner interface {
	Run(ctx context.Context) error
}

// AddNewEmployeeService は社員追加ワークフローをまとめます。
// 情報収集 → 上長選択 → 保存 → 完了通知 の順に同期的に進み、
// 情報収集が Ok 以外で終わった場合は保存も通知も行いません。
type AddNewEmployeeService struct {
	info       NewEmployeeInfoSource
	manager    ManagerSource
	repo       Repository
	controller ApplicationController
	tx         TransactionManager
}

// NewAddNewEmployeeService は AddNewEmployeeService を生成します。
func NewAddNewEmployeeService(info NewEmployeeInfoSource, manager ManagerSource, repo Repository, controller ApplicationController, tx TransactionManager) *AddNewEmployeeService {
	if tx == nil {
		tx = noopTransactionManager{}
	}
	return &AddNewEmployeeService{
		info:       info,
		manager:    manager,
		repo:       repo,
		controller: controller,
		tx:         tx,
	}
}

// Run はワークフローを最後まで実行します。
// 取り消し・失敗は正常系として nil を返し、協調オブジェクトのエラーはそのまま返します。
func (s *AddNewEmployeeService) Run(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)

	result, err := s.info.Get(ctx)
	if err != nil {
		return fmt.Errorf("orgchart: get new employee info: %w", err)
	}

	info, ok := result.Value()
	if !ok {
		if result.Status() == ResultFail {
			logger.Warn().Err(result.Cause()).Msg("new employee info failed; nothing added")
		} else {
			logger.Debug().Msg("add new employee cancelled")
		}
		return nil
	}

	manager, err := s.manager.Get(ctx)
	if err != nil {
		return fmt.Errorf("orgchart: get employee manager: %w", err)
	}

	emp := NewEmployee(info.FirstName, info.LastName, info.Email)
	if err := emp.SetManager(manager); err != nil {
		return err
	}

	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		return s.repo.Save(txCtx, emp)
	}); err != nil {
		// 保存されなかった社員を上長の部下一覧に残さない
		_ = emp.SetManager(nil)
		return fmt.Errorf("orgchart: save employee: %w", err)
	}

	logger.Info().Str("employee_id", emp.ID).Str("manager_id", emp.ManagerID()).Msg("employee added")

	if err := s.controller.Raise(ctx, EmployeeAddedEvent{Employee: emp}); err != nil {
		return fmt.Errorf("orgchart: notify employee added: %w", err)
	}
	return nil
}

// AddNewEmployeeCommand は AddNewEmployeeData に紐づくコマンドです。
type AddNewEmployeeCommand struct {
	service AddNewEmployeeRunner
}

// NewAddNewEmployeeCommand は AddNewEmployeeCommand を生成します。
func NewAddNewEmployeeCommand(service AddNewEmployeeRunner) *AddNewEmployeeCommand {
	return &AddNewEmployeeCommand{service: service}
}

// Execute はサービスの Run を呼び出します。データの内容は参照しません。
func (c *AddNewEmployeeCommand) Execute(ctx context.Context, _ AddNewEmployeeData) error {
	return c.service.Run(ctx)
}

// AddNewEmployeeSources はデータ側で指定されなかった場合に使う情報源です。
type AddNewEmployeeSources struct {
	Info    NewEmployeeInfoSource
	Manager ManagerSource
}

// NewAddNewEmployeeCommandFactory はコントローラーに登録するコマンドファクトリを返します。
func NewAddNewEmployeeCommandFactory(defaults AddNewEmployeeSources, repo Repository, controller ApplicationController, tx TransactionManager) appcontroller.CommandFactory[AddNewEmployeeData] {
	return func(data AddNewEmployeeData) (appcontroller.Command[AddNewEmployeeData], error) {
		info := data.Info
		if info == nil {
			info = defaults.Info
		}
		if info == nil {
			return nil, ErrMissingInfoSource
		}

		manager := data.Manager
		if manager == nil {
			manager = defaults.Manager
		}
		if manager == nil {
			return nil, ErrMissingManagerSource
		}

		svc := NewAddNewEmployeeService(info, manager, repo, controller, tx)
		return NewAddNewEmployeeCommand(svc), nil
	}
}

// StaticInfo は常に同じ情報を Ok で返す情報源です。
func StaticInfo(info EmployeeInfo) NewEmployeeInfoSource {
	return NewEmployeeInfoSourceFunc(func(context.Context) (Result[EmployeeInfo], error) {
		return Ok(info), nil
	})
}

// StaticManager は常に同じ上長を返す情報源です。
func StaticManager(manager *Employee) ManagerSource {
	return ManagerSourceFunc(func(context.Context) (*Employee, error) {
		return manager, nil
	})
}
