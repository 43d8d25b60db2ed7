package orgchart

import (
	"context"
	"fmt"
)

// View は組織図を表示する画面の抽象です。
type View interface {
	DisplayEmployeeHierarchy(employees []*Employee)
	DisplayEmployeeDetails(employee *Employee)
}

// OrgChartPresenter は画面とアプリケーションコントローラーの間を取り持ちます。
// 業務ロジックは持たず、処理はすべてコントローラー経由で委譲します。
type OrgChartPresenter struct {
	view       View
	controller ApplicationController
	repo       Repository
}

// NewOrgChartPresenter は OrgChartPresenter を生成します。
func NewOrgChartPresenter(view View, controller ApplicationController, repo Repository) *OrgChartPresenter {
	return &OrgChartPresenter{view: view, controller: controller, repo: repo}
}

// Run は現在の組織図を画面に表示します。
func (p *OrgChartPresenter) Run(ctx context.Context) error {
	return p.refresh(ctx)
}

// AddNewEmployeeRequested は社員追加ワークフローを起動します。
func (p *OrgChartPresenter) AddNewEmployeeRequested(ctx context.Context) error {
	return p.controller.Execute(ctx, AddNewEmployeeData{})
}

// EmployeeSelected は選択された社員の詳細を表示します。
func (p *OrgChartPresenter) EmployeeSelected(_ context.Context, employee *Employee) {
	if employee == nil {
		return
	}
	p.view.DisplayEmployeeDetails(employee)
}

// EmployeeAdded は EmployeeAddedEvent の購読ハンドラで、組織図を再表示します。
func (p *OrgChartPresenter) EmployeeAdded(ctx context.Context, _ EmployeeAddedEvent) error {
	return p.refresh(ctx)
}

func (p *OrgChartPresenter) refresh(ctx context.Context) error {
	employees, err := p.repo.GetEmployeeOrgChart(ctx)
	if err != nil {
		return fmt.Errorf("orgchart: load org chart: %w", err)
	}
	p.view.DisplayEmployeeHierarchy(employees)
	return nil
}
