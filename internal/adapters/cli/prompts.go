package cli

import (
	"context"
	"strconv"

	"github.com/ogurasousui/simple-orgchart/internal/core/orgchart"
)

// InfoPrompt は新規社員の情報を端末から収集します。
// 名が空のまま、または入力が尽きた場合は取り消し、検証に失敗した場合は失敗として返します。
type InfoPrompt struct {
	console *Console
}

// NewInfoPrompt は InfoPrompt を生成します。
func NewInfoPrompt(console *Console) *InfoPrompt {
	return &InfoPrompt{console: console}
}

// Get は新規社員の情報を尋ねます。
func (p *InfoPrompt) Get(ctx context.Context) (orgchart.Result[orgchart.EmployeeInfo], error) {
	if err := ctx.Err(); err != nil {
		return orgchart.Result[orgchart.EmployeeInfo]{}, err
	}

	first, ok := p.console.Ask("First name (blank to cancel): ")
	if !ok || first == "" {
		return orgchart.Cancel[orgchart.EmployeeInfo](), nil
	}
	last, ok := p.console.Ask("Last name: ")
	if !ok {
		return orgchart.Cancel[orgchart.EmployeeInfo](), nil
	}
	email, ok := p.console.Ask("Email (optional): ")
	if !ok {
		return orgchart.Cancel[orgchart.EmployeeInfo](), nil
	}

	info := orgchart.EmployeeInfo{FirstName: first, LastName: last, Email: email}.Normalize()
	if err := info.Validate(); err != nil {
		p.console.Printf("invalid employee info: %v\n", err)
		return orgchart.Fail[orgchart.EmployeeInfo](err), nil
	}
	return orgchart.Ok(info), nil
}

// ManagerPrompt は既存社員の一覧から上長を選ばせます。
// 空入力または入力が尽きた場合はルート社員として扱います。
type ManagerPrompt struct {
	console *Console
	repo    orgchart.Repository
}

// NewManagerPrompt は ManagerPrompt を生成します。
func NewManagerPrompt(console *Console, repo orgchart.Repository) *ManagerPrompt {
	return &ManagerPrompt{console: console, repo: repo}
}

// Get は上長を尋ねます。
func (p *ManagerPrompt) Get(ctx context.Context) (*orgchart.Employee, error) {
	roots, err := p.repo.GetEmployeeOrgChart(ctx)
	if err != nil {
		return nil, err
	}

	var candidates []*orgchart.Employee
	orgchart.Walk(roots, func(e *orgchart.Employee, _ int) {
		candidates = append(candidates, e)
	})
	if len(candidates) == 0 {
		p.console.Printf("No existing employees; the new employee becomes a root.\n")
		return nil, nil
	}

	p.console.Printf("Select a manager:\n")
	for i, c := range candidates {
		p.console.Printf("  %d. %s\n", i+1, c.DisplayName())
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		answer, ok := p.console.Ask("Manager number (blank for none): ")
		if !ok || answer == "" {
			return nil, nil
		}
		n, err := strconv.Atoi(answer)
		if err == nil && n >= 1 && n <= len(candidates) {
			return candidates[n-1], nil
		}
		p.console.Printf("invalid selection %q\n", answer)
	}
}
