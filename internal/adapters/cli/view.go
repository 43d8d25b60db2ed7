package cli

import (
	"strings"
	"sync"

	"github.com/ogurasousui/simple-orgchart/internal/core/orgchart"
)

// TreeView は組織図をインデント付きの番号リストとして表示します。
// 番号は直近の表示順で、Selected で社員を引き当てられます。
type TreeView struct {
	console *Console

	mu    sync.Mutex
	shown []*orgchart.Employee
}

// NewTreeView は TreeView を生成します。
func NewTreeView(console *Console) *TreeView {
	return &TreeView{console: console}
}

// DisplayEmployeeHierarchy は組織図全体を描画します。
func (v *TreeView) DisplayEmployeeHierarchy(employees []*orgchart.Employee) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.shown = v.shown[:0]
	v.console.Printf("Org chart:\n")
	if len(employees) == 0 {
		v.console.Printf("  (no employees)\n")
		return
	}
	orgchart.Walk(employees, func(e *orgchart.Employee, depth int) {
		v.shown = append(v.shown, e)
		v.console.Printf("%s%d. %s\n", strings.Repeat("  ", depth+1), len(v.shown), e.DisplayName())
	})
}

// DisplayEmployeeDetails は社員の詳細を描画します。
func (v *TreeView) DisplayEmployeeDetails(employee *orgchart.Employee) {
	manager := "(none)"
	if m := employee.Manager(); m != nil {
		manager = m.DisplayName()
	}
	email := employee.Email
	if email == "" {
		email = "(none)"
	}

	v.console.Printf("Employee: %s\n", employee.DisplayName())
	v.console.Printf("  ID:      %s\n", employee.ID)
	v.console.Printf("  Email:   %s\n", email)
	v.console.Printf("  Manager: %s\n", manager)
	v.console.Printf("  Reports: %d\n", len(employee.Employees()))
}

// Selected は直近の表示で n 番目 (1 始まり) の社員を返します。
func (v *TreeView) Selected(n int) (*orgchart.Employee, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if n < 1 || n > len(v.shown) {
		return nil, false
	}
	return v.shown[n-1], true
}
