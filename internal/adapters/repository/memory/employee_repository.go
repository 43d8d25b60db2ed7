package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/ogurasousui/simple-orgchart/internal/core/orgchart"
)

// EmployeeRepository はプロセス内メモリに社員を保持する実装です。
// 読み出しのたびに新しいツリーを組み立てるため、呼び出し側と内部状態は共有されません。
type EmployeeRepository struct {
	mu      sync.RWMutex
	records []orgchart.Record
	index   map[string]int
}

// NewEmployeeRepository は EmployeeRepository を生成します。
func NewEmployeeRepository() *EmployeeRepository {
	return &EmployeeRepository{index: make(map[string]int)}
}

// Save は社員を新規登録または更新します。
func (r *EmployeeRepository) Save(_ context.Context, e *orgchart.Employee) error {
	if e == nil || strings.TrimSpace(e.ID) == "" {
		return orgchart.ErrInvalidID
	}
	rec := orgchart.RecordOf(e)
	if strings.TrimSpace(rec.FirstName) == "" {
		return orgchart.ErrInvalidFirstName
	}
	if strings.TrimSpace(rec.LastName) == "" {
		return orgchart.ErrInvalidLastName
	}
	if rec.ManagerID == rec.ID {
		return orgchart.ErrManagerCycle
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if rec.ManagerID != "" {
		if _, ok := r.index[rec.ManagerID]; !ok {
			return orgchart.ErrManagerNotFound
		}
		if r.reachesLocked(rec.ManagerID, rec.ID) {
			return orgchart.ErrManagerCycle
		}
	}
	if rec.Email != "" {
		for _, existing := range r.records {
			if existing.ID != rec.ID && strings.EqualFold(existing.Email, rec.Email) {
				return orgchart.ErrEmailAlreadyExists
			}
		}
	}

	if pos, ok := r.index[rec.ID]; ok {
		r.records[pos] = rec
		return nil
	}
	r.index[rec.ID] = len(r.records)
	r.records = append(r.records, rec)
	return nil
}

// reachesLocked は from から上長をたどって target に到達するかを返します。r.mu を保持して呼び出します。
func (r *EmployeeRepository) reachesLocked(from, target string) bool {
	for id, steps := from, 0; id != "" && steps <= len(r.records); steps++ {
		if id == target {
			return true
		}
		pos, ok := r.index[id]
		if !ok {
			return false
		}
		id = r.records[pos].ManagerID
	}
	return false
}

// GetEmployeeOrgChart はルート社員を登録順に返します。
func (r *EmployeeRepository) GetEmployeeOrgChart(_ context.Context) ([]*orgchart.Employee, error) {
	r.mu.RLock()
	records := append([]orgchart.Record(nil), r.records...)
	r.mu.RUnlock()

	return orgchart.AssembleOrgChart(records)
}

// FindByID は ID で社員を取得します。返される社員は上長・部下との関係を保持しています。
func (r *EmployeeRepository) FindByID(ctx context.Context, id string) (*orgchart.Employee, error) {
	if strings.TrimSpace(id) == "" {
		return nil, orgchart.ErrInvalidID
	}
	roots, err := r.GetEmployeeOrgChart(ctx)
	if err != nil {
		return nil, err
	}
	found := orgchart.FindInOrgChart(roots, id)
	if found == nil {
		return nil, orgchart.ErrEmployeeNotFound
	}
	return found, nil
}
