package orgchart

import (
	"net/mail"
	"strings"

	"github.com/google/uuid"
)

// Employee は組織図上の社員エンティティです。
// 上長 (manager) と部下 (employees) の関係は SetManager を通じて常に双方向で整合します。
type Employee struct {
	ID        string
	FirstName string
	LastName  string
	Email     string

	manager   *Employee
	employees []*Employee
}

// NewEmployee は新しい ID を採番して Employee を生成します。
func NewEmployee(firstName, lastName, email string) *Employee {
	return &Employee{
		ID:        uuid.NewString(),
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
	}
}

// DisplayName は表示用の氏名を返します。
func (e *Employee) DisplayName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

// Manager は上長を返します。ルート社員の場合は nil です。
func (e *Employee) Manager() *Employee {
	return e.manager
}

// ManagerID は上長の ID を返します。上長がいない場合は空文字列です。
func (e *Employee) ManagerID() string {
	if e.manager == nil {
		return ""
	}
	return e.manager.ID
}

// Employees は直属の部下を登録順で返します。
func (e *Employee) Employees() []*Employee {
	return append([]*Employee(nil), e.employees...)
}

// SetManager は上長を付け替えます。nil を渡すとルート社員になります。
func (e *Employee) SetManager(manager *Employee) error {
	if manager == e.manager {
		return nil
	}
	for m := manager; m != nil; m = m.manager {
		if m == e {
			return ErrManagerCycle
		}
	}

	if e.manager != nil {
		e.manager.removeEmployee(e)
	}
	e.manager = manager
	if manager != nil {
		manager.employees = append(manager.employees, e)
	}
	return nil
}

func (e *Employee) removeEmployee(sub *Employee) {
	for i, existing := range e.employees {
		if existing == sub {
			e.employees = append(e.employees[:i], e.employees[i+1:]...)
			return
		}
	}
}

// EmployeeInfo は新規社員の作成前にユーザーから収集する値オブジェクトです。
type EmployeeInfo struct {
	FirstName string
	LastName  string
	Email     string
}

// Normalize は前後の空白を除去した EmployeeInfo を返します。
func (i EmployeeInfo) Normalize() EmployeeInfo {
	return EmployeeInfo{
		FirstName: strings.TrimSpace(i.FirstName),
		LastName:  strings.TrimSpace(i.LastName),
		Email:     strings.TrimSpace(i.Email),
	}
}

// Validate は入力値を検証します。
func (i EmployeeInfo) Validate() error {
	n := i.Normalize()
	if n.FirstName == "" {
		return ErrInvalidFirstName
	}
	if n.LastName == "" {
		return ErrInvalidLastName
	}
	if n.Email != "" {
		addr, err := mail.ParseAddress(n.Email)
		if err != nil || addr.Address != n.Email {
			return ErrInvalidEmail
		}
	}
	return nil
}

// Record は永続化層で扱うフラットな社員レコードです。
type Record struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	ManagerID string
}

// RecordOf は Employee からレコードを作ります。
func RecordOf(e *Employee) Record {
	return Record{
		ID:        e.ID,
		FirstName: e.FirstName,
		LastName:  e.LastName,
		Email:     e.Email,
		ManagerID: e.ManagerID(),
	}
}

// AssembleOrgChart はフラットなレコードから新しい社員ツリーを組み立て、ルート社員を返します。
// ルートと各部下の並びはレコードの順序を保ちます。
func AssembleOrgChart(records []Record) ([]*Employee, error) {
	byID := make(map[string]*Employee, len(records))
	nodes := make([]*Employee, 0, len(records))
	for _, r := range records {
		emp := &Employee{ID: r.ID, FirstName: r.FirstName, LastName: r.LastName, Email: r.Email}
		byID[r.ID] = emp
		nodes = append(nodes, emp)
	}

	roots := make([]*Employee, 0)
	for i, r := range records {
		emp := nodes[i]
		if r.ManagerID == "" {
			roots = append(roots, emp)
			continue
		}
		manager, ok := byID[r.ManagerID]
		if !ok {
			return nil, ErrManagerNotFound
		}
		if err := emp.SetManager(manager); err != nil {
			return nil, err
		}
	}
	return roots, nil
}

// Walk は深さ優先でツリーを走査します。
func Walk(roots []*Employee, fn func(e *Employee, depth int)) {
	var visit func(e *Employee, depth int)
	visit = func(e *Employee, depth int) {
		fn(e, depth)
		for _, sub := range e.employees {
			visit(sub, depth+1)
		}
	}
	for _, root := range roots {
		visit(root, 0)
	}
}

// FindInOrgChart はツリーから ID で社員を探します。
func FindInOrgChart(roots []*Employee, id string) *Employee {
	var found *Employee
	Walk(roots, func(e *Employee, _ int) {
		if found == nil && e.ID == id {
			found = e
		}
	})
	return found
}
