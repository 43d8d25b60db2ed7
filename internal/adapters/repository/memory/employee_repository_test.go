package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/ogurasousui/simple-orgchart/internal/core/orgchart"
)

func TestEmployeeRepository_SaveAndLoadHierarchy(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewEmployeeRepository()

	bob := orgchart.NewEmployee("Bob", "Jones", "bob.jones@example.com")
	if err := repo.Save(ctx, bob); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	jim := orgchart.NewEmployee("Jim", "Jones", "jim.jones@example.com")
	if err := jim.SetManager(bob); err != nil {
		t.Fatalf("SetManager returned error: %v", err)
	}
	if err := repo.Save(ctx, jim); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	roots, err := repo.GetEmployeeOrgChart(ctx)
	if err != nil {
		t.Fatalf("GetEmployeeOrgChart returned error: %v", err)
	}
	if len(roots) != 1 || roots[0].ID != bob.ID {
		t.Fatalf("expected Bob as the only root, got %+v", roots)
	}
	if roots[0] == bob {
		t.Fatalf("expected repository to return its own copy")
	}
	subs := roots[0].Employees()
	if len(subs) != 1 || subs[0].ID != jim.ID || subs[0].Email != "jim.jones@example.com" {
		t.Fatalf("expected Jim under Bob, got %+v", subs)
	}

	found, err := repo.FindByID(ctx, jim.ID)
	if err != nil {
		t.Fatalf("FindByID returned error: %v", err)
	}
	if found.ManagerID() != bob.ID {
		t.Fatalf("expected found employee to keep manager link")
	}
}

func TestEmployeeRepository_SaveUpdatesInPlace(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewEmployeeRepository()

	bob := orgchart.NewEmployee("Bob", "Jones", "")
	ann := orgchart.NewEmployee("Ann", "Lee", "")
	for _, e := range []*orgchart.Employee{bob, ann} {
		if err := repo.Save(ctx, e); err != nil {
			t.Fatalf("Save returned error: %v", err)
		}
	}

	bob.LastName = "Smith"
	if err := repo.Save(ctx, bob); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	roots, err := repo.GetEmployeeOrgChart(ctx)
	if err != nil {
		t.Fatalf("GetEmployeeOrgChart returned error: %v", err)
	}
	if len(roots) != 2 || roots[0].LastName != "Smith" || roots[1].ID != ann.ID {
		t.Fatalf("expected update to keep order, got %+v", roots)
	}
}

func TestEmployeeRepository_SaveValidation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewEmployeeRepository()

	if err := repo.Save(ctx, nil); !errors.Is(err, orgchart.ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}

	ghost := orgchart.NewEmployee("Ghost", "Manager", "")
	jim := orgchart.NewEmployee("Jim", "Jones", "")
	if err := jim.SetManager(ghost); err != nil {
		t.Fatalf("SetManager returned error: %v", err)
	}
	if err := repo.Save(ctx, jim); !errors.Is(err, orgchart.ErrManagerNotFound) {
		t.Fatalf("expected ErrManagerNotFound, got %v", err)
	}

	if err := repo.Save(ctx, orgchart.NewEmployee("Bob", "Jones", "dup@example.com")); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if err := repo.Save(ctx, orgchart.NewEmployee("Rob", "Jones", "DUP@example.com")); !errors.Is(err, orgchart.ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestEmployeeRepository_SaveRejectsBlankNames(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewEmployeeRepository()

	if err := repo.Save(ctx, orgchart.NewEmployee(" ", "Jones", "")); !errors.Is(err, orgchart.ErrInvalidFirstName) {
		t.Fatalf("expected ErrInvalidFirstName, got %v", err)
	}
	if err := repo.Save(ctx, orgchart.NewEmployee("Jim", "", "")); !errors.Is(err, orgchart.ErrInvalidLastName) {
		t.Fatalf("expected ErrInvalidLastName, got %v", err)
	}

	roots, err := repo.GetEmployeeOrgChart(ctx)
	if err != nil {
		t.Fatalf("GetEmployeeOrgChart returned error: %v", err)
	}
	if len(roots) != 0 {
		t.Fatalf("expected nothing stored, got %d", len(roots))
	}
}

func TestEmployeeRepository_SaveRejectsManagerCycles(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewEmployeeRepository()

	bob := orgchart.NewEmployee("Bob", "Jones", "")
	jim := orgchart.NewEmployee("Jim", "Jones", "")
	if err := jim.SetManager(bob); err != nil {
		t.Fatalf("SetManager returned error: %v", err)
	}
	for _, e := range []*orgchart.Employee{bob, jim} {
		if err := repo.Save(ctx, e); err != nil {
			t.Fatalf("Save returned error: %v", err)
		}
	}

	// 別インスタンス同士なら SetManager は循環を検出できない
	staleBob := &orgchart.Employee{ID: bob.ID, FirstName: "Bob", LastName: "Jones"}
	staleJim := &orgchart.Employee{ID: jim.ID, FirstName: "Jim", LastName: "Jones"}
	if err := staleBob.SetManager(staleJim); err != nil {
		t.Fatalf("SetManager returned error: %v", err)
	}
	if err := repo.Save(ctx, staleBob); !errors.Is(err, orgchart.ErrManagerCycle) {
		t.Fatalf("expected ErrManagerCycle, got %v", err)
	}

	self := &orgchart.Employee{ID: bob.ID, FirstName: "Bob", LastName: "Jones"}
	if err := self.SetManager(&orgchart.Employee{ID: bob.ID, FirstName: "Bob", LastName: "Jones"}); err != nil {
		t.Fatalf("SetManager returned error: %v", err)
	}
	if err := repo.Save(ctx, self); !errors.Is(err, orgchart.ErrManagerCycle) {
		t.Fatalf("expected ErrManagerCycle for self manager, got %v", err)
	}

	roots, err := repo.GetEmployeeOrgChart(ctx)
	if err != nil {
		t.Fatalf("expected org chart to stay assemblable, got %v", err)
	}
	if len(roots) != 1 || roots[0].ID != bob.ID {
		t.Fatalf("expected Bob to remain the root, got %+v", roots)
	}
}

func TestEmployeeRepository_FindByID_NotFound(t *testing.T) {
	t.Parallel()

	repo := NewEmployeeRepository()

	if _, err := repo.FindByID(context.Background(), "missing"); !errors.Is(err, orgchart.ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
	if _, err := repo.FindByID(context.Background(), " "); !errors.Is(err, orgchart.ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
}

func TestEmployeeRepository_ConcurrentSaves(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewEmployeeRepository()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := repo.Save(ctx, orgchart.NewEmployee("Worker", "Bee", "")); err != nil {
				t.Errorf("Save returned error: %v", err)
			}
		}()
	}
	wg.Wait()

	roots, err := repo.GetEmployeeOrgChart(ctx)
	if err != nil {
		t.Fatalf("GetEmployeeOrgChart returned error: %v", err)
	}
	if len(roots) != 20 {
		t.Fatalf("expected 20 roots, got %d", len(roots))
	}
}
