package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/simple-orgchart/internal/core/orgchart"
	pgdb "github.com/ogurasousui/simple-orgchart/internal/platform/db/postgres"
)

const (
	employeeUniqueViolationCode     = "23505"
	employeeForeignKeyViolationCode = "23503"
	employeeCheckViolationCode      = "23514"
	employeeInvalidTextCode         = "22P02"
)

const (
	employeeFirstNameCheck      = "employees_first_name_check"
	employeeLastNameCheck       = "employees_last_name_check"
	employeeManagerNotSelfCheck = "employees_manager_not_self"
)

const saveEmployeeQuery = `
        INSERT INTO employees (id, first_name, last_name, email, manager_id)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (id) DO UPDATE
           SET first_name = EXCLUDED.first_name,
               last_name = EXCLUDED.last_name,
               email = EXCLUDED.email,
               manager_id = EXCLUDED.manager_id,
               updated_at = NOW()
    `

const selectOrgChartQuery = `
        SELECT id::text,
               first_name,
               last_name,
               email,
               manager_id::text
          FROM employees
         ORDER BY created_at ASC, id ASC
    `

// EmployeeRepository は PostgreSQL を利用した社員永続化の実装です。
type EmployeeRepository struct {
	pool pgdb.Queryer
}

// NewEmployeeRepository は EmployeeRepository を生成します。
func NewEmployeeRepository(pool pgdb.Queryer) *EmployeeRepository {
	return &EmployeeRepository{pool: pool}
}

// Save は社員を登録します。同じ ID が存在する場合は更新します。
func (r *EmployeeRepository) Save(ctx context.Context, e *orgchart.Employee) error {
	if e == nil || strings.TrimSpace(e.ID) == "" {
		return orgchart.ErrInvalidID
	}

	exec := pgdb.QueryerFromContext(ctx, r.pool)
	if _, err := exec.Exec(ctx, saveEmployeeQuery,
		e.ID,
		e.FirstName,
		e.LastName,
		nullableString(e.Email),
		nullableString(e.ManagerID()),
	); err != nil {
		return translateEmployeePgError(err)
	}
	return nil
}

// GetEmployeeOrgChart は全社員を読み込み、ルート社員を作成順に返します。
func (r *EmployeeRepository) GetEmployeeOrgChart(ctx context.Context) ([]*orgchart.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, selectOrgChartQuery)
	if err != nil {
		return nil, translateEmployeePgError(err)
	}
	defer rows.Close()

	records := make([]orgchart.Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, translateEmployeePgError(err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, translateEmployeePgError(err)
	}

	return orgchart.AssembleOrgChart(records)
}

// FindByID は ID で社員を取得します。上長・部下との関係も含めて返します。
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

func scanRecord(row pgx.Row) (orgchart.Record, error) {
	var (
		id        string
		firstName string
		lastName  string
		email     sql.NullString
		managerID sql.NullString
	)

	if err := row.Scan(&id, &firstName, &lastName, &email, &managerID); err != nil {
		return orgchart.Record{}, err
	}

	return orgchart.Record{
		ID:        id,
		FirstName: firstName,
		LastName:  lastName,
		Email:     email.String,
		ManagerID: managerID.String,
	}, nil
}

func translateEmployeePgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return orgchart.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case employeeUniqueViolationCode:
			return orgchart.ErrEmailAlreadyExists
		case employeeForeignKeyViolationCode:
			return orgchart.ErrManagerNotFound
		case employeeCheckViolationCode:
			switch pgErr.ConstraintName {
			case employeeFirstNameCheck:
				return orgchart.ErrInvalidFirstName
			case employeeLastNameCheck:
				return orgchart.ErrInvalidLastName
			case employeeManagerNotSelfCheck:
				return orgchart.ErrManagerCycle
			}
		case employeeInvalidTextCode:
			return orgchart.ErrInvalidID
		}
	}

	return err
}

func nullableString(value string) any {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return value
}
