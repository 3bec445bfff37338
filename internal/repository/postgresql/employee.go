package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/smbgAlokk/BharatForce-sub002/internal/domain/employee"
	"github.com/smbgAlokk/BharatForce-sub002/internal/pkg/database"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, company_id, full_name, designation_id, department_id, manager_id
		FROM employees
		WHERE id = $1 AND company_id = $2
	`
	var e employee.Employee
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&e.ID, &e.CompanyID, &e.FullName, &e.DesignationID, &e.DepartmentID, &e.ManagerID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, err
	}
	return e, nil
}

// ListByCompany implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ListByCompany(ctx context.Context, companyID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, company_id, full_name, designation_id, department_id, manager_id
		FROM employees
		WHERE company_id = $1
		ORDER BY full_name
	`
	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var e employee.Employee
		if err := rows.Scan(
			&e.ID, &e.CompanyID, &e.FullName, &e.DesignationID, &e.DepartmentID, &e.ManagerID,
		); err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return employees, nil
}

// ListCompanyIDs implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ListCompanyIDs(ctx context.Context) ([]string, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT DISTINCT company_id FROM employees ORDER BY company_id`
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

// IsManagerOf implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) IsManagerOf(ctx context.Context, managerID string, employeeID string, companyID string) (bool, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT EXISTS (
			SELECT 1 FROM employees
			WHERE id = $1 AND company_id = $2 AND manager_id = $3
		)
	`
	var isManager bool
	if err := q.QueryRow(ctx, query, employeeID, companyID, managerID).Scan(&isManager); err != nil {
		return false, err
	}
	return isManager, nil
}
