package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hrms-core/hrms-backend-go/internal/domain/employee"
	"github.com/hrms-core/hrms-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `e.id, e.employee_code, e.full_name, e.email, e.phone_number, e.department, e.position,
	e.hire_date, e.status, e.base_salary, e.pf_percentage, e.esi_percentage,
	e.absent_deduction_type, e.absent_deduction_value, e.created_at, e.updated_at, u.id, u.role`

func (r *employeeRepositoryImpl) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (
			employee_code, full_name, email, phone_number, department, position,
			hire_date, status, base_salary, pf_percentage, esi_percentage,
			absent_deduction_type, absent_deduction_value
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at, updated_at
	`

	created := emp
	err := q.QueryRow(ctx, query,
		emp.EmployeeCode, emp.FullName, emp.Email, emp.PhoneNumber, emp.Department, emp.Position,
		emp.HireDate, emp.Status, emp.BaseSalary, emp.PFPercentage, emp.ESIPercentage,
		emp.AbsentDeductionType, emp.AbsentDeductionValue,
	).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return employee.Employee{}, employee.ErrEmployeeCodeExists
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}
	return created, nil
}

func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	return r.getOne(ctx, `
		SELECT `+employeeColumns+`
		FROM employees e
		LEFT JOIN users u ON u.employee_id = e.id
		WHERE e.id = $1`, id)
}

func (r *employeeRepositoryImpl) GetByUserID(ctx context.Context, userID string) (employee.Employee, error) {
	return r.getOne(ctx, `
		SELECT `+employeeColumns+`
		FROM employees e
		JOIN users u ON u.employee_id = e.id
		WHERE u.id = $1`, userID)
}

func (r *employeeRepositoryImpl) GetActive(ctx context.Context) ([]employee.Employee, error) {
	return r.list(ctx, `
		SELECT `+employeeColumns+`
		FROM employees e
		LEFT JOIN users u ON u.employee_id = e.id
		WHERE e.status = $1
		ORDER BY e.employee_code`, employee.StatusActive)
}

func (r *employeeRepositoryImpl) List(ctx context.Context, status *employee.Status) ([]employee.Employee, error) {
	query := `
		SELECT ` + employeeColumns + `
		FROM employees e
		LEFT JOIN users u ON u.employee_id = e.id
	`
	var args []interface{}
	if status != nil {
		query += ` WHERE e.status = $1`
		args = append(args, *status)
	}
	query += ` ORDER BY e.employee_code`
	return r.list(ctx, query, args...)
}

func (r *employeeRepositoryImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) error {
	q := GetQuerier(ctx, r.db)

	updates := map[string]interface{}{}
	if req.FullName != nil {
		updates["full_name"] = *req.FullName
	}
	if req.PhoneNumber != nil {
		updates["phone_number"] = *req.PhoneNumber
	}
	if req.Department != nil {
		updates["department"] = *req.Department
	}
	if req.Position != nil {
		updates["position"] = *req.Position
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.BaseSalary != nil {
		updates["base_salary"] = *req.BaseSalary
	}
	if req.PFPercentage != nil {
		updates["pf_percentage"] = *req.PFPercentage
	}
	if req.ESIPercentage != nil {
		updates["esi_percentage"] = *req.ESIPercentage
	}
	if req.AbsentDeductionType != nil {
		updates["absent_deduction_type"] = *req.AbsentDeductionType
	}
	if req.AbsentDeductionValue != nil {
		updates["absent_deduction_value"] = *req.AbsentDeductionValue
	}
	if len(updates) == 0 {
		return nil
	}

	setClauses := make([]string, 0, len(updates)+1)
	args := make([]interface{}, 0, len(updates)+1)
	i := 1
	for col, val := range updates {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", col, i))
		args = append(args, val)
		i++
	}
	setClauses = append(setClauses, "updated_at = NOW()")

	sql := fmt.Sprintf("UPDATE employees SET %s WHERE id = $%d RETURNING id", strings.Join(setClauses, ", "), i)
	args = append(args, req.ID)

	var updatedID string
	err := q.QueryRow(ctx, sql, args...).Scan(&updatedID)
	if errors.Is(err, pgx.ErrNoRows) {
		return employee.ErrEmployeeNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update employee %s: %w", req.ID, err)
	}
	return nil
}

func (r *employeeRepositoryImpl) SetStatus(ctx context.Context, id string, status employee.Status) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE employees SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to set employee status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

func (r *employeeRepositoryImpl) RedactFinancials(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE employees
		SET base_salary = NULL, pf_percentage = NULL, esi_percentage = NULL,
			absent_deduction_type = NULL, absent_deduction_value = NULL, updated_at = NOW()
		WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to redact employee financials: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

func (r *employeeRepositoryImpl) getOne(ctx context.Context, query string, args ...interface{}) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	emp, err := scanEmployee(q.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return emp, nil
}

func (r *employeeRepositoryImpl) list(ctx context.Context, query string, args ...interface{}) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return employees, nil
}

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	var userID *string
	err := row.Scan(
		&emp.ID, &emp.EmployeeCode, &emp.FullName, &emp.Email, &emp.PhoneNumber, &emp.Department, &emp.Position,
		&emp.HireDate, &emp.Status, &emp.BaseSalary, &emp.PFPercentage, &emp.ESIPercentage,
		&emp.AbsentDeductionType, &emp.AbsentDeductionValue, &emp.CreatedAt, &emp.UpdatedAt, &userID, &emp.Role,
	)
	if err != nil {
		return employee.Employee{}, err
	}
	emp.UserID = userID
	return emp, nil
}
