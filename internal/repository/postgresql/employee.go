package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stafftrack/hr-backend-go/internal/domain/employee"
	"github.com/stafftrack/hr-backend-go/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

const employeeColumns = `
	id, full_name, email, password_hash, job, role, status,
	current_latitude, current_longitude, current_location_updated_at,
	default_latitude, default_longitude, default_location_set_at,
	created_at, updated_at
`

// employeeRow mirrors the nullable location columns before they are folded
// into the entity's optional structs.
type employeeRow struct {
	emp               employee.Employee
	currentLat        *float64
	currentLon        *float64
	currentUpdatedAt  *time.Time
	defaultLat        *float64
	defaultLon        *float64
	defaultLocationAt *time.Time
}

func (r *employeeRow) scanTargets() []interface{} {
	return []interface{}{
		&r.emp.ID, &r.emp.FullName, &r.emp.Email, &r.emp.PasswordHash, &r.emp.Job,
		&r.emp.Role, &r.emp.Status,
		&r.currentLat, &r.currentLon, &r.currentUpdatedAt,
		&r.defaultLat, &r.defaultLon, &r.defaultLocationAt,
		&r.emp.CreatedAt, &r.emp.UpdatedAt,
	}
}

func (r *employeeRow) entity() employee.Employee {
	emp := r.emp
	if r.currentLat != nil && r.currentLon != nil && r.currentUpdatedAt != nil {
		emp.CurrentLocation = &employee.TrackedLocation{
			Location:  employee.Location{Latitude: *r.currentLat, Longitude: *r.currentLon},
			UpdatedAt: *r.currentUpdatedAt,
		}
	}
	if r.defaultLat != nil && r.defaultLon != nil && r.defaultLocationAt != nil {
		emp.DefaultLocation = &employee.DefaultLocation{
			Location: employee.Location{Latitude: *r.defaultLat, Longitude: *r.defaultLon},
			SetAt:    *r.defaultLocationAt,
		}
	}
	return emp
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`

	var row employeeRow
	if err := q.QueryRow(ctx, query, id).Scan(row.scanTargets()...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, database.StoreError("get employee by ID", err)
	}

	return row.entity(), nil
}

// GetByEmail implements employee.EmployeeRepository.
func (e *employeeRepository) GetByEmail(ctx context.Context, email string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE LOWER(email) = LOWER($1)`

	var row employeeRow
	if err := q.QueryRow(ctx, query, email).Scan(row.scanTargets()...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, database.StoreError("get employee by email", err)
	}

	return row.entity(), nil
}

// UpdateTracking implements employee.EmployeeRepository.
func (e *employeeRepository) UpdateTracking(ctx context.Context, id string, update employee.StatusUpdate) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	updates := make([]string, 0)
	args := make([]interface{}, 0)
	argIdx := 1

	if update.Status != nil {
		updates = append(updates, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, *update.Status)
		argIdx++
	}

	switch {
	case update.ClearCurrentLocation:
		updates = append(updates,
			"current_latitude = NULL",
			"current_longitude = NULL",
			"current_location_updated_at = NULL",
		)
	case update.CurrentLocation != nil:
		updates = append(updates,
			fmt.Sprintf("current_latitude = $%d", argIdx),
			fmt.Sprintf("current_longitude = $%d", argIdx+1),
			fmt.Sprintf("current_location_updated_at = $%d", argIdx+2),
		)
		args = append(args, update.CurrentLocation.Latitude, update.CurrentLocation.Longitude, update.CurrentLocation.UpdatedAt)
		argIdx += 3
	}

	if update.DefaultLocation != nil {
		updates = append(updates,
			fmt.Sprintf("default_latitude = $%d", argIdx),
			fmt.Sprintf("default_longitude = $%d", argIdx+1),
			fmt.Sprintf("default_location_set_at = $%d", argIdx+2),
		)
		args = append(args, update.DefaultLocation.Latitude, update.DefaultLocation.Longitude, update.DefaultLocation.SetAt)
		argIdx += 3
	}

	if len(updates) == 0 {
		return employee.Employee{}, fmt.Errorf("no updatable fields provided for employee update")
	}

	updates = append(updates, fmt.Sprintf("updated_at = $%d", argIdx))
	args = append(args, time.Now())
	argIdx++

	args = append(args, id)

	query := "UPDATE employees SET " + strings.Join(updates, ", ") +
		fmt.Sprintf(" WHERE id = $%d RETURNING ", argIdx) + employeeColumns

	var row employeeRow
	if err := q.QueryRow(ctx, query, args...).Scan(row.scanTargets()...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, database.StoreError("update employee tracking state", err)
	}

	return row.entity(), nil
}

// SetDefaultLocation implements employee.EmployeeRepository.
func (e *employeeRepository) SetDefaultLocation(ctx context.Context, id string, loc employee.DefaultLocation) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		UPDATE employees
		SET default_latitude = $1,
			default_longitude = $2,
			default_location_set_at = $3,
			updated_at = $4
		WHERE id = $5
		RETURNING ` + employeeColumns

	var row employeeRow
	err := q.QueryRow(ctx, query, loc.Latitude, loc.Longitude, loc.SetAt, time.Now(), id).
		Scan(row.scanTargets()...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, database.StoreError("set default location", err)
	}

	return row.entity(), nil
}

// ListCheckedIn implements employee.EmployeeRepository.
func (e *employeeRepository) ListCheckedIn(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE status = $1
		  AND current_latitude IS NOT NULL
		  AND current_longitude IS NOT NULL
		ORDER BY full_name ASC
	`

	rows, err := q.Query(ctx, query, employee.StatusCheckedIn)
	if err != nil {
		return nil, database.StoreError("query checked-in employees", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var row employeeRow
		if err := rows.Scan(row.scanTargets()...); err != nil {
			return nil, database.StoreError("scan employee", err)
		}
		employees = append(employees, row.entity())
	}

	return employees, nil
}

// ListIDsByRole implements employee.EmployeeRepository.
func (e *employeeRepository) ListIDsByRole(ctx context.Context, role employee.Role) ([]string, error) {
	q := GetQuerier(ctx, e.db)

	rows, err := q.Query(ctx, `SELECT id FROM employees WHERE role = $1`, role)
	if err != nil {
		return nil, database.StoreError("query employees by role", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, database.StoreError("scan employee ID", err)
		}
		ids = append(ids, id)
	}

	return ids, nil
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}
