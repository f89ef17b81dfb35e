package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stafftrack/hr-backend-go/internal/domain/checkin"
	"github.com/stafftrack/hr-backend-go/internal/pkg/database"
)

type checkInRepository struct {
	db *database.DB
}

const checkInColumns = `
	id, employee_id, check_in_time, check_out_time,
	latitude, longitude, duration_minutes, created_at, updated_at
`

func scanCheckIn(row pgx.Row) (checkin.CheckIn, error) {
	var rec checkin.CheckIn
	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.CheckInTime, &rec.CheckOutTime,
		&rec.Location.Latitude, &rec.Location.Longitude, &rec.DurationMinutes,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	return rec, err
}

// Create implements checkin.CheckInRepository.
//
// The check_ins table carries a partial unique index
// (employee_id) WHERE check_out_time IS NULL, so a second concurrent insert
// for the same employee fails with a unique violation instead of producing
// two open sessions.
func (c *checkInRepository) Create(ctx context.Context, record checkin.CheckIn) (checkin.CheckIn, error) {
	q := GetQuerier(ctx, c.db)

	query := `
		INSERT INTO check_ins (employee_id, check_in_time, latitude, longitude)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + checkInColumns

	rec, err := scanCheckIn(q.QueryRow(ctx, query,
		record.EmployeeID,
		record.CheckInTime,
		record.Location.Latitude,
		record.Location.Longitude,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return checkin.CheckIn{}, checkin.ErrAlreadyCheckedIn
		}
		return checkin.CheckIn{}, database.StoreError("create check-in", err)
	}

	return rec, nil
}

// GetOpenByEmployee implements checkin.CheckInRepository.
func (c *checkInRepository) GetOpenByEmployee(ctx context.Context, employeeID string) (checkin.CheckIn, error) {
	q := GetQuerier(ctx, c.db)

	query := `
		SELECT ` + checkInColumns + `
		FROM check_ins
		WHERE employee_id = $1
		  AND check_out_time IS NULL
		ORDER BY check_in_time DESC
		LIMIT 1
	`

	rec, err := scanCheckIn(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return checkin.CheckIn{}, checkin.ErrNoActiveCheckIn
		}
		return checkin.CheckIn{}, database.StoreError("get open session", err)
	}

	return rec, nil
}

// Close implements checkin.CheckInRepository.
func (c *checkInRepository) Close(ctx context.Context, id string, checkOutTime time.Time, durationMinutes int) (checkin.CheckIn, error) {
	q := GetQuerier(ctx, c.db)

	query := `
		UPDATE check_ins
		SET check_out_time = $1,
			duration_minutes = $2,
			updated_at = $3
		WHERE id = $4
		  AND check_out_time IS NULL
		RETURNING ` + checkInColumns

	rec, err := scanCheckIn(q.QueryRow(ctx, query, checkOutTime, durationMinutes, time.Now(), id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return checkin.CheckIn{}, checkin.ErrNoActiveCheckIn
		}
		return checkin.CheckIn{}, database.StoreError("close check-in", err)
	}

	return rec, nil
}

// ListByEmployee implements checkin.CheckInRepository.
func (c *checkInRepository) ListByEmployee(ctx context.Context, employeeID string, start, end *time.Time) ([]checkin.CheckIn, error) {
	q := GetQuerier(ctx, c.db)

	baseWhere := "employee_id = $1"
	args := []interface{}{employeeID}
	argIdx := 2

	if start != nil {
		baseWhere += fmt.Sprintf(" AND check_in_time >= $%d", argIdx)
		args = append(args, *start)
		argIdx++
	}
	if end != nil {
		baseWhere += fmt.Sprintf(" AND check_in_time < $%d", argIdx)
		args = append(args, *end)
		argIdx++
	}

	query := `SELECT ` + checkInColumns + ` FROM check_ins WHERE ` + baseWhere +
		` ORDER BY check_in_time DESC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, database.StoreError("query check-ins", err)
	}
	defer rows.Close()

	var records []checkin.CheckIn
	for rows.Next() {
		rec, err := scanCheckIn(rows)
		if err != nil {
			return nil, database.StoreError("scan check-in", err)
		}
		records = append(records, rec)
	}

	return records, nil
}

// CountSince implements checkin.CheckInRepository.
func (c *checkInRepository) CountSince(ctx context.Context, employeeID string, since time.Time) (int, error) {
	q := GetQuerier(ctx, c.db)

	query := `
		SELECT COUNT(*)
		FROM check_ins
		WHERE employee_id = $1
		  AND check_in_time >= $2
	`

	var count int
	if err := q.QueryRow(ctx, query, employeeID, since).Scan(&count); err != nil {
		return 0, database.StoreError("count check-ins", err)
	}

	return count, nil
}

func NewCheckInRepository(db *database.DB) checkin.CheckInRepository {
	return &checkInRepository{db: db}
}
