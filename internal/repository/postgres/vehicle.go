package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"parkslot-backend/internal/domain"
	"parkslot-backend/internal/repository"
)

type vehicleRepository struct {
	db *sql.DB
}

func NewVehicleRepository(db *sql.DB) repository.VehicleRepository {
	return &vehicleRepository{db: db}
}

const vehicleColumns = `id, vehicle_number, owner_name, contact_number, parking_type, rental_type, lot_number, rent_price, number_of_days, advance_amount, additional_days, start_date, end_date, status, version, created_on, updated_on`

func (r *vehicleRepository) Create(ctx context.Context, v *domain.Vehicle) error {
	query := `INSERT INTO vehicles (id, vehicle_number, owner_name, contact_number, parking_type, rental_type, lot_number, rent_price, number_of_days, advance_amount, additional_days, start_date, end_date, status, version, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	now := time.Now()
	v.CreatedOn = now
	v.UpdatedOn = now
	v.Version = 1
	_, err := r.db.ExecContext(ctx, query,
		v.ID, v.VehicleNumber, v.OwnerName, v.ContactNumber, v.ParkingType, v.RentalType, v.LotNumber,
		v.RentPrice, v.NumberOfDays, v.AdvanceAmount, v.AdditionalDays, v.StartDate, v.EndDate, v.Status,
		v.Version, v.CreatedOn, v.UpdatedOn)
	return err
}

func (r *vehicleRepository) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1`
	v, err := scanVehicle(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("vehicle %s: %w", id, domain.ErrNotFound)
	}
	return v, err
}

// UpdatePeriod writes end_date and the billing counters. The version
// predicate rejects lost updates; a concurrent write surfaces as ErrConflict
// and the caller re-reads before retrying.
func (r *vehicleRepository) UpdatePeriod(ctx context.Context, v *domain.Vehicle) error {
	query := `UPDATE vehicles
	          SET end_date=$1, status=$2, number_of_days=$3, additional_days=$4, rent_price=$5, version=version+1, updated_on=$6
	          WHERE id=$7 AND version=$8`
	res, err := r.db.ExecContext(ctx, query,
		v.EndDate, v.Status, v.NumberOfDays, v.AdditionalDays, v.RentPrice, time.Now(), v.ID, v.Version)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("vehicle %s: %w", v.ID, domain.ErrConflict)
	}
	v.Version++
	return nil
}

// UpdateDetails deliberately lists its columns: the period fields are not in
// the SET clause, so an edit can never reset a computed period.
func (r *vehicleRepository) UpdateDetails(ctx context.Context, v *domain.Vehicle) error {
	query := `UPDATE vehicles
	          SET vehicle_number=$1, owner_name=$2, contact_number=$3, parking_type=$4, lot_number=$5, rent_price=$6, advance_amount=$7, updated_on=$8
	          WHERE id=$9`
	res, err := r.db.ExecContext(ctx, query,
		v.VehicleNumber, v.OwnerName, v.ContactNumber, v.ParkingType, v.LotNumber, v.RentPrice, v.AdvanceAmount, time.Now(), v.ID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("vehicle %s: %w", v.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *vehicleRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM vehicles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("vehicle %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *vehicleRepository) List(ctx context.Context, filter domain.VehicleFilter) ([]domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if filter.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, filter.Status)
		argIdx++
	}
	if filter.RentalType != "" {
		query += fmt.Sprintf(" AND rental_type = $%d", argIdx)
		args = append(args, filter.RentalType)
		argIdx++
	}
	if filter.ParkingType != "" {
		query += fmt.Sprintf(" AND parking_type = $%d", argIdx)
		args = append(args, filter.ParkingType)
		argIdx++
	}
	if filter.Search != "" {
		query += fmt.Sprintf(" AND vehicle_number ILIKE $%d", argIdx)
		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}
	query += " ORDER BY created_on DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vehicles []domain.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, *v)
	}
	return vehicles, rows.Err()
}

// ExpireLapsed only ever moves active to inactive; the reverse transition
// belongs to reactivation alone.
func (r *vehicleRepository) ExpireLapsed(ctx context.Context, now time.Time) (int64, error) {
	query := `UPDATE vehicles
	          SET status = 'inactive', version = version + 1, updated_on = $1
	          WHERE status = 'active' AND end_date < $2`
	res, err := r.db.ExecContext(ctx, query, now, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *vehicleRepository) CountByStatus(ctx context.Context) (int32, int32, error) {
	var active, inactive int32
	query := `SELECT
	            COUNT(*) FILTER (WHERE status = 'active'),
	            COUNT(*) FILTER (WHERE status = 'inactive')
	          FROM vehicles`
	err := r.db.QueryRowContext(ctx, query).Scan(&active, &inactive)
	return active, inactive, err
}

func (r *vehicleRepository) CountByRentalType(ctx context.Context) (int32, int32, error) {
	var monthly, daily int32
	query := `SELECT
	            COUNT(*) FILTER (WHERE rental_type = 'monthly'),
	            COUNT(*) FILTER (WHERE rental_type = 'daily')
	          FROM vehicles`
	err := r.db.QueryRowContext(ctx, query).Scan(&monthly, &daily)
	return monthly, daily, err
}

func (r *vehicleRepository) ListOccupiedLots(ctx context.Context) ([]string, error) {
	query := `SELECT DISTINCT lot_number FROM vehicles
	          WHERE status = 'active' AND lot_number <> '' AND lot_number <> 'Open'
	          ORDER BY lot_number`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lots []string
	for rows.Next() {
		var lot string
		if err := rows.Scan(&lot); err != nil {
			return nil, err
		}
		lots = append(lots, lot)
	}
	return lots, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanVehicle(row rowScanner) (*domain.Vehicle, error) {
	v := &domain.Vehicle{}
	err := row.Scan(&v.ID, &v.VehicleNumber, &v.OwnerName, &v.ContactNumber, &v.ParkingType, &v.RentalType,
		&v.LotNumber, &v.RentPrice, &v.NumberOfDays, &v.AdvanceAmount, &v.AdditionalDays,
		&v.StartDate, &v.EndDate, &v.Status, &v.Version, &v.CreatedOn, &v.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return v, nil
}
