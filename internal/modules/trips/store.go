// README: Trip store backed by PostgreSQL (read-side queries for the engine).
package trips

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"caravan/internal/types"
)

var ErrNotFound = errors.New("trip not found")

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

const tripColumns = `
	id, driver_id,
	pickup_address, pickup_postcode, pickup_lat, pickup_lng,
	dropoff_address, dropoff_postcode, dropoff_lat, dropoff_lng,
	passenger_count, desired_time`

func (s *Store) Get(ctx context.Context, id types.ID) (*Trip, error) {
	row := s.db.QueryRow(ctx, `SELECT `+tripColumns+` FROM trips WHERE id = $1`, string(id))
	t, err := scanTrip(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// ListBetween returns all assigned trips with a desired time inside
// [from, to), ordered by driver then time. Used by the batch optimizer.
func (s *Store) ListBetween(ctx context.Context, from, to time.Time) ([]Trip, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+tripColumns+`
		FROM trips
		WHERE desired_time >= $1 AND desired_time < $2 AND driver_id IS NOT NULL
		ORDER BY driver_id, desired_time`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTrips(rows)
}

func (s *Store) ListByDriverAndDay(ctx context.Context, driverID types.ID, day time.Time) ([]Trip, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	rows, err := s.db.Query(ctx, `
		SELECT `+tripColumns+`
		FROM trips
		WHERE driver_id = $1 AND desired_time >= $2 AND desired_time < $3
		ORDER BY desired_time`, string(driverID), start, start.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTrips(rows)
}

func (s *Store) ListDrivers(ctx context.Context) ([]Driver, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name, vehicle_capacity FROM drivers ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Driver
	for rows.Next() {
		var d Driver
		if err := rows.Scan(&d.ID, &d.Name, &d.VehicleCapacity); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func scanTrip(row pgx.Row) (*Trip, error) {
	var t Trip
	var driverID *string
	var pickupLat, pickupLng, dropoffLat, dropoffLng *float64
	err := row.Scan(
		&t.ID, &driverID,
		&t.Pickup.AddressText, &t.Pickup.PostalCode, &pickupLat, &pickupLng,
		&t.Dropoff.AddressText, &t.Dropoff.PostalCode, &dropoffLat, &dropoffLng,
		&t.PassengerCount, &t.DesiredTime,
	)
	if err != nil {
		return nil, err
	}
	if driverID != nil {
		id := types.ID(*driverID)
		t.DriverID = &id
	}
	if pickupLat != nil && pickupLng != nil {
		t.Pickup.Position = &types.Point{Lat: *pickupLat, Lng: *pickupLng}
	}
	if dropoffLat != nil && dropoffLng != nil {
		t.Dropoff.Position = &types.Point{Lat: *dropoffLat, Lng: *dropoffLng}
	}
	return &t, nil
}

func collectTrips(rows pgx.Rows) ([]Trip, error) {
	var out []Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}
