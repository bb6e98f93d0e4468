package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/lib/pq"

	"github.com/nasmaklabs/chauffeur-sub000/internal/domain"
	"github.com/nasmaklabs/chauffeur-sub000/internal/repository"
)

const bookingColumns = `id, reference, vehicle_class_id, trip_type,
		pickup_location, pickup_lat, pickup_lng,
		dropoff_location, dropoff_lat, dropoff_lng,
		distance_miles, pickup_time, return_time, duration_hours,
		passengers, luggage, pickup_is_airport, dropoff_is_airport, meet_and_greet,
		first_name, last_name, email, phone, flight_number, notes,
		base_fare, distance_charge, meet_and_greet_charge, airport_charge, waiting_charge, total,
		status, created_at, updated_at`

// BookingRepository is a PostgreSQL implementation of repository.BookingRepository.
type BookingRepository struct {
	q Querier
}

// NewBookingRepository creates a new PostgreSQL booking repository.
func NewBookingRepository(db *sql.DB) *BookingRepository {
	return &BookingRepository{q: db}
}

// NewBookingRepositoryWithTx creates a booking repository using a transaction.
func NewBookingRepositoryWithTx(tx *sql.Tx) *BookingRepository {
	return &BookingRepository{q: tx}
}

// Create persists a new booking.
func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	query := `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17,
			$18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31, $32, $33, $34)
	`

	_, err := r.q.ExecContext(ctx, query,
		b.ID,
		b.Reference,
		b.VehicleClassID,
		b.Trip.Type,
		b.Trip.PickupLocation,
		nullFloat(coordLat(b.Trip.PickupCoords)),
		nullFloat(coordLng(b.Trip.PickupCoords)),
		nullString(b.Trip.DropoffLocation),
		nullFloat(coordLat(b.Trip.DropoffCoords)),
		nullFloat(coordLng(b.Trip.DropoffCoords)),
		nullFloat(floatPtrFromZero(b.Trip.DistanceMiles)),
		b.Trip.PickupTime,
		nullTime(b.Trip.ReturnTime),
		nullInt(b.Trip.DurationHours),
		b.Trip.Passengers,
		b.Trip.Luggage,
		b.Trip.PickupIsAirport,
		b.Trip.DropoffIsAirport,
		b.Trip.MeetAndGreet,
		b.Contact.FirstName,
		b.Contact.LastName,
		b.Contact.Email,
		b.Contact.Phone,
		nullString(b.Contact.FlightNumber),
		nullString(b.Contact.Notes),
		b.Price.BaseFare,
		b.Price.DistanceCharge,
		b.Price.MeetAndGreetCharge,
		b.Price.AirportCharge,
		b.Price.WaitingCharge,
		b.Price.Total,
		b.Status,
		b.CreatedAt,
		b.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" && pqErr.Constraint == "bookings_reference_key" {
			return repository.ErrDuplicateReference
		}
		return err
	}
	return nil
}

// GetByID retrieves a booking by id.
func (r *BookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	return r.scanOne(r.q.QueryRowContext(ctx, query, id))
}

// GetByReference retrieves a booking by reference (exact match).
func (r *BookingRepository) GetByReference(ctx context.Context, reference string) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE reference = $1`
	return r.scanOne(r.q.QueryRowContext(ctx, query, reference))
}

// List retrieves bookings ordered by created_at descending with keyset
// pagination. The cursor is the id of the last booking on the previous page.
func (r *BookingRepository) List(ctx context.Context, filter repository.BookingListFilter) ([]*domain.Booking, error) {
	args := []any{}
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE 1=1`

	if filter.Status != "" {
		args = append(args, filter.Status)
		query += ` AND status = $1`
	}

	if filter.Cursor != "" {
		after, err := r.GetByID(ctx, filter.Cursor)
		if err != nil {
			return nil, err
		}
		args = append(args, after.CreatedAt, after.ID)
		query += ` AND (created_at, id) < ($` + strconv.Itoa(len(args)-1) + `, $` + strconv.Itoa(len(args)) + `)`
	}

	args = append(args, filter.Limit)
	query += ` ORDER BY created_at DESC, id DESC LIMIT $` + strconv.Itoa(len(args))

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []*domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

// UpdateStatus overwrites the status of a booking.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus, updatedAt time.Time) error {
	query := `UPDATE bookings SET status = $1, updated_at = $2 WHERE id = $3`

	result, err := r.q.ExecContext(ctx, query, status, updatedAt, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a booking permanently.
func (r *BookingRepository) Delete(ctx context.Context, id string) error {
	result, err := r.q.ExecContext(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// CountByStatus counts bookings with the given status; empty counts all.
func (r *BookingRepository) CountByStatus(ctx context.Context, status domain.BookingStatus) (int, error) {
	var count int
	var err error
	if status == "" {
		err = r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings`).Scan(&count)
	} else {
		err = r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings WHERE status = $1`, status).Scan(&count)
	}
	return count, err
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func (r *BookingRepository) scanOne(row *sql.Row) (*domain.Booking, error) {
	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	var pickupLat, pickupLng, dropoffLat, dropoffLng, distance sql.NullFloat64
	var dropoffLocation, flightNumber, notes sql.NullString
	var returnTime sql.NullTime
	var durationHours sql.NullInt64

	err := row.Scan(
		&b.ID,
		&b.Reference,
		&b.VehicleClassID,
		&b.Trip.Type,
		&b.Trip.PickupLocation,
		&pickupLat,
		&pickupLng,
		&dropoffLocation,
		&dropoffLat,
		&dropoffLng,
		&distance,
		&b.Trip.PickupTime,
		&returnTime,
		&durationHours,
		&b.Trip.Passengers,
		&b.Trip.Luggage,
		&b.Trip.PickupIsAirport,
		&b.Trip.DropoffIsAirport,
		&b.Trip.MeetAndGreet,
		&b.Contact.FirstName,
		&b.Contact.LastName,
		&b.Contact.Email,
		&b.Contact.Phone,
		&flightNumber,
		&notes,
		&b.Price.BaseFare,
		&b.Price.DistanceCharge,
		&b.Price.MeetAndGreetCharge,
		&b.Price.AirportCharge,
		&b.Price.WaitingCharge,
		&b.Price.Total,
		&b.Status,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if pickupLat.Valid && pickupLng.Valid {
		b.Trip.PickupCoords = &domain.Coordinates{Lat: pickupLat.Float64, Lng: pickupLng.Float64}
	}
	if dropoffLat.Valid && dropoffLng.Valid {
		b.Trip.DropoffCoords = &domain.Coordinates{Lat: dropoffLat.Float64, Lng: dropoffLng.Float64}
	}
	if dropoffLocation.Valid {
		b.Trip.DropoffLocation = dropoffLocation.String
	}
	if distance.Valid {
		b.Trip.DistanceMiles = distance.Float64
	}
	if returnTime.Valid {
		b.Trip.ReturnTime = returnTime.Time
	}
	if durationHours.Valid {
		b.Trip.DurationHours = int(durationHours.Int64)
	}
	if flightNumber.Valid {
		b.Contact.FlightNumber = flightNumber.String
	}
	if notes.Valid {
		b.Contact.Notes = notes.String
	}

	return &b, nil
}
