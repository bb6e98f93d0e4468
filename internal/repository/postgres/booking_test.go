package postgres

import (
	"context"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"

	"github.com/nasmaklabs/chauffeur-sub000/internal/domain"
	"github.com/nasmaklabs/chauffeur-sub000/internal/repository"
)

var bookingColumnList = []string{
	"id", "reference", "vehicle_class_id", "trip_type",
	"pickup_location", "pickup_lat", "pickup_lng",
	"dropoff_location", "dropoff_lat", "dropoff_lng",
	"distance_miles", "pickup_time", "return_time", "duration_hours",
	"passengers", "luggage", "pickup_is_airport", "dropoff_is_airport", "meet_and_greet",
	"first_name", "last_name", "email", "phone", "flight_number", "notes",
	"base_fare", "distance_charge", "meet_and_greet_charge", "airport_charge", "waiting_charge", "total",
	"status", "created_at", "updated_at",
}

func bookingRow(id, reference string, createdAt time.Time) []driverValue {
	return []driverValue{
		id, reference, "saloon", "one-way",
		"Heathrow Terminal 5", 51.47, -0.4543,
		"The Savoy, London", 51.5101, -0.1207,
		17.2, createdAt, nil, nil,
		2, 2, true, false, false,
		"Amelia", "Hart", "amelia@example.com", "+447700900123", nil, nil,
		35.0, 20.16, 0.0, 8.0, 0.0, 63.16,
		"pending", createdAt, createdAt,
	}
}

type driverValue = driver.Value

func addRow(rows *sqlmock.Rows, values []driverValue) *sqlmock.Rows {
	return rows.AddRow(values...)
}

func TestBookingRepository_Create_DuplicateReference(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`INSERT INTO bookings`).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "bookings_reference_key"})

	repo := NewBookingRepository(db)
	booking := &domain.Booking{
		ID:        "b-1",
		Reference: "LXC-ABCDEFGH-JKMN",
		Trip: domain.TripFacts{
			Type:           domain.TripTypeOneWay,
			PickupLocation: "Heathrow",
			PickupTime:     time.Now(),
		},
		Status:    domain.BookingStatusPending,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	err = repo.Create(context.Background(), booking)
	if !errors.Is(err, repository.ErrDuplicateReference) {
		t.Errorf("expected ErrDuplicateReference, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestBookingRepository_GetByReference_ScansNullableColumns(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	defer db.Close()

	createdAt := time.Now().Truncate(time.Second)
	rows := addRow(sqlmock.NewRows(bookingColumnList), bookingRow("b-1", "LXC-ABCDEFGH-JKMN", createdAt))

	mock.ExpectQuery(`(?s)SELECT .+ FROM bookings WHERE reference = \$1`).
		WithArgs("LXC-ABCDEFGH-JKMN").
		WillReturnRows(rows)

	repo := NewBookingRepository(db)
	booking, err := repo.GetByReference(context.Background(), "LXC-ABCDEFGH-JKMN")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if booking.ID != "b-1" {
		t.Errorf("expected id b-1, got %s", booking.ID)
	}
	if booking.Trip.DropoffLocation != "The Savoy, London" {
		t.Errorf("unexpected dropoff location %q", booking.Trip.DropoffLocation)
	}
	if booking.Trip.PickupCoords == nil || booking.Trip.PickupCoords.Lat != 51.47 {
		t.Errorf("unexpected pickup coords %+v", booking.Trip.PickupCoords)
	}
	if !booking.Trip.ReturnTime.IsZero() {
		t.Error("null return_time should scan to the zero time")
	}
	if booking.Trip.DurationHours != 0 {
		t.Errorf("null duration_hours should scan to 0, got %d", booking.Trip.DurationHours)
	}
	if booking.Price.Total != 63.16 {
		t.Errorf("expected total 63.16, got %.2f", booking.Price.Total)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestBookingRepository_GetByID_NotFound(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`(?s)SELECT .+ FROM bookings WHERE id = \$1`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(bookingColumnList))

	repo := NewBookingRepository(db)
	_, err = repo.GetByID(context.Background(), "missing")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestBookingRepository_List_KeysetPagination(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	defer db.Close()

	cursorCreatedAt := time.Now().Truncate(time.Second)

	// The cursor row is fetched first to seed the keyset comparison.
	mock.ExpectQuery(`(?s)SELECT .+ FROM bookings WHERE id = \$1`).
		WithArgs("b-3").
		WillReturnRows(addRow(sqlmock.NewRows(bookingColumnList), bookingRow("b-3", "LXC-CURSORRW-AAAA", cursorCreatedAt)))

	mock.ExpectQuery(`(?s)SELECT .+ FROM bookings WHERE 1=1 AND status = \$1 AND \(created_at, id\) < \(\$2, \$3\) ORDER BY created_at DESC, id DESC LIMIT \$4`).
		WithArgs("pending", cursorCreatedAt, "b-3", 2).
		WillReturnRows(addRow(addRow(sqlmock.NewRows(bookingColumnList),
			bookingRow("b-2", "LXC-SECONDRW-AAAA", cursorCreatedAt.Add(-time.Minute))),
			bookingRow("b-1", "LXC-THIRDROW-AAAA", cursorCreatedAt.Add(-2*time.Minute))))

	repo := NewBookingRepository(db)
	bookings, err := repo.List(context.Background(), repository.BookingListFilter{
		Status: domain.BookingStatusPending,
		Limit:  2,
		Cursor: "b-3",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(bookings) != 2 {
		t.Fatalf("expected 2 bookings, got %d", len(bookings))
	}
	if bookings[0].ID != "b-2" || bookings[1].ID != "b-1" {
		t.Errorf("unexpected page order: [%s %s]", bookings[0].ID, bookings[1].ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestBookingRepository_UpdateStatus_NotFound(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectExec(`UPDATE bookings SET status = \$1, updated_at = \$2 WHERE id = \$3`).
		WithArgs("confirmed", now, "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewBookingRepository(db)
	err = repo.UpdateStatus(context.Background(), "missing", domain.BookingStatusConfirmed, now)
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestBookingRepository_CountByStatus(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings$`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings WHERE status = \$1`).
		WithArgs("pending").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	repo := NewBookingRepository(db)

	total, err := repo.CountByStatus(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 7 {
		t.Errorf("expected total 7, got %d", total)
	}

	pending, err := repo.CountByStatus(context.Background(), domain.BookingStatusPending)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pending != 3 {
		t.Errorf("expected 3 pending, got %d", pending)
	}
}
