package tests

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/nasmaklabs/chauffeur-sub000/internal/domain"
	"github.com/nasmaklabs/chauffeur-sub000/internal/repository"
	"github.com/nasmaklabs/chauffeur-sub000/internal/service"
)

// ──────────────────────────────────────────────
// 5. BOOKING LIFECYCLE
// ──────────────────────────────────────────────

// seedBooking stores a booking with the given status and returns it.
func seedBooking(repo *MockBookingRepository, id string, status domain.BookingStatus, createdAt time.Time) *domain.Booking {
	booking := &domain.Booking{
		ID:             id,
		Reference:      "LXC-TESTREF" + id + "-AAAA",
		VehicleClassID: "saloon",
		Status:         status,
		Contact:        domain.PassengerContact{Email: "passenger@example.com"},
		CreatedAt:      createdAt,
		UpdatedAt:      createdAt,
	}
	repo.AddBooking(booking)
	return booking
}

func TestUpdateStatus_PendingToConfirmed(t *testing.T) {
	t.Parallel()

	repo := NewMockBookingRepository()
	notifier := NewMockNotifier()
	svc := newBookingService(repo, notifier)

	seedBooking(repo, "b-1", domain.BookingStatusPending, time.Now())

	booking, err := svc.UpdateStatus(context.Background(), "b-1", "confirmed")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if booking.Status != domain.BookingStatusConfirmed {
		t.Errorf("expected confirmed, got %s", booking.Status)
	}

	stored, err := svc.GetByID(context.Background(), "b-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.Status != domain.BookingStatusConfirmed {
		t.Errorf("stored status should be confirmed, got %s", stored.Status)
	}
	if notifier.StatusChangedCallCount != 1 {
		t.Errorf("expected 1 status notification, got %d", notifier.StatusChangedCallCount)
	}
}

func TestUpdateStatus_AnyTransitionBetweenKnownStatuses(t *testing.T) {
	t.Parallel()

	// Admin tooling corrects mis-set statuses, so every pairing is allowed,
	// including moving a cancelled booking back to pending.
	statuses := domain.AllBookingStatuses()
	for _, from := range statuses {
		for _, to := range statuses {
			from, to := from, to
			t.Run(fmt.Sprintf("%s_to_%s", from, to), func(t *testing.T) {
				t.Parallel()

				repo := NewMockBookingRepository()
				svc := newBookingService(repo, NewMockNotifier())
				seedBooking(repo, "b-1", from, time.Now())

				booking, err := svc.UpdateStatus(context.Background(), "b-1", string(to))
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if booking.Status != to {
					t.Errorf("expected %s, got %s", to, booking.Status)
				}
			})
		}
	}
}

func TestUpdateStatus_SameStatus_NoNotification(t *testing.T) {
	t.Parallel()

	repo := NewMockBookingRepository()
	notifier := NewMockNotifier()
	svc := newBookingService(repo, notifier)
	seedBooking(repo, "b-1", domain.BookingStatusConfirmed, time.Now())

	if _, err := svc.UpdateStatus(context.Background(), "b-1", "confirmed"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if notifier.StatusChangedCallCount != 0 {
		t.Errorf("no-op status change should not notify, got %d calls", notifier.StatusChangedCallCount)
	}
}

func TestUpdateStatus_UnknownStatusRejected(t *testing.T) {
	t.Parallel()

	repo := NewMockBookingRepository()
	svc := newBookingService(repo, NewMockNotifier())
	seedBooking(repo, "b-1", domain.BookingStatusPending, time.Now())

	_, err := svc.UpdateStatus(context.Background(), "b-1", "teleported")
	if !errors.Is(err, service.ErrInvalidStatus) {
		t.Errorf("expected ErrInvalidStatus, got %v", err)
	}
	if repo.UpdateStatusCallCount != 0 {
		t.Error("invalid status must not reach the repository")
	}
}

func TestUpdateStatus_MissingBooking(t *testing.T) {
	t.Parallel()

	svc := newBookingService(NewMockBookingRepository(), NewMockNotifier())

	_, err := svc.UpdateStatus(context.Background(), "nope", "confirmed")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestGetByReference_ExactMatch(t *testing.T) {
	t.Parallel()

	repo := NewMockBookingRepository()
	svc := newBookingService(repo, NewMockNotifier())
	seeded := seedBooking(repo, "b-1", domain.BookingStatusPending, time.Now())

	booking, err := svc.GetByReference(context.Background(), seeded.Reference)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if booking.ID != "b-1" {
		t.Errorf("expected booking b-1, got %s", booking.ID)
	}

	// Lookups are exact; a lowercased reference does not match.
	if _, err := svc.GetByReference(context.Background(), "lxc-testrefb-1-aaaa"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound for lowercased reference, got %v", err)
	}
}

func TestGetByReference_EmptyRejected(t *testing.T) {
	t.Parallel()

	svc := newBookingService(NewMockBookingRepository(), NewMockNotifier())

	if _, err := svc.GetByReference(context.Background(), ""); !errors.Is(err, service.ErrInvalidReference) {
		t.Errorf("expected ErrInvalidReference, got %v", err)
	}
}

func TestDeleteBooking_RemovesAndThenNotFound(t *testing.T) {
	t.Parallel()

	repo := NewMockBookingRepository()
	svc := newBookingService(repo, NewMockNotifier())
	seedBooking(repo, "b-1", domain.BookingStatusCancelled, time.Now())

	if err := svc.DeleteBooking(context.Background(), "b-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.GetByID(context.Background(), "b-1"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound after deletion, got %v", err)
	}
	if err := svc.DeleteBooking(context.Background(), "b-1"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound deleting twice, got %v", err)
	}
}

// ──────────────────────────────────────────────
// 6. LISTING AND PAGINATION
// ──────────────────────────────────────────────

func TestListBookings_CursorPagination(t *testing.T) {
	t.Parallel()

	repo := NewMockBookingRepository()
	svc := newBookingService(repo, NewMockNotifier())

	// Five pending bookings with strictly increasing creation times.
	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		seedBooking(repo, fmt.Sprintf("b-%d", i), domain.BookingStatusPending, base.Add(time.Duration(i)*time.Minute))
	}

	// First page of 2, newest first.
	page1, err := svc.ListBookings(context.Background(), service.ListBookingsRequest{Status: "pending", Limit: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page1.Bookings) != 2 {
		t.Fatalf("expected 2 bookings, got %d", len(page1.Bookings))
	}
	if page1.Bookings[0].ID != "b-4" || page1.Bookings[1].ID != "b-3" {
		t.Errorf("expected newest first [b-4 b-3], got [%s %s]", page1.Bookings[0].ID, page1.Bookings[1].ID)
	}
	if page1.NextCursor == "" {
		t.Fatal("expected a next cursor on the first page")
	}

	// Second page picks up after the cursor and is the final page.
	page2, err := svc.ListBookings(context.Background(), service.ListBookingsRequest{
		Status: "pending",
		Limit:  10,
		Cursor: page1.NextCursor,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page2.Bookings) != 3 {
		t.Fatalf("expected 3 remaining bookings, got %d", len(page2.Bookings))
	}
	if page2.NextCursor != "" {
		t.Errorf("expected no cursor on the final page, got %q", page2.NextCursor)
	}

	// No overlap between pages.
	seen := map[string]bool{}
	for _, b := range page1.Bookings {
		seen[b.ID] = true
	}
	for _, b := range page2.Bookings {
		if seen[b.ID] {
			t.Errorf("booking %s appeared on both pages", b.ID)
		}
	}
}

func TestListBookings_StatusFilter(t *testing.T) {
	t.Parallel()

	repo := NewMockBookingRepository()
	svc := newBookingService(repo, NewMockNotifier())

	now := time.Now()
	seedBooking(repo, "b-1", domain.BookingStatusPending, now)
	seedBooking(repo, "b-2", domain.BookingStatusConfirmed, now.Add(time.Minute))
	seedBooking(repo, "b-3", domain.BookingStatusPending, now.Add(2*time.Minute))

	resp, err := svc.ListBookings(context.Background(), service.ListBookingsRequest{Status: "pending"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Bookings) != 2 {
		t.Fatalf("expected 2 pending bookings, got %d", len(resp.Bookings))
	}
	for _, b := range resp.Bookings {
		if b.Status != domain.BookingStatusPending {
			t.Errorf("expected only pending bookings, got %s", b.Status)
		}
	}
}

func TestListBookings_UnknownStatusRejected(t *testing.T) {
	t.Parallel()

	svc := newBookingService(NewMockBookingRepository(), NewMockNotifier())

	_, err := svc.ListBookings(context.Background(), service.ListBookingsRequest{Status: "archived"})
	if !errors.Is(err, service.ErrInvalidStatus) {
		t.Errorf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestListBookings_LimitClamped(t *testing.T) {
	t.Parallel()

	repo := NewMockBookingRepository()
	svc := newBookingService(repo, NewMockNotifier())

	base := time.Now().Add(-3 * time.Hour)
	for i := 0; i < 120; i++ {
		seedBooking(repo, fmt.Sprintf("b-%03d", i), domain.BookingStatusPending, base.Add(time.Duration(i)*time.Second))
	}

	resp, err := svc.ListBookings(context.Background(), service.ListBookingsRequest{Limit: 500})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Bookings) != 100 {
		t.Errorf("expected limit clamped to 100, got %d", len(resp.Bookings))
	}
	if resp.NextCursor == "" {
		t.Error("expected a next cursor with rows remaining")
	}
}

// ──────────────────────────────────────────────
// 7. BOOKING STATS
// ──────────────────────────────────────────────

func TestStats_CountsPartitionTotal(t *testing.T) {
	t.Parallel()

	repo := NewMockBookingRepository()
	svc := newBookingService(repo, NewMockNotifier())

	now := time.Now()
	statuses := []domain.BookingStatus{
		domain.BookingStatusPending, domain.BookingStatusPending,
		domain.BookingStatusConfirmed,
		domain.BookingStatusCompleted, domain.BookingStatusCompleted, domain.BookingStatusCompleted,
		domain.BookingStatusCancelled,
	}
	for i, status := range statuses {
		seedBooking(repo, fmt.Sprintf("b-%d", i), status, now)
	}

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stats.Total != 7 {
		t.Errorf("expected total 7, got %d", stats.Total)
	}
	if stats.Pending != 2 || stats.Confirmed != 1 || stats.Completed != 3 || stats.Cancelled != 1 {
		t.Errorf("unexpected per-status counts: %+v", stats)
	}
	if sum := stats.Pending + stats.Confirmed + stats.Completed + stats.Cancelled; sum != stats.Total {
		t.Errorf("per-status counts %d do not partition total %d", sum, stats.Total)
	}
}

func TestStats_EmptyCollection(t *testing.T) {
	t.Parallel()

	svc := newBookingService(NewMockBookingRepository(), NewMockNotifier())

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Total != 0 || stats.Pending != 0 || stats.Confirmed != 0 || stats.Completed != 0 || stats.Cancelled != 0 {
		t.Errorf("expected all-zero stats, got %+v", stats)
	}
}
