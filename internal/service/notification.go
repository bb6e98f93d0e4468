package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/nasmaklabs/chauffeur-sub000/internal/domain"
)

// NotificationTemplate identifies which email template a notification uses.
type NotificationTemplate string

const (
	TemplateBookingCreated       NotificationTemplate = "created"
	TemplateBookingStatusChanged NotificationTemplate = "status-changed"
)

// Notifier is the sink that receives finalized bookings. Delivery is
// fire-and-forget from the booking service's perspective: failures are
// logged, never propagated.
type Notifier interface {
	BookingCreated(ctx context.Context, booking *domain.Booking) error
	BookingStatusChanged(ctx context.Context, booking *domain.Booking, previous domain.BookingStatus) error
}

// Notification represents a message queued for delivery.
type Notification struct {
	Template  NotificationTemplate
	Recipient string
	Subject   string
	Message   string
	Data      map[string]interface{}
	CreatedAt time.Time
}

// NotificationService renders booking notifications and hands them to the
// delivery channel. The actual email transport lives outside this core.
type NotificationService struct{}

// NewNotificationService creates a new NotificationService.
func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

// BookingCreated notifies the passenger that their booking was received.
func (s *NotificationService) BookingCreated(ctx context.Context, booking *domain.Booking) error {
	notification := Notification{
		Template:  TemplateBookingCreated,
		Recipient: booking.Contact.Email,
		Subject:   "Booking received",
		Message: fmt.Sprintf("Your booking %s is received and pending confirmation. Total fare: %.2f",
			booking.Reference, booking.Price.Total),
		Data: map[string]interface{}{
			"reference":     booking.Reference,
			"vehicle_class": booking.VehicleClassID,
			"pickup_time":   booking.Trip.PickupTime,
			"total":         booking.Price.Total,
		},
		CreatedAt: time.Now(),
	}
	return s.send(ctx, notification)
}

// BookingStatusChanged notifies the passenger that their booking moved to a
// new status.
func (s *NotificationService) BookingStatusChanged(ctx context.Context, booking *domain.Booking, previous domain.BookingStatus) error {
	notification := Notification{
		Template:  TemplateBookingStatusChanged,
		Recipient: booking.Contact.Email,
		Subject:   "Booking update",
		Message: fmt.Sprintf("Your booking %s is now %s", booking.Reference, booking.Status),
		Data: map[string]interface{}{
			"reference":       booking.Reference,
			"previous_status": previous,
			"status":          booking.Status,
		},
		CreatedAt: time.Now(),
	}
	return s.send(ctx, notification)
}

// send hands the notification to the delivery channel. The email transport
// is an external collaborator; here it is logged.
func (s *NotificationService) send(ctx context.Context, notification Notification) error {
	log.Printf("[NOTIFICATION] Template=%s, Recipient=%s, Subject=%s, Message=%s",
		notification.Template, notification.Recipient, notification.Subject, notification.Message)
	return nil
}
