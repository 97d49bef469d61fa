package conversationService

import (
	contextPkg "ReservaGolang/pkg/context"
	"ReservaGolang/pkg/dialogue"
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// handleCompletedBooking fires the guest notifications for a finished flow.
// The payload is the only record the engine hands over, reservations are
// never stored here. Notification failures are logged and never surfaced,
// the booking itself already succeeded.
func (s *conversationService) handleCompletedBooking(ctx context.Context, booking *dialogue.BookingPayload) {
	requestID := contextPkg.GetRequestID(ctx)

	s.log.WithFields(logrus.Fields{
		"request_id":          requestID,
		"session_id":          booking.SessionID,
		"confirmation_number": booking.ConfirmationNumber,
		"room_type":           booking.RoomType,
	}).Info("Reservation completed")

	if s.config.NotifyOnBooking {
		go s.notifyGuest(booking)
	}
}

func (s *conversationService) notifyGuest(booking *dialogue.BookingPayload) {
	summary := booking.RoomType + ", " +
		booking.CheckIn.Format("Jan 2, 2006") + " to " +
		booking.CheckOut.Format("Jan 2, 2006")

	if s.mailer != nil && booking.Email != "" {
		if err := s.mailer.SendBookingConfirmation(booking.Email, booking.GuestName, booking.ConfirmationNumber, summary); err != nil {
			s.log.WithFields(logrus.Fields{
				"confirmation_number": booking.ConfirmationNumber,
				"error":               err.Error(),
			}).Warn("Failed to send confirmation email")
		}
	}

	if s.whatsapp != nil && booking.Phone != "" && s.whatsapp.IsConnected() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := s.whatsapp.SendBookingConfirmation(ctx, booking.Phone, booking.GuestName, booking.ConfirmationNumber, summary); err != nil {
			s.log.WithFields(logrus.Fields{
				"confirmation_number": booking.ConfirmationNumber,
				"error":               err.Error(),
			}).Warn("Failed to send WhatsApp confirmation")
		}
	}
}
