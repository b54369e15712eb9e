package response

import (
	"time"

	"github.com/RoketV/share-it-project/internal/data/entity"
)

type BookingResponse struct {
	ID        string    `json:"id"`
	ItemID    string    `json:"item_id"`
	BookerID  string    `json:"booker_id"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// BookingRefResponse is the compact projection nested into item views as
// last_booking / next_booking.
type BookingRefResponse struct {
	ID       string    `json:"id"`
	BookerID string    `json:"booker_id"`
	ItemID   string    `json:"item_id"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

func BookingToResponse(booking *entity.Booking) BookingResponse {
	return BookingResponse{
		ID:        booking.ID.String(),
		ItemID:    booking.ItemID.String(),
		BookerID:  booking.BookerID.String(),
		Start:     booking.Start,
		End:       booking.End,
		Status:    string(booking.Status),
		CreatedAt: booking.CreatedAt,
	}
}

func BookingToRef(booking *entity.Booking) *BookingRefResponse {
	if booking == nil {
		return nil
	}
	return &BookingRefResponse{
		ID:       booking.ID.String(),
		BookerID: booking.BookerID.String(),
		ItemID:   booking.ItemID.String(),
		Start:    booking.Start,
		End:      booking.End,
	}
}

func BookingsToResponses(bookings []*entity.Booking) []BookingResponse {
	responses := make([]BookingResponse, len(bookings))
	for i, booking := range bookings {
		responses[i] = BookingToResponse(booking)
	}
	return responses
}
