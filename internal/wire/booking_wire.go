package wire

import (
	"github.com/RoketV/share-it-project/internal/adaptor"
	"github.com/RoketV/share-it-project/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler, log *zap.Logger) {
	r.Route("/bookings", func(r chi.Router) {
		r.Use(middleware.Sharer(log))

		// POST /bookings - Reserve an item
		r.Post("/", bookingHandler.CreateBooking)

		// GET /bookings - The caller's bookings filtered by state
		r.Get("/", bookingHandler.GetBookings)

		// GET /bookings/owner - Bookings on the caller's items filtered by state
		r.Get("/owner", bookingHandler.GetOwnerBookings)

		// GET /bookings/{id} - Single booking, booker or owner only
		r.Get("/{id}", bookingHandler.GetBooking)

		// PATCH /bookings/{id}?approved= - Approve or reject (owner only)
		r.Patch("/{id}", bookingHandler.ApproveBooking)
	})
}
