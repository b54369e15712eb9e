package adaptor

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/RoketV/share-it-project/internal/dto/request"
	"github.com/RoketV/share-it-project/internal/dto/response"
	"github.com/RoketV/share-it-project/internal/usecase"
	"github.com/RoketV/share-it-project/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// CreateBooking handles POST /bookings
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseBadRequest(w, "Missing user identity", nil)
		return
	}

	var req request.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	booking, err := h.service.CreateBooking(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create booking")
		return
	}

	utils.ResponseCreated(w, "success", booking)
}

// ApproveBooking handles PATCH /bookings/{id}?approved=true|false
func (h *BookingHandler) ApproveBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseBadRequest(w, "Missing user identity", nil)
		return
	}

	bookingID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid booking ID format", nil)
		return
	}

	approved, err := strconv.ParseBool(r.URL.Query().Get("approved"))
	if err != nil {
		utils.ResponseBadRequest(w, "Query parameter approved must be true or false", nil)
		return
	}

	booking, err := h.service.ApproveBooking(r.Context(), bookingID, userID, approved)
	if err != nil {
		handleServiceError(h.log, w, err, "approve booking")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// GetBooking handles GET /bookings/{id}
func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseBadRequest(w, "Missing user identity", nil)
		return
	}

	bookingID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid booking ID format", nil)
		return
	}

	booking, err := h.service.GetBooking(r.Context(), bookingID, userID)
	if err != nil {
		handleServiceError(h.log, w, err, "get booking")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// GetBookings handles GET /bookings?state=ALL&from=0&size=20 from the
// booker's perspective.
func (h *BookingHandler) GetBookings(w http.ResponseWriter, r *http.Request) {
	h.listBookings(w, r, h.service.GetBookingsByBooker, "get bookings by booker")
}

// GetOwnerBookings handles GET /bookings/owner?state=ALL&from=0&size=20 from
// the item owner's perspective.
func (h *BookingHandler) GetOwnerBookings(w http.ResponseWriter, r *http.Request) {
	h.listBookings(w, r, h.service.GetBookingsByOwner, "get bookings by owner")
}

func (h *BookingHandler) listBookings(
	w http.ResponseWriter,
	r *http.Request,
	list func(ctx context.Context, userID uuid.UUID, state string, page request.PageRequest) ([]response.BookingResponse, error),
	operation string,
) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseBadRequest(w, "Missing user identity", nil)
		return
	}

	page, err := parsePage(r)
	if err != nil {
		utils.ResponseBadRequest(w, err.Error(), nil)
		return
	}

	state := r.URL.Query().Get("state")
	if state == "" {
		state = usecase.StateAll
	}

	bookings, err := list(r.Context(), userID, state, page)
	if err != nil {
		handleServiceError(h.log, w, err, operation)
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}
