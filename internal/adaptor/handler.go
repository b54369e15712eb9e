package adaptor

import (
	"net/http"

	"github.com/RoketV/share-it-project/internal/apperr"
	"github.com/RoketV/share-it-project/internal/dto/request"
	"github.com/RoketV/share-it-project/internal/usecase"
	"github.com/RoketV/share-it-project/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	User        *UserHandler
	Item        *ItemHandler
	Booking     *BookingHandler
	ItemRequest *ItemRequestHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		User:        NewUserHandler(service.User, log),
		Item:        NewItemHandler(service.Item, log),
		Booking:     NewBookingHandler(service.Booking, log),
		ItemRequest: NewItemRequestHandler(service.ItemRequest, log),
	}
}

// handleServiceError maps classified service errors to HTTP statuses. Every
// unclassified error is an internal fault and never leaks its message.
func handleServiceError(log *zap.Logger, w http.ResponseWriter, err error, operation string) {
	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case apperr.KindForbidden:
		log.Warn(operation+" failed - forbidden", zap.Error(err))
		utils.ResponseForbidden(w, err.Error())

	case apperr.KindConflict:
		log.Warn(operation+" failed - conflict", zap.Error(err))
		utils.ResponseConflict(w, err.Error())

	case apperr.KindInvalidArgument, apperr.KindUnsupportedState, apperr.KindCommentConsistency:
		log.Warn(operation+" failed - bad request", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

// parsePage reads the from/size query window. Non-numeric values are caller
// errors; range checks happen later in struct validation.
func parsePage(r *http.Request) (request.PageRequest, error) {
	query := r.URL.Query()

	from, err := utils.ParseQueryInt(query.Get("from"), request.DefaultFrom)
	if err != nil {
		return request.PageRequest{}, err
	}

	size, err := utils.ParseQueryInt(query.Get("size"), request.DefaultSize)
	if err != nil {
		return request.PageRequest{}, err
	}

	return request.PageRequest{From: from, Size: size}, nil
}
