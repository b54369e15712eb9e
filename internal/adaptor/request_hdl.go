package adaptor

import (
	"encoding/json"
	"net/http"

	"github.com/RoketV/share-it-project/internal/dto/request"
	"github.com/RoketV/share-it-project/internal/usecase"
	"github.com/RoketV/share-it-project/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ItemRequestHandler struct {
	service usecase.ItemRequestService
	log     *zap.Logger
}

func NewItemRequestHandler(service usecase.ItemRequestService, log *zap.Logger) *ItemRequestHandler {
	return &ItemRequestHandler{
		service: service,
		log:     log.With(zap.String("handler", "item_request")),
	}
}

// CreateRequest handles POST /requests
func (h *ItemRequestHandler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseBadRequest(w, "Missing user identity", nil)
		return
	}

	var req request.CreateItemRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	itemRequest, err := h.service.AddRequest(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create item request")
		return
	}

	utils.ResponseCreated(w, "success", itemRequest)
}

// GetOwnRequests handles GET /requests
func (h *ItemRequestHandler) GetOwnRequests(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseBadRequest(w, "Missing user identity", nil)
		return
	}

	requests, err := h.service.GetOwnRequests(r.Context(), userID)
	if err != nil {
		handleServiceError(h.log, w, err, "get own item requests")
		return
	}

	utils.ResponseSuccess(w, "success", requests)
}

// GetAllRequests handles GET /requests/all?from=0&size=20
func (h *ItemRequestHandler) GetAllRequests(w http.ResponseWriter, r *http.Request) {
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

	requests, err := h.service.GetAllRequests(r.Context(), userID, page)
	if err != nil {
		handleServiceError(h.log, w, err, "get all item requests")
		return
	}

	utils.ResponseSuccess(w, "success", requests)
}

// GetRequest handles GET /requests/{id}
func (h *ItemRequestHandler) GetRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseBadRequest(w, "Missing user identity", nil)
		return
	}

	requestID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid request ID format", nil)
		return
	}

	itemRequest, err := h.service.GetRequest(r.Context(), requestID, userID)
	if err != nil {
		handleServiceError(h.log, w, err, "get item request")
		return
	}

	utils.ResponseSuccess(w, "success", itemRequest)
}
