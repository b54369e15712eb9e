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

type ItemHandler struct {
	service usecase.ItemService
	log     *zap.Logger
}

func NewItemHandler(service usecase.ItemService, log *zap.Logger) *ItemHandler {
	return &ItemHandler{
		service: service,
		log:     log.With(zap.String("handler", "item")),
	}
}

// CreateItem handles POST /items
func (h *ItemHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseBadRequest(w, "Missing user identity", nil)
		return
	}

	var req request.CreateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	item, err := h.service.AddItem(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create item")
		return
	}

	utils.ResponseCreated(w, "success", item)
}

// UpdateItem handles PATCH /items/{id}
func (h *ItemHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseBadRequest(w, "Missing user identity", nil)
		return
	}

	itemID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid item ID format", nil)
		return
	}

	var req request.UpdateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	item, err := h.service.UpdateItem(r.Context(), itemID, userID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update item")
		return
	}

	utils.ResponseSuccess(w, "success", item)
}

// GetItem handles GET /items/{id}
func (h *ItemHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseBadRequest(w, "Missing user identity", nil)
		return
	}

	itemID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid item ID format", nil)
		return
	}

	item, err := h.service.GetItem(r.Context(), itemID, userID)
	if err != nil {
		handleServiceError(h.log, w, err, "get item")
		return
	}

	utils.ResponseSuccess(w, "success", item)
}

// GetItems handles GET /items?from=0&size=20
func (h *ItemHandler) GetItems(w http.ResponseWriter, r *http.Request) {
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

	items, err := h.service.GetItems(r.Context(), userID, page)
	if err != nil {
		handleServiceError(h.log, w, err, "get items")
		return
	}

	utils.ResponseSuccess(w, "success", items)
}

// DeleteItem handles DELETE /items/{id}
func (h *ItemHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseBadRequest(w, "Missing user identity", nil)
		return
	}

	itemID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid item ID format", nil)
		return
	}

	if err := h.service.DeleteItem(r.Context(), itemID, userID); err != nil {
		handleServiceError(h.log, w, err, "delete item")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// SearchItems handles GET /items/search?text=...&from=0&size=20
func (h *ItemHandler) SearchItems(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		utils.ResponseBadRequest(w, err.Error(), nil)
		return
	}

	items, err := h.service.SearchItems(r.Context(), r.URL.Query().Get("text"), page)
	if err != nil {
		handleServiceError(h.log, w, err, "search items")
		return
	}

	utils.ResponseSuccess(w, "success", items)
}

// AddComment handles POST /items/{id}/comment
func (h *ItemHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseBadRequest(w, "Missing user identity", nil)
		return
	}

	itemID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid item ID format", nil)
		return
	}

	var req request.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	comment, err := h.service.AddComment(r.Context(), itemID, userID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "add comment")
		return
	}

	utils.ResponseCreated(w, "success", comment)
}
