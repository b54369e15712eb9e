package usecase

import (
	"context"
	"fmt"

	"github.com/RoketV/share-it-project/internal/apperr"
	"github.com/RoketV/share-it-project/internal/data/entity"
	"github.com/RoketV/share-it-project/internal/data/repository"
	"github.com/RoketV/share-it-project/internal/dto/request"
	"github.com/RoketV/share-it-project/internal/dto/response"
	"github.com/RoketV/share-it-project/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ItemRequestService interface {
	AddRequest(ctx context.Context, requesterID uuid.UUID, req *request.CreateItemRequestRequest) (*response.ItemRequestResponse, error)
	GetRequest(ctx context.Context, requestID, userID uuid.UUID) (*response.ItemRequestResponse, error)
	// GetOwnRequests lists the caller's requests, newest first, with the items
	// offered in answer to each.
	GetOwnRequests(ctx context.Context, requesterID uuid.UUID) ([]response.ItemRequestResponse, error)
	// GetAllRequests lists other users' requests, paged.
	GetAllRequests(ctx context.Context, requesterID uuid.UUID, page request.PageRequest) ([]response.ItemRequestResponse, error)
}

type itemRequestService struct {
	repo  *repository.Repository
	clock Clock
	log   *zap.Logger
}

func NewItemRequestService(repo *repository.Repository, clock Clock, log *zap.Logger) ItemRequestService {
	return &itemRequestService{
		repo:  repo,
		clock: clock,
		log:   log.With(zap.String("service", "item_request")),
	}
}

func (s *itemRequestService) AddRequest(ctx context.Context, requesterID uuid.UUID, req *request.CreateItemRequestRequest) (*response.ItemRequestResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Add request validation failed", zap.Any("errors", errs))
		return nil, apperr.InvalidArgument("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	if err := s.checkUserExists(ctx, requesterID); err != nil {
		return nil, err
	}

	itemRequest := &entity.ItemRequest{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: s.clock.Now(),
		},
		RequesterID: requesterID,
		Description: req.Description,
	}

	if err := s.repo.ItemRequest.Create(ctx, itemRequest); err != nil {
		s.log.Error("Failed to create item request",
			zap.Error(err),
			zap.String("requester_id", requesterID.String()),
		)
		return nil, fmt.Errorf("create item request: %w", err)
	}

	s.log.Info("Item request created", zap.String("request_id", itemRequest.ID.String()))

	resp := response.ItemRequestToResponse(itemRequest, nil)
	return &resp, nil
}

func (s *itemRequestService) GetRequest(ctx context.Context, requestID, userID uuid.UUID) (*response.ItemRequestResponse, error) {
	if err := s.checkUserExists(ctx, userID); err != nil {
		return nil, err
	}

	itemRequest, err := s.repo.ItemRequest.FindByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("find item request: %w", err)
	}
	if itemRequest == nil {
		return nil, apperr.NotFound("item request with id %s not found", requestID.String())
	}

	items, err := s.repo.Item.FindByRequestID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("find items for request %s: %w", requestID.String(), err)
	}

	resp := response.ItemRequestToResponse(itemRequest, items)
	return &resp, nil
}

func (s *itemRequestService) GetOwnRequests(ctx context.Context, requesterID uuid.UUID) ([]response.ItemRequestResponse, error) {
	if err := s.checkUserExists(ctx, requesterID); err != nil {
		return nil, err
	}

	requests, err := s.repo.ItemRequest.FindAllByRequester(ctx, requesterID)
	if err != nil {
		return nil, fmt.Errorf("find requests by requester %s: %w", requesterID.String(), err)
	}

	return s.attachItems(ctx, requests)
}

func (s *itemRequestService) GetAllRequests(ctx context.Context, requesterID uuid.UUID, page request.PageRequest) ([]response.ItemRequestResponse, error) {
	if errs := utils.ValidateStruct(page); len(errs) > 0 {
		return nil, apperr.InvalidArgument("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	if err := s.checkUserExists(ctx, requesterID); err != nil {
		return nil, err
	}

	requests, err := s.repo.ItemRequest.FindAllExceptRequester(ctx, requesterID, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("find requests except requester %s: %w", requesterID.String(), err)
	}

	return s.attachItems(ctx, requests)
}

// attachItems joins the answered items onto each request in one pass over
// all items that carry a request reference.
func (s *itemRequestService) attachItems(ctx context.Context, requests []*entity.ItemRequest) ([]response.ItemRequestResponse, error) {
	if len(requests) == 0 {
		return []response.ItemRequestResponse{}, nil
	}

	items, err := s.repo.Item.FindAllWithRequest(ctx)
	if err != nil {
		return nil, fmt.Errorf("find items with request: %w", err)
	}

	byRequest := make(map[uuid.UUID][]*entity.Item)
	for _, item := range items {
		if item.RequestID == nil {
			continue
		}
		byRequest[*item.RequestID] = append(byRequest[*item.RequestID], item)
	}

	responses := make([]response.ItemRequestResponse, len(requests))
	for i, itemRequest := range requests {
		responses[i] = response.ItemRequestToResponse(itemRequest, byRequest[itemRequest.ID])
	}
	return responses, nil
}

func (s *itemRequestService) checkUserExists(ctx context.Context, userID uuid.UUID) error {
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return apperr.NotFound("user with id %s not found", userID.String())
	}
	return nil
}
