package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/RoketV/share-it-project/internal/apperr"
	"github.com/RoketV/share-it-project/internal/data/entity"
	"github.com/RoketV/share-it-project/internal/data/repository"
	"github.com/RoketV/share-it-project/internal/dto/request"
	"github.com/RoketV/share-it-project/internal/dto/response"
	"github.com/RoketV/share-it-project/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ItemService interface {
	AddItem(ctx context.Context, ownerID uuid.UUID, req *request.CreateItemRequest) (*response.ItemResponse, error)
	UpdateItem(ctx context.Context, itemID, userID uuid.UUID, req *request.UpdateItemRequest) (*response.ItemResponse, error)
	GetItem(ctx context.Context, itemID, viewerID uuid.UUID) (*response.ItemResponse, error)
	GetItems(ctx context.Context, ownerID uuid.UUID, page request.PageRequest) ([]response.ItemResponse, error)
	DeleteItem(ctx context.Context, itemID, userID uuid.UUID) error
	SearchItems(ctx context.Context, text string, page request.PageRequest) ([]response.ItemResponse, error)
	CanComment(ctx context.Context, authorID, itemID uuid.UUID) (bool, error)
	AddComment(ctx context.Context, itemID, authorID uuid.UUID, req *request.CreateCommentRequest) (*response.CommentResponse, error)
}

type itemService struct {
	repo  *repository.Repository
	clock Clock
	log   *zap.Logger
}

func NewItemService(repo *repository.Repository, clock Clock, log *zap.Logger) ItemService {
	return &itemService{
		repo:  repo,
		clock: clock,
		log:   log.With(zap.String("service", "item")),
	}
}

func (s *itemService) AddItem(ctx context.Context, ownerID uuid.UUID, req *request.CreateItemRequest) (*response.ItemResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Add item validation failed", zap.Any("errors", errs))
		return nil, apperr.InvalidArgument("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	owner, err := s.repo.User.FindByID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("find owner: %w", err)
	}
	if owner == nil {
		return nil, apperr.NotFound("user with id %s not found", ownerID.String())
	}

	var requestID *uuid.UUID
	if req.RequestID != nil {
		parsed, err := uuid.Parse(*req.RequestID)
		if err != nil {
			return nil, apperr.InvalidArgument("invalid request ID format %s", *req.RequestID)
		}
		itemRequest, err := s.repo.ItemRequest.FindByID(ctx, parsed)
		if err != nil {
			return nil, fmt.Errorf("find item request: %w", err)
		}
		if itemRequest == nil {
			return nil, apperr.NotFound("item request with id %s not found", parsed.String())
		}
		requestID = &parsed
	}

	now := s.clock.Now()
	item := &entity.Item{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		OwnerID:     ownerID,
		Name:        req.Name,
		Description: req.Description,
		Available:   *req.Available,
		RequestID:   requestID,
	}

	if err := s.repo.Item.Create(ctx, item); err != nil {
		s.log.Error("Failed to create item", zap.Error(err), zap.String("owner_id", ownerID.String()))
		return nil, fmt.Errorf("create item: %w", err)
	}

	s.log.Info("Item created",
		zap.String("item_id", item.ID.String()),
		zap.String("owner_id", ownerID.String()),
	)

	resp := response.ItemToResponse(item)
	return &resp, nil
}

// UpdateItem applies a partial patch. Only the owner may update an item.
func (s *itemService) UpdateItem(ctx context.Context, itemID, userID uuid.UUID, req *request.UpdateItemRequest) (*response.ItemResponse, error) {
	item, err := s.repo.Item.FindByID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("find item: %w", err)
	}
	if item == nil {
		return nil, apperr.NotFound("item with id %s not found", itemID.String())
	}

	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, apperr.NotFound("user with id %s not found", userID.String())
	}

	if item.OwnerID != userID {
		return nil, apperr.Forbidden("user with id %s is not an owner for item with id %s", userID.String(), itemID.String())
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Available != nil {
		item.Available = *req.Available
	}

	if err := s.repo.Item.Update(ctx, item); err != nil {
		s.log.Error("Failed to update item", zap.Error(err), zap.String("item_id", itemID.String()))
		return nil, fmt.Errorf("update item: %w", err)
	}

	resp := response.ItemToResponse(item)
	return &resp, nil
}

// GetItem returns the detail view. Comments are visible to everyone; the
// last/next booking projection is attached only when the viewer owns the
// item, and is recomputed on every call since "now" keeps moving.
func (s *itemService) GetItem(ctx context.Context, itemID, viewerID uuid.UUID) (*response.ItemResponse, error) {
	item, err := s.repo.Item.FindByID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("find item: %w", err)
	}
	if item == nil {
		return nil, apperr.NotFound("item with id %s not found", itemID.String())
	}

	resp := response.ItemToResponse(item)

	comments, err := s.commentsForItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	resp.Comments = comments

	if item.OwnerID == viewerID {
		bookings, err := s.repo.Booking.FindAllByItem(ctx, itemID)
		if err != nil {
			return nil, fmt.Errorf("find bookings for item %s: %w", itemID.String(), err)
		}
		now := s.clock.Now()
		resp.LastBooking = response.BookingToRef(lastBooking(bookings, itemID, now))
		resp.NextBooking = response.BookingToRef(nextBooking(bookings, itemID, now))
	}

	return &resp, nil
}

// GetItems lists the owner's items with last/next booking attached to each,
// derived from the owner's full booking list in one pass.
func (s *itemService) GetItems(ctx context.Context, ownerID uuid.UUID, page request.PageRequest) ([]response.ItemResponse, error) {
	if errs := utils.ValidateStruct(page); len(errs) > 0 {
		return nil, apperr.InvalidArgument("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	owner, err := s.repo.User.FindByID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("find owner: %w", err)
	}
	if owner == nil {
		return nil, apperr.NotFound("user with id %s not found", ownerID.String())
	}

	items, err := s.repo.Item.FindAllByOwner(ctx, ownerID, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("find items by owner %s: %w", ownerID.String(), err)
	}

	bookings, err := s.repo.Booking.FindAllByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("find bookings by owner %s: %w", ownerID.String(), err)
	}

	now := s.clock.Now()
	responses := make([]response.ItemResponse, len(items))
	for i, item := range items {
		resp := response.ItemToResponse(item)
		resp.LastBooking = response.BookingToRef(lastBooking(bookings, item.ID, now))
		resp.NextBooking = response.BookingToRef(nextBooking(bookings, item.ID, now))
		responses[i] = resp
	}

	return responses, nil
}

func (s *itemService) DeleteItem(ctx context.Context, itemID, userID uuid.UUID) error {
	item, err := s.repo.Item.FindByID(ctx, itemID)
	if err != nil {
		return fmt.Errorf("find item: %w", err)
	}
	if item == nil {
		return apperr.NotFound("item with id %s not found", itemID.String())
	}

	if item.OwnerID != userID {
		return apperr.Forbidden("user with id %s is not an owner for item with id %s", userID.String(), itemID.String())
	}

	if err := s.repo.Item.Delete(ctx, itemID); err != nil {
		s.log.Error("Failed to delete item", zap.Error(err), zap.String("item_id", itemID.String()))
		return fmt.Errorf("delete item: %w", err)
	}

	s.log.Info("Item deleted", zap.String("item_id", itemID.String()))
	return nil
}

// SearchItems matches available items by name or description. A blank query
// returns an empty result without touching the store.
func (s *itemService) SearchItems(ctx context.Context, text string, page request.PageRequest) ([]response.ItemResponse, error) {
	if errs := utils.ValidateStruct(page); len(errs) > 0 {
		return nil, apperr.InvalidArgument("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	if strings.TrimSpace(text) == "" {
		return []response.ItemResponse{}, nil
	}

	items, err := s.repo.Item.Search(ctx, text, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("search items: %w", err)
	}

	return response.ItemsToResponses(items), nil
}

// CanComment reports whether the author has at least one booking on the item
// that has already ended.
func (s *itemService) CanComment(ctx context.Context, authorID, itemID uuid.UUID) (bool, error) {
	past, err := s.repo.Booking.FindPastByBookerAndItem(ctx, authorID, itemID, s.clock.Now())
	if err != nil {
		return false, fmt.Errorf("find past bookings: %w", err)
	}
	return len(past) > 0, nil
}

func (s *itemService) AddComment(ctx context.Context, itemID, authorID uuid.UUID, req *request.CreateCommentRequest) (*response.CommentResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Add comment validation failed", zap.Any("errors", errs))
		return nil, apperr.InvalidArgument("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	item, err := s.repo.Item.FindByID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("find item: %w", err)
	}
	if item == nil {
		return nil, apperr.NotFound("item with id %s not found", itemID.String())
	}

	// The eligibility gate runs before the author lookup, so an unknown
	// author fails it rather than reporting not-found.
	allowed, err := s.CanComment(ctx, authorID, itemID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, apperr.CommentConsistency("user with id %s has no finished booking for item with id %s", authorID.String(), itemID.String())
	}

	author, err := s.repo.User.FindByID(ctx, authorID)
	if err != nil {
		return nil, fmt.Errorf("find author: %w", err)
	}
	if author == nil {
		return nil, apperr.NotFound("user with id %s not found", authorID.String())
	}

	comment := &entity.Comment{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: s.clock.Now(),
		},
		ItemID:   itemID,
		AuthorID: authorID,
		Text:     req.Text,
	}

	if err := s.repo.Comment.Create(ctx, comment); err != nil {
		s.log.Error("Failed to create comment",
			zap.Error(err),
			zap.String("item_id", itemID.String()),
			zap.String("author_id", authorID.String()),
		)
		return nil, fmt.Errorf("create comment: %w", err)
	}

	s.log.Info("Comment created",
		zap.String("comment_id", comment.ID.String()),
		zap.String("item_id", itemID.String()),
	)

	resp := response.CommentToResponse(comment, author.Name)
	return &resp, nil
}

// commentsForItem resolves author names once per distinct author.
func (s *itemService) commentsForItem(ctx context.Context, itemID uuid.UUID) ([]response.CommentResponse, error) {
	comments, err := s.repo.Comment.FindAllByItem(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("find comments for item %s: %w", itemID.String(), err)
	}

	names := make(map[uuid.UUID]string)
	responses := make([]response.CommentResponse, len(comments))
	for i, comment := range comments {
		name, ok := names[comment.AuthorID]
		if !ok {
			author, err := s.repo.User.FindByID(ctx, comment.AuthorID)
			if err != nil {
				return nil, fmt.Errorf("find comment author: %w", err)
			}
			if author != nil {
				name = author.Name
			}
			names[comment.AuthorID] = name
		}
		responses[i] = response.CommentToResponse(comment, name)
	}

	return responses, nil
}

// lastBooking picks the booking on the item with the greatest end among
// those already finished.
func lastBooking(bookings []*entity.Booking, itemID uuid.UUID, now time.Time) *entity.Booking {
	var last *entity.Booking
	for _, b := range bookings {
		if b.ItemID != itemID || !b.End.Before(now) {
			continue
		}
		if last == nil || b.End.After(last.End) {
			last = b
		}
	}
	return last
}

// nextBooking picks the booking on the item with the smallest start among
// those not yet begun.
func nextBooking(bookings []*entity.Booking, itemID uuid.UUID, now time.Time) *entity.Booking {
	var next *entity.Booking
	for _, b := range bookings {
		if b.ItemID != itemID || !b.Start.After(now) {
			continue
		}
		if next == nil || b.Start.Before(next.Start) {
			next = b
		}
	}
	return next
}
