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

// Booking list filters. APPROVED is deliberately absent: only WAITING and
// REJECTED are queryable by status.
const (
	StateAll      = "ALL"
	StateCurrent  = "CURRENT"
	StatePast     = "PAST"
	StateFuture   = "FUTURE"
	StateWaiting  = "WAITING"
	StateRejected = "REJECTED"
)

type BookingService interface {
	CreateBooking(ctx context.Context, bookerID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	ApproveBooking(ctx context.Context, bookingID, userID uuid.UUID, approved bool) (*response.BookingResponse, error)
	GetBooking(ctx context.Context, bookingID, userID uuid.UUID) (*response.BookingResponse, error)
	GetBookingsByBooker(ctx context.Context, bookerID uuid.UUID, state string, page request.PageRequest) ([]response.BookingResponse, error)
	GetBookingsByOwner(ctx context.Context, ownerID uuid.UUID, state string, page request.PageRequest) ([]response.BookingResponse, error)
}

type bookingService struct {
	repo  *repository.Repository
	clock Clock
	log   *zap.Logger
}

func NewBookingService(repo *repository.Repository, clock Clock, log *zap.Logger) BookingService {
	return &bookingService{
		repo:  repo,
		clock: clock,
		log:   log.With(zap.String("service", "booking")),
	}
}

// CreateBooking checks its preconditions in a fixed order: item exists, booker
// exists, booker is not the owner, item is available, start precedes end. The
// first failure wins. The item's availability flag is never mutated here.
func (s *bookingService) CreateBooking(ctx context.Context, bookerID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, apperr.InvalidArgument("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	itemID, err := uuid.Parse(req.ItemID)
	if err != nil {
		return nil, apperr.InvalidArgument("invalid item ID format %s", req.ItemID)
	}

	item, err := s.repo.Item.FindByID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("find item: %w", err)
	}
	if item == nil {
		return nil, apperr.NotFound("cannot make booking: item with id %s not found", req.ItemID)
	}

	booker, err := s.repo.User.FindByID(ctx, bookerID)
	if err != nil {
		return nil, fmt.Errorf("find booker: %w", err)
	}
	if booker == nil {
		return nil, apperr.NotFound("cannot make booking: user with id %s not found", bookerID.String())
	}

	if item.OwnerID == bookerID {
		return nil, apperr.Conflict("item with id %s already belongs to user with id %s", item.ID.String(), bookerID.String())
	}

	if !item.Available {
		return nil, apperr.Conflict("item with id %s is not available for booking", item.ID.String())
	}

	if !req.Start.Before(req.End) {
		return nil, apperr.InvalidArgument("end of the booking has to be after its start")
	}

	now := s.clock.Now()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		ItemID:   item.ID,
		BookerID: bookerID,
		Start:    req.Start,
		End:      req.End,
		Status:   entity.BookingStatusWaiting,
	}

	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		s.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("item_id", item.ID.String()),
			zap.String("booker_id", bookerID.String()),
		)
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("item_id", item.ID.String()),
		zap.String("booker_id", bookerID.String()),
	)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

// ApproveBooking moves a WAITING booking to APPROVED or REJECTED. Only the
// item's owner may act. An APPROVED booking cannot transition again, while a
// REJECTED one may be re-rejected (or approved); the guarded update in the
// repository makes concurrent approval attempts on one booking safe.
func (s *bookingService) ApproveBooking(ctx context.Context, bookingID, userID uuid.UUID, approved bool) (*response.BookingResponse, error) {
	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return nil, apperr.NotFound("no booking with id %s", bookingID.String())
	}

	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, apperr.NotFound("no user with id %s", userID.String())
	}

	item, err := s.repo.Item.FindByID(ctx, booking.ItemID)
	if err != nil {
		return nil, fmt.Errorf("find item: %w", err)
	}
	if item == nil {
		return nil, apperr.NotFound("item with id %s not found", booking.ItemID.String())
	}

	if item.OwnerID != userID {
		return nil, apperr.Forbidden("user with id %s is not an owner for item with id %s", userID.String(), item.ID.String())
	}

	if booking.Status == entity.BookingStatusApproved {
		return nil, apperr.Conflict("booking with id %s is already approved", bookingID.String())
	}

	status := entity.BookingStatusRejected
	if approved {
		status = entity.BookingStatusApproved
	}

	changed, err := s.repo.Booking.UpdateStatusGuarded(ctx, bookingID, status)
	if err != nil {
		return nil, fmt.Errorf("update booking status: %w", err)
	}
	if !changed {
		// Lost the race against a concurrent approval.
		return nil, apperr.Conflict("booking with id %s is already approved", bookingID.String())
	}

	booking.Status = status
	s.log.Info("Booking status updated",
		zap.String("booking_id", bookingID.String()),
		zap.String("status", string(status)),
	)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

// GetBooking is visible only to the booker and the item's owner. Everyone
// else gets a not-found, so unauthorized callers cannot probe for existence.
func (s *bookingService) GetBooking(ctx context.Context, bookingID, userID uuid.UUID) (*response.BookingResponse, error) {
	booking, err := s.repo.Booking.FindByIDForUser(ctx, bookingID, userID)
	if err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return nil, apperr.NotFound("there is no such booking with id %s for user with id %s", bookingID.String(), userID.String())
	}

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) GetBookingsByBooker(ctx context.Context, bookerID uuid.UUID, state string, page request.PageRequest) ([]response.BookingResponse, error) {
	if err := s.checkUserExists(ctx, bookerID); err != nil {
		return nil, err
	}
	if errs := utils.ValidateStruct(page); len(errs) > 0 {
		return nil, apperr.InvalidArgument("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	now := s.clock.Now()
	limit, offset := page.Limit(), page.Offset()

	var (
		bookings []*entity.Booking
		err      error
	)
	switch state {
	case StateAll:
		bookings, err = s.repo.Booking.FindAllByBooker(ctx, bookerID, limit, offset)
	case StateCurrent:
		bookings, err = s.repo.Booking.FindCurrentByBooker(ctx, bookerID, now, limit, offset)
	case StatePast:
		bookings, err = s.repo.Booking.FindPastByBooker(ctx, bookerID, now, limit, offset)
	case StateFuture:
		bookings, err = s.repo.Booking.FindFutureByBooker(ctx, bookerID, now, limit, offset)
	case StateWaiting:
		bookings, err = s.repo.Booking.FindByStatusByBooker(ctx, entity.BookingStatusWaiting, bookerID, limit, offset)
	case StateRejected:
		bookings, err = s.repo.Booking.FindByStatusByBooker(ctx, entity.BookingStatusRejected, bookerID, limit, offset)
	default:
		return nil, apperr.UnsupportedState(state)
	}
	if err != nil {
		return nil, fmt.Errorf("get bookings by booker %s: %w", bookerID.String(), err)
	}

	return response.BookingsToResponses(bookings), nil
}

func (s *bookingService) GetBookingsByOwner(ctx context.Context, ownerID uuid.UUID, state string, page request.PageRequest) ([]response.BookingResponse, error) {
	if err := s.checkUserExists(ctx, ownerID); err != nil {
		return nil, err
	}
	if errs := utils.ValidateStruct(page); len(errs) > 0 {
		return nil, apperr.InvalidArgument("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	now := s.clock.Now()
	limit, offset := page.Limit(), page.Offset()

	var (
		bookings []*entity.Booking
		err      error
	)
	switch state {
	case StateAll:
		bookings, err = s.repo.Booking.FindAllByOwnerPaged(ctx, ownerID, limit, offset)
	case StateCurrent:
		bookings, err = s.repo.Booking.FindCurrentByOwner(ctx, ownerID, now, limit, offset)
	case StatePast:
		bookings, err = s.repo.Booking.FindPastByOwner(ctx, ownerID, now, limit, offset)
	case StateFuture:
		bookings, err = s.repo.Booking.FindFutureByOwner(ctx, ownerID, now, limit, offset)
	case StateWaiting:
		bookings, err = s.repo.Booking.FindByStatusByOwner(ctx, entity.BookingStatusWaiting, ownerID, limit, offset)
	case StateRejected:
		bookings, err = s.repo.Booking.FindByStatusByOwner(ctx, entity.BookingStatusRejected, ownerID, limit, offset)
	default:
		return nil, apperr.UnsupportedState(state)
	}
	if err != nil {
		return nil, fmt.Errorf("get bookings by owner %s: %w", ownerID.String(), err)
	}

	return response.BookingsToResponses(bookings), nil
}

func (s *bookingService) checkUserExists(ctx context.Context, userID uuid.UUID) error {
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return apperr.NotFound("no bookings for user with id %s", userID.String())
	}
	return nil
}
