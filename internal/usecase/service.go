package usecase

import (
	"github.com/RoketV/share-it-project/internal/data/repository"

	"go.uber.org/zap"
)

// Service bundles all business services behind one constructor.
type Service struct {
	User        UserService
	Item        ItemService
	Booking     BookingService
	ItemRequest ItemRequestService
}

func NewService(repo *repository.Repository, clock Clock, log *zap.Logger) *Service {
	return &Service{
		User:        NewUserService(repo, clock, log),
		Item:        NewItemService(repo, clock, log),
		Booking:     NewBookingService(repo, clock, log),
		ItemRequest: NewItemRequestService(repo, clock, log),
	}
}
