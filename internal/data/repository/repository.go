package repository

import (
	"github.com/RoketV/share-it-project/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User        UserRepository
	Item        ItemRepository
	Booking     BookingRepository
	Comment     CommentRepository
	ItemRequest ItemRequestRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:        NewUserRepository(db, log),
		Item:        NewItemRepository(db, log),
		Booking:     NewBookingRepository(db, log),
		Comment:     NewCommentRepository(db, log),
		ItemRequest: NewItemRequestRepository(db, log),
	}
}
