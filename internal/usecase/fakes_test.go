package usecase

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/RoketV/share-it-project/internal/apperr"
	"github.com/RoketV/share-it-project/internal/data/entity"
	"github.com/RoketV/share-it-project/internal/data/repository"

	"github.com/google/uuid"
)

// In-memory stand-ins for the postgres repositories. They reproduce the SQL
// semantics the services rely on: start-descending order, filter before
// paging, and the guarded status update.

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return apperr.Conflict("email %s is already in use", user.Email)
		}
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.users[id], nil
}

func (r *fakeUserRepo) FindAll(_ context.Context) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users := make([]*entity.User, 0, len(r.users))
	for _, user := range r.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
	return users, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return apperr.NotFound("user with id %s not found", user.ID.String())
	}
	for id, existing := range r.users {
		if id != user.ID && existing.Email == user.Email {
			return apperr.Conflict("email %s is already in use", user.Email)
		}
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return apperr.NotFound("user with id %s not found", id.String())
	}
	delete(r.users, id)
	return nil
}

type fakeItemRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*entity.Item
}

func (r *fakeItemRepo) Create(_ context.Context, item *entity.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[item.ID] = item
	return nil
}

func (r *fakeItemRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.items[id], nil
}

func (r *fakeItemRepo) FindAllByOwner(_ context.Context, ownerID uuid.UUID, limit, offset int) ([]*entity.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []*entity.Item
	for _, item := range r.items {
		if item.OwnerID == ownerID {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return pageItems(items, limit, offset), nil
}

func (r *fakeItemRepo) Update(_ context.Context, item *entity.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[item.ID]; !ok {
		return apperr.NotFound("item with id %s not found", item.ID.String())
	}
	r.items[item.ID] = item
	return nil
}

func (r *fakeItemRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return apperr.NotFound("item with id %s not found", id.String())
	}
	delete(r.items, id)
	return nil
}

func (r *fakeItemRepo) Search(_ context.Context, text string, limit, offset int) ([]*entity.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	needle := strings.ToLower(text)
	var items []*entity.Item
	for _, item := range r.items {
		if !item.Available {
			continue
		}
		if strings.Contains(strings.ToLower(item.Name), needle) ||
			strings.Contains(strings.ToLower(item.Description), needle) {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return pageItems(items, limit, offset), nil
}

func (r *fakeItemRepo) FindByRequestID(_ context.Context, requestID uuid.UUID) ([]*entity.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []*entity.Item
	for _, item := range r.items {
		if item.RequestID != nil && *item.RequestID == requestID {
			items = append(items, item)
		}
	}
	return items, nil
}

func (r *fakeItemRepo) FindAllWithRequest(_ context.Context) ([]*entity.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []*entity.Item
	for _, item := range r.items {
		if item.RequestID != nil {
			items = append(items, item)
		}
	}
	return items, nil
}

type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]*entity.Booking
	items    *fakeItemRepo
}

func (r *fakeBookingRepo) Create(_ context.Context, booking *entity.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bookings[booking.ID] = booking
	return nil
}

func (r *fakeBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.bookings[id], nil
}

func (r *fakeBookingRepo) FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*entity.Booking, error) {
	r.mu.Lock()
	booking := r.bookings[id]
	r.mu.Unlock()
	if booking == nil {
		return nil, nil
	}
	if booking.BookerID == userID {
		return booking, nil
	}
	item, _ := r.items.FindByID(ctx, booking.ItemID)
	if item != nil && item.OwnerID == userID {
		return booking, nil
	}
	return nil, nil
}

func (r *fakeBookingRepo) FindAllByBooker(ctx context.Context, bookerID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	return r.selectBookings(ctx, byBooker(bookerID), limit, offset)
}

func (r *fakeBookingRepo) FindCurrentByBooker(ctx context.Context, bookerID uuid.UUID, now time.Time, limit, offset int) ([]*entity.Booking, error) {
	return r.selectBookings(ctx, and(byBooker(bookerID), current(now)), limit, offset)
}

func (r *fakeBookingRepo) FindPastByBooker(ctx context.Context, bookerID uuid.UUID, now time.Time, limit, offset int) ([]*entity.Booking, error) {
	return r.selectBookings(ctx, and(byBooker(bookerID), past(now)), limit, offset)
}

func (r *fakeBookingRepo) FindFutureByBooker(ctx context.Context, bookerID uuid.UUID, now time.Time, limit, offset int) ([]*entity.Booking, error) {
	return r.selectBookings(ctx, and(byBooker(bookerID), future(now)), limit, offset)
}

func (r *fakeBookingRepo) FindByStatusByBooker(ctx context.Context, status entity.BookingStatus, bookerID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	return r.selectBookings(ctx, and(byBooker(bookerID), byStatus(status)), limit, offset)
}

func (r *fakeBookingRepo) FindAllByOwnerPaged(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	return r.selectBookings(ctx, r.byOwner(ownerID), limit, offset)
}

func (r *fakeBookingRepo) FindCurrentByOwner(ctx context.Context, ownerID uuid.UUID, now time.Time, limit, offset int) ([]*entity.Booking, error) {
	return r.selectBookings(ctx, and(r.byOwner(ownerID), current(now)), limit, offset)
}

func (r *fakeBookingRepo) FindPastByOwner(ctx context.Context, ownerID uuid.UUID, now time.Time, limit, offset int) ([]*entity.Booking, error) {
	return r.selectBookings(ctx, and(r.byOwner(ownerID), past(now)), limit, offset)
}

func (r *fakeBookingRepo) FindFutureByOwner(ctx context.Context, ownerID uuid.UUID, now time.Time, limit, offset int) ([]*entity.Booking, error) {
	return r.selectBookings(ctx, and(r.byOwner(ownerID), future(now)), limit, offset)
}

func (r *fakeBookingRepo) FindByStatusByOwner(ctx context.Context, status entity.BookingStatus, ownerID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	return r.selectBookings(ctx, and(r.byOwner(ownerID), byStatus(status)), limit, offset)
}

func (r *fakeBookingRepo) FindAllByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Booking, error) {
	return r.selectBookings(ctx, r.byOwner(ownerID), -1, 0)
}

func (r *fakeBookingRepo) FindAllByItem(ctx context.Context, itemID uuid.UUID) ([]*entity.Booking, error) {
	return r.selectBookings(ctx, func(b *entity.Booking) bool {
		return b.ItemID == itemID
	}, -1, 0)
}

func (r *fakeBookingRepo) FindPastByBookerAndItem(ctx context.Context, bookerID, itemID uuid.UUID, now time.Time) ([]*entity.Booking, error) {
	return r.selectBookings(ctx, and(byBooker(bookerID), func(b *entity.Booking) bool {
		return b.ItemID == itemID
	}, past(now)), -1, 0)
}

func (r *fakeBookingRepo) UpdateStatusGuarded(_ context.Context, id uuid.UUID, status entity.BookingStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	booking, ok := r.bookings[id]
	if !ok || booking.Status == entity.BookingStatusApproved {
		return false, nil
	}
	booking.Status = status
	return true, nil
}

type bookingPredicate func(*entity.Booking) bool

func byBooker(bookerID uuid.UUID) bookingPredicate {
	return func(b *entity.Booking) bool { return b.BookerID == bookerID }
}

func byStatus(status entity.BookingStatus) bookingPredicate {
	return func(b *entity.Booking) bool { return b.Status == status }
}

func current(now time.Time) bookingPredicate {
	return func(b *entity.Booking) bool { return b.Start.Before(now) && b.End.After(now) }
}

func past(now time.Time) bookingPredicate {
	return func(b *entity.Booking) bool { return b.End.Before(now) }
}

func future(now time.Time) bookingPredicate {
	return func(b *entity.Booking) bool { return b.Start.After(now) }
}

func and(preds ...bookingPredicate) bookingPredicate {
	return func(b *entity.Booking) bool {
		for _, pred := range preds {
			if !pred(b) {
				return false
			}
		}
		return true
	}
}

func (r *fakeBookingRepo) byOwner(ownerID uuid.UUID) bookingPredicate {
	return func(b *entity.Booking) bool {
		item, _ := r.items.FindByID(context.Background(), b.ItemID)
		return item != nil && item.OwnerID == ownerID
	}
}

// selectBookings filters, sorts start-descending, then pages. limit < 0
// means unpaged.
func (r *fakeBookingRepo) selectBookings(_ context.Context, pred bookingPredicate, limit, offset int) ([]*entity.Booking, error) {
	r.mu.Lock()
	all := make([]*entity.Booking, 0, len(r.bookings))
	for _, booking := range r.bookings {
		all = append(all, booking)
	}
	r.mu.Unlock()

	var matched []*entity.Booking
	for _, booking := range all {
		if pred(booking) {
			matched = append(matched, booking)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].Start.After(matched[j].Start)
	})

	if limit < 0 {
		return matched, nil
	}
	if offset >= len(matched) {
		return nil, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

func pageItems(items []*entity.Item, limit, offset int) []*entity.Item {
	if offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

type fakeCommentRepo struct {
	mu       sync.Mutex
	comments map[uuid.UUID]*entity.Comment
}

func (r *fakeCommentRepo) Create(_ context.Context, comment *entity.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.comments[comment.ID] = comment
	return nil
}

func (r *fakeCommentRepo) FindAllByItem(_ context.Context, itemID uuid.UUID) ([]*entity.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var comments []*entity.Comment
	for _, comment := range r.comments {
		if comment.ItemID == itemID {
			comments = append(comments, comment)
		}
	}
	sort.Slice(comments, func(i, j int) bool {
		return comments[i].CreatedAt.Before(comments[j].CreatedAt)
	})
	return comments, nil
}

type fakeItemRequestRepo struct {
	mu       sync.Mutex
	requests map[uuid.UUID]*entity.ItemRequest
}

func (r *fakeItemRequestRepo) Create(_ context.Context, request *entity.ItemRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests[request.ID] = request
	return nil
}

func (r *fakeItemRequestRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.ItemRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.requests[id], nil
}

func (r *fakeItemRequestRepo) FindAllByRequester(_ context.Context, requesterID uuid.UUID) ([]*entity.ItemRequest, error) {
	return r.selectRequests(func(req *entity.ItemRequest) bool {
		return req.RequesterID == requesterID
	}, -1, 0), nil
}

func (r *fakeItemRequestRepo) FindAllExceptRequester(_ context.Context, requesterID uuid.UUID, limit, offset int) ([]*entity.ItemRequest, error) {
	return r.selectRequests(func(req *entity.ItemRequest) bool {
		return req.RequesterID != requesterID
	}, limit, offset), nil
}

func (r *fakeItemRequestRepo) selectRequests(pred func(*entity.ItemRequest) bool, limit, offset int) []*entity.ItemRequest {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*entity.ItemRequest
	for _, request := range r.requests {
		if pred(request) {
			matched = append(matched, request)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	if limit < 0 {
		return matched
	}
	if offset >= len(matched) {
		return nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end]
}

func newFakeRepository() *repository.Repository {
	items := &fakeItemRepo{items: make(map[uuid.UUID]*entity.Item)}
	return &repository.Repository{
		User:        &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)},
		Item:        items,
		Booking:     &fakeBookingRepo{bookings: make(map[uuid.UUID]*entity.Booking), items: items},
		Comment:     &fakeCommentRepo{comments: make(map[uuid.UUID]*entity.Comment)},
		ItemRequest: &fakeItemRequestRepo{requests: make(map[uuid.UUID]*entity.ItemRequest)},
	}
}
