package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/RoketV/share-it-project/internal/apperr"
	"github.com/RoketV/share-it-project/internal/data/entity"
	"github.com/RoketV/share-it-project/internal/data/repository"
	"github.com/RoketV/share-it-project/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newItemFixture() (ItemService, *repository.Repository) {
	repo := newFakeRepository()
	service := NewItemService(repo, fixedClock{now: testNow}, zap.NewNop())
	return service, repo
}

func boolPtr(b bool) *bool { return &b }

func strPtr(s string) *string { return &s }

func TestAddItem(t *testing.T) {
	service, repo := newItemFixture()
	owner := seedUser(t, repo, "owner")

	req := &request.CreateItemRequest{
		Name:        "ladder",
		Description: "sturdy aluminium ladder",
		Available:   boolPtr(true),
	}

	item, err := service.AddItem(context.Background(), owner.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "ladder", item.Name)
	assert.True(t, item.Available)
	assert.Nil(t, item.RequestID)
}

func TestAddItemUnknownOwner(t *testing.T) {
	service, _ := newItemFixture()

	req := &request.CreateItemRequest{
		Name:        "ladder",
		Description: "sturdy aluminium ladder",
		Available:   boolPtr(true),
	}

	_, err := service.AddItem(context.Background(), uuid.New(), req)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestAddItemAnsweringRequest(t *testing.T) {
	service, repo := newItemFixture()
	owner := seedUser(t, repo, "owner")
	requester := seedUser(t, repo, "requester")

	itemRequest := &entity.ItemRequest{
		BaseSimple:  entity.BaseSimple{ID: uuid.New(), CreatedAt: testNow},
		RequesterID: requester.ID,
		Description: "need a ladder",
	}
	require.NoError(t, repo.ItemRequest.Create(context.Background(), itemRequest))

	req := &request.CreateItemRequest{
		Name:        "ladder",
		Description: "sturdy aluminium ladder",
		Available:   boolPtr(true),
		RequestID:   strPtr(itemRequest.ID.String()),
	}

	item, err := service.AddItem(context.Background(), owner.ID, req)
	require.NoError(t, err)
	require.NotNil(t, item.RequestID)
	assert.Equal(t, itemRequest.ID.String(), *item.RequestID)

	// Unknown request reference is rejected.
	req.RequestID = strPtr(uuid.NewString())
	_, err = service.AddItem(context.Background(), owner.ID, req)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestUpdateItemOwnerOnly(t *testing.T) {
	service, repo := newItemFixture()
	owner := seedUser(t, repo, "owner")
	stranger := seedUser(t, repo, "stranger")
	item := seedItem(t, repo, owner.ID, true)

	patch := &request.UpdateItemRequest{Available: boolPtr(false)}

	_, err := service.UpdateItem(context.Background(), item.ID, stranger.ID, patch)
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))

	updated, err := service.UpdateItem(context.Background(), item.ID, owner.ID, patch)
	require.NoError(t, err)
	assert.False(t, updated.Available)
	// Untouched fields keep their values.
	assert.Equal(t, item.Name, updated.Name)
}

// An acting user the system does not know gets not-found, not forbidden.
func TestUpdateItemUnknownUser(t *testing.T) {
	service, repo := newItemFixture()
	owner := seedUser(t, repo, "owner")
	item := seedItem(t, repo, owner.ID, true)

	patch := &request.UpdateItemRequest{Available: boolPtr(false)}

	_, err := service.UpdateItem(context.Background(), item.ID, uuid.New(), patch)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestGetItemBookingsOnlyForOwner(t *testing.T) {
	service, repo := newItemFixture()
	owner := seedUser(t, repo, "owner")
	booker := seedUser(t, repo, "booker")
	item := seedItem(t, repo, owner.ID, true)

	last := seedBooking(t, repo, item.ID, booker.ID, testNow.Add(-48*time.Hour), testNow.Add(-24*time.Hour), entity.BookingStatusApproved)
	next := seedBooking(t, repo, item.ID, booker.ID, testNow.Add(24*time.Hour), testNow.Add(48*time.Hour), entity.BookingStatusApproved)

	asOwner, err := service.GetItem(context.Background(), item.ID, owner.ID)
	require.NoError(t, err)
	require.NotNil(t, asOwner.LastBooking)
	require.NotNil(t, asOwner.NextBooking)
	assert.Equal(t, last.ID.String(), asOwner.LastBooking.ID)
	assert.Equal(t, next.ID.String(), asOwner.NextBooking.ID)

	asBooker, err := service.GetItem(context.Background(), item.ID, booker.ID)
	require.NoError(t, err)
	assert.Nil(t, asBooker.LastBooking)
	assert.Nil(t, asBooker.NextBooking)
}

// lastBooking takes the greatest end before now; nextBooking the smallest
// start after it. A booking spanning now belongs to neither.
func TestLastNextBookingSelection(t *testing.T) {
	itemID := uuid.New()
	otherItem := uuid.New()

	mk := func(id uuid.UUID, start, end time.Time) *entity.Booking {
		return &entity.Booking{
			Base:   entity.Base{ID: uuid.New()},
			ItemID: id,
			Start:  start,
			End:    end,
		}
	}

	older := mk(itemID, testNow.Add(-96*time.Hour), testNow.Add(-72*time.Hour))
	newer := mk(itemID, testNow.Add(-48*time.Hour), testNow.Add(-24*time.Hour))
	spanning := mk(itemID, testNow.Add(-time.Hour), testNow.Add(time.Hour))
	soon := mk(itemID, testNow.Add(24*time.Hour), testNow.Add(48*time.Hour))
	later := mk(itemID, testNow.Add(72*time.Hour), testNow.Add(96*time.Hour))
	foreign := mk(otherItem, testNow.Add(-48*time.Hour), testNow.Add(-24*time.Hour))

	bookings := []*entity.Booking{older, newer, spanning, soon, later, foreign}

	assert.Equal(t, newer, lastBooking(bookings, itemID, testNow))
	assert.Equal(t, soon, nextBooking(bookings, itemID, testNow))

	assert.Nil(t, lastBooking([]*entity.Booking{spanning, soon}, itemID, testNow))
	assert.Nil(t, nextBooking([]*entity.Booking{spanning, newer}, itemID, testNow))
}

func TestGetItemsAttachesBookings(t *testing.T) {
	service, repo := newItemFixture()
	owner := seedUser(t, repo, "owner")
	booker := seedUser(t, repo, "booker")
	booked := seedItem(t, repo, owner.ID, true)
	idle := seedItem(t, repo, owner.ID, true)

	past := seedBooking(t, repo, booked.ID, booker.ID, testNow.Add(-48*time.Hour), testNow.Add(-24*time.Hour), entity.BookingStatusApproved)

	items, err := service.GetItems(context.Background(), owner.ID, defaultPage())
	require.NoError(t, err)
	require.Len(t, items, 2)

	byID := map[string]int{items[0].ID: 0, items[1].ID: 1}
	withBooking := items[byID[booked.ID.String()]]
	without := items[byID[idle.ID.String()]]

	require.NotNil(t, withBooking.LastBooking)
	assert.Equal(t, past.ID.String(), withBooking.LastBooking.ID)
	assert.Nil(t, withBooking.NextBooking)
	assert.Nil(t, without.LastBooking)
	assert.Nil(t, without.NextBooking)
}

func TestSearchItems(t *testing.T) {
	service, repo := newItemFixture()
	owner := seedUser(t, repo, "owner")

	visible := seedItem(t, repo, owner.ID, true)
	hidden := seedItem(t, repo, owner.ID, false)
	_ = hidden

	results, err := service.SearchItems(context.Background(), "DRILL", defaultPage())
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, visible.ID.String(), results[0].ID)

	// Blank query short-circuits to an empty result.
	results, err = service.SearchItems(context.Background(), "   ", defaultPage())
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestAddCommentRequiresFinishedBooking(t *testing.T) {
	service, repo := newItemFixture()
	owner := seedUser(t, repo, "owner")
	booker := seedUser(t, repo, "booker")
	item := seedItem(t, repo, owner.ID, true)

	req := &request.CreateCommentRequest{Text: "worked great"}

	// Only a future booking: no comment allowed.
	seedBooking(t, repo, item.ID, booker.ID, testNow.Add(24*time.Hour), testNow.Add(48*time.Hour), entity.BookingStatusApproved)
	_, err := service.AddComment(context.Background(), item.ID, booker.ID, req)
	assert.True(t, apperr.IsKind(err, apperr.KindCommentConsistency))

	// A finished booking unlocks it.
	seedBooking(t, repo, item.ID, booker.ID, testNow.Add(-48*time.Hour), testNow.Add(-24*time.Hour), entity.BookingStatusApproved)
	comment, err := service.AddComment(context.Background(), item.ID, booker.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "worked great", comment.Text)
	assert.Equal(t, booker.Name, comment.AuthorName)

	// And the comment shows up on the item detail.
	detail, err := service.GetItem(context.Background(), item.ID, booker.ID)
	require.NoError(t, err)
	require.Len(t, detail.Comments, 1)
	assert.Equal(t, comment.ID, detail.Comments[0].ID)
}

func TestCanComment(t *testing.T) {
	service, repo := newItemFixture()
	owner := seedUser(t, repo, "owner")
	booker := seedUser(t, repo, "booker")
	item := seedItem(t, repo, owner.ID, true)

	ok, err := service.CanComment(context.Background(), booker.ID, item.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	seedBooking(t, repo, item.ID, booker.ID, testNow.Add(-48*time.Hour), testNow.Add(-24*time.Hour), entity.BookingStatusApproved)

	ok, err = service.CanComment(context.Background(), booker.ID, item.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}

// The gate runs before the author lookup: an author the system has never
// seen cannot have a finished booking, so the failure is the eligibility
// rule, not a missing user.
func TestAddCommentUnknownAuthor(t *testing.T) {
	service, repo := newItemFixture()
	owner := seedUser(t, repo, "owner")
	item := seedItem(t, repo, owner.ID, true)

	_, err := service.AddComment(context.Background(), item.ID, uuid.New(), &request.CreateCommentRequest{Text: "hi"})
	assert.True(t, apperr.IsKind(err, apperr.KindCommentConsistency))
}

func TestAddCommentUnknownItem(t *testing.T) {
	service, repo := newItemFixture()
	booker := seedUser(t, repo, "booker")

	_, err := service.AddComment(context.Background(), uuid.New(), booker.ID, &request.CreateCommentRequest{Text: "hi"})
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestDeleteItemOwnerOnly(t *testing.T) {
	service, repo := newItemFixture()
	owner := seedUser(t, repo, "owner")
	stranger := seedUser(t, repo, "stranger")
	item := seedItem(t, repo, owner.ID, true)

	err := service.DeleteItem(context.Background(), item.ID, stranger.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))

	require.NoError(t, service.DeleteItem(context.Background(), item.ID, owner.ID))

	_, err = service.GetItem(context.Background(), item.ID, owner.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}
