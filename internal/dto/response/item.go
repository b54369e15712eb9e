package response

import (
	"github.com/RoketV/share-it-project/internal/data/entity"
)

// ItemResponse is the list/detail projection. LastBooking and NextBooking
// are populated only for the owner's own views; Comments only on the detail
// view.
type ItemResponse struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Available   bool                `json:"available"`
	RequestID   *string             `json:"request_id,omitempty"`
	LastBooking *BookingRefResponse `json:"last_booking,omitempty"`
	NextBooking *BookingRefResponse `json:"next_booking,omitempty"`
	Comments    []CommentResponse   `json:"comments,omitempty"`
}

func ItemToResponse(item *entity.Item) ItemResponse {
	resp := ItemResponse{
		ID:          item.ID.String(),
		Name:        item.Name,
		Description: item.Description,
		Available:   item.Available,
	}
	if item.RequestID != nil {
		requestID := item.RequestID.String()
		resp.RequestID = &requestID
	}
	return resp
}

func ItemsToResponses(items []*entity.Item) []ItemResponse {
	responses := make([]ItemResponse, len(items))
	for i, item := range items {
		responses[i] = ItemToResponse(item)
	}
	return responses
}
