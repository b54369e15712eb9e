package response

import (
	"time"

	"github.com/RoketV/share-it-project/internal/data/entity"
)

type ItemRequestResponse struct {
	ID          string         `json:"id"`
	Description string         `json:"description"`
	Created     time.Time      `json:"created"`
	Items       []ItemResponse `json:"items"`
}

func ItemRequestToResponse(request *entity.ItemRequest, items []*entity.Item) ItemRequestResponse {
	itemResponses := ItemsToResponses(items)
	if itemResponses == nil {
		itemResponses = []ItemResponse{}
	}
	return ItemRequestResponse{
		ID:          request.ID.String(),
		Description: request.Description,
		Created:     request.CreatedAt,
		Items:       itemResponses,
	}
}
