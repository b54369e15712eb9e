package response

import (
	"time"

	"github.com/RoketV/share-it-project/internal/data/entity"
)

type CommentResponse struct {
	ID         string    `json:"id"`
	Text       string    `json:"text"`
	AuthorID   string    `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Created    time.Time `json:"created"`
}

func CommentToResponse(comment *entity.Comment, authorName string) CommentResponse {
	return CommentResponse{
		ID:         comment.ID.String(),
		Text:       comment.Text,
		AuthorID:   comment.AuthorID.String(),
		AuthorName: authorName,
		Created:    comment.CreatedAt,
	}
}
