package repository

import (
	"context"
	"fmt"

	"github.com/RoketV/share-it-project/internal/data/entity"
	"github.com/RoketV/share-it-project/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *entity.Comment) error
	FindAllByItem(ctx context.Context, itemID uuid.UUID) ([]*entity.Comment, error)
}

type commentRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCommentRepository(db database.PgxIface, log *zap.Logger) CommentRepository {
	return &commentRepository{
		db:  db,
		log: log.With(zap.String("repository", "comment")),
	}
}

func (r *commentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	query := `
		INSERT INTO comments (id, item_id, author_id, text, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		comment.ID,
		comment.ItemID,
		comment.AuthorID,
		comment.Text,
		comment.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create comment",
			zap.Error(err),
			zap.String("comment_id", comment.ID.String()),
			zap.String("item_id", comment.ItemID.String()),
		)
		return fmt.Errorf("create comment %s: %w", comment.ID.String(), err)
	}

	return nil
}

func (r *commentRepository) FindAllByItem(ctx context.Context, itemID uuid.UUID) ([]*entity.Comment, error) {
	query := `
		SELECT id, item_id, author_id, text, created_at
		FROM comments
		WHERE item_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, itemID)
	if err != nil {
		r.log.Error("Failed to query comments",
			zap.Error(err),
			zap.String("item_id", itemID.String()),
		)
		return nil, fmt.Errorf("query comments for item %s: %w", itemID.String(), err)
	}
	defer rows.Close()

	var comments []*entity.Comment
	for rows.Next() {
		var comment entity.Comment
		err := rows.Scan(
			&comment.ID,
			&comment.ItemID,
			&comment.AuthorID,
			&comment.Text,
			&comment.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan comment row", zap.Error(err))
			return nil, fmt.Errorf("scan comment row: %w", err)
		}
		comments = append(comments, &comment)
	}

	return comments, nil
}
