package repository

import (
	"context"
	"fmt"

	"github.com/RoketV/share-it-project/internal/data/entity"
	"github.com/RoketV/share-it-project/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ItemRequestRepository interface {
	Create(ctx context.Context, request *entity.ItemRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.ItemRequest, error)
	FindAllByRequester(ctx context.Context, requesterID uuid.UUID) ([]*entity.ItemRequest, error)
	// FindAllExceptRequester lists other users' requests, newest first.
	FindAllExceptRequester(ctx context.Context, requesterID uuid.UUID, limit, offset int) ([]*entity.ItemRequest, error)
}

type itemRequestRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewItemRequestRepository(db database.PgxIface, log *zap.Logger) ItemRequestRepository {
	return &itemRequestRepository{
		db:  db,
		log: log.With(zap.String("repository", "item_request")),
	}
}

func (r *itemRequestRepository) Create(ctx context.Context, request *entity.ItemRequest) error {
	query := `
		INSERT INTO item_requests (id, requester_id, description, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.Exec(ctx, query,
		request.ID,
		request.RequesterID,
		request.Description,
		request.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create item request",
			zap.Error(err),
			zap.String("request_id", request.ID.String()),
		)
		return fmt.Errorf("create item request %s: %w", request.ID.String(), err)
	}

	return nil
}

func (r *itemRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ItemRequest, error) {
	query := `
		SELECT id, requester_id, description, created_at
		FROM item_requests
		WHERE id = $1
	`

	var request entity.ItemRequest
	err := r.db.QueryRow(ctx, query, id).Scan(
		&request.ID,
		&request.RequesterID,
		&request.Description,
		&request.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find item request by ID",
			zap.Error(err),
			zap.String("request_id", id.String()),
		)
		return nil, fmt.Errorf("find item request by ID %s: %w", id.String(), err)
	}

	return &request, nil
}

func (r *itemRequestRepository) FindAllByRequester(ctx context.Context, requesterID uuid.UUID) ([]*entity.ItemRequest, error) {
	query := `
		SELECT id, requester_id, description, created_at
		FROM item_requests
		WHERE requester_id = $1
		ORDER BY created_at DESC
	`

	return r.queryRequests(ctx, query, requesterID)
}

func (r *itemRequestRepository) FindAllExceptRequester(ctx context.Context, requesterID uuid.UUID, limit, offset int) ([]*entity.ItemRequest, error) {
	query := `
		SELECT id, requester_id, description, created_at
		FROM item_requests
		WHERE requester_id <> $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	return r.queryRequests(ctx, query, requesterID, limit, offset)
}

func (r *itemRequestRepository) queryRequests(ctx context.Context, query string, args ...any) ([]*entity.ItemRequest, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to query item requests", zap.Error(err))
		return nil, fmt.Errorf("query item requests: %w", err)
	}
	defer rows.Close()

	var requests []*entity.ItemRequest
	for rows.Next() {
		var request entity.ItemRequest
		err := rows.Scan(
			&request.ID,
			&request.RequesterID,
			&request.Description,
			&request.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan item request row", zap.Error(err))
			return nil, fmt.Errorf("scan item request row: %w", err)
		}
		requests = append(requests, &request)
	}

	return requests, nil
}
