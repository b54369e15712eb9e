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

type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Item, error)
	FindAllByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*entity.Item, error)
	Update(ctx context.Context, item *entity.Item) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Search matches available items by name or description, case-insensitive.
	Search(ctx context.Context, text string, limit, offset int) ([]*entity.Item, error)
	FindByRequestID(ctx context.Context, requestID uuid.UUID) ([]*entity.Item, error)
	FindAllWithRequest(ctx context.Context) ([]*entity.Item, error)
}

type itemRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewItemRepository(db database.PgxIface, log *zap.Logger) ItemRepository {
	return &itemRepository{
		db:  db,
		log: log.With(zap.String("repository", "item")),
	}
}

const itemColumns = `id, owner_id, name, description, available, request_id, created_at, updated_at`

func (r *itemRepository) Create(ctx context.Context, item *entity.Item) error {
	query := `
		INSERT INTO items (id, owner_id, name, description, available, request_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		item.ID,
		item.OwnerID,
		item.Name,
		item.Description,
		item.Available,
		item.RequestID,
		item.CreatedAt,
		item.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create item",
			zap.Error(err),
			zap.String("item_id", item.ID.String()),
			zap.String("owner_id", item.OwnerID.String()),
		)
		return fmt.Errorf("create item %s: %w", item.ID.String(), err)
	}

	return nil
}

func (r *itemRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Item, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM items
		WHERE id = $1
	`

	var item entity.Item
	err := r.db.QueryRow(ctx, query, id).Scan(
		&item.ID,
		&item.OwnerID,
		&item.Name,
		&item.Description,
		&item.Available,
		&item.RequestID,
		&item.CreatedAt,
		&item.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find item by ID",
			zap.Error(err),
			zap.String("item_id", id.String()),
		)
		return nil, fmt.Errorf("find item by ID %s: %w", id.String(), err)
	}

	return &item, nil
}

func (r *itemRepository) FindAllByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*entity.Item, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM items
		WHERE owner_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	return r.queryItems(ctx, query, ownerID, limit, offset)
}

func (r *itemRepository) Update(ctx context.Context, item *entity.Item) error {
	query := `
		UPDATE items
		SET name = $2, description = $3, available = $4, updated_at = $5
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		item.ID,
		item.Name,
		item.Description,
		item.Available,
		item.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update item",
			zap.Error(err),
			zap.String("item_id", item.ID.String()),
		)
		return fmt.Errorf("update item %s: %w", item.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("item %s not found", item.ID.String())
	}

	return nil
}

func (r *itemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM items WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete item",
			zap.Error(err),
			zap.String("item_id", id.String()),
		)
		return fmt.Errorf("delete item %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("item %s not found", id.String())
	}

	r.log.Info("Item deleted", zap.String("item_id", id.String()))
	return nil
}

func (r *itemRepository) Search(ctx context.Context, text string, limit, offset int) ([]*entity.Item, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM items
		WHERE available = TRUE
		  AND (name ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%')
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	return r.queryItems(ctx, query, text, limit, offset)
}

func (r *itemRepository) FindByRequestID(ctx context.Context, requestID uuid.UUID) ([]*entity.Item, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM items
		WHERE request_id = $1
		ORDER BY created_at DESC
	`

	return r.queryItems(ctx, query, requestID)
}

func (r *itemRepository) FindAllWithRequest(ctx context.Context) ([]*entity.Item, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM items
		WHERE request_id IS NOT NULL
		ORDER BY created_at DESC
	`

	return r.queryItems(ctx, query)
}

func (r *itemRepository) queryItems(ctx context.Context, query string, args ...any) ([]*entity.Item, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to query items", zap.Error(err))
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()

	var items []*entity.Item
	for rows.Next() {
		var item entity.Item
		err := rows.Scan(
			&item.ID,
			&item.OwnerID,
			&item.Name,
			&item.Description,
			&item.Available,
			&item.RequestID,
			&item.CreatedAt,
			&item.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan item row", zap.Error(err))
			return nil, fmt.Errorf("scan item row: %w", err)
		}
		items = append(items, &item)
	}

	return items, nil
}
