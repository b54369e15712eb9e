package entity

import (
	"github.com/google/uuid"
)

type ItemRequest struct {
	BaseSimple
	RequesterID uuid.UUID `db:"requester_id"`
	Description string    `db:"description"`
}
