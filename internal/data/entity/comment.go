package entity

import (
	"github.com/google/uuid"
)

type Comment struct {
	BaseSimple
	ItemID   uuid.UUID `db:"item_id"`
	AuthorID uuid.UUID `db:"author_id"`
	Text     string    `db:"text"`
}
