package entity

import (
	"github.com/google/uuid"
)

type Item struct {
	Base
	OwnerID     uuid.UUID  `db:"owner_id"`
	Name        string     `db:"name"`
	Description string     `db:"description"`
	Available   bool       `db:"available"`
	RequestID   *uuid.UUID `db:"request_id"` // set when the item answers an item request
}
