package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusWaiting  BookingStatus = "WAITING"
	BookingStatusApproved BookingStatus = "APPROVED"
	BookingStatusRejected BookingStatus = "REJECTED"
)

// Booking is created in WAITING and moves to APPROVED or REJECTED by the
// item's owner. It never returns to WAITING.
type Booking struct {
	Base
	ItemID   uuid.UUID     `db:"item_id"`
	BookerID uuid.UUID     `db:"booker_id"`
	Start    time.Time     `db:"start_date"`
	End      time.Time     `db:"end_date"`
	Status   BookingStatus `db:"status"`
}
