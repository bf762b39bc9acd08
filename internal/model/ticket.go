package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Ticket is a seat sold for a session.  UserID is the customer that
// bought it.  A seat is sold at most once per session; the table carries
// that as a unique constraint on every dialect.
type Ticket struct {
	bun.BaseModel `bun:"table:tickets,alias:t"`

	ID         uuid.UUID `bun:"id,pk,type:varchar(36)" json:"id"`
	UserID     uuid.UUID `bun:"user_id,notnull,type:varchar(36)" json:"user_id"`
	SeatNumber int       `bun:"seat_number,notnull,unique:tickets_session_seat" json:"seat_number" validate:"gt=0"`
	HalfPrice  bool      `bun:"half_price,notnull,default:false" json:"half_price"`
	SessionID  uuid.UUID `bun:"session_id,notnull,type:varchar(36),unique:tickets_session_seat" json:"session_id"`
	Session    *Session  `bun:"rel:belongs-to,join:session_id=id" json:"session,omitempty"`
	CreatedAt  time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}

// Update copies the editable fields of edited into t.
func (t *Ticket) Update(edited *Ticket) {
	t.SeatNumber = edited.SeatNumber
	t.HalfPrice = edited.HalfPrice
	t.SessionID = edited.SessionID
	t.Session = edited.Session
}
