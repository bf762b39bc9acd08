// Package queue defines message payloads exchanged over the message broker
// together with the publishers and consumers that carry them.
package queue

import (
	"fmt"
	"strconv"
)

// TicketPurchasedQueue is the RabbitMQ queue (and default Kafka topic) that
// carries TicketPurchasedEvent messages.
const TicketPurchasedQueue = "tickets.purchased"

// TicketPurchasedEvent is published after a ticket purchase commits.  It
// contains enough information for downstream consumers to log or notify
// without querying the primary database.
type TicketPurchasedEvent struct {
	TicketID    string `json:"ticket_id"`
	UserID      string `json:"user_id"`
	SessionID   string `json:"session_id"`
	MovieTitle  string `json:"movie_title"`
	RoomNumber  int    `json:"room_number"`
	SeatNumber  int    `json:"seat_number"`
	HalfPrice   bool   `json:"half_price"`
	StartsAt    string `json:"starts_at"`
	PurchasedAt string `json:"purchased_at"`
}

// LogLine renders the event as a single human-friendly line.
func (ev TicketPurchasedEvent) LogLine() string {
	return fmt.Sprintf("[%s] Ticket purchased | ticket_id=%s | user_id=%s | session_id=%s | movie=%s | room=%d | seat=%d | half_price=%t | starts_at=%s\n",
		ev.PurchasedAt, ev.TicketID, ev.UserID, ev.SessionID, strconv.Quote(ev.MovieTitle), ev.RoomNumber, ev.SeatNumber, ev.HalfPrice, ev.StartsAt)
}
