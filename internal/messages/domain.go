package messages

import "time"

// Message is a note a user leaves about a rental.
type Message struct {
	ID        int64     `json:"id"`
	RentalID  int64     `json:"rental_id"`
	UserID    int64     `json:"user_id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
