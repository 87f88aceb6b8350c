package rentals

import "time"

// Rental represents a property listing.
type Rental struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Surface     float64   `json:"surface"`
	Price       float64   `json:"price"`
	Picture     string    `json:"picture,omitempty"`
	Description string    `json:"description"`
	OwnerID     int64     `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
