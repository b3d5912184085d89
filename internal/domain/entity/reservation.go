package entity

import (
	"time"
)

// Reservation represents a confirmed table booking, keyed by phone number
type Reservation struct {
	ID        string    `bson:"_id,omitempty" gorm:"-"`
	Name      string    `bson:"name"`
	Phone     string    `bson:"phone"`
	Date      string    `bson:"date"` // YYYY-MM-DD when parseable, original text otherwise
	Time      string    `bson:"time"` // clock text, e.g. "6:00 PM"
	Guests    int       `bson:"guests"`
	CreatedAt time.Time `bson:"createdAt"`
}
