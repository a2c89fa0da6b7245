package models

import "time"

// Event is a club event. Date and time are free-text fields rendered as-is;
// attendees is the set of member ids who joined.
type Event struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Location    string    `json:"location"`
	Image       string    `gorm:"type:text" json:"image"`
	Attendees   IDSet     `gorm:"serializer:json" json:"attendees"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
