package models

import "time"

// Professional represents a barber offering services through the platform.
type Professional struct {
	ID        string    `bson:"id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	Specialty string    `bson:"specialty" json:"specialty"` // e.g. "cuts", "beard", "coloring"
	Active    bool      `bson:"active" json:"active"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// BusinessHours defines the working window of a professional on one weekday.
// Times are minutes from midnight; a zero BreakEnd means no break.
type BusinessHours struct {
	ID             string    `bson:"id" json:"id"`
	ProfessionalID string    `bson:"professional_id" json:"professional_id"`
	Weekday        int       `bson:"weekday" json:"weekday"` // 0 = Sunday ... 6 = Saturday
	OpensAt        int       `bson:"opens_at" json:"opens_at"`
	ClosesAt       int       `bson:"closes_at" json:"closes_at"`
	BreakStart     int       `bson:"break_start,omitempty" json:"break_start,omitempty"`
	BreakEnd       int       `bson:"break_end,omitempty" json:"break_end,omitempty"`
	Active         bool      `bson:"active" json:"active"`
	UpdatedAt      time.Time `bson:"updated_at" json:"updated_at"`
}

// HasBreak reports whether a break window is configured.
func (bh BusinessHours) HasBreak() bool {
	return bh.BreakEnd > bh.BreakStart
}

// Holiday is a professional-scoped date exclusion.
type Holiday struct {
	ID             string    `bson:"id" json:"id"`
	ProfessionalID string    `bson:"professional_id" json:"professional_id"`
	Date           string    `bson:"date" json:"date"` // "YYYY-MM-DD"
	Reason         string    `bson:"reason" json:"reason"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
}
