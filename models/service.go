package models

import "time"

// Service is a catalogue entry (e.g. "Haircut", "Beard trim").
type Service struct {
	ID        string    `bson:"id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Category  string    `bson:"category" json:"category"`
	Active    bool      `bson:"active" json:"active"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// ServiceOffering binds a service to a professional with their own price and
// duration. Duration must be a positive multiple of the slot granularity.
type ServiceOffering struct {
	ID              string    `bson:"id" json:"id"`
	ProfessionalID  string    `bson:"professional_id" json:"professional_id"`
	ServiceID       string    `bson:"service_id" json:"service_id"`
	Price           float64   `bson:"price" json:"price"`
	DurationMinutes int       `bson:"duration_minutes" json:"duration_minutes"`
	Active          bool      `bson:"active" json:"active"`
	UpdatedAt       time.Time `bson:"updated_at" json:"updated_at"`
}
