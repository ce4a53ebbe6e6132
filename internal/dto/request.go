package dto

import "time"

type CreateEventRequest struct {
	Title           string    `json:"title" validate:"required"`
	Description     string    `json:"description"`
	Date            time.Time `json:"date" validate:"required"`
	DurationMinutes int       `json:"duration_minutes" validate:"gt=0"`
	Modality        string    `json:"modality" validate:"required,oneof=in-person online hybrid"`
	Capacity        int       `json:"capacity" validate:"gte=0"`
	Location        string    `json:"location"`
	Link            string    `json:"link"`
	Materials       []string  `json:"materials"`
	Requirements    string    `json:"requirements"`
}

type UpdateEventRequest struct {
	Title           *string    `json:"title,omitempty"`
	Description     *string    `json:"description,omitempty"`
	Date            *time.Time `json:"date,omitempty"`
	DurationMinutes *int       `json:"duration_minutes,omitempty" validate:"omitempty,gt=0"`
	Modality        *string    `json:"modality,omitempty" validate:"omitempty,oneof=in-person online hybrid"`
	Location        *string    `json:"location,omitempty"`
	Link            *string    `json:"link,omitempty"`
	Capacity        *int       `json:"capacity,omitempty" validate:"omitempty,gte=0"`
	Materials       *[]string  `json:"materials,omitempty"`
	Requirements    *string    `json:"requirements,omitempty"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}
