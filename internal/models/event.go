package models

import "time"

type EventStatus string

const (
	EventScheduled EventStatus = "scheduled"
	EventOngoing   EventStatus = "ongoing"
	EventCompleted EventStatus = "completed"
)

type Modality string

const (
	ModalityInPerson Modality = "in-person"
	ModalityOnline   Modality = "online"
	ModalityHybrid   Modality = "hybrid"
)

type Event struct {
	ID              uint        `gorm:"primaryKey" json:"id"`
	Title           string      `gorm:"not null" json:"title"`
	Description     string      `json:"description"`
	Date            time.Time   `gorm:"not null" json:"date"`
	DurationMinutes int         `gorm:"not null" json:"duration_minutes"`
	Modality        Modality    `gorm:"type:varchar(20);not null" json:"modality"`
	Capacity        int         `json:"capacity"` // 0 = unlimited
	Location        string      `json:"location"`
	Link            string      `json:"link"`
	Status          EventStatus `gorm:"type:varchar(20);not null;default:'scheduled'" json:"status"`
	PresenterID     uint        `gorm:"not null" json:"presenter_id"`
	Materials       []string    `gorm:"serializer:json" json:"materials"`
	Requirements    string      `json:"requirements"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// CapacityLimited reports whether admission control must enforce the
// capacity cap. Online events are never capacity-limited.
func (e *Event) CapacityLimited() bool {
	return e.Modality != ModalityOnline && e.Capacity > 0
}
