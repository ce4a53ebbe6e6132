package dto

import (
	"time"

	"github.com/eventpass/attendance-service/internal/models"
)

type EventResponse struct {
	ID              uint               `json:"id"`
	Title           string             `json:"title"`
	Description     string             `json:"description"`
	Date            time.Time          `json:"date"`
	DurationMinutes int                `json:"duration_minutes"`
	Modality        models.Modality    `json:"modality"`
	Capacity        int                `json:"capacity"`
	Location        string             `json:"location,omitempty"`
	Link            string             `json:"link,omitempty"`
	Status          models.EventStatus `json:"status"`
	PresenterID     uint               `json:"presenter_id"`
	Materials       []string           `json:"materials,omitempty"`
	Requirements    string             `json:"requirements,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
}

type AssistanceResponse struct {
	ID          uint                    `json:"id"`
	EventID     uint                    `json:"event_id"`
	UserID      uint                    `json:"user_id"`
	Status      models.AssistanceStatus `json:"status"`
	CheckInCode string                  `json:"check_in_code"`
	CheckedInAt *time.Time              `json:"checked_in_at,omitempty"`
	CreatedAt   time.Time               `json:"created_at"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func ToEventResponse(e *models.Event) EventResponse {
	return EventResponse{
		ID:              e.ID,
		Title:           e.Title,
		Description:     e.Description,
		Date:            e.Date,
		DurationMinutes: e.DurationMinutes,
		Modality:        e.Modality,
		Capacity:        e.Capacity,
		Location:        e.Location,
		Link:            e.Link,
		Status:          e.Status,
		PresenterID:     e.PresenterID,
		Materials:       e.Materials,
		Requirements:    e.Requirements,
		CreatedAt:       e.CreatedAt,
	}
}

func ToAssistanceResponse(a *models.Assistance) AssistanceResponse {
	return AssistanceResponse{
		ID:          a.ID,
		EventID:     a.EventID,
		UserID:      a.UserID,
		Status:      a.Status,
		CheckInCode: a.CheckInCode,
		CheckedInAt: a.CheckedInAt,
		CreatedAt:   a.CreatedAt,
	}
}
