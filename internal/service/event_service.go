package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/eventpass/attendance-service/internal/mailer"
	"github.com/eventpass/attendance-service/internal/models"
	"github.com/eventpass/attendance-service/internal/repository"
	"github.com/eventpass/attendance-service/monitoring"
	"github.com/eventpass/attendance-service/pkg/rabbitmq"
	"gorm.io/gorm"
)

// EventUpdate is a partial event patch; nil fields are left untouched.
type EventUpdate struct {
	Title           *string
	Description     *string
	Date            *time.Time
	DurationMinutes *int
	Modality        *models.Modality
	Location        *string
	Link            *string
	Capacity        *int
	Materials       *[]string
	Requirements    *string
}

// EventService drives the event lifecycle. Start and complete transitions
// notify active registrants before the status flip and abort on dispatch
// failure; updates notify after the write and tolerate dispatch failure.
type EventService interface {
	CreateEvent(ctx context.Context, event *models.Event) error
	GetEvent(ctx context.Context, id uint) (*models.Event, error)
	ListEvents(ctx context.Context) ([]models.Event, error)
	StartEvent(ctx context.Context, id uint) (*models.Event, error)
	CompleteEvent(ctx context.Context, id uint) (*models.Event, error)
	UpdateEvent(ctx context.Context, id uint, patch EventUpdate) (*models.Event, error)
}

type eventService struct {
	eventRepo      repository.EventRepository
	assistanceRepo repository.AssistanceRepository
	mailer         mailer.Mailer
	publisher      *rabbitmq.Publisher
	logger         *slog.Logger
}

func NewEventService(eventRepo repository.EventRepository, assistanceRepo repository.AssistanceRepository, m mailer.Mailer, publisher *rabbitmq.Publisher, logger *slog.Logger) EventService {
	return &eventService{
		eventRepo:      eventRepo,
		assistanceRepo: assistanceRepo,
		mailer:         m,
		publisher:      publisher,
		logger:         logger,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, event *models.Event) error {
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	s.publish("event.created", event)
	return nil
}

func (s *eventService) GetEvent(ctx context.Context, id uint) (*models.Event, error) {
	event, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return event, nil
}

func (s *eventService) ListEvents(ctx context.Context) ([]models.Event, error) {
	return s.eventRepo.FindAll(ctx)
}

// StartEvent moves the event to ongoing. The notification goes out first and
// a dispatch failure aborts the transition: the status write is the last
// step, so a failed fan-out leaves the event scheduled.
func (s *eventService) StartEvent(ctx context.Context, id uint) (*models.Event, error) {
	return s.transition(ctx, id, models.EventOngoing, "event.started",
		func(title string) (string, string) {
			return fmt.Sprintf("Event started: %s", title),
				fmt.Sprintf("<p>The event <strong>%s</strong> has started. See you there!</p>", title)
		})
}

// CompleteEvent moves the event to completed with the same failure semantics
// as StartEvent.
func (s *eventService) CompleteEvent(ctx context.Context, id uint) (*models.Event, error) {
	return s.transition(ctx, id, models.EventCompleted, "event.completed",
		func(title string) (string, string) {
			return fmt.Sprintf("Event completed: %s", title),
				fmt.Sprintf("<p>The event <strong>%s</strong> has ended. Thank you for attending!</p>", title)
		})
}

func (s *eventService) transition(ctx context.Context, id uint, status models.EventStatus, routingKey string, template func(title string) (subject, body string)) (*models.Event, error) {
	event, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	subject, body := template(event.Title)
	if err := s.notifyActiveRegistrants(ctx, event, routingKey, subject, body); err != nil {
		monitoring.RecordNotification(routingKey, "failed")
		return nil, fmt.Errorf("notify registrants: %w", err)
	}

	event.Status = status
	if err := s.eventRepo.Save(ctx, event); err != nil {
		return nil, err
	}

	s.logger.Info("event transitioned", "event_id", event.ID, "status", event.Status)
	s.publish(routingKey, event)
	return event, nil
}

// UpdateEvent applies the patch and then notifies active registrants. Unlike
// start/complete, a dispatch failure here is logged and swallowed: the update
// itself stands.
func (s *eventService) UpdateEvent(ctx context.Context, id uint, patch EventUpdate) (*models.Event, error) {
	event, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	applyPatch(event, patch)
	if err := s.eventRepo.Save(ctx, event); err != nil {
		return nil, err
	}

	subject := fmt.Sprintf("Event updated: %s", event.Title)
	body := fmt.Sprintf("<p>The event <strong>%s</strong> has been updated. Please review the new details.</p>", event.Title)
	if err := s.notifyActiveRegistrants(ctx, event, "event.updated", subject, body); err != nil {
		monitoring.RecordNotification("event.updated", "failed")
		s.logger.Warn("update notification failed", "event_id", event.ID, "error", err)
	}

	s.publish("event.updated", event)
	return event, nil
}

// notifyActiveRegistrants fans one bulk mail out to the deduplicated emails
// of approved and attended registrants. Pending registrants are excluded.
// No registrants means no mail and no error.
func (s *eventService) notifyActiveRegistrants(ctx context.Context, event *models.Event, kind, subject, body string) error {
	emails, err := s.assistanceRepo.ActiveRegistrantEmails(ctx, event.ID)
	if err != nil {
		return err
	}
	emails = dedupe(emails)
	if len(emails) == 0 {
		return nil
	}

	if err := s.mailer.Send(emails, subject, body); err != nil {
		return err
	}
	monitoring.RecordNotification(kind, "sent")
	s.logger.Info("registrants notified", "event_id", event.ID, "recipients", len(emails))
	return nil
}

func (s *eventService) publish(routingKey string, event *models.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(routingKey, event); err != nil {
		s.logger.Warn("publish failed", "routing_key", routingKey, "error", err)
	}
}

func applyPatch(event *models.Event, patch EventUpdate) {
	if patch.Title != nil {
		event.Title = *patch.Title
	}
	if patch.Description != nil {
		event.Description = *patch.Description
	}
	if patch.Date != nil {
		event.Date = *patch.Date
	}
	if patch.DurationMinutes != nil {
		event.DurationMinutes = *patch.DurationMinutes
	}
	if patch.Modality != nil {
		event.Modality = *patch.Modality
	}
	if patch.Location != nil {
		event.Location = *patch.Location
	}
	if patch.Link != nil {
		event.Link = *patch.Link
	}
	if patch.Capacity != nil {
		event.Capacity = *patch.Capacity
	}
	if patch.Materials != nil {
		event.Materials = *patch.Materials
	}
	if patch.Requirements != nil {
		event.Requirements = *patch.Requirements
	}
}

func dedupe(emails []string) []string {
	seen := make(map[string]struct{}, len(emails))
	out := emails[:0]
	for _, e := range emails {
		if _, ok := seen[e]; ok {
			continue
		}
		seen[e] = struct{}{}
		out = append(out, e)
	}
	return out
}
