package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/eventpass/attendance-service/internal/models"
	"github.com/eventpass/attendance-service/internal/repository"
	"github.com/eventpass/attendance-service/monitoring"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AdmissionService decides whether a user may register for an event and
// produces the resulting registration record.
type AdmissionService interface {
	Register(ctx context.Context, eventID, userID uint) (*models.Assistance, error)
}

type admissionService struct {
	assistanceRepo repository.AssistanceRepository
	eventRepo      repository.EventRepository
	logger         *slog.Logger
}

func NewAdmissionService(assistanceRepo repository.AssistanceRepository, eventRepo repository.EventRepository, logger *slog.Logger) AdmissionService {
	return &admissionService{
		assistanceRepo: assistanceRepo,
		eventRepo:      eventRepo,
		logger:         logger,
	}
}

// registerLookupStatuses is the set of prior-record statuses admission cares
// about. A rejected record neither blocks a new registration nor is revived.
var registerLookupStatuses = []models.AssistanceStatus{
	models.StatusPending,
	models.StatusApproved,
	models.StatusAttended,
	models.StatusCancelled,
}

func (s *admissionService) Register(ctx context.Context, eventID, userID uint) (*models.Assistance, error) {
	var (
		result  *models.Assistance
		revived bool
	)

	err := s.assistanceRepo.Transaction(ctx, func(tx *gorm.DB) error {
		// Lock the event row so concurrent registrations for the same
		// event serialize; the capacity count below is then exact.
		event, err := s.eventRepo.FindByIDForUpdate(ctx, tx, eventID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return err
		}

		if event.Date.Before(time.Now()) {
			return ErrEventAlreadyOccurred
		}

		existing, err := s.assistanceRepo.FindByUserAndEvent(ctx, tx, eventID, userID, registerLookupStatuses)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if existing != nil {
			if existing.Status != models.StatusCancelled {
				return ErrAlreadyRegistered
			}
			// Revive the cancelled record in place instead of creating
			// a duplicate row for the same (event, user) pair.
			existing.Status = models.StatusPending
			if err := s.assistanceRepo.Save(ctx, tx, existing); err != nil {
				return err
			}
			result = existing
			revived = true
			return nil
		}

		if event.CapacityLimited() {
			count, err := s.assistanceRepo.CountByStatusIn(ctx, tx, eventID, models.ActiveStatuses)
			if err != nil {
				return err
			}
			if count >= int64(event.Capacity) {
				return ErrCapacityExceeded
			}
		}

		assistance := &models.Assistance{
			EventID:     eventID,
			UserID:      userID,
			Status:      models.StatusPending,
			CheckInCode: uuid.NewString(),
		}
		if err := s.assistanceRepo.Create(ctx, tx, assistance); err != nil {
			return err
		}
		result = assistance
		return nil
	})

	if err != nil {
		monitoring.RecordRegistration(admissionOutcome(err))
		return nil, err
	}

	s.logger.Info("registration admitted",
		"assistance_id", result.ID,
		"event_id", eventID,
		"user_id", userID,
		"revived", revived,
	)
	monitoring.RecordRegistration("admitted")
	return result, nil
}

func admissionOutcome(err error) string {
	switch {
	case errors.Is(err, ErrCapacityExceeded):
		return "capacity_exceeded"
	case errors.Is(err, ErrAlreadyRegistered):
		return "duplicate"
	case errors.Is(err, ErrEventAlreadyOccurred):
		return "event_occurred"
	case errors.Is(err, ErrEventNotFound):
		return "event_not_found"
	default:
		return "error"
	}
}
