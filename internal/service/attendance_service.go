package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/eventpass/attendance-service/internal/models"
	"github.com/eventpass/attendance-service/internal/repository"
	"github.com/eventpass/attendance-service/monitoring"
	"gorm.io/gorm"
)

// AttendanceService enforces the status transitions of an existing
// registration. CheckIn carries no caller-identity check on purpose: the
// public QR route and the role-gated route both land here, and which callers
// may reach it is decided by the routing layer.
type AttendanceService interface {
	Cancel(ctx context.Context, assistanceID, requestingUserID uint) (*models.Assistance, error)
	CheckIn(ctx context.Context, assistanceID uint) (*models.Assistance, error)
	CheckInByCode(ctx context.Context, code string) (*models.Assistance, error)
	UpdateStatus(ctx context.Context, assistanceID uint, status models.AssistanceStatus) (*models.Assistance, error)
	GetAssistance(ctx context.Context, id uint) (*models.Assistance, error)
	ListByEvent(ctx context.Context, eventID uint, status *models.AssistanceStatus) ([]models.Assistance, error)
}

type attendanceService struct {
	assistanceRepo repository.AssistanceRepository
	logger         *slog.Logger
}

func NewAttendanceService(assistanceRepo repository.AssistanceRepository, logger *slog.Logger) AttendanceService {
	return &attendanceService{assistanceRepo: assistanceRepo, logger: logger}
}

// Cancel marks the registration cancelled. Only the owning user may cancel.
// An attended registration can still be cancelled; cancellation is not a
// guarded transition.
func (s *attendanceService) Cancel(ctx context.Context, assistanceID, requestingUserID uint) (*models.Assistance, error) {
	assistance, err := s.assistanceRepo.FindByID(ctx, assistanceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssistanceNotFound
		}
		return nil, err
	}

	if assistance.UserID != requestingUserID {
		return nil, ErrForbidden
	}

	assistance.Status = models.StatusCancelled
	if err := s.assistanceRepo.Save(ctx, nil, assistance); err != nil {
		return nil, err
	}

	s.logger.Info("registration cancelled",
		"assistance_id", assistance.ID,
		"event_id", assistance.EventID,
		"user_id", assistance.UserID,
	)
	return assistance, nil
}

// CheckIn sets the registration to attended and stamps the check-in time.
// Repeat calls are not an error: the status stays attended and the timestamp
// moves forward to the latest call. A cancelled registration is rejected; a
// stale QR code must not re-occupy a capacity slot without readmission.
func (s *attendanceService) CheckIn(ctx context.Context, assistanceID uint) (*models.Assistance, error) {
	assistance, err := s.assistanceRepo.FindByID(ctx, assistanceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssistanceNotFound
		}
		return nil, err
	}
	return s.checkIn(ctx, assistance, "id")
}

// CheckInByCode is the QR entry point: the scanned payload is the
// registration's check-in code.
func (s *attendanceService) CheckInByCode(ctx context.Context, code string) (*models.Assistance, error) {
	assistance, err := s.assistanceRepo.FindByCheckInCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssistanceNotFound
		}
		return nil, err
	}
	return s.checkIn(ctx, assistance, "code")
}

func (s *attendanceService) checkIn(ctx context.Context, assistance *models.Assistance, method string) (*models.Assistance, error) {
	if assistance.Status == models.StatusCancelled {
		return nil, ErrCancelledRegistration
	}

	now := time.Now()
	assistance.Status = models.StatusAttended
	assistance.CheckedInAt = &now
	if err := s.assistanceRepo.Save(ctx, nil, assistance); err != nil {
		return nil, err
	}

	s.logger.Info("registration checked in",
		"assistance_id", assistance.ID,
		"event_id", assistance.EventID,
		"method", method,
	)
	monitoring.RecordCheckIn(method)
	return assistance, nil
}

// UpdateStatus is the generic setter used for approval and rejection.
// A cancelled registration is terminal here; revival goes through the
// admission path instead.
func (s *attendanceService) UpdateStatus(ctx context.Context, assistanceID uint, status models.AssistanceStatus) (*models.Assistance, error) {
	if !models.ValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	assistance, err := s.assistanceRepo.FindByID(ctx, assistanceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssistanceNotFound
		}
		return nil, err
	}

	if assistance.Status == models.StatusCancelled {
		return nil, ErrCancelledRegistration
	}

	assistance.Status = status
	if status == models.StatusAttended {
		now := time.Now()
		assistance.CheckedInAt = &now
	}
	if err := s.assistanceRepo.Save(ctx, nil, assistance); err != nil {
		return nil, err
	}

	s.logger.Info("registration status updated",
		"assistance_id", assistance.ID,
		"event_id", assistance.EventID,
		"status", assistance.Status,
	)
	return assistance, nil
}

func (s *attendanceService) GetAssistance(ctx context.Context, id uint) (*models.Assistance, error) {
	assistance, err := s.assistanceRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssistanceNotFound
		}
		return nil, err
	}
	return assistance, nil
}

func (s *attendanceService) ListByEvent(ctx context.Context, eventID uint, status *models.AssistanceStatus) ([]models.Assistance, error) {
	return s.assistanceRepo.FindByEventID(ctx, eventID, status)
}
