package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/eventpass/attendance-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func upcomingEvent() *models.Event {
	return &models.Event{
		ID:       1,
		Title:    "Go Meetup Doha",
		Date:     time.Now().Add(24 * time.Hour),
		Modality: models.ModalityInPerson,
		Capacity: 1,
		Status:   models.EventScheduled,
	}
}

func TestRegister_Success(t *testing.T) {
	event := upcomingEvent()
	event.Capacity = 10

	assistRepo := &mockAssistanceRepo{
		createFn: func(ctx context.Context, a *models.Assistance) error {
			a.ID = 42
			return nil
		},
	}
	eventRepo := &mockEventRepo{
		findFn: func(ctx context.Context, id uint) (*models.Event, error) { return event, nil },
	}

	svc := NewAdmissionService(assistRepo, eventRepo, testLogger())
	assistance, err := svc.Register(context.Background(), 1, 7)

	require.NoError(t, err)
	assert.Equal(t, uint(42), assistance.ID)
	assert.Equal(t, models.StatusPending, assistance.Status)
	assert.Equal(t, uint(7), assistance.UserID)
	assert.NotEmpty(t, assistance.CheckInCode)
}

func TestRegister_EventNotFound(t *testing.T) {
	assistRepo := &mockAssistanceRepo{}
	eventRepo := &mockEventRepo{
		findFn: func(ctx context.Context, id uint) (*models.Event, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}

	svc := NewAdmissionService(assistRepo, eventRepo, testLogger())
	_, err := svc.Register(context.Background(), 999, 7)

	assert.ErrorIs(t, err, ErrEventNotFound)
}

// Registering for an event whose date has passed fails regardless of capacity.
func TestRegister_PastEvent(t *testing.T) {
	event := upcomingEvent()
	event.Date = time.Now().Add(-1 * time.Hour)
	event.Capacity = 0 // unlimited, still rejected

	eventRepo := &mockEventRepo{
		findFn: func(ctx context.Context, id uint) (*models.Event, error) { return event, nil },
	}

	svc := NewAdmissionService(&mockAssistanceRepo{}, eventRepo, testLogger())
	_, err := svc.Register(context.Background(), 1, 7)

	assert.ErrorIs(t, err, ErrEventAlreadyOccurred)
}

func TestRegister_AlreadyRegistered(t *testing.T) {
	event := upcomingEvent()
	eventRepo := &mockEventRepo{
		findFn: func(ctx context.Context, id uint) (*models.Event, error) { return event, nil },
	}
	assistRepo := &mockAssistanceRepo{
		findByUserEventFn: func(ctx context.Context, eventID, userID uint, statuses []models.AssistanceStatus) (*models.Assistance, error) {
			return &models.Assistance{ID: 5, EventID: eventID, UserID: userID, Status: models.StatusApproved}, nil
		},
	}

	svc := NewAdmissionService(assistRepo, eventRepo, testLogger())
	_, err := svc.Register(context.Background(), 1, 7)

	assert.ErrorIs(t, err, ErrAlreadyRegistered)
}

// Cancelling then re-registering revives the original record instead of
// creating a new one.
func TestRegister_RevivesCancelledRecord(t *testing.T) {
	event := upcomingEvent()
	cancelled := &models.Assistance{
		ID:          5,
		EventID:     1,
		UserID:      7,
		Status:      models.StatusCancelled,
		CheckInCode: "keep-me",
	}

	var created, saved bool
	eventRepo := &mockEventRepo{
		findFn: func(ctx context.Context, id uint) (*models.Event, error) { return event, nil },
	}
	assistRepo := &mockAssistanceRepo{
		findByUserEventFn: func(ctx context.Context, eventID, userID uint, statuses []models.AssistanceStatus) (*models.Assistance, error) {
			return cancelled, nil
		},
		createFn: func(ctx context.Context, a *models.Assistance) error {
			created = true
			return nil
		},
		saveFn: func(ctx context.Context, a *models.Assistance) error {
			saved = true
			return nil
		},
	}

	svc := NewAdmissionService(assistRepo, eventRepo, testLogger())
	assistance, err := svc.Register(context.Background(), 1, 7)

	require.NoError(t, err)
	assert.True(t, saved, "revival must update the existing record")
	assert.False(t, created, "revival must not create a new record")
	assert.Equal(t, uint(5), assistance.ID)
	assert.Equal(t, models.StatusPending, assistance.Status)
	assert.Equal(t, "keep-me", assistance.CheckInCode)
}

// Revival skips the capacity check entirely: the record already holds a slot's
// history and is reactivated even at capacity.
func TestRegister_RevivalBypassesCapacityCount(t *testing.T) {
	event := upcomingEvent() // capacity 1
	counted := false

	eventRepo := &mockEventRepo{
		findFn: func(ctx context.Context, id uint) (*models.Event, error) { return event, nil },
	}
	assistRepo := &mockAssistanceRepo{
		findByUserEventFn: func(ctx context.Context, eventID, userID uint, statuses []models.AssistanceStatus) (*models.Assistance, error) {
			return &models.Assistance{ID: 5, EventID: 1, UserID: 7, Status: models.StatusCancelled}, nil
		},
		countFn: func(ctx context.Context, eventID uint, statuses []models.AssistanceStatus) (int64, error) {
			counted = true
			return 1, nil
		},
	}

	svc := NewAdmissionService(assistRepo, eventRepo, testLogger())
	_, err := svc.Register(context.Background(), 1, 7)

	require.NoError(t, err)
	assert.False(t, counted)
}

func TestRegister_CapacityExceeded(t *testing.T) {
	event := upcomingEvent() // in-person, capacity 1
	eventRepo := &mockEventRepo{
		findFn: func(ctx context.Context, id uint) (*models.Event, error) { return event, nil },
	}
	assistRepo := &mockAssistanceRepo{
		countFn: func(ctx context.Context, eventID uint, statuses []models.AssistanceStatus) (int64, error) {
			assert.ElementsMatch(t, models.ActiveStatuses, statuses)
			return 1, nil
		},
	}

	svc := NewAdmissionService(assistRepo, eventRepo, testLogger())
	_, err := svc.Register(context.Background(), 1, 8)

	assert.ErrorIs(t, err, ErrCapacityExceeded)
}

// Online events are never capacity-limited, whatever the capacity field says.
func TestRegister_OnlineEventIgnoresCapacity(t *testing.T) {
	event := upcomingEvent()
	event.Modality = models.ModalityOnline
	event.Capacity = 1

	eventRepo := &mockEventRepo{
		findFn: func(ctx context.Context, id uint) (*models.Event, error) { return event, nil },
	}
	assistRepo := &mockAssistanceRepo{
		countFn: func(ctx context.Context, eventID uint, statuses []models.AssistanceStatus) (int64, error) {
			return 500, nil
		},
	}

	svc := NewAdmissionService(assistRepo, eventRepo, testLogger())
	assistance, err := svc.Register(context.Background(), 1, 9)

	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, assistance.Status)
}

// A prior rejected record neither blocks nor is revived: the lookup set
// excludes rejected, so a fresh record is created.
func TestRegister_AfterRejectionCreatesNewRecord(t *testing.T) {
	event := upcomingEvent()
	event.Capacity = 10

	eventRepo := &mockEventRepo{
		findFn: func(ctx context.Context, id uint) (*models.Event, error) { return event, nil },
	}
	assistRepo := &mockAssistanceRepo{
		findByUserEventFn: func(ctx context.Context, eventID, userID uint, statuses []models.AssistanceStatus) (*models.Assistance, error) {
			assert.NotContains(t, statuses, models.StatusRejected)
			return nil, gorm.ErrRecordNotFound
		},
		createFn: func(ctx context.Context, a *models.Assistance) error {
			a.ID = 99
			return nil
		},
	}

	svc := NewAdmissionService(assistRepo, eventRepo, testLogger())
	assistance, err := svc.Register(context.Background(), 1, 7)

	require.NoError(t, err)
	assert.Equal(t, uint(99), assistance.ID)
}

func TestRegister_StoreErrorPassesThrough(t *testing.T) {
	event := upcomingEvent()
	storeErr := errors.New("connection reset")

	eventRepo := &mockEventRepo{
		findFn: func(ctx context.Context, id uint) (*models.Event, error) { return event, nil },
	}
	assistRepo := &mockAssistanceRepo{
		findByUserEventFn: func(ctx context.Context, eventID, userID uint, statuses []models.AssistanceStatus) (*models.Assistance, error) {
			return nil, storeErr
		},
	}

	svc := NewAdmissionService(assistRepo, eventRepo, testLogger())
	_, err := svc.Register(context.Background(), 1, 7)

	assert.ErrorIs(t, err, storeErr)
}
