package service

import (
	"context"
	"io"
	"log/slog"

	"github.com/eventpass/attendance-service/internal/models"
	"gorm.io/gorm"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// --- Mock EventRepository ---

type mockEventRepo struct {
	createFn  func(ctx context.Context, event *models.Event) error
	findFn    func(ctx context.Context, id uint) (*models.Event, error)
	findAllFn func(ctx context.Context) ([]models.Event, error)
	saveFn    func(ctx context.Context, event *models.Event) error
}

func (m *mockEventRepo) Create(ctx context.Context, event *models.Event) error {
	return m.createFn(ctx, event)
}

func (m *mockEventRepo) FindByID(ctx context.Context, id uint) (*models.Event, error) {
	return m.findFn(ctx, id)
}

func (m *mockEventRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Event, error) {
	return m.findFn(ctx, id)
}

func (m *mockEventRepo) FindAll(ctx context.Context) ([]models.Event, error) {
	return m.findAllFn(ctx)
}

func (m *mockEventRepo) Save(ctx context.Context, event *models.Event) error {
	if m.saveFn != nil {
		return m.saveFn(ctx, event)
	}
	return nil
}

// --- Mock AssistanceRepository ---

type mockAssistanceRepo struct {
	createFn          func(ctx context.Context, a *models.Assistance) error
	findByIDFn        func(ctx context.Context, id uint) (*models.Assistance, error)
	findByCodeFn      func(ctx context.Context, code string) (*models.Assistance, error)
	findByEventFn     func(ctx context.Context, eventID uint, status *models.AssistanceStatus) ([]models.Assistance, error)
	findByUserEventFn func(ctx context.Context, eventID, userID uint, statuses []models.AssistanceStatus) (*models.Assistance, error)
	countFn           func(ctx context.Context, eventID uint, statuses []models.AssistanceStatus) (int64, error)
	emailsFn          func(ctx context.Context, eventID uint) ([]string, error)
	saveFn            func(ctx context.Context, a *models.Assistance) error
}

func (m *mockAssistanceRepo) Create(ctx context.Context, tx *gorm.DB, a *models.Assistance) error {
	if m.createFn != nil {
		return m.createFn(ctx, a)
	}
	return nil
}

func (m *mockAssistanceRepo) FindByID(ctx context.Context, id uint) (*models.Assistance, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAssistanceRepo) FindByCheckInCode(ctx context.Context, code string) (*models.Assistance, error) {
	if m.findByCodeFn != nil {
		return m.findByCodeFn(ctx, code)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAssistanceRepo) FindByEventID(ctx context.Context, eventID uint, status *models.AssistanceStatus) ([]models.Assistance, error) {
	if m.findByEventFn != nil {
		return m.findByEventFn(ctx, eventID, status)
	}
	return nil, nil
}

func (m *mockAssistanceRepo) FindByUserAndEvent(ctx context.Context, tx *gorm.DB, eventID, userID uint, statuses []models.AssistanceStatus) (*models.Assistance, error) {
	if m.findByUserEventFn != nil {
		return m.findByUserEventFn(ctx, eventID, userID, statuses)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAssistanceRepo) CountByStatusIn(ctx context.Context, tx *gorm.DB, eventID uint, statuses []models.AssistanceStatus) (int64, error) {
	if m.countFn != nil {
		return m.countFn(ctx, eventID, statuses)
	}
	return 0, nil
}

func (m *mockAssistanceRepo) ActiveRegistrantEmails(ctx context.Context, eventID uint) ([]string, error) {
	if m.emailsFn != nil {
		return m.emailsFn(ctx, eventID)
	}
	return nil, nil
}

func (m *mockAssistanceRepo) Save(ctx context.Context, tx *gorm.DB, a *models.Assistance) error {
	if m.saveFn != nil {
		return m.saveFn(ctx, a)
	}
	return nil
}

func (m *mockAssistanceRepo) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

// --- Mock Mailer ---

type mockMailer struct {
	sendFn func(bcc []string, subject, htmlBody string) error

	calls [][]string
}

func (m *mockMailer) Send(bcc []string, subject, htmlBody string) error {
	m.calls = append(m.calls, append([]string(nil), bcc...))
	if m.sendFn != nil {
		return m.sendFn(bcc, subject, htmlBody)
	}
	return nil
}
