package repository

import (
	"context"

	"github.com/eventpass/attendance-service/internal/models"
	"gorm.io/gorm"
)

type AssistanceRepository interface {
	Create(ctx context.Context, tx *gorm.DB, assistance *models.Assistance) error
	FindByID(ctx context.Context, id uint) (*models.Assistance, error)
	FindByCheckInCode(ctx context.Context, code string) (*models.Assistance, error)
	FindByEventID(ctx context.Context, eventID uint, status *models.AssistanceStatus) ([]models.Assistance, error)
	// FindByUserAndEvent returns the record for the (event, user) pair whose
	// status is in the given set, or gorm.ErrRecordNotFound.
	FindByUserAndEvent(ctx context.Context, tx *gorm.DB, eventID, userID uint, statuses []models.AssistanceStatus) (*models.Assistance, error)
	CountByStatusIn(ctx context.Context, tx *gorm.DB, eventID uint, statuses []models.AssistanceStatus) (int64, error)
	// ActiveRegistrantEmails returns the distinct emails of users whose
	// registration for the event is approved or attended.
	ActiveRegistrantEmails(ctx context.Context, eventID uint) ([]string, error)
	Save(ctx context.Context, tx *gorm.DB, assistance *models.Assistance) error
	// Transaction runs fn inside a database transaction.
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type assistanceRepository struct {
	db *gorm.DB
}

func NewAssistanceRepository(db *gorm.DB) AssistanceRepository {
	return &assistanceRepository{db: db}
}

// conn picks the transaction handle when one is supplied, the pooled
// connection otherwise.
func (r *assistanceRepository) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *assistanceRepository) Create(ctx context.Context, tx *gorm.DB, assistance *models.Assistance) error {
	return r.conn(tx).WithContext(ctx).Create(assistance).Error
}

func (r *assistanceRepository) FindByID(ctx context.Context, id uint) (*models.Assistance, error) {
	var assistance models.Assistance
	if err := r.db.WithContext(ctx).First(&assistance, id).Error; err != nil {
		return nil, err
	}
	return &assistance, nil
}

func (r *assistanceRepository) FindByCheckInCode(ctx context.Context, code string) (*models.Assistance, error) {
	var assistance models.Assistance
	err := r.db.WithContext(ctx).
		Where("check_in_code = ?", code).
		First(&assistance).Error
	if err != nil {
		return nil, err
	}
	return &assistance, nil
}

func (r *assistanceRepository) FindByEventID(ctx context.Context, eventID uint, status *models.AssistanceStatus) ([]models.Assistance, error) {
	var assistances []models.Assistance
	q := r.db.WithContext(ctx).Where("event_id = ?", eventID)
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	if err := q.Order("id ASC").Find(&assistances).Error; err != nil {
		return nil, err
	}
	return assistances, nil
}

func (r *assistanceRepository) FindByUserAndEvent(ctx context.Context, tx *gorm.DB, eventID, userID uint, statuses []models.AssistanceStatus) (*models.Assistance, error) {
	var assistance models.Assistance
	err := r.conn(tx).WithContext(ctx).
		Where("event_id = ? AND user_id = ? AND status IN ?", eventID, userID, statuses).
		Order("id DESC").
		First(&assistance).Error
	if err != nil {
		return nil, err
	}
	return &assistance, nil
}

func (r *assistanceRepository) CountByStatusIn(ctx context.Context, tx *gorm.DB, eventID uint, statuses []models.AssistanceStatus) (int64, error) {
	var count int64
	err := r.conn(tx).WithContext(ctx).
		Model(&models.Assistance{}).
		Where("event_id = ? AND status IN ?", eventID, statuses).
		Count(&count).Error
	return count, err
}

func (r *assistanceRepository) ActiveRegistrantEmails(ctx context.Context, eventID uint) ([]string, error) {
	var emails []string
	err := r.db.WithContext(ctx).
		Model(&models.Assistance{}).
		Distinct("users.email").
		Joins("JOIN users ON users.id = assistances.user_id").
		Where("assistances.event_id = ? AND assistances.status IN ?",
			eventID, []models.AssistanceStatus{models.StatusApproved, models.StatusAttended}).
		Pluck("users.email", &emails).Error
	if err != nil {
		return nil, err
	}
	return emails, nil
}

func (r *assistanceRepository) Save(ctx context.Context, tx *gorm.DB, assistance *models.Assistance) error {
	return r.conn(tx).WithContext(ctx).Save(assistance).Error
}

func (r *assistanceRepository) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}
