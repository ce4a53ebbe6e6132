package models

import "time"

type AssistanceStatus string

const (
	StatusPending   AssistanceStatus = "pending"
	StatusApproved  AssistanceStatus = "approved"
	StatusAttended  AssistanceStatus = "attended"
	StatusRejected  AssistanceStatus = "rejected"
	StatusCancelled AssistanceStatus = "cancelled"
)

// ValidStatus reports whether s is one of the known registration statuses.
func ValidStatus(s AssistanceStatus) bool {
	switch s {
	case StatusPending, StatusApproved, StatusAttended, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

// ActiveStatuses are the statuses that occupy a capacity slot.
var ActiveStatuses = []AssistanceStatus{StatusPending, StatusApproved, StatusAttended}

// Assistance ties one user to one event with a lifecycle status.
// Records are never hard-deleted; "cancelled" is the soft-delete state
// and a cancelled record can be revived by re-registering.
type Assistance struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	EventID     uint             `gorm:"not null" json:"event_id"`
	UserID      uint             `gorm:"not null" json:"user_id"`
	Status      AssistanceStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CheckInCode string           `gorm:"type:varchar(36);uniqueIndex;not null" json:"check_in_code"`
	CheckedInAt *time.Time       `json:"checked_in_at,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`

	Event *Event `gorm:"foreignKey:EventID" json:"event,omitempty"`
	User  *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
