package models

import "time"

type Role string

const (
	RoleAttendee  Role = "attendee"
	RolePresenter Role = "presenter"
	RoleAdmin     Role = "admin"
)

// User is owned by the identity service; rows here are a synced
// read model kept fresh by the user.* consumer.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Role      Role      `gorm:"type:varchar(20);not null;default:'attendee'" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
