package consumer

import (
	"encoding/json"
	"log/slog"

	"github.com/eventpass/attendance-service/internal/models"
	amqp "github.com/rabbitmq/amqp091-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserConsumer mirrors users published by the identity service into the
// local users table.
type UserConsumer struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewUserConsumer(db *gorm.DB, logger *slog.Logger) *UserConsumer {
	return &UserConsumer{db: db, logger: logger}
}

// Start listens for messages and upserts users into the local database.
func (uc *UserConsumer) Start(msgs <-chan amqp.Delivery) {
	go func() {
		for msg := range msgs {
			uc.handleMessage(msg)
		}
		uc.logger.Info("user consumer channel closed, stopping")
	}()
}

func (uc *UserConsumer) handleMessage(msg amqp.Delivery) {
	var user models.User
	if err := json.Unmarshal(msg.Body, &user); err != nil {
		uc.logger.Error("user message unmarshal failed", "error", err)
		msg.Nack(false, false)
		return
	}

	// Upsert: the identity service owns user IDs
	result := uc.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "email", "role", "updated_at"}),
	}).Create(&user)

	if result.Error != nil {
		uc.logger.Error("user upsert failed", "user_id", user.ID, "error", result.Error)
		msg.Nack(false, true) // requeue
		return
	}

	uc.logger.Info("user synced", "user_id", user.ID, "email", user.Email)
	msg.Ack(false)
}
