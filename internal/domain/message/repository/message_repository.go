package repository

import (
	"course_market/internal/domain/message/model"

	"gorm.io/gorm"
)

// MessageRepository 站内信仓储接口
type MessageRepository interface {
	Create(message *model.Message) error
	GetByInstructor(instructorID string, offset, limit int) ([]model.Message, int64, error)
}

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(message *model.Message) error {
	return r.db.Create(message).Error
}

func (r *messageRepository) GetByInstructor(instructorID string, offset, limit int) ([]model.Message, int64, error) {
	query := r.db.Model(&model.Message{}).Where("instructor_id = ?", instructorID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var messages []model.Message
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&messages).Error; err != nil {
		return nil, 0, err
	}
	return messages, total, nil
}
