package model

import (
	baseModel "course_market/pkg/model"
)

// Message 学员发给讲师的站内信
type Message struct {
	baseModel.BaseModel
	CourseID     string `gorm:"type:uuid;index;not null" json:"courseId"`
	InstructorID string `gorm:"type:uuid;index;not null" json:"instructorId"`
	TakerID      string `gorm:"type:uuid;not null" json:"takerId"`
	Body         string `gorm:"type:text;not null" json:"body"`
}
