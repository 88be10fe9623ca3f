package model

import (
	baseModel "course_market/pkg/model"
)

// Course 课程模型
// Price 为权威标价，促销折扣只在结算时计算，永远不回写到这里
type Course struct {
	baseModel.BaseModel
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Category    string    `gorm:"type:varchar(100);index;not null" json:"category"`
	Price       float64   `gorm:"not null;check:price >= 0" json:"price"`
	OwnerID     string    `gorm:"type:uuid;index;not null" json:"ownerId"`
	Contents    []Content `gorm:"foreignKey:CourseID" json:"contents,omitempty"`
	Ratings     []Rating  `gorm:"foreignKey:CourseID" json:"ratings,omitempty"`
}

// Content 课程内容（视频、文档等）
type Content struct {
	baseModel.BaseModel
	CourseID string `gorm:"type:uuid;index;not null" json:"courseId"`
	Title    string `gorm:"type:varchar(255)" json:"title"`
	URL      string `gorm:"type:text" json:"url"`
	Type     string `gorm:"type:varchar(50)" json:"type"` // video, document
}

// Rating 课程评分
type Rating struct {
	baseModel.BaseModel
	CourseID string `gorm:"type:uuid;index;not null" json:"courseId"`
	UserID   string `gorm:"type:uuid;not null" json:"userId"`
	Score    int    `gorm:"not null;check:score >= 1 AND score <= 5" json:"score"`
	Comment  string `gorm:"type:text" json:"comment"`
}
