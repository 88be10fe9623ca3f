package service

import (
	"fmt"

	courseModel "course_market/internal/domain/course/model"
	"course_market/internal/domain/message/model"
	"course_market/internal/domain/message/repository"
	"course_market/internal/pkg/worker"
)

// CourseCatalog 站内信需要的课程查询
type CourseCatalog interface {
	GetByID(id string) (*courseModel.Course, error)
}

// Notifier 异步通知入口
type Notifier interface {
	AddTask(task worker.NotifyTask)
}

// MessageService 站内信服务接口
type MessageService interface {
	ContactInstructor(takerID, courseID, body string) (*model.Message, error)
	GetInbox(instructorID string, page, limit int) ([]model.Message, int64, error)
}

type messageService struct {
	repo     repository.MessageRepository
	courses  CourseCatalog
	notifier Notifier
}

func NewMessageService(repo repository.MessageRepository, courses CourseCatalog, notifier Notifier) MessageService {
	return &messageService{
		repo:     repo,
		courses:  courses,
		notifier: notifier,
	}
}

// ContactInstructor 学员给课程讲师留言
// 留言先落库，讲师推送走异步队列，推送失败不影响留言本身
func (s *messageService) ContactInstructor(takerID, courseID, body string) (*model.Message, error) {
	// 1. 通过课程定位讲师
	course, err := s.courses.GetByID(courseID)
	if err != nil {
		return nil, err
	}

	// 2. 留言落库
	message := &model.Message{
		CourseID:     courseID,
		InstructorID: course.OwnerID,
		TakerID:      takerID,
		Body:         body,
	}
	if err := s.repo.Create(message); err != nil {
		return nil, err
	}

	// 3. 异步推送给讲师
	if s.notifier != nil {
		s.notifier.AddTask(worker.NotifyTask{
			MessageID: message.ID,
			AccountID: course.OwnerID,
			Title:     fmt.Sprintf("新留言：%s", course.Title),
			Body:      body,
		})
	}

	return message, nil
}

func (s *messageService) GetInbox(instructorID string, page, limit int) ([]model.Message, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	offset := (page - 1) * limit
	return s.repo.GetByInstructor(instructorID, offset, limit)
}
