package service

import (
	"testing"

	courseModel "course_market/internal/domain/course/model"
	"course_market/internal/domain/message/model"
	"course_market/internal/pkg/worker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockMessageRepository 站内信仓储 Mock
type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) Create(message *model.Message) error {
	args := m.Called(message)
	return args.Error(0)
}

func (m *MockMessageRepository) GetByInstructor(instructorID string, offset, limit int) ([]model.Message, int64, error) {
	args := m.Called(instructorID, offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.Message), args.Get(1).(int64), args.Error(2)
}

// MockCatalog 课程查询 Mock
type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) GetByID(id string) (*courseModel.Course, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*courseModel.Course), args.Error(1)
}

// recordingNotifier 记录入队任务
type recordingNotifier struct {
	tasks []worker.NotifyTask
}

func (n *recordingNotifier) AddTask(task worker.NotifyTask) {
	n.tasks = append(n.tasks, task)
}

func TestContactInstructor(t *testing.T) {
	t.Run("留言落库并通知讲师", func(t *testing.T) {
		mockRepo := new(MockMessageRepository)
		catalog := new(MockCatalog)
		notifier := &recordingNotifier{}
		svc := NewMessageService(mockRepo, catalog, notifier)

		course := &courseModel.Course{Title: "Go 入门", OwnerID: "instructor-1"}
		catalog.On("GetByID", "course-1").Return(course, nil)
		mockRepo.On("Create", mock.AnythingOfType("*model.Message")).Return(nil)

		message, err := svc.ContactInstructor("taker-1", "course-1", "第三章看不懂")

		assert.NoError(t, err)
		assert.Equal(t, "instructor-1", message.InstructorID)
		assert.Len(t, notifier.tasks, 1)
		assert.Equal(t, "instructor-1", notifier.tasks[0].AccountID)
	})

	t.Run("课程不存在不产生留言", func(t *testing.T) {
		mockRepo := new(MockMessageRepository)
		catalog := new(MockCatalog)
		svc := NewMessageService(mockRepo, catalog, &recordingNotifier{})

		catalog.On("GetByID", "missing").Return(nil, gorm.ErrRecordNotFound)

		message, err := svc.ContactInstructor("taker-1", "missing", "hello")

		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
		assert.Nil(t, message)
		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("落库失败不推送", func(t *testing.T) {
		mockRepo := new(MockMessageRepository)
		catalog := new(MockCatalog)
		notifier := &recordingNotifier{}
		svc := NewMessageService(mockRepo, catalog, notifier)

		catalog.On("GetByID", "course-1").Return(&courseModel.Course{OwnerID: "instructor-1"}, nil)
		mockRepo.On("Create", mock.AnythingOfType("*model.Message")).Return(gorm.ErrInvalidData)

		_, err := svc.ContactInstructor("taker-1", "course-1", "hi")

		assert.Error(t, err)
		assert.Len(t, notifier.tasks, 0)
	})
}
