package service

import (
	"errors"

	"course_market/internal/domain/course/model"
	"course_market/internal/domain/course/repository"
)

var ErrInvalidPrice = errors.New("price must not be negative")

// CourseService 课程服务接口
type CourseService interface {
	CreateCourse(ownerID, title, description, category string, price float64) (*model.Course, error)
	GetCourse(id string) (*model.Course, error)
	ListOwnCourses(ownerID string) ([]model.Course, error)
	SearchCourses(filter repository.CourseFilter, page, limit int) ([]model.Course, int64, error)
	UpdateCourse(id, ownerID, title, description, category string, price float64) (*model.Course, error)
	DeleteCourse(id, ownerID string) error
	AddContent(courseID, ownerID, title, url, contentType string) (*model.Content, error)
	RemoveContent(courseID, contentID, ownerID string) error
	GetRatings(courseID string) ([]model.Rating, error)
	RateCourse(courseID, userID string, score int, comment string) (*model.Rating, error)
}

type courseService struct {
	repo repository.CourseRepository
}

func NewCourseService(repo repository.CourseRepository) CourseService {
	return &courseService{repo: repo}
}

func (s *courseService) CreateCourse(ownerID, title, description, category string, price float64) (*model.Course, error) {
	if price < 0 {
		return nil, ErrInvalidPrice
	}

	course := &model.Course{
		Title:       title,
		Description: description,
		Category:    category,
		Price:       price,
		OwnerID:     ownerID,
	}
	if err := s.repo.Create(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *courseService) GetCourse(id string) (*model.Course, error) {
	return s.repo.GetByID(id)
}

func (s *courseService) ListOwnCourses(ownerID string) ([]model.Course, error) {
	return s.repo.GetByOwner(ownerID)
}

func (s *courseService) SearchCourses(filter repository.CourseFilter, page, limit int) ([]model.Course, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	offset := (page - 1) * limit
	return s.repo.Search(filter, offset, limit)
}

func (s *courseService) UpdateCourse(id, ownerID, title, description, category string, price float64) (*model.Course, error) {
	if price < 0 {
		return nil, ErrInvalidPrice
	}
	return s.repo.UpdateOwned(id, ownerID, map[string]interface{}{
		"title":       title,
		"description": description,
		"category":    category,
		"price":       price,
	})
}

func (s *courseService) DeleteCourse(id, ownerID string) error {
	return s.repo.DeleteOwned(id, ownerID)
}

func (s *courseService) AddContent(courseID, ownerID, title, url, contentType string) (*model.Content, error) {
	// 校验课程存在且归属于该创作者
	course, err := s.repo.GetByID(courseID)
	if err != nil {
		return nil, err
	}
	if course.OwnerID != ownerID {
		return nil, errors.New("course does not belong to this creator")
	}

	content := &model.Content{
		CourseID: courseID,
		Title:    title,
		URL:      url,
		Type:     contentType,
	}
	if err := s.repo.AddContent(content); err != nil {
		return nil, err
	}
	return content, nil
}

func (s *courseService) RemoveContent(courseID, contentID, ownerID string) error {
	return s.repo.RemoveContent(courseID, contentID, ownerID)
}

func (s *courseService) GetRatings(courseID string) ([]model.Rating, error) {
	return s.repo.GetRatings(courseID)
}

func (s *courseService) RateCourse(courseID, userID string, score int, comment string) (*model.Rating, error) {
	if score < 1 || score > 5 {
		return nil, errors.New("score must be between 1 and 5")
	}

	if _, err := s.repo.GetByID(courseID); err != nil {
		return nil, err
	}

	rating := &model.Rating{
		CourseID: courseID,
		UserID:   userID,
		Score:    score,
		Comment:  comment,
	}
	if err := s.repo.AddRating(rating); err != nil {
		return nil, err
	}
	return rating, nil
}
