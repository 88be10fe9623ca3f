package repository

import (
	"course_market/internal/domain/course/model"

	"gorm.io/gorm"
)

// CourseFilter 课程浏览过滤条件
type CourseFilter struct {
	Category string
	MinPrice *float64
	MaxPrice *float64
}

// CourseRepository 接口定义
type CourseRepository interface {
	Create(course *model.Course) error
	GetByID(id string) (*model.Course, error)
	GetByOwner(ownerID string) ([]model.Course, error)
	Search(filter CourseFilter, offset, limit int) ([]model.Course, int64, error)
	UpdateOwned(id, ownerID string, fields map[string]interface{}) (*model.Course, error)
	DeleteOwned(id, ownerID string) error
	AddContent(content *model.Content) error
	RemoveContent(courseID, contentID, ownerID string) error
	GetRatings(courseID string) ([]model.Rating, error)
	AddRating(rating *model.Rating) error
}

type courseRepository struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) Create(course *model.Course) error {
	return r.db.Create(course).Error
}

// GetByID 根据ID获取课程（含内容）
func (r *courseRepository) GetByID(id string) (*model.Course, error) {
	var course model.Course
	if err := r.db.Preload("Contents").Where("id = ?", id).First(&course).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepository) GetByOwner(ownerID string) ([]model.Course, error) {
	var courses []model.Course
	if err := r.db.Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

// Search 按类目/价格区间过滤课程（分页）
func (r *courseRepository) Search(filter CourseFilter, offset, limit int) ([]model.Course, int64, error) {
	query := r.db.Model(&model.Course{})

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.MinPrice != nil {
		query = query.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("price <= ?", *filter.MaxPrice)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var courses []model.Course
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&courses).Error; err != nil {
		return nil, 0, err
	}
	return courses, total, nil
}

// UpdateOwned 仅允许所有者更新课程
func (r *courseRepository) UpdateOwned(id, ownerID string, fields map[string]interface{}) (*model.Course, error) {
	result := r.db.Model(&model.Course{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Updates(fields)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(id)
}

// DeleteOwned 仅允许所有者删除课程
func (r *courseRepository) DeleteOwned(id, ownerID string) error {
	result := r.db.Where("id = ? AND owner_id = ?", id, ownerID).Delete(&model.Course{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *courseRepository) AddContent(content *model.Content) error {
	return r.db.Create(content).Error
}

// RemoveContent 删除课程内容，校验课程归属
func (r *courseRepository) RemoveContent(courseID, contentID, ownerID string) error {
	result := r.db.Where(
		"id = ? AND course_id = ? AND course_id IN (SELECT id FROM courses WHERE owner_id = ?)",
		contentID, courseID, ownerID,
	).Delete(&model.Content{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *courseRepository) GetRatings(courseID string) ([]model.Rating, error) {
	var ratings []model.Rating
	if err := r.db.Where("course_id = ?", courseID).Order("created_at DESC").Find(&ratings).Error; err != nil {
		return nil, err
	}
	return ratings, nil
}

func (r *courseRepository) AddRating(rating *model.Rating) error {
	return r.db.Create(rating).Error
}
