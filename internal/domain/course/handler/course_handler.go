package handler

import (
	"errors"
	"net/http"
	"strconv"

	"course_market/internal/domain/course/repository"
	"course_market/internal/domain/course/service"
	"course_market/internal/pkg/middleware"
	"course_market/internal/pkg/uploader"
	"course_market/pkg/response"
	"course_market/pkg/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CourseHandler 课程处理器
type CourseHandler struct {
	service service.CourseService
}

func NewCourseHandler(service service.CourseService) *CourseHandler {
	return &CourseHandler{service: service}
}

// CourseInput 课程创建/更新输入
type CourseInput struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Category    string  `json:"category" binding:"required"`
	Price       float64 `json:"price" binding:"min=0"`
}

// ContentInput 课程内容输入
type ContentInput struct {
	Title string `json:"title" binding:"required"`
	URL   string `json:"url" binding:"required"`
	Type  string `json:"type" binding:"required,oneof=video document"`
}

// RatingInput 评分输入
type RatingInput struct {
	Score   int    `json:"score" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// CreateCourse 创建课程（创作者）
// @Summary 创建课程
// @Tags Creator
// @Accept json
// @Produce json
// @Param input body CourseInput true "Course Info"
// @Router /creator/courses [post]
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	var input CourseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	course, err := h.service.CreateCourse(middleware.GetUserID(c), input.Title, input.Description, input.Category, input.Price)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, gin.H{"course": course})
}

// ListOwnCourses 创作者课程列表
func (h *CourseHandler) ListOwnCourses(c *gin.Context) {
	courses, err := h.service.ListOwnCourses(middleware.GetUserID(c))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, gin.H{"courses": courses})
}

// SearchCourses 课程浏览（按类目/价格过滤）
// @Summary 课程浏览
// @Tags Taker
// @Produce json
// @Param category query string false "类目"
// @Param minPrice query number false "最低价"
// @Param maxPrice query number false "最高价"
// @Router /taker/courses [get]
func (h *CourseHandler) SearchCourses(c *gin.Context) {
	var p utils.Pagination
	if err := c.ShouldBindQuery(&p); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	filter := repository.CourseFilter{Category: c.Query("category")}
	if v := c.Query("minPrice"); v != "" {
		min, err := strconv.ParseFloat(v, 64)
		if err != nil {
			response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "invalid minPrice")
			return
		}
		filter.MinPrice = &min
	}
	if v := c.Query("maxPrice"); v != "" {
		max, err := strconv.ParseFloat(v, 64)
		if err != nil {
			response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "invalid maxPrice")
			return
		}
		filter.MaxPrice = &max
	}

	courses, total, err := h.service.SearchCourses(filter, p.Page, p.Limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.SuccessList(c, courses, total, p.Page, p.Limit)
}

// GetCourse 课程详情
func (h *CourseHandler) GetCourse(c *gin.Context) {
	course, err := h.service.GetCourse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusNotFound, response.ErrCourseNotFound, "Course not found")
		return
	}
	response.Success(c, gin.H{"course": course})
}

// UpdateCourse 更新课程（仅所有者）
func (h *CourseHandler) UpdateCourse(c *gin.Context) {
	var input CourseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	course, err := h.service.UpdateCourse(c.Param("id"), middleware.GetUserID(c),
		input.Title, input.Description, input.Category, input.Price)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, response.ErrCourseNotFound, "Course not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, gin.H{"course": course})
}

// DeleteCourse 删除课程（仅所有者）
func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	if err := h.service.DeleteCourse(c.Param("id"), middleware.GetUserID(c)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, response.ErrCourseNotFound, "Course not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// AddContent 添加课程内容
func (h *CourseHandler) AddContent(c *gin.Context) {
	var input ContentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	content, err := h.service.AddContent(c.Param("id"), middleware.GetUserID(c), input.Title, input.URL, input.Type)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, response.ErrCourseNotFound, "Course not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, gin.H{"content": content})
}

// RemoveContent 删除课程内容
func (h *CourseHandler) RemoveContent(c *gin.Context) {
	err := h.service.RemoveContent(c.Param("id"), c.Param("contentId"), middleware.GetUserID(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, response.ErrCourseNotFound, "Content not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// UploadAsset 上传课程资源文件，返回 OSS URL
func (h *CourseHandler) UploadAsset(c *gin.Context) {
	if uploader.GlobalUploader == nil {
		response.Error(c, http.StatusServiceUnavailable, response.ErrServerInternal, "Uploader not configured")
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "file is required")
		return
	}

	url, err := uploader.GlobalUploader.UploadFile(file)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, gin.H{"url": url})
}

// GetRatings 课程评分列表
func (h *CourseHandler) GetRatings(c *gin.Context) {
	ratings, err := h.service.GetRatings(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, gin.H{"ratings": ratings})
}

// RateCourse 学员评分
func (h *CourseHandler) RateCourse(c *gin.Context) {
	var input RatingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	rating, err := h.service.RateCourse(c.Param("id"), middleware.GetUserID(c), input.Score, input.Comment)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, response.ErrCourseNotFound, "Course not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, gin.H{"rating": rating})
}
