package handler

import (
	"errors"
	"net/http"

	"course_market/internal/domain/message/service"
	"course_market/internal/pkg/middleware"
	"course_market/pkg/response"
	"course_market/pkg/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// MessageHandler 站内信处理器
type MessageHandler struct {
	service service.MessageService
}

func NewMessageHandler(s service.MessageService) *MessageHandler {
	return &MessageHandler{service: s}
}

// ContactInput 联系讲师输入
type ContactInput struct {
	Body string `json:"body" binding:"required,max=2000"`
}

// ContactInstructor 学员给课程讲师留言
// @Summary 联系讲师
// @Tags Taker
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param input body ContactInput true "Message"
// @Router /taker/courses/{id}/contact [post]
func (h *MessageHandler) ContactInstructor(c *gin.Context) {
	var input ContactInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	message, err := h.service.ContactInstructor(middleware.GetUserID(c), c.Param("id"), input.Body)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, response.ErrCourseNotFound, "Course not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, gin.H{"message": message})
}

// GetInbox 讲师收件箱
func (h *MessageHandler) GetInbox(c *gin.Context) {
	var p utils.Pagination
	if err := c.ShouldBindQuery(&p); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	messages, total, err := h.service.GetInbox(middleware.GetUserID(c), p.Page, p.Limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.SuccessList(c, messages, total, p.Page, p.Limit)
}
