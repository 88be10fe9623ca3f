package handler

import (
	"errors"
	"net/http"

	"course_market/internal/domain/user/service"
	"course_market/internal/pkg/middleware"
	"course_market/pkg/response"
	"course_market/pkg/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// UserHandler 用户处理器
type UserHandler struct {
	service service.UserService
}

// NewUserHandler 创建处理器
func NewUserHandler(service service.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// RegisterInput 注册输入
type RegisterInput struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"omitempty,oneof=taker creator"`
}

// LoginInput 登录输入
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// CreateUserInput 管理员创建用户输入
type CreateUserInput struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"required,oneof=admin creator taker"`
}

// UpdateRoleInput 角色调整输入
type UpdateRoleInput struct {
	Role string `json:"role" binding:"required,oneof=admin creator taker"`
}

// Register 处理注册请求
// @Summary 注册
// @Tags Auth
// @Accept json
// @Produce json
// @Param input body RegisterInput true "Register Info"
// @Router /auth/signup [post]
func (h *UserHandler) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	user, token, err := h.service.Register(input.Username, input.Email, input.Password, input.Role)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			response.Error(c, http.StatusConflict, response.ErrUserExists, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}

	response.Success(c, gin.H{"user": user, "token": token})
}

// Login 处理登录请求
// @Summary 登录
// @Tags Auth
// @Accept json
// @Produce json
// @Param input body LoginInput true "Login Info"
// @Router /auth/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	token, err := h.service.Login(input.Email, input.Password)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, response.ErrAuthFailed, "Invalid credentials")
		return
	}

	response.Success(c, gin.H{"token": token})
}

// Me 当前登录用户信息
func (h *UserHandler) Me(c *gin.Context) {
	user, err := h.service.GetUser(middleware.GetUserID(c))
	if err != nil {
		response.Error(c, http.StatusNotFound, response.ErrUserNotFound, "User not found")
		return
	}
	response.Success(c, gin.H{
		"user":    user,
		"segment": user.Segment(),
	})
}

// GetUsers 获取所有用户（管理员）
func (h *UserHandler) GetUsers(c *gin.Context) {
	var p utils.Pagination
	if err := c.ShouldBindQuery(&p); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	users, total, err := h.service.GetUsers(p.Page, p.Limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "Failed to fetch users")
		return
	}
	response.SuccessList(c, users, total, p.Page, p.Limit)
}

// CreateUser 管理员创建用户
func (h *UserHandler) CreateUser(c *gin.Context) {
	var input CreateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	user, err := h.service.CreateUser(input.Username, input.Email, input.Password, input.Role)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			response.Error(c, http.StatusConflict, response.ErrUserExists, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, gin.H{"user": user})
}

// UpdateRole 管理员调整用户角色
func (h *UserHandler) UpdateRole(c *gin.Context) {
	var input UpdateRoleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	if err := h.service.UpdateRole(c.Param("id"), input.Role); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, response.ErrUserNotFound, "User not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, gin.H{"updated": true})
}

// DeleteUser 删除用户
func (h *UserHandler) DeleteUser(c *gin.Context) {
	if err := h.service.DeleteUser(c.Param("id")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, response.ErrUserNotFound, "User not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
