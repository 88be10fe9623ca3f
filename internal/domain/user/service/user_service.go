package service

import (
	"errors"

	"course_market/internal/domain/user/model"
	"course_market/internal/domain/user/repository"
	"course_market/pkg/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// 用户服务错误
var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidRole        = errors.New("invalid role")
)

// UserService 用户服务接口
type UserService interface {
	Register(username, email, password, role string) (*model.User, string, error)
	Login(email, password string) (string, error)
	GetUsers(page, limit int) ([]model.User, int64, error)
	GetUser(id string) (*model.User, error)
	CreateUser(username, email, password, role string) (*model.User, error)
	UpdateRole(id, role string) error
	DeleteUser(id string) error
}

// userService 实现
type userService struct {
	repo repository.UserRepository
}

// NewUserService 创建用户服务
func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

// Register 注册并返回登录 Token
func (s *userService) Register(username, email, password, role string) (*model.User, string, error) {
	user, err := s.createUser(username, email, password, role)
	if err != nil {
		return nil, "", err
	}

	token, err := utils.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login 邮箱+密码登录
func (s *userService) Login(email, password string) (string, error) {
	user, err := s.repo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 不区分"用户不存在"与"密码错误"，避免撞库探测
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return utils.GenerateToken(user.ID, user.Role)
}

// GetUsers 获取用户列表（分页）
func (s *userService) GetUsers(page, limit int) ([]model.User, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	offset := (page - 1) * limit
	return s.repo.GetList(offset, limit)
}

// GetUser 获取单个用户
func (s *userService) GetUser(id string) (*model.User, error) {
	return s.repo.GetByID(id)
}

// CreateUser 管理员创建用户
func (s *userService) CreateUser(username, email, password, role string) (*model.User, error) {
	return s.createUser(username, email, password, role)
}

func (s *userService) createUser(username, email, password, role string) (*model.User, error) {
	if role == "" {
		role = model.RoleTaker
	}
	if !validRole(role) {
		return nil, ErrInvalidRole
	}

	// 邮箱唯一
	if _, err := s.repo.GetByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username: username,
		Email:    email,
		Password: string(hashed),
		Role:     role,
	}
	if err := s.repo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateRole 管理员调整用户角色
func (s *userService) UpdateRole(id, role string) error {
	if !validRole(role) {
		return ErrInvalidRole
	}
	return s.repo.UpdateRole(id, role)
}

// DeleteUser 删除用户（软删除）
func (s *userService) DeleteUser(id string) error {
	user, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	return s.repo.Delete(user)
}

func validRole(role string) bool {
	switch role {
	case model.RoleAdmin, model.RoleCreator, model.RoleTaker:
		return true
	}
	return false
}
